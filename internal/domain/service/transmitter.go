package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ruudy-sib/udpout/internal/domain"
	"github.com/ruudy-sib/udpout/internal/domain/entity"
	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// Transmitter sends payloads through a DatagramSender and applies the retry
// policy. Each Send call runs its own state machine; nothing is shared
// between events except the sender.
type Transmitter struct {
	sender    secondary.DatagramSender
	policy    entity.RetryPolicy
	suspender Suspender
	metrics   secondary.MetricsRecorder
	logger    *zap.Logger
}

// NewTransmitter creates a Transmitter. A nil suspender waits on a timer and
// nil metrics are discarded.
func NewTransmitter(
	sender secondary.DatagramSender,
	policy entity.RetryPolicy,
	suspender Suspender,
	metrics secondary.MetricsRecorder,
	logger *zap.Logger,
) *Transmitter {
	if suspender == nil {
		suspender = TimerSuspender{}
	}
	if metrics == nil {
		metrics = secondary.NopMetrics{}
	}
	return &Transmitter{
		sender:    sender,
		policy:    policy,
		suspender: suspender,
		metrics:   metrics,
		logger:    logger.Named("transmitter"),
	}
}

// Send delivers payload to destination, retrying transient failures up to
// the policy's budget. It always returns a terminal Delivery.
func (t *Transmitter) Send(ctx context.Context, event *entity.Event, payload []byte, destination entity.Destination) entity.Delivery {
	logger := t.logger.With(zap.String("destination", destination.Address()))
	if event != nil {
		logger = logger.With(zap.String("event_id", event.ID.String()))
	}

	for attempt := 1; ; attempt++ {
		err := t.sender.Send(ctx, destination, payload)
		sa := entity.SendAttempt{
			Number:      attempt,
			Payload:     payload,
			Destination: destination,
			Err:         err,
		}

		switch entity.ClassifySendError(err) {
		case entity.OutcomeSent:
			t.metrics.DatagramSent(len(payload))
			return entity.Delivery{State: entity.DeliverySent, Attempts: attempt}

		case entity.OutcomeFatalFailure:
			t.metrics.SendFailed(kindOversize)
			diagnostic{
				level:     zapcore.ErrorLevel,
				message:   fmt.Sprintf("Failed to send event, message size of %d too long", len(payload)),
				kind:      kindOversize,
				err:       err,
				backtrace: true,
				payload:   payload,
				fields:    attemptFields(sa),
			}.emit(logger)
			return entity.Delivery{State: entity.DeliveryFailed, Attempts: attempt, Err: err}
		}

		if !t.policy.AllowsRetry(attempt) {
			t.metrics.SendFailed(kindTransient)
			diagnostic{
				level:     zapcore.ErrorLevel,
				message:   "Failed to send event",
				kind:      kindTransient,
				err:       err,
				backtrace: true,
				payload:   payload,
				fields:    attemptFields(sa),
			}.emit(logger)
			return entity.Delivery{
				State:    entity.DeliveryFailed,
				Attempts: attempt,
				Err:      fmt.Errorf("%w: %w", domain.ErrTransientSend, err),
			}
		}

		t.metrics.SendRetried()
		diagnostic{
			level:   zapcore.WarnLevel,
			message: "Failed to send event, retrying",
			kind:    kindTransient,
			err:     err,
			fields:  append(attemptFields(sa), zap.Duration("backoff", t.policy.Backoff)),
		}.emit(logger)

		if serr := t.suspender.Suspend(ctx, t.policy.Backoff); serr != nil {
			t.metrics.SendFailed(kindCancelled)
			diagnostic{
				level:     zapcore.ErrorLevel,
				message:   "Failed to send event, retry abandoned",
				kind:      kindCancelled,
				err:       err,
				backtrace: true,
				payload:   payload,
				fields:    append(attemptFields(sa), zap.NamedError("cause", serr)),
			}.emit(logger)
			return entity.Delivery{State: entity.DeliveryFailed, Attempts: attempt, Err: serr}
		}
	}
}

func attemptFields(sa entity.SendAttempt) []zap.Field {
	return []zap.Field{
		zap.Int("attempt", sa.Number),
		zap.Int("payload_size", len(sa.Payload)),
	}
}
