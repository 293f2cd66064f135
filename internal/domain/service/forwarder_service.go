package service

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ruudy-sib/udpout/internal/domain/entity"
	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// ForwarderService turns received events into datagrams: the codec encodes,
// its callback resolves the port and hands the payload to the transmitter.
type ForwarderService struct {
	host        string
	port        entity.PortSpec
	codec       secondary.Codec
	transmitter *Transmitter
	metrics     secondary.MetricsRecorder
	logger      *zap.Logger
}

// NewForwarderService creates a ForwarderService with its dependencies injected.
func NewForwarderService(
	host string,
	port entity.PortSpec,
	codec secondary.Codec,
	transmitter *Transmitter,
	metrics secondary.MetricsRecorder,
	logger *zap.Logger,
) *ForwarderService {
	if metrics == nil {
		metrics = secondary.NopMetrics{}
	}
	return &ForwarderService{
		host:        host,
		port:        port,
		codec:       codec,
		transmitter: transmitter,
		metrics:     metrics,
		logger:      logger.Named("forwarder"),
	}
}

// Receive encodes event; transmission is driven by the codec callback.
func (s *ForwarderService) Receive(ctx context.Context, event *entity.Event) {
	if err := s.codec.Encode(ctx, event, s.onEvent); err != nil {
		s.metrics.EventDropped(kindEncode)
		diagnostic{
			level:     zapcore.ErrorLevel,
			message:   "Failed to encode event",
			kind:      kindEncode,
			err:       err,
			backtrace: true,
			fields: []zap.Field{
				zap.String("event_id", event.ID.String()),
				zap.String("codec", s.codec.Name()),
			},
		}.emit(s.logger)
	}
}

func (s *ForwarderService) onEvent(ctx context.Context, event *entity.Event, payload []byte) {
	port, err := s.port.Resolve(event)
	if err != nil {
		s.metrics.EventDropped(kindPortResolution)
		diagnostic{
			level:   zapcore.ErrorLevel,
			message: "Failed to resolve port, dropping event",
			kind:    kindPortResolution,
			err:     err,
			fields: []zap.Field{
				zap.String("event_id", event.ID.String()),
				zap.String("port", s.port.Raw()),
				zap.Stringer("event", event),
			},
		}.emit(s.logger)
		return
	}

	s.transmitter.Send(ctx, event, payload, entity.Destination{Host: s.host, Port: port})
}
