package natssource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/ruudy-sib/udpout/internal/config"
	"github.com/ruudy-sib/udpout/internal/domain"
	"github.com/ruudy-sib/udpout/internal/domain/entity"
)

// pendingLimit caps the messages buffered between Fetch calls. Core NATS
// drops for slow consumers once it is full.
const pendingLimit = 1024

// Source implements secondary.EventSource over a core NATS subscription.
// Delivery is at-most-once; messages published while disconnected are lost.
type Source struct {
	conn   *nats.Conn
	sub    *nats.Subscription
	msgs   chan *nats.Msg
	closed atomic.Bool
	logger *zap.Logger
}

// Connect dials NATS and subscribes to the configured subject.
func Connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Source, error) {
	logger = logger.Named("nats-source")

	opts := []nats.Option{
		nats.Name("udpout"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}
	if deadline, ok := ctx.Deadline(); ok {
		opts = append(opts, nats.Timeout(time.Until(deadline)))
	}

	conn, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %s: %w", cfg.NATSURL, err)
	}

	msgs := make(chan *nats.Msg, pendingLimit)
	sub, err := conn.ChanSubscribe(cfg.NATSSubject, msgs)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribing to %q: %w", cfg.NATSSubject, err)
	}

	logger.Info("subscribed to nats",
		zap.String("url", cfg.NATSURL),
		zap.String("subject", cfg.NATSSubject),
	)

	s := newSource(msgs, logger)
	s.conn = conn
	s.sub = sub
	return s, nil
}

func newSource(msgs chan *nats.Msg, logger *zap.Logger) *Source {
	return &Source{msgs: msgs, logger: logger}
}

// Conn exposes the underlying connection for health checking.
func (s *Source) Conn() *nats.Conn {
	return s.conn
}

// Name returns "nats".
func (s *Source) Name() string {
	return "nats"
}

// Fetch drains whatever is buffered, up to limit. It never blocks.
func (s *Source) Fetch(ctx context.Context, limit int) ([]*entity.Event, error) {
	if s.closed.Load() {
		return nil, domain.ErrSourceClosed
	}

	events := make([]*entity.Event, 0, limit)

	for len(events) < limit {
		if err := ctx.Err(); err != nil {
			return events, err
		}

		var msg *nats.Msg
		select {
		case msg = <-s.msgs:
		default:
			return events, nil
		}

		event, err := entity.DecodeEvent(msg.Data)
		if err != nil {
			s.logger.Warn("invalid event data in nats",
				zap.Error(err),
				zap.String("subject", msg.Subject),
			)
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

// Close unsubscribes and drains the connection.
func (s *Source) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	var errs []error
	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			errs = append(errs, fmt.Errorf("unsubscribing: %w", err))
		}
	}
	if s.conn != nil {
		s.conn.Close()
	}
	return errors.Join(errs...)
}
