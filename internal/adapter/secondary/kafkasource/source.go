package kafkasource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ruudy-sib/udpout/internal/config"
	"github.com/ruudy-sib/udpout/internal/domain/entity"
	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// defaultFetchWait bounds how long a single Fetch waits for the next message
// once the topic has gone quiet.
const defaultFetchWait = 200 * time.Millisecond

// messageReader is the subset of *kafka.Reader the source relies on.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Source implements secondary.EventSource over a Kafka consumer group.
// Offsets are committed as soon as a batch is decoded.
type Source struct {
	reader messageReader
	wait   time.Duration
	logger *zap.Logger
}

// NewSource creates a consumer group reader from the application configuration.
func NewSource(cfg *config.Config, logger *zap.Logger) secondary.EventSource {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		GroupID:  cfg.KafkaGroupID,
		Topic:    cfg.KafkaTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	logger.Info("kafka source initialized",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic),
		zap.String("group_id", cfg.KafkaGroupID),
	)

	return newSource(reader, defaultFetchWait, logger)
}

func newSource(reader messageReader, wait time.Duration, logger *zap.Logger) *Source {
	return &Source{
		reader: reader,
		wait:   wait,
		logger: logger.Named("kafka-source"),
	}
}

// Name returns "kafka".
func (s *Source) Name() string {
	return "kafka"
}

// Fetch reads up to limit messages, stopping early when none arrives within
// the fetch wait.
func (s *Source) Fetch(ctx context.Context, limit int) ([]*entity.Event, error) {
	var (
		fetched []kafka.Message
		events  = make([]*entity.Event, 0, limit)
	)

	for len(fetched) < limit {
		fetchCtx, cancel := context.WithTimeout(ctx, s.wait)
		msg, err := s.reader.FetchMessage(fetchCtx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				break
			}
			return nil, fmt.Errorf("fetching message from kafka: %w", err)
		}
		fetched = append(fetched, msg)

		event, err := entity.DecodeEvent(msg.Value)
		if err != nil {
			s.logger.Warn("invalid event data in kafka",
				zap.Error(err),
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
			)
			continue
		}
		events = append(events, event)
	}

	if len(fetched) > 0 {
		if err := s.reader.CommitMessages(ctx, fetched...); err != nil {
			return nil, fmt.Errorf("committing kafka offsets: %w", err)
		}
	}

	return events, nil
}

// Close shuts down the reader and leaves the consumer group.
func (s *Source) Close() error {
	return s.reader.Close()
}
