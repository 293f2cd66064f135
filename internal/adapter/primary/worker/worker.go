package worker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ruudy-sib/udpout/internal/domain"
	"github.com/ruudy-sib/udpout/internal/port/primary"
	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// Worker polls one event source at regular intervals and hands every event
// to the forwarder, one at a time.
// It respects context cancellation for graceful shutdown.
type Worker struct {
	source       secondary.EventSource
	forwarder    primary.Forwarder
	pollInterval time.Duration
	batchSize    int
	logger       *zap.Logger
}

// NewWorker creates a Worker that drains source at the given interval.
func NewWorker(
	source secondary.EventSource,
	forwarder primary.Forwarder,
	pollInterval time.Duration,
	batchSize int,
	logger *zap.Logger,
) *Worker {
	if batchSize <= 0 {
		batchSize = domain.DefaultBatchSize
	}
	return &Worker{
		source:       source,
		forwarder:    forwarder,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		logger:       logger.Named("worker").With(zap.String("source", source.Name())),
	}
}

// Run starts the polling loop. It blocks until the context is cancelled or
// the source is closed.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("worker started",
		zap.Duration("poll_interval", w.pollInterval),
		zap.Int("batch_size", w.batchSize),
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := w.drain(ctx); err != nil {
				if errors.Is(err, domain.ErrSourceClosed) {
					w.logger.Info("source closed, worker stopping")
					return err
				}
				if ctx.Err() != nil {
					continue
				}
				// Log but do not return -- the worker should keep running.
				w.logger.Error("error fetching events", zap.Error(err))
			}
		}
	}
}

// drain keeps fetching while the source returns full batches.
func (w *Worker) drain(ctx context.Context) error {
	for {
		events, err := w.source.Fetch(ctx, w.batchSize)
		if err != nil {
			return err
		}

		for _, event := range events {
			w.forwarder.Receive(ctx, event)
		}

		if len(events) < w.batchSize || ctx.Err() != nil {
			return nil
		}
	}
}
