package main

import (
	"context"
	"net/http"

	"go.uber.org/dig"
	"go.uber.org/zap"

	httphandler "github.com/ruudy-sib/udpout/internal/adapter/primary/http"
	"github.com/ruudy-sib/udpout/internal/adapter/primary/worker"
	"github.com/ruudy-sib/udpout/internal/adapter/secondary/codec"
	"github.com/ruudy-sib/udpout/internal/adapter/secondary/promrecorder"
	"github.com/ruudy-sib/udpout/internal/adapter/secondary/udpsender"
	"github.com/ruudy-sib/udpout/internal/config"
	"github.com/ruudy-sib/udpout/internal/domain/service"
	"github.com/ruudy-sib/udpout/internal/port/primary"
	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

func buildContainer(ctx context.Context) (*dig.Container, error) {
	c := dig.New()

	// --- Configuration ---
	if err := c.Provide(config.Load); err != nil {
		return nil, err
	}

	// --- Logger ---
	if err := c.Provide(newLogger); err != nil {
		return nil, err
	}

	// --- Secondary Adapters (infrastructure) ---

	// Metrics (implements secondary.MetricsRecorder)
	if err := c.Provide(promrecorder.New); err != nil {
		return nil, err
	}
	if err := c.Provide(func(r *promrecorder.Recorder) secondary.MetricsRecorder {
		return r
	}); err != nil {
		return nil, err
	}

	// UDP socket, opened once and shared by every send
	if err := c.Provide(udpsender.NewSender); err != nil {
		return nil, err
	}
	if err := c.Provide(func(s *udpsender.Sender) secondary.DatagramSender {
		return s
	}); err != nil {
		return nil, err
	}

	// Codec (implements secondary.Codec)
	if err := c.Provide(func(cfg *config.Config) (secondary.Codec, error) {
		return codec.New(cfg.Codec, cfg.LineFormat)
	}); err != nil {
		return nil, err
	}

	// Event sources selected by SOURCES
	if err := c.Provide(func(cfg *config.Config, logger *zap.Logger) (*sourceSet, error) {
		return newSourceSet(ctx, cfg, logger)
	}); err != nil {
		return nil, err
	}

	// Collect all health checks
	if err := c.Provide(func(sender *udpsender.Sender, set *sourceSet) []secondary.HealthChecker {
		checks := []secondary.HealthChecker{udpsender.NewHealthCheck(sender)}
		return append(checks, set.checks...)
	}); err != nil {
		return nil, err
	}

	// --- Domain Services ---

	if err := c.Provide(func(
		sender secondary.DatagramSender,
		metrics secondary.MetricsRecorder,
		cfg *config.Config,
		logger *zap.Logger,
	) (*service.Transmitter, error) {
		policy, err := cfg.RetryPolicy()
		if err != nil {
			return nil, err
		}
		return service.NewTransmitter(sender, policy, nil, metrics, logger), nil
	}); err != nil {
		return nil, err
	}

	if err := c.Provide(func(
		cdc secondary.Codec,
		tx *service.Transmitter,
		metrics secondary.MetricsRecorder,
		cfg *config.Config,
		logger *zap.Logger,
	) (*service.ForwarderService, error) {
		port, err := cfg.PortSpec()
		if err != nil {
			return nil, err
		}
		return service.NewForwarderService(cfg.UDPHost, port, cdc, tx, metrics, logger), nil
	}); err != nil {
		return nil, err
	}

	// Bind concrete ForwarderService to the primary port interface
	if err := c.Provide(func(s *service.ForwarderService) primary.Forwarder {
		return s
	}); err != nil {
		return nil, err
	}

	// --- Primary Adapters ---

	// HTTP router
	if err := c.Provide(func(
		fwd primary.Forwarder,
		checks []secondary.HealthChecker,
		recorder *promrecorder.Recorder,
		logger *zap.Logger,
	) http.Handler {
		return httphandler.NewRouter(fwd, checks, recorder.Handler(), logger)
	}); err != nil {
		return nil, err
	}

	// One worker per enabled source
	if err := c.Provide(func(fwd primary.Forwarder, set *sourceSet, cfg *config.Config, logger *zap.Logger) []*worker.Worker {
		workers := make([]*worker.Worker, 0, len(set.sources))
		for _, src := range set.sources {
			workers = append(workers, worker.NewWorker(src, fwd, cfg.PollInterval, cfg.BatchSize, logger))
		}
		return workers
	}); err != nil {
		return nil, err
	}

	return c, nil
}
