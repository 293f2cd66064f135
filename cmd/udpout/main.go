package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/ruudy-sib/udpout/internal/adapter/primary/worker"
	"github.com/ruudy-sib/udpout/internal/adapter/secondary/udpsender"
	"github.com/ruudy-sib/udpout/internal/config"
)

const appName = "udpout"

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Root context with cancellation for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Build the dependency injection container.
	c, err := buildContainer(ctx)
	if err != nil {
		return fmt.Errorf("building container: %w", err)
	}

	// Invoke the application, resolving all dependencies and starting services.
	return invokeWithSocket(c, func(
		router http.Handler,
		workers []*worker.Worker,
		cfg *config.Config,
		logger *zap.Logger,
		sources *sourceSet,
	) error {
		defer func() {
			// Clean up resources on shutdown.
			if err := sources.Close(); err != nil {
				logger.Error("error closing event sources", zap.Error(err))
			}
			_ = logger.Sync()
		}()

		port, _ := cfg.PortSpec()
		policy, _ := cfg.RetryPolicy()
		logger.Info("starting application",
			zap.String("app", appName),
			zap.String("version", version),
			zap.String("environment", cfg.Environment),
			zap.String("http_addr", cfg.HTTPAddr),
			zap.String("udp_host", cfg.UDPHost),
			zap.Stringer("udp_port", port),
			zap.String("port_kind", port.Kind().String()),
			zap.String("codec", cfg.Codec),
			zap.Int("retry_count", policy.MaxRetries),
			zap.Int("max_attempts", policy.MaxAttempts()),
			zap.Duration("retry_backoff", policy.Backoff),
			zap.Strings("sources", cfg.Sources),
		)

		// Start one background worker per source.
		workerCtx, workerCancel := context.WithCancel(ctx)
		defer workerCancel()

		errCh := make(chan error, len(workers)+1)
		var wg sync.WaitGroup
		for _, w := range workers {
			wg.Add(1)
			go func(w *worker.Worker) {
				defer wg.Done()
				if err := w.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
					errCh <- err
				}
			}(w)
		}

		// Start the HTTP server.
		server := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			if srvErr := server.ListenAndServe(); srvErr != nil && srvErr != http.ErrServerClosed {
				errCh <- fmt.Errorf("http server: %w", srvErr)
			}
		}()

		// Wait for shutdown signal.
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		var runErr error
		select {
		case sig := <-quit:
			logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		case runErr = <-errCh:
			logger.Error("service error", zap.Error(runErr))
		}

		// Graceful shutdown with timeout. In-flight backoffs are abandoned.
		logger.Info("shutting down gracefully")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", zap.Error(err))
		}

		cancel()
		workerCancel()
		wg.Wait()

		logger.Info("shutdown complete")
		return runErr
	})
}

// invokeWithSocket resolves the UDP socket first and closes it once app
// returns, including when a provider resolved after it fails.
func invokeWithSocket(c *dig.Container, app interface{}) error {
	var sender *udpsender.Sender
	if err := c.Invoke(func(s *udpsender.Sender) { sender = s }); err != nil {
		return err
	}
	defer func() {
		if err := sender.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing udp socket: %v\n", err)
		}
	}()

	return c.Invoke(app)
}
