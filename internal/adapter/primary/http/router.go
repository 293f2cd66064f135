package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ruudy-sib/udpout/internal/port/primary"
	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// NewRouter creates an HTTP mux with all application routes registered.
// A nil metrics handler leaves /metrics unregistered.
func NewRouter(
	forwarder primary.Forwarder,
	healthChecks []secondary.HealthChecker,
	metrics http.Handler,
	logger *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Ingest endpoint
	mux.Handle("/events", NewEventsHandler(forwarder, logger))

	// Health check endpoint
	mux.Handle("/health", NewHealthHandler(healthChecks))

	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}

	return mux
}
