package natssource

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// HealthCheck implements secondary.HealthChecker for the NATS connection.
type HealthCheck struct {
	conn *nats.Conn
}

// NewHealthCheck creates a NATS health checker.
func NewHealthCheck(conn *nats.Conn) secondary.HealthChecker {
	return &HealthCheck{conn: conn}
}

// Name returns the name of this health check.
func (h *HealthCheck) Name() string {
	return "nats"
}

// Check reports the connection status.
func (h *HealthCheck) Check(_ context.Context) error {
	if h.conn == nil {
		return fmt.Errorf("nats connection not established")
	}
	if !h.conn.IsConnected() {
		return fmt.Errorf("nats connection is %s", h.conn.Status())
	}
	return nil
}
