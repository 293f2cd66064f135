package udpsender

import (
	"context"
	"fmt"

	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// HealthCheck reports whether the UDP socket is still open.
type HealthCheck struct {
	sender *Sender
}

// NewHealthCheck creates a UDP socket health checker.
func NewHealthCheck(sender *Sender) secondary.HealthChecker {
	return &HealthCheck{sender: sender}
}

// Name returns the name of this health check.
func (h *HealthCheck) Name() string {
	return "udp"
}

// Check fails once the socket has been closed.
func (h *HealthCheck) Check(_ context.Context) error {
	// SyscallConn on a closed socket returns an error.
	raw, err := h.sender.conn.SyscallConn()
	if err != nil {
		return fmt.Errorf("udp socket unavailable: %w", err)
	}
	if err := raw.Control(func(uintptr) {}); err != nil {
		return fmt.Errorf("udp socket unavailable: %w", err)
	}
	return nil
}
