package http

import (
	"context"
	"sync"

	"github.com/ruudy-sib/udpout/internal/domain/entity"
	"github.com/ruudy-sib/udpout/internal/port/primary"
	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// mockForwarder implements primary.Forwarder for testing.
type mockForwarder struct {
	mu       sync.Mutex
	received []*entity.Event
}

func (m *mockForwarder) Receive(_ context.Context, event *entity.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received = append(m.received, event)
}

var _ primary.Forwarder = (*mockForwarder)(nil)

// mockHealthCheck is a test double for health checks.
type mockHealthCheck struct {
	name string
	err  error
}

func (m mockHealthCheck) Name() string {
	return m.name
}

func (m mockHealthCheck) Check(_ context.Context) error {
	return m.err
}

// Compile-time interface assertion
var _ secondary.HealthChecker = mockHealthCheck{}

func toHealthCheckers(checks []mockHealthCheck) []secondary.HealthChecker {
	if len(checks) == 0 {
		return nil
	}
	result := make([]secondary.HealthChecker, len(checks))
	for i, c := range checks {
		result[i] = c
	}
	return result
}
