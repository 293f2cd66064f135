package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ruudy-sib/udpout/internal/domain"
	"github.com/ruudy-sib/udpout/internal/domain/entity"
)

// mockSource implements secondary.EventSource for worker tests.
type mockSource struct {
	mu         sync.Mutex
	pending    []*entity.Event
	fetchErr   error
	fetchCalls atomic.Int32
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) Fetch(_ context.Context, limit int) ([]*entity.Event, error) {
	m.fetchCalls.Add(1)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	n := limit
	if n > len(m.pending) {
		n = len(m.pending)
	}
	batch := m.pending[:n]
	m.pending = m.pending[n:]
	return batch, nil
}

func (m *mockSource) Close() error { return nil }

// mockForwarder implements primary.Forwarder for worker tests.
type mockForwarder struct {
	received atomic.Int32
}

func (m *mockForwarder) Receive(_ context.Context, _ *entity.Event) {
	m.received.Add(1)
}

func events(n int) []*entity.Event {
	out := make([]*entity.Event, n)
	for i := range out {
		out[i] = entity.NewEvent(map[string]any{"n": float64(i)})
	}
	return out
}

func TestWorker_Run(t *testing.T) {
	tests := []struct {
		name             string
		pollInterval     time.Duration
		runDuration      time.Duration
		pending          int
		fetchErr         error
		wantMinCalls     int32
		wantReceived     int32
		wantContextError bool
	}{
		{
			name:             "polls at interval when idle",
			pollInterval:     50 * time.Millisecond,
			runDuration:      200 * time.Millisecond,
			wantMinCalls:     2,
			wantContextError: true,
		},
		{
			name:             "drains full batches within one tick",
			pollInterval:     50 * time.Millisecond,
			runDuration:      200 * time.Millisecond,
			pending:          25,
			wantMinCalls:     3,
			wantReceived:     25,
			wantContextError: true,
		},
		{
			name:             "continues on fetch error",
			pollInterval:     50 * time.Millisecond,
			runDuration:      200 * time.Millisecond,
			fetchErr:         errors.New("redis timeout"),
			wantMinCalls:     2,
			wantContextError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mockSource{pending: events(tt.pending), fetchErr: tt.fetchErr}
			fwd := &mockForwarder{}

			w := NewWorker(src, fwd, tt.pollInterval, 10, zap.NewNop())

			ctx, cancel := context.WithTimeout(context.Background(), tt.runDuration)
			defer cancel()

			err := w.Run(ctx)

			if tt.wantContextError {
				if err == nil {
					t.Fatal("expected context error, got nil")
				}
				if !errors.Is(err, context.DeadlineExceeded) {
					t.Fatalf("expected DeadlineExceeded, got %v", err)
				}
			}

			if calls := src.fetchCalls.Load(); calls < tt.wantMinCalls {
				t.Fatalf("expected at least %d fetch calls, got %d", tt.wantMinCalls, calls)
			}
			if got := fwd.received.Load(); got != tt.wantReceived {
				t.Fatalf("expected %d events forwarded, got %d", tt.wantReceived, got)
			}
		})
	}
}

func TestWorker_Run_stopsWhenSourceClosed(t *testing.T) {
	src := &mockSource{fetchErr: domain.ErrSourceClosed}
	w := NewWorker(src, &mockForwarder{}, 10*time.Millisecond, 10, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := w.Run(ctx); !errors.Is(err, domain.ErrSourceClosed) {
		t.Fatalf("expected ErrSourceClosed, got %v", err)
	}
}

func TestWorker_Run_respectsCancellation(t *testing.T) {
	w := NewWorker(&mockSource{}, &mockForwarder{}, 1*time.Hour, 10, zap.NewNop()) // Very long interval

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	// Cancel immediately
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop within 2 seconds after cancellation")
	}
}
