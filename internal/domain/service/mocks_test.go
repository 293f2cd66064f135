package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ruudy-sib/udpout/internal/domain/entity"
	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// mockSender implements secondary.DatagramSender for testing.
type mockSender struct {
	sendFunc func(ctx context.Context, destination entity.Destination, payload []byte) error

	mu        sync.Mutex
	sendCalls []sendCall
	closed    int
}

type sendCall struct {
	Destination entity.Destination
	Payload     []byte
	Err         error
}

func (m *mockSender) Send(ctx context.Context, destination entity.Destination, payload []byte) error {
	var err error
	if m.sendFunc != nil {
		err = m.sendFunc(ctx, destination, payload)
	}
	m.mu.Lock()
	m.sendCalls = append(m.sendCalls, sendCall{Destination: destination, Payload: payload, Err: err})
	m.mu.Unlock()
	return err
}

func (m *mockSender) Close() error {
	m.closed++
	return nil
}

// failingSender returns a sender whose every send fails with err.
func failingSender(err error) *mockSender {
	return &mockSender{
		sendFunc: func(_ context.Context, _ entity.Destination, _ []byte) error {
			return err
		},
	}
}

// recordingSuspender implements Suspender and records every requested pause.
type recordingSuspender struct {
	err   error
	calls []time.Duration
}

func (s *recordingSuspender) Suspend(_ context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	return s.err
}

// mockCodec implements secondary.Codec. By default it emits the event's
// "message" field as the payload.
type mockCodec struct {
	encodeErr error
	payload   []byte
}

func (c *mockCodec) Name() string { return "mock" }

func (c *mockCodec) Encode(ctx context.Context, event *entity.Event, emit secondary.EmitFunc) error {
	if c.encodeErr != nil {
		return c.encodeErr
	}
	payload := c.payload
	if payload == nil {
		payload = []byte(event.Sprintf("%{message}"))
	}
	emit(ctx, event, payload)
	return nil
}

// countingMetrics implements secondary.MetricsRecorder.
type countingMetrics struct {
	sent    int
	bytes   int
	retries int
	failed  map[string]int
	dropped map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{failed: map[string]int{}, dropped: map[string]int{}}
}

func (m *countingMetrics) DatagramSent(bytes int) { m.sent++; m.bytes += bytes }
func (m *countingMetrics) SendRetried()           { m.retries++ }
func (m *countingMetrics) SendFailed(kind string) { m.failed[kind]++ }
func (m *countingMetrics) EventDropped(r string)  { m.dropped[r]++ }

// observedLogger returns a logger that records entries at level and above.
func observedLogger(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func countLevel(logs *observer.ObservedLogs, level zapcore.Level) int {
	return logs.FilterLevelExact(level).Len()
}

func testEvent(fields map[string]any) *entity.Event {
	return entity.NewEvent(fields)
}
