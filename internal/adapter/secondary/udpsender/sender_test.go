package udpsender

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ruudy-sib/udpout/internal/domain"
	"github.com/ruudy-sib/udpout/internal/domain/entity"
)

func listen(t *testing.T) (*net.UDPConn, entity.Destination) {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	addr := conn.LocalAddr().(*net.UDPAddr)
	return conn, entity.Destination{Host: "127.0.0.1", Port: addr.Port}
}

func newTestSender(t *testing.T) *Sender {
	t.Helper()
	s, err := NewSender(zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSender_DeliversOneDatagramPerSend(t *testing.T) {
	listener, dest := listen(t)
	s := newTestSender(t)

	payloads := [][]byte{[]byte(`{"message":"one"}`), []byte(`{"message":"two"}`)}
	for _, p := range payloads {
		require.NoError(t, s.Send(context.Background(), dest, p))
	}

	buf := make([]byte, 2048)
	for _, want := range payloads {
		require.NoError(t, listener.SetReadDeadline(time.Now().Add(2*time.Second)))
		n, _, err := listener.ReadFromUDP(buf)
		require.NoError(t, err)
		assert.Equal(t, want, buf[:n])
	}
}

func TestSender_LargeDatagramWithinLimit(t *testing.T) {
	listener, dest := listen(t)
	require.NoError(t, listener.SetReadBuffer(1<<20))
	s := newTestSender(t)

	payload := bytes.Repeat([]byte("x"), 8000)
	require.NoError(t, s.Send(context.Background(), dest, payload))

	buf := make([]byte, domain.MaxDatagramSize)
	require.NoError(t, listener.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := listener.ReadFromUDP(buf)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
}

func TestSender_Errors(t *testing.T) {
	s := newTestSender(t)

	tests := []struct {
		name      string
		dest      entity.Destination
		payload   []byte
		oversized bool
	}{
		{
			name:      "payload over datagram limit",
			dest:      entity.Destination{Host: "127.0.0.1", Port: 9},
			payload:   make([]byte, domain.MaxDatagramSize+1),
			oversized: true,
		},
		{
			name:    "port zero",
			dest:    entity.Destination{Host: "127.0.0.1", Port: 0},
			payload: []byte("x"),
		},
		{
			name:    "port above range",
			dest:    entity.Destination{Host: "127.0.0.1", Port: 70000},
			payload: []byte("x"),
		},
		{
			name:    "negative port",
			dest:    entity.Destination{Host: "127.0.0.1", Port: -1},
			payload: []byte("x"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Send(context.Background(), tt.dest, tt.payload)
			require.Error(t, err)
			assert.Equal(t, tt.oversized, entity.ClassifySendError(err) == entity.OutcomeFatalFailure)
		})
	}
}

func TestSender_CancelledContext(t *testing.T) {
	_, dest := listen(t)
	s := newTestSender(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Send(ctx, dest, []byte("x")), context.Canceled)
}

func TestSender_CloseIsIdempotent(t *testing.T) {
	_, dest := listen(t)
	s, err := NewSender(zap.NewNop())
	require.NoError(t, err)

	check := NewHealthCheck(s)
	assert.Equal(t, "udp", check.Name())
	assert.NoError(t, check.Check(context.Background()))

	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())
	assert.Error(t, check.Check(context.Background()))
	assert.Error(t, s.Send(context.Background(), dest, []byte("x")))
}

type fakeWriter struct {
	n   int
	err error
}

func (f fakeWriter) WriteToUDP(b []byte, _ *net.UDPAddr) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.n >= 0 {
		return f.n, nil
	}
	return len(b), nil
}

func writeError(errno syscall.Errno) error {
	return &net.OpError{Op: "write", Net: "udp", Err: os.NewSyscallError("sendto", errno)}
}

func TestSender_WriteFailures(t *testing.T) {
	dest := entity.Destination{Host: "127.0.0.1", Port: 5140}

	tests := []struct {
		name      string
		writer    fakeWriter
		oversized bool
		outcome   entity.SendOutcome
	}{
		{
			name:      "kernel rejects datagram size",
			writer:    fakeWriter{err: writeError(syscall.EMSGSIZE)},
			oversized: true,
			outcome:   entity.OutcomeFatalFailure,
		},
		{
			name:    "connection refused",
			writer:  fakeWriter{err: writeError(syscall.ECONNREFUSED)},
			outcome: entity.OutcomeRetryableFailure,
		},
		{
			name:    "short write",
			writer:  fakeWriter{n: 1},
			outcome: entity.OutcomeRetryableFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSender(t)
			s.writer = tt.writer

			err := s.Send(context.Background(), dest, []byte("payload"))
			require.Error(t, err)
			assert.Equal(t, tt.oversized, errors.Is(err, domain.ErrOversize))
			assert.Equal(t, tt.outcome, entity.ClassifySendError(err))
		})
	}
}

func TestSender_WritesThroughWriter(t *testing.T) {
	s := newTestSender(t)
	s.writer = fakeWriter{n: -1}

	assert.NoError(t, s.Send(context.Background(), entity.Destination{Host: "127.0.0.1", Port: 5140}, []byte("payload")))
}
