package udpsender

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/ruudy-sib/udpout/internal/domain"
	"github.com/ruudy-sib/udpout/internal/domain/entity"
)

// datagramWriter is the write half of *net.UDPConn that Send depends on.
type datagramWriter interface {
	WriteToUDP(b []byte, addr *net.UDPAddr) (int, error)
}

// Sender implements secondary.DatagramSender over one unconnected UDP
// socket. *net.UDPConn is safe for concurrent writes, so Send needs no lock.
type Sender struct {
	conn   *net.UDPConn
	writer datagramWriter
	logger *zap.Logger

	closeOnce sync.Once
	closeErr  error
}

// NewSender opens the socket bound to an ephemeral local port.
func NewSender(logger *zap.Logger) (*Sender, error) {
	conn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return nil, fmt.Errorf("opening udp socket: %w", err)
	}

	logger = logger.Named("udp-sender")
	logger.Info("udp socket opened", zap.String("local_addr", conn.LocalAddr().String()))

	return &Sender{conn: conn, writer: conn, logger: logger}, nil
}

// Send writes payload as a single datagram. Errors wrapping
// domain.ErrOversize are permanent; anything else may succeed later.
func (s *Sender) Send(ctx context.Context, destination entity.Destination, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(payload) > domain.MaxDatagramSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", domain.ErrOversize, len(payload), domain.MaxDatagramSize)
	}
	if destination.Port < domain.MinPort || destination.Port > domain.MaxPort {
		return fmt.Errorf("destination port %d out of range", destination.Port)
	}

	addr, err := net.ResolveUDPAddr("udp", destination.Address())
	if err != nil {
		return fmt.Errorf("resolving %s: %w", destination.Address(), err)
	}

	n, err := s.writer.WriteToUDP(payload, addr)
	if err != nil {
		if errors.Is(err, syscall.EMSGSIZE) {
			return fmt.Errorf("%w: %w", domain.ErrOversize, err)
		}
		return fmt.Errorf("sending datagram to %s: %w", addr, err)
	}
	if n != len(payload) {
		return fmt.Errorf("short write to %s: %d of %d bytes", addr, n, len(payload))
	}

	if ce := s.logger.Check(zap.DebugLevel, "datagram sent"); ce != nil {
		ce.Write(zap.Stringer("destination", addr), zap.Int("bytes", n))
	}
	return nil
}

// Close releases the socket. Later calls return the first result.
func (s *Sender) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
		s.logger.Info("udp socket closed")
	})
	return s.closeErr
}
