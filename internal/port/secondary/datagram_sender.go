package secondary

import (
	"context"

	"github.com/ruudy-sib/udpout/internal/domain/entity"
)

// DatagramSender defines the secondary port that writes one payload as one
// datagram to a destination.
type DatagramSender interface {
	// Send writes payload to destination. Errors wrapping domain.ErrOversize
	// must not be retried.
	Send(ctx context.Context, destination entity.Destination, payload []byte) error

	// Close releases the underlying socket.
	Close() error
}
