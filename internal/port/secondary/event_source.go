package secondary

import (
	"context"

	"github.com/ruudy-sib/udpout/internal/domain/entity"
)

// EventSource defines the secondary port for pulling events from an external
// system (Redis list, Kafka topic, NATS subject).
type EventSource interface {
	// Name identifies the source in logs and metrics.
	Name() string

	// Fetch returns up to limit events that are ready now. It returns an
	// empty slice, not an error, when nothing is available.
	Fetch(ctx context.Context, limit int) ([]*entity.Event, error)

	// Close releases any resources held by the source.
	Close() error
}
