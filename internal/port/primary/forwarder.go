package primary

import (
	"context"

	"github.com/ruudy-sib/udpout/internal/domain/entity"
)

// Forwarder defines the primary port exposed to driving adapters
// (HTTP ingest, source workers, the embedding API).
type Forwarder interface {
	// Receive hands one event to the forwarder. It never returns an error:
	// every failure is reported through diagnostics and the event is dropped.
	Receive(ctx context.Context, event *entity.Event)
}
