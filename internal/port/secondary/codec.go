package secondary

import (
	"context"

	"github.com/ruudy-sib/udpout/internal/domain/entity"
)

// EmitFunc receives an encoded payload for an event.
type EmitFunc func(ctx context.Context, event *entity.Event, payload []byte)

// Codec serializes events. Encoders report payloads through emit rather than
// a return value; an encoder may call emit zero or more times per event.
type Codec interface {
	// Name returns the registered codec name.
	Name() string

	// Encode serializes event and calls emit with the result.
	Encode(ctx context.Context, event *entity.Event, emit EmitFunc) error
}
