package codec

import (
	"context"
	"fmt"

	"github.com/ruudy-sib/udpout/internal/domain"
	"github.com/ruudy-sib/udpout/internal/domain/entity"
	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// JSON encodes the whole event, including @timestamp, as one JSON object.
type JSON struct{}

// Name returns "json".
func (JSON) Name() string { return domain.CodecJSON }

// Encode marshals event and emits the result once.
func (JSON) Encode(ctx context.Context, event *entity.Event, emit secondary.EmitFunc) error {
	data, err := event.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: json: %w", domain.ErrEncode, err)
	}
	emit(ctx, event, data)
	return nil
}
