package codec

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ruudy-sib/udpout/internal/domain"
	"github.com/ruudy-sib/udpout/internal/domain/entity"
	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// Msgpack encodes the event as a MessagePack map. It carries the same keys
// as the JSON codec in a more compact form.
type Msgpack struct{}

// Name returns "msgpack".
func (Msgpack) Name() string { return domain.CodecMsgpack }

// Encode marshals event and emits the result once.
func (Msgpack) Encode(ctx context.Context, event *entity.Event, emit secondary.EmitFunc) error {
	out := make(map[string]any, len(event.Fields)+1)
	for k, v := range event.Fields {
		out[k] = v
	}
	if _, ok := out["@timestamp"]; !ok {
		out["@timestamp"] = event.Timestamp.Format(time.RFC3339Nano)
	}

	data, err := msgpack.Marshal(out)
	if err != nil {
		return fmt.Errorf("%w: msgpack: %w", domain.ErrEncode, err)
	}
	emit(ctx, event, data)
	return nil
}
