package codec

import (
	"context"

	"github.com/ruudy-sib/udpout/internal/domain"
	"github.com/ruudy-sib/udpout/internal/domain/entity"
	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// Line renders a format string with field references substituted.
// With Newline set each payload is terminated by "\n".
type Line struct {
	Format  string
	Newline bool
}

// Name returns "line" or "plain".
func (l Line) Name() string {
	if l.Newline {
		return domain.CodecLine
	}
	return domain.CodecPlain
}

// Encode never fails; unresolved references stay in the output verbatim.
func (l Line) Encode(ctx context.Context, event *entity.Event, emit secondary.EmitFunc) error {
	s := event.Sprintf(l.Format)
	if l.Newline {
		s += "\n"
	}
	emit(ctx, event, []byte(s))
	return nil
}
