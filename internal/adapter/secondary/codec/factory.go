package codec

import (
	"fmt"

	"github.com/ruudy-sib/udpout/internal/domain"
	"github.com/ruudy-sib/udpout/internal/port/secondary"
)

// New returns the codec registered under name. lineFormat applies to the
// line and plain codecs only.
func New(name, lineFormat string) (secondary.Codec, error) {
	if lineFormat == "" {
		lineFormat = domain.DefaultLineFormat
	}

	switch name {
	case domain.CodecJSON, "":
		return JSON{}, nil
	case domain.CodecMsgpack:
		return Msgpack{}, nil
	case domain.CodecLine:
		return Line{Format: lineFormat, Newline: true}, nil
	case domain.CodecPlain:
		return Line{Format: lineFormat}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCodec, name)
	}
}
