package service

import (
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ruudy-sib/udpout/internal/domain"
)

// Error kinds attached to every diagnostic as "error_kind".
const (
	kindOversize       = "oversize"
	kindTransient      = "transient"
	kindPortResolution = "port_resolution"
	kindEncode         = "encode"
	kindCancelled      = "cancelled"
)

// diagnostic is a structured failure report. The payload is always offered;
// it is attached only when the logger has debug enabled.
type diagnostic struct {
	level     zapcore.Level
	message   string
	kind      string
	err       error
	backtrace bool
	payload   []byte
	fields    []zap.Field
}

func (d diagnostic) emit(logger *zap.Logger) {
	ce := logger.Check(d.level, d.message)
	if ce == nil {
		return
	}

	fields := make([]zap.Field, 0, len(d.fields)+4)
	fields = append(fields,
		zap.String("error", errorString(d.err)),
		zap.String("error_kind", d.kind),
	)
	fields = append(fields, d.fields...)

	if d.backtrace {
		fields = append(fields, zap.StackSkip("backtrace", 1))
	}
	if d.payload != nil && logger.Core().Enabled(zapcore.DebugLevel) {
		fields = append(fields, zap.String("event_payload", truncatePayload(d.payload)))
	}

	ce.Write(fields...)
}

// truncatePayload keeps at most domain.MaxDebugPayload bytes and appends
// the truncation marker when the payload is longer. The cut backs off to a
// rune boundary so a multi-byte character is never split.
func truncatePayload(payload []byte) string {
	if len(payload) <= domain.MaxDebugPayload {
		return string(payload)
	}
	cut := domain.MaxDebugPayload
	for i := 0; i < utf8.UTFMax && cut > 0 && !utf8.RuneStart(payload[cut]); i++ {
		cut--
	}
	return string(payload[:cut]) + domain.TruncationMarker
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
