package domain

import "time"

const (
	// DefaultRetryBackoffMs is the pause between send retries when none is configured.
	DefaultRetryBackoffMs = 100

	// DefaultCodec is the codec used when none is configured.
	DefaultCodec = CodecJSON

	// DefaultLineFormat is the template used by the line and plain codecs.
	DefaultLineFormat = "%{message}"

	// DefaultRedisListKey is the list drained by the redis event source.
	DefaultRedisListKey = "udpout:events"

	// DefaultPollInterval is the interval between worker polling cycles.
	DefaultPollInterval = 1 * time.Second

	// DefaultBatchSize is the maximum number of events fetched per poll cycle.
	DefaultBatchSize = 10

	// MaxDebugPayload caps the payload excerpt attached to diagnostics.
	MaxDebugPayload = 1000

	// TruncationMarker follows a payload excerpt that was cut at MaxDebugPayload.
	TruncationMarker = "...<TRUNCATED>"

	// MaxDatagramSize is the largest UDP payload over IPv4
	// (65535 - 8 byte UDP header - 20 byte IP header).
	MaxDatagramSize = 65507

	// MinPort and MaxPort bound a usable UDP destination port.
	MinPort = 1
	MaxPort = 65535
)

// Codec names accepted in configuration.
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
	CodecLine    = "line"
	CodecPlain   = "plain"
)

// Event source names accepted in configuration.
const (
	SourceRedis = "redis"
	SourceKafka = "kafka"
	SourceNATS  = "nats"
)
