package udpout

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ruudy-sib/udpout/internal/adapter/secondary/codec"
	"github.com/ruudy-sib/udpout/internal/adapter/secondary/promrecorder"
	"github.com/ruudy-sib/udpout/internal/adapter/secondary/udpsender"
	"github.com/ruudy-sib/udpout/internal/config"
	"github.com/ruudy-sib/udpout/internal/domain"
	"github.com/ruudy-sib/udpout/internal/domain/entity"
	"github.com/ruudy-sib/udpout/internal/domain/service"
	"github.com/ruudy-sib/udpout/internal/port/primary"
)

// Forwarder is the main entry point for embedding the UDP forwarder in other
// Go applications. It is safe for concurrent use.
type Forwarder struct {
	forwarder primary.Forwarder
	sender    *udpsender.Sender
	metrics   *promrecorder.Recorder
	logger    *zap.Logger
}

// Config holds configuration for a Forwarder.
type Config struct {
	// Host is the destination host name or address.
	Host string

	// Port is either a literal port ("5000") or a field reference template
	// ("%{[target_port]}") resolved per event.
	Port string

	// RetryCount is the number of retries after the first failed send.
	RetryCount int

	// RetryBackoffMs is the fixed wait between attempts, in milliseconds.
	RetryBackoffMs int

	// Codec is one of "json" (default), "msgpack", "line", "plain".
	Codec string

	// LineFormat is the template used by the line and plain codecs.
	LineFormat string

	// Logger (if nil, a default logger will be created)
	Logger *zap.Logger
}

// DefaultConfig returns a configuration with sensible defaults. Host and
// Port must still be set.
func DefaultConfig() *Config {
	return &Config{
		RetryCount:     0,
		RetryBackoffMs: domain.DefaultRetryBackoffMs,
		Codec:          domain.DefaultCodec,
		LineFormat:     domain.DefaultLineFormat,
	}
}

// Event is the field map of a single event. "@id" and "@timestamp" keys,
// when present, become the event's identity and time.
type Event map[string]any

// New validates cfg and opens the UDP socket.
func New(cfg *Config) (*Forwarder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Create logger if not provided
	logger := cfg.Logger
	if logger == nil {
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("creating logger: %w", err)
		}
	}

	// Convert to internal config format
	internalCfg := &config.Config{
		UDPHost:        cfg.Host,
		UDPPort:        cfg.Port,
		RetryCount:     cfg.RetryCount,
		RetryBackoffMs: cfg.RetryBackoffMs,
		Codec:          cfg.Codec,
		LineFormat:     cfg.LineFormat,
		PollInterval:   domain.DefaultPollInterval,
		BatchSize:      domain.DefaultBatchSize,
	}
	if internalCfg.Codec == "" {
		internalCfg.Codec = domain.DefaultCodec
	}
	if err := internalCfg.Validate(); err != nil {
		return nil, err
	}

	port, err := internalCfg.PortSpec()
	if err != nil {
		return nil, err
	}
	policy, err := internalCfg.RetryPolicy()
	if err != nil {
		return nil, err
	}
	cdc, err := codec.New(internalCfg.Codec, internalCfg.LineFormat)
	if err != nil {
		return nil, err
	}

	sender, err := udpsender.NewSender(logger)
	if err != nil {
		return nil, err
	}

	metrics := promrecorder.New()
	tx := service.NewTransmitter(sender, policy, nil, metrics, logger)
	fwd := service.NewForwarderService(internalCfg.UDPHost, port, cdc, tx, metrics, logger)

	return &Forwarder{
		forwarder: fwd,
		sender:    sender,
		metrics:   metrics,
		logger:    logger,
	}, nil
}

// Receive forwards one event. It blocks through any retry backoff and never
// returns an error; failures are logged and the event is dropped.
func (f *Forwarder) Receive(ctx context.Context, event Event) {
	fields := make(map[string]any, len(event))
	for k, v := range event {
		fields[k] = v
	}
	f.forwarder.Receive(ctx, entity.EventFromFields(fields))
}

// ReceiveJSON decodes a JSON object and forwards it.
func (f *Forwarder) ReceiveJSON(ctx context.Context, data []byte) error {
	event, err := entity.DecodeEvent(data)
	if err != nil {
		return err
	}
	f.forwarder.Receive(ctx, event)
	return nil
}

// MetricsHandler serves the forwarder's Prometheus counters.
func (f *Forwarder) MetricsHandler() http.Handler {
	return f.metrics.Handler()
}

// Close releases the UDP socket. It is safe to call more than once.
func (f *Forwarder) Close() error {
	f.logger.Info("shutting down udp forwarder")
	if err := f.sender.Close(); err != nil {
		return fmt.Errorf("closing udp socket: %w", err)
	}
	return nil
}

// PortString is a convenience for building a literal Port value.
func PortString(port int) string {
	return strconv.Itoa(port)
}
