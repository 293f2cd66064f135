package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ruudy-sib/udpout/internal/domain"
	"github.com/ruudy-sib/udpout/internal/domain/entity"
)

// Validate checks the forwarder settings. All problems are reported at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.UDPHost) == "" {
		errs = append(errs, errors.New("udp host is required"))
	}
	if c.UDPPort == "" {
		errs = append(errs, errors.New("udp port is required"))
	} else if _, err := c.PortSpec(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.RetryPolicy(); err != nil {
		errs = append(errs, err)
	}

	switch c.Codec {
	case domain.CodecJSON, domain.CodecMsgpack, domain.CodecLine, domain.CodecPlain:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", domain.ErrUnknownCodec, c.Codec))
	}

	for _, s := range c.Sources {
		switch s {
		case domain.SourceRedis, domain.SourceKafka, domain.SourceNATS:
		default:
			errs = append(errs, fmt.Errorf("unknown source %q", s))
		}
	}

	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll interval must be positive, got %v", c.PollInterval))
	}
	if c.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("batch size must be positive, got %d", c.BatchSize))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// PortSpec classifies the configured port once.
func (c *Config) PortSpec() (entity.PortSpec, error) {
	return entity.ParsePortSpec(c.UDPPort)
}

// RetryPolicy builds the immutable retry policy.
func (c *Config) RetryPolicy() (entity.RetryPolicy, error) {
	return entity.NewRetryPolicy(c.RetryCount, c.RetryBackoffMs)
}
