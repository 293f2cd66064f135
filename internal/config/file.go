package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ruudy-sib/udpout/internal/domain"
)

// fileConfig mirrors the YAML layout. Pointer fields distinguish an explicit
// zero from an absent key.
type fileConfig struct {
	HTTPAddr    string   `yaml:"http_addr"`
	Sources     []string `yaml:"sources"`
	Environment string   `yaml:"environment"`
	LogLevel    string   `yaml:"log_level"`

	UDP struct {
		Host           string    `yaml:"host"`
		Port           portValue `yaml:"port"`
		RetryCount     *int      `yaml:"retry_count"`
		RetryBackoffMs *int      `yaml:"retry_backoff_ms"`
		Codec          string    `yaml:"codec"`
		LineFormat     string    `yaml:"line_format"`
	} `yaml:"udp"`
}

// portValue accepts either a YAML number or a string.
type portValue string

func (p *portValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: port must be a number or a string", node.Line)
	}
	*p = portValue(node.Value)
	return nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %q: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("%w: parsing %q: %v", domain.ErrInvalidConfig, path, err)
	}

	setString(&c.HTTPAddr, fc.HTTPAddr)
	setString(&c.Environment, fc.Environment)
	setString(&c.LogLevel, fc.LogLevel)
	if len(fc.Sources) > 0 {
		c.Sources = fc.Sources
	}

	setString(&c.UDPHost, fc.UDP.Host)
	setString(&c.UDPPort, string(fc.UDP.Port))
	setString(&c.Codec, fc.UDP.Codec)
	setString(&c.LineFormat, fc.UDP.LineFormat)
	if fc.UDP.RetryCount != nil {
		c.RetryCount = *fc.UDP.RetryCount
	}
	if fc.UDP.RetryBackoffMs != nil {
		c.RetryBackoffMs = *fc.UDP.RetryBackoffMs
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
