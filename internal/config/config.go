// Package config loads the encoder settings used by the httpencode command.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/swlynch99/httpencode/pkg/httpencode"
	"github.com/swlynch99/httpencode/pkg/httpencode/compress"
	"github.com/swlynch99/httpencode/pkg/httpencode/pool"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds encoder settings.
type Config struct {
	// BufferSize is the initial sink capacity. It is rounded up to a pool
	// size class.
	BufferSize int `yaml:"buffer_size"`

	// MaxSize caps the encoded message. Zero means no cap.
	MaxSize int `yaml:"max_size"`

	// Version is the protocol version written in start lines.
	Version string `yaml:"version"`

	// Encoding is the content-coding applied to message bodies.
	Encoding string `yaml:"encoding"`

	// Headers are written before each message's own headers.
	Headers []Header `yaml:"headers"`

	// Metrics enables the buffer pool metrics dump.
	Metrics bool `yaml:"metrics"`
}

// Header is a name/value pair.
type Header struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BufferSize: pool.Size4KB,
		MaxSize:    pool.Size64KB,
		Version:    "HTTP/1.1",
		Encoding:   "identity",
	}
}

// Load reads a YAML file over the defaults and validates the result.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.BufferSize <= 0 {
		return fmt.Errorf("%w: buffer_size must be positive, got %d", ErrInvalid, c.BufferSize)
	}
	if c.MaxSize < 0 {
		return fmt.Errorf("%w: max_size must not be negative, got %d", ErrInvalid, c.MaxSize)
	}
	if c.MaxSize > 0 && c.MaxSize < c.BufferSize {
		return fmt.Errorf("%w: max_size %d is below buffer_size %d", ErrInvalid, c.MaxSize, c.BufferSize)
	}
	if !httpencode.ParseVersion(c.Version).Valid() {
		return fmt.Errorf("%w: version %q", ErrInvalid, c.Version)
	}
	if _, err := compress.ParseEncoding(c.Encoding); err != nil {
		return fmt.Errorf("%w: encoding %q", ErrInvalid, c.Encoding)
	}
	for i, h := range c.Headers {
		if !httpencode.ValidHeaderNameString(h.Name) {
			return fmt.Errorf("%w: headers[%d]: name %q", ErrInvalid, i, h.Name)
		}
		if !httpencode.ValidHeaderValueString(h.Value) {
			return fmt.Errorf("%w: headers[%d]: value for %q", ErrInvalid, i, h.Name)
		}
	}
	return nil
}

// HTTPVersion returns the configured version.
func (c Config) HTTPVersion() httpencode.Version {
	return httpencode.ParseVersion(c.Version)
}

// BodyEncoding returns the configured content-coding. Validate has already
// rejected unknown values, so they map to identity here.
func (c Config) BodyEncoding() compress.Encoding {
	enc, _ := compress.ParseEncoding(c.Encoding)
	return enc
}

// Marshal encodes c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
