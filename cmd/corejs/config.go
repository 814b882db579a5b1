package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pawk0/core-js-101/interchange"
)

// Config is the corejs configuration file. Flags override it.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Serialize SerializeConfig `yaml:"serialize"`
	Convert   ConvertConfig   `yaml:"convert"`
}

// LogConfig configures the stderr logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `yaml:"level"`

	// Format is text or json. Default: text
	Format string `yaml:"format"`
}

// SerializeConfig configures the serialize command.
type SerializeConfig struct {
	// Indent is the per-level indent; empty means compact output.
	Indent string `yaml:"indent"`
}

// ConvertConfig configures the convert command.
type ConvertConfig struct {
	// DefaultTo is the codec used when --to is not given. Default: yaml
	DefaultTo string `yaml:"default_to"`
}

// DefaultConfig returns the configuration used without a file.
func DefaultConfig() Config {
	return Config{
		Log:     LogConfig{Level: "info", Format: "text"},
		Convert: ConvertConfig{DefaultTo: "yaml"},
	}
}

// LoadConfig reads the YAML file at path over the defaults. An empty
// path returns the defaults. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if _, err := interchange.LookupCodec(c.Convert.DefaultTo); err != nil {
		return fmt.Errorf("convert.default_to: %w", err)
	}
	return nil
}
