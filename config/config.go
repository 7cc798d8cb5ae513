// Package config loads and validates the mstd configuration.
//
// Sources, later ones winning: built-in defaults, an optional YAML file,
// MSTD_* environment variables, then command-line flags applied by the caller.
// The merged result is checked with validator struct tags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure returned by Load and Validate.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Admin   AdminConfig   `yaml:"admin"`
	Log     LogConfig     `yaml:"log"`
	Tracing TracingConfig `yaml:"tracing"`
}

// ServerConfig configures the TCP command server.
type ServerConfig struct {
	// Addr is the listen address, host:port.
	Addr string `yaml:"addr" validate:"required,hostname_port"`

	// Workers is the size of the worker pool.
	Workers int `yaml:"workers" validate:"min=1,max=1024"`

	// QueueCapacity bounds the accepted-connection queue.
	QueueCapacity int `yaml:"queue_capacity" validate:"min=1"`

	// Framing is "stateful" or "batch".
	Framing string `yaml:"framing" validate:"oneof=stateful batch"`

	// RateLimit is the per-connection request rate in lines/second; 0 disables.
	RateLimit float64 `yaml:"rate_limit" validate:"min=0"`

	// RateBurst is the limiter bucket size.
	RateBurst int `yaml:"rate_burst" validate:"min=1"`

	// MaxVertices bounds Newgraph and batch graph orders.
	MaxVertices int `yaml:"max_vertices" validate:"min=1,max=1000000"`
}

// AdminConfig configures the admin HTTP endpoint. An empty Addr disables it.
type AdminConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// TracingConfig toggles the stdout span exporter.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          ":9034",
			Workers:       4,
			QueueCapacity: 100,
			Framing:       "stateful",
			RateBurst:     10,
			MaxVertices:   10000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var validate = validator.New()

// Validate checks the struct tags of every section.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalid, fe.Namespace(), fe.Tag(), fe.Value())
		}

		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// envBinding maps one MSTD_* variable onto a field setter.
type envBinding struct {
	name string
	set  func(c *Config, v string) error
}

var envBindings = []envBinding{
	{"MSTD_SERVER_ADDR", func(c *Config, v string) error { c.Server.Addr = v; return nil }},
	{"MSTD_SERVER_WORKERS", func(c *Config, v string) error { return setInt(&c.Server.Workers, v) }},
	{"MSTD_SERVER_QUEUE_CAPACITY", func(c *Config, v string) error { return setInt(&c.Server.QueueCapacity, v) }},
	{"MSTD_SERVER_FRAMING", func(c *Config, v string) error { c.Server.Framing = v; return nil }},
	{"MSTD_SERVER_RATE_LIMIT", func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		c.Server.RateLimit = f
		return nil
	}},
	{"MSTD_SERVER_RATE_BURST", func(c *Config, v string) error { return setInt(&c.Server.RateBurst, v) }},
	{"MSTD_SERVER_MAX_VERTICES", func(c *Config, v string) error { return setInt(&c.Server.MaxVertices, v) }},
	{"MSTD_ADMIN_ADDR", func(c *Config, v string) error { c.Admin.Addr = v; return nil }},
	{"MSTD_LOG_LEVEL", func(c *Config, v string) error { c.Log.Level = v; return nil }},
	{"MSTD_LOG_FORMAT", func(c *Config, v string) error { c.Log.Format = v; return nil }},
	{"MSTD_TRACING_ENABLED", func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		c.Tracing.Enabled = b
		return nil
	}},
}

// applyEnv overlays every set MSTD_* variable.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	for _, b := range envBindings {
		v, ok := lookup(b.name)
		if !ok {
			continue
		}
		if err := b.set(c, v); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, b.name, v, err)
		}
	}

	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n

	return nil
}
