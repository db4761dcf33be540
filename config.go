package campusfound

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that additionally unmarshals from the YAML
// string forms time.ParseDuration accepts, e.g. "5s" or "250ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var ns int64
	if err := node.Decode(&ns); err == nil {
		*d = Duration(ns)
		return nil
	}
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config defines the tunable behavior of a [Client].
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Retry   RetryConfig   `yaml:"retry"`
	Session SessionConfig `yaml:"session"`
	Errors  ErrorsConfig  `yaml:"errors"`
}

// HTTPConfig covers the outbound connection to the lost-and-found service.
type HTTPConfig struct {
	// BaseURL is the absolute root of the service, e.g. "http://localhost:8080".
	BaseURL string `yaml:"base_url"`
	// Timeout bounds each individual request attempt.
	Timeout Duration `yaml:"timeout"`
	// UserAgent is sent with every request when non-empty.
	UserAgent string `yaml:"user_agent"`
}

// RetryConfig is the default policy handed to SendWithRetry call sites that
// opt in without supplying their own. MaxAttempts counts total tries
// including the first.
type RetryConfig struct {
	MaxAttempts   int      `yaml:"max_attempts"`
	InitialDelay  Duration `yaml:"initial_delay"`
	BackoffFactor float64  `yaml:"backoff_factor"`
}

// SessionConfig covers persisted-session behavior.
type SessionConfig struct {
	// RedisPrefix namespaces the session record when the redis store backend
	// is selected.
	RedisPrefix string `yaml:"redis_prefix"`
}

// ErrorsConfig covers the in-memory classified-error ring.
type ErrorsConfig struct {
	// LogCapacity bounds the ring; zero selects the package default.
	LogCapacity int `yaml:"log_capacity"`
}

// DefaultConfig returns the baseline configuration. BaseURL must still be
// supplied before Build.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:   Duration(10 * time.Second),
			UserAgent: "campusfound-go",
		},
		Retry: RetryConfig{
			MaxAttempts:   4,
			InitialDelay:  Duration(time.Second),
			BackoffFactor: 2,
		},
		Session: SessionConfig{
			RedisPrefix: "cf:session",
		},
		Errors: ErrorsConfig{
			LogCapacity: 100,
		},
	}
}

func validateConfig(cfg Config) error {
	if cfg.HTTP.BaseURL == "" {
		return ErrBaseURLRequired
	}
	if cfg.HTTP.Timeout < 0 {
		return errors.New("http timeout must not be negative")
	}
	if cfg.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.InitialDelay < 0 {
		return errors.New("retry initial delay must not be negative")
	}
	if cfg.Retry.BackoffFactor < 1 {
		return fmt.Errorf("retry backoff factor must be at least 1, got %v", cfg.Retry.BackoffFactor)
	}
	if cfg.Errors.LogCapacity < 0 {
		return errors.New("error log capacity must not be negative")
	}
	return nil
}
