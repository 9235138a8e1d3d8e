package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tuzuminami/Collatz/internal/collatz"
)

// Default values for Config.
const (
	DefaultHost              = "0.0.0.0"
	DefaultPort              = 5000
	DefaultRequestsPerMinute = 60
)

// DefaultConfigFile is the path tried when no config flag is given.
const DefaultConfigFile = "collatz.yaml"

// Environment variables recognized by ApplyEnv.
const (
	EnvHost  = "COLLATZ_HOST"
	EnvPort  = "COLLATZ_PORT"
	EnvDebug = "COLLATZ_DEBUG"
)

// DefaultServerConfig returns a ServerConfig with sensible default values.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host: DefaultHost,
		Port: DefaultPort,
	}
}

// DefaultLimits returns limits with sensible default values.
func DefaultLimits() Limits {
	return Limits{
		MaxSteps:          collatz.DefaultMaxSteps,
		RequestsPerMinute: DefaultRequestsPerMinute,
	}
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Server: DefaultServerConfig(),
		Limits: DefaultLimits(),
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// LoadConfig reads and parses the YAML config file at path. An empty
// path means DefaultConfigFile, and in that case a missing file is not
// an error; defaults are returned instead. An explicitly given path
// must exist. Applies defaults for any missing fields.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyEnv overlays COLLATZ_* environment variables onto cfg. Unset or
// empty variables leave the current value in place.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvHost); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: "server.port", Message: fmt.Sprintf("%s=%q is not a number", EnvPort, v)}
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return ValidationError{Field: "server.debug", Message: fmt.Sprintf("%s=%q is not a boolean", EnvDebug, v)}
		}
		cfg.Server.Debug = debug
	}
	return nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if err := ValidateServerConfig(&cfg.Server); err != nil {
		return err
	}
	if cfg.Limits.MaxSteps <= 0 {
		return ValidationError{Field: "limits.max_steps", Message: "must be positive"}
	}
	if cfg.Limits.RequestsPerMinute < 0 {
		return ValidationError{Field: "limits.requests_per_minute", Message: "must not be negative"}
	}
	return nil
}

// ValidateServerConfig checks that server config values are valid.
func ValidateServerConfig(cfg *ServerConfig) error {
	if cfg.Host == "" {
		return ValidationError{Field: "server.host", Message: "required field is empty"}
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return ValidationError{Field: "server.port", Message: "must be between 0 and 65535"}
	}
	return nil
}
