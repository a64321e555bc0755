// Package config loads fnaform settings from defaults, an optional YAML file,
// optional .env files and FNAFORM_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fnaform/pkg/client"
)

// Environment variables recognised by applyEnvOverrides.
const (
	EnvServiceURL     = "FNAFORM_SERVICE_URL"
	EnvServiceTimeout = "FNAFORM_SERVICE_TIMEOUT"
	EnvAddr           = "FNAFORM_ADDR"
	EnvLogLevel       = "FNAFORM_LOG_LEVEL"
)

// Config holds every runtime setting.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServiceConfig points at the prediction service.
type ServiceConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig configures the web front-end.
type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	ShutdownGrace time.Duration `yaml:"shutdown_grace"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	MaxSessions   int           `yaml:"max_sessions"`
	TemplatesDir  string        `yaml:"templates_dir"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL: client.DefaultBaseURL,
			Timeout: client.DefaultTimeout,
		},
		Server: ServerConfig{
			Addr:          "127.0.0.1:3000",
			ShutdownGrace: 5 * time.Second,
			SessionTTL:    30 * time.Minute,
			MaxSessions:   1000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error; an empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFiles loads the given .env files into the process environment,
// skipping files that do not exist. Variables already set win.
func LoadEnvFiles(paths ...string) error {
	var existing []string
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := strings.TrimSpace(os.Getenv(EnvServiceURL)); v != "" {
		c.Service.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvServiceTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvServiceTimeout, err)
		}
		c.Service.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: service.base_url %q must be an absolute http(s) URL", c.Service.BaseURL)
	}
	if c.Service.Timeout <= 0 {
		return fmt.Errorf("config: service.timeout must be positive, got %s", c.Service.Timeout)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("config: server.session_ttl must be positive, got %s", c.Server.SessionTTL)
	}
	if c.Server.MaxSessions <= 0 {
		return fmt.Errorf("config: server.max_sessions must be positive, got %d", c.Server.MaxSessions)
	}
	if c.Server.ShutdownGrace < 0 {
		return fmt.Errorf("config: server.shutdown_grace must not be negative, got %s", c.Server.ShutdownGrace)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses Logging.Level into a zap level.
func (c *Config) Level() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("config: logging.level: %w", err)
	}
	return level, nil
}
