package server

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-fnaform/pkg/renderers/vanilla"
)

// Option configures a Server.
type Option func(*config)

type config struct {
	addr           string
	shutdownGrace  time.Duration
	sessionTTL     time.Duration
	maxSessions    int
	logger         *zap.Logger
	now            func() time.Time
	vanillaOptions []vanilla.Option
}

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			cfg.addr = trimmed
		}
	}
}

// WithShutdownGrace bounds how long in-flight requests may run after the
// serve context is cancelled.
func WithShutdownGrace(d time.Duration) Option {
	return func(cfg *config) {
		if d >= 0 {
			cfg.shutdownGrace = d
		}
	}
}

// WithSessionTTL sets the idle lifetime of a visitor's form state.
func WithSessionTTL(ttl time.Duration) Option {
	return func(cfg *config) {
		if ttl > 0 {
			cfg.sessionTTL = ttl
		}
	}
}

// WithMaxSessions caps how many visitors keep form state at once.
func WithMaxSessions(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxSessions = n
		}
	}
}

// WithLogger sets the logger for the server and every session controller.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		if now != nil {
			cfg.now = now
		}
	}
}

// WithVanillaOptions forwards options to the HTML renderer.
func WithVanillaOptions(options ...vanilla.Option) Option {
	return func(cfg *config) {
		cfg.vanillaOptions = append(cfg.vanillaOptions, options...)
	}
}
