package controller

import "go.uber.org/zap"

// Option configures a Controller.
type Option func(*config)

type config struct {
	logger *zap.Logger
}

// WithLogger routes failure diagnostics to logger. A nil logger keeps the
// default no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
