package tui

// OutputFormat controls how Renderer serializes a form.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional prefixes applied to messages sent through the
// driver's Info channel.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the renderer and the interactive session.
type Option func(*config)

type config struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
}

func newConfig(options []Option) config {
	cfg := config{outputFormat: OutputFormatPrettyText}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.driver == nil {
		cfg.driver = NewSurveyDriver(nil)
	}
	return cfg
}

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(cfg *config) {
		if driver != nil {
			cfg.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(cfg *config) {
		if format != "" {
			cfg.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(cfg *config) {
		cfg.theme = theme
	}
}
