package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-fnaform/internal/config"
	"github.com/goliatone/go-fnaform/pkg/client"
	"github.com/goliatone/go-fnaform/pkg/controller"
)

// app carries the state shared by every subcommand once PersistentPreRunE ran.
type app struct {
	configPath string
	envFiles   []string
	serviceURL string
	verbose    bool
	dev        bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "fnaform",
		Short:        "Breast cancer FNA measurement form",
		Long:         "fnaform collects ten cell nucleus measurements and asks a prediction service whether the tumor is benign or malignant.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "fnaform.yaml", "YAML config file (ignored when missing)")
	flags.StringSliceVar(&a.envFiles, "env-file", []string{".env"}, ".env files to load before reading FNAFORM_* variables")
	flags.StringVar(&a.serviceURL, "service-url", "", "prediction service base URL (overrides config)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.dev, "dev", false, "human-readable development logging")

	root.AddCommand(
		newServeCmd(a),
		newPromptCmd(a),
		newCheckCmd(a),
		newFieldsCmd(a),
	)
	return root
}

func (a *app) init() error {
	if err := config.LoadEnvFiles(a.envFiles...); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.serviceURL != "" {
		cfg.Service.BaseURL = a.serviceURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if a.dev {
		cfg.Logging.Development = true
	}
	a.cfg = cfg

	logger, err := newLogger(cfg, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func newLogger(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Logging.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func (a *app) client() (*client.Client, error) {
	return client.New(a.cfg.Service.BaseURL, client.WithTimeout(a.cfg.Service.Timeout))
}

func (a *app) controller() (*controller.Controller, *client.Client, error) {
	c, err := a.client()
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := controller.New(c, controller.WithLogger(a.logger))
	if err != nil {
		return nil, nil, err
	}
	return ctrl, c, nil
}

func writeLine(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}
