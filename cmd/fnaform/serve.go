package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-fnaform/internal/server"
	"github.com/goliatone/go-fnaform/pkg/renderers/vanilla"
)

func newServeCmd(a *app) *cobra.Command {
	var addr, templatesDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			if templatesDir != "" {
				a.cfg.Server.TemplatesDir = templatesDir
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&templatesDir, "templates", "", "directory holding templates/form.tmpl overrides")
	return cmd
}

func (a *app) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := a.client()
	if err != nil {
		return err
	}

	opts := []server.Option{
		server.WithAddr(a.cfg.Server.Addr),
		server.WithShutdownGrace(a.cfg.Server.ShutdownGrace),
		server.WithSessionTTL(a.cfg.Server.SessionTTL),
		server.WithMaxSessions(a.cfg.Server.MaxSessions),
		server.WithLogger(a.logger),
	}
	if a.cfg.Server.TemplatesDir != "" {
		opts = append(opts, server.WithVanillaOptions(vanilla.WithTemplatesDir(a.cfg.Server.TemplatesDir)))
	}
	srv, err := server.New(c, opts...)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx)
	})
	g.Go(func() error {
		if err := c.Health(ctx); err != nil {
			a.logger.Warn("prediction service not reachable yet",
				zap.String("url", c.BaseURL()),
				zap.Error(err),
			)
			return nil
		}
		a.logger.Info("prediction service reachable", zap.String("url", c.BaseURL()))
		return nil
	})
	return g.Wait()
}
