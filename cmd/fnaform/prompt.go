package main

import (
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fnaform/pkg/model"
	"github.com/goliatone/go-fnaform/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the form interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			ctrl, _, err := a.controller()
			if err != nil {
				return err
			}
			session, err := tui.NewSession(ctrl, tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())))
			if err != nil {
				return err
			}
			if err := session.Run(ctx); err != nil {
				if errors.Is(err, tui.ErrAborted) {
					return nil
				}
				return err
			}

			if output == "" {
				return nil
			}
			out, err := tui.New(tui.WithOutputFormat(tui.OutputFormat(output))).Render(ctx, model.Build(ctrl.View()))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "print the final state on quit: json or pretty")
	return cmd
}
