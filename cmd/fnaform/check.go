package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-fnaform/pkg/contract"
	"github.com/goliatone/go-fnaform/pkg/registry"
)

func newCheckCmd(a *app) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the field registry against the service contract and probe the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			doc, err := contract.Load(ctx)
			if err != nil {
				return err
			}
			if err := doc.Verify(registry.IDs()); err != nil {
				return err
			}
			writeLine(out, "contract: %s (%d fields) ok", doc.Title(), len(doc.RequestFields()))

			if offline {
				return nil
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			if err := c.Health(ctx); err != nil {
				return err
			}
			writeLine(out, "service: %s ok", c.BaseURL())
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "skip the /health probe")
	return cmd
}
