package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fnaform/pkg/registry"
)

func newFieldsCmd(_ *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the measurement fields in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(registry.Sections())
			}
			for _, section := range registry.Sections() {
				writeLine(out, "%s", section.Title)
				for _, field := range section.Fields {
					writeLine(out, "  %-24s %-26s e.g. %s", field.ID, field.Label, field.Placeholder)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the registry as JSON")
	return cmd
}
