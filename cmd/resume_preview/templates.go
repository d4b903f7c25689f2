package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-preview/internal/observability"
	"github.com/jonathan/resume-preview/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates [id]",
	Short: "List built-in templates or show one template schema",
	Long: `Without arguments, lists the built-in template IDs in registry order. With an
ID, prints that template's schema summary, or the full schema with --json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplates,
}

var templatesJSON bool

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Print the template schema as JSON")
}

func runTemplates(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, schema := range templates.All() {
			_, _ = fmt.Fprintf(out, "%-14s %s\n", schema.ID, schema.Name)
		}
		return nil
	}

	schema, ok := templates.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown template %q (available: %v)", args[0], templates.IDs())
	}
	if templatesJSON {
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal template: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}
	observability.NewPrinter(out).PrintSchema(&schema)
	return nil
}
