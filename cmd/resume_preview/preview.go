package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-preview/internal/observability"
	"github.com/jonathan/resume-preview/internal/preview"
	"github.com/jonathan/resume-preview/internal/viewer"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render, measure and paginate a resume",
	Long: `Runs the full preview pipeline: the document is rendered, measured on the
configured surface and sliced into pages. The paginated viewer can be written
as a standalone HTML page with --out.

With --all the same data is previewed under every built-in template, and --out
names a directory that receives one <template>.html per template.`,
	RunE: runPreview,
}

var (
	previewInputs inputFlags
	previewOutput string
	previewJSON   bool
	previewAll    bool
)

func init() {
	rootCmd.AddCommand(previewCmd)

	previewInputs.bind(previewCmd)
	previewCmd.Flags().StringVarP(&previewOutput, "out", "o", "", "Write the paginated viewer HTML to this file (directory with --all)")
	previewCmd.Flags().BoolVar(&previewJSON, "json", false, "Print the preview result as JSON")
	previewCmd.Flags().BoolVar(&previewAll, "all", false, "Preview every built-in template")
}

func runPreview(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd, &previewInputs)
	if err != nil {
		return err
	}
	schema, data, err := loadInputs(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()

	engine, cleanup := newEngine(ctx, cfg, false)
	defer cleanup()

	var results []*preview.Result
	if previewAll {
		results, err = engine.PreviewTemplates(ctx, nil, data)
		if err != nil {
			return fmt.Errorf("preview: %w", err)
		}
	} else {
		req := preview.Request{Schema: &schema, Data: data}
		if cfg.Verbose {
			req.OnState = func(id string, snap viewer.Snapshot) {
				_, _ = fmt.Fprintf(os.Stderr, "[VIEWER] %s: %s\n", id, snap.State)
			}
		}
		res, err := engine.Preview(ctx, req)
		if err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		results = []*preview.Result{res}
	}

	if err := writePreviews(results); err != nil {
		return err
	}

	if previewJSON {
		var payload any = results
		if !previewAll {
			payload = results[0]
		}
		out, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal preview: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	for _, res := range results {
		printer.PrintPreview(res)
		if cfg.Verbose {
			printer.PrintLayout(res.Geometry, res.Height, res.Layout)
			printer.PrintSections(res.Sections)
		}
	}
	return nil
}

// writePreviews writes the composed viewer pages named by --out.
func writePreviews(results []*preview.Result) error {
	if previewOutput == "" {
		return nil
	}
	if !previewAll {
		return writeOutput(previewOutput, []byte(results[0].Viewer.Page()))
	}
	for _, res := range results {
		path := filepath.Join(previewOutput, res.TemplateID+".html")
		if err := writeOutput(path, []byte(res.Viewer.Page())); err != nil {
			return err
		}
	}
	return nil
}
