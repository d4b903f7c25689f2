package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-preview/internal/export"
	"github.com/jonathan/resume-preview/internal/rendering"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a resume as print HTML or PDF",
	Long: `Exports the continuous document for printing. The browser's print engine
breaks pages; the html format writes the print page, the pdf format prints it
through headless Chrome (requires Chrome/Chromium).`,
	RunE: runExport,
}

var (
	exportInputs inputFlags
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportInputs.bind(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "html", "Output format: html or pdf")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output file (required for pdf, default stdout for html)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportFormat != "html" && exportFormat != "pdf" {
		return fmt.Errorf("--format must be html or pdf, got %q", exportFormat)
	}
	if exportFormat == "pdf" && exportOutput == "" {
		return fmt.Errorf("--out is required for pdf output")
	}

	cfg, err := loadSettings(cmd, &exportInputs)
	if err != nil {
		return err
	}
	schema, data, err := loadInputs(cfg)
	if err != nil {
		return err
	}

	doc := rendering.Render(schema, data.EnsureIDs())
	opts := export.PDFOptions{
		Headless:  cfg.IsHeadless(),
		NoSandbox: cfg.NoSandbox,
		Timeout:   cfg.Timeout(),
		Verbose:   cfg.Verbose,
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()

	res, err := export.Export(ctx, doc, exportFormat == "pdf", opts)
	if err != nil {
		return err
	}

	if exportFormat == "pdf" {
		return writeOutput(exportOutput, res.PDF)
	}
	return writeOutput(exportOutput, []byte(res.HTML))
}
