package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-preview/internal/observability"
	"github.com/jonathan/resume-preview/internal/rendering"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render resume data into one continuous HTML document",
	Long: `Renders resume data through a template schema into the continuous, unpaginated
document at the logical A4 width. By default a standalone HTML page is written; use
--fragment for the bare #resume-root element.`,
	RunE: runRender,
}

var (
	renderInputs   inputFlags
	renderOutput   string
	renderFragment bool
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderInputs.bind(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Output HTML file (default stdout)")
	renderCmd.Flags().BoolVar(&renderFragment, "fragment", false, "Write only the document fragment, without the page wrapper")
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd, &renderInputs)
	if err != nil {
		return err
	}
	schema, data, err := loadInputs(cfg)
	if err != nil {
		return err
	}

	doc := rendering.Render(schema, data.EnsureIDs())
	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintSections(doc.Sections)
	}

	content := doc.Page()
	if renderFragment {
		content = doc.HTML()
	}
	if err := writeOutput(renderOutput, []byte(content)); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
