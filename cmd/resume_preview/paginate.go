package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-preview/internal/config"
	"github.com/jonathan/resume-preview/internal/observability"
	"github.com/jonathan/resume-preview/internal/pagination"
)

var paginateCmd = &cobra.Command{
	Use:   "paginate",
	Short: "Slice a measured height into A4 page windows",
	Long: `Computes the page count, page start offsets and per-page transforms for a
document of the given height at the configured display width. No rendering or
measurement takes place.`,
	Example: `  resume_preview paginate --height 2000 --display-width 297.5`,
	RunE:    runPaginate,
}

var (
	paginateHeight float64
	paginateJSON   bool
)

func init() {
	rootCmd.AddCommand(paginateCmd)

	paginateCmd.Flags().Float64Var(&paginateHeight, "height", 0, "Measured document height in logical pixels (required, at most 842000)")
	paginateCmd.Flags().BoolVar(&paginateJSON, "json", false, "Print the layout as JSON")

	_ = paginateCmd.MarkFlagRequired("height")
}

// paginateOutput is the JSON form of a paginate run
type paginateOutput struct {
	Geometry   pagination.Geometry    `json:"geometry"`
	Layout     pagination.Layout      `json:"layout"`
	Transforms []pagination.Transform `json:"transforms"`
}

func runPaginate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd, nil)
	if err != nil {
		return err
	}
	if paginateHeight < 0 {
		return fmt.Errorf("--height must be non-negative")
	}
	if paginateHeight > pagination.MaxHeight {
		return fmt.Errorf("--height must be at most %.0f (%d pages)", pagination.MaxHeight, pagination.MaxPages)
	}

	geom, err := paginationGeometry(cfg)
	if err != nil {
		return err
	}
	layout := pagination.Paginate(paginateHeight, geom.PageHeightOriginal)

	if !paginateJSON {
		observability.NewPrinter(cmd.OutOrStdout()).PrintLayout(geom, paginateHeight, layout)
		return nil
	}

	out, err := json.MarshalIndent(paginateOutput{
		Geometry:   geom,
		Layout:     layout,
		Transforms: layout.Transforms(geom),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func paginationGeometry(cfg config.Config) (pagination.Geometry, error) {
	geom, err := pagination.NewGeometry(cfg.DisplayWidth)
	if err != nil {
		return geom, fmt.Errorf("invalid display width: %w", err)
	}
	return geom, nil
}
