package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-preview/internal/measure"
	"github.com/jonathan/resume-preview/internal/rendering"
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Measure the laid-out height of a rendered document",
	Long: `Mounts the rendered document on the measurement surface, waits for its height to
settle, and prints the committed height in logical pixels.`,
	RunE: runMeasure,
}

var measureInputs inputFlags

func init() {
	rootCmd.AddCommand(measureCmd)
	measureInputs.bind(measureCmd)
}

func runMeasure(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd, &measureInputs)
	if err != nil {
		return err
	}
	schema, data, err := loadInputs(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()

	surface, closeSurface := newSurface(ctx, cfg)
	defer closeSurface()

	doc := rendering.Render(schema, data.EnsureIDs())
	height, err := measure.Measure(ctx, surface, doc, cfg.SettleWindow(), cfg.Verbose)
	if err != nil {
		return fmt.Errorf("measure: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", height)
	return nil
}
