// Package main implements the resume_preview CLI and HTTP server for paginated resume previews.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_preview",
	Short: "Schema-driven resume layout and pagination engine",
	Long: `resume_preview renders resume data through a template schema into one continuous
document, measures its laid-out height, and slices it into A4 page windows.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	SilenceUsage: true,
}

var (
	rootConfigPath   string
	rootVerbose      bool
	rootSurface      string
	rootDisplayWidth float64
	rootNoSandbox    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&rootSurface, "surface", "", "Measurement surface: chrome or estimate (default chrome)")
	rootCmd.PersistentFlags().Float64Var(&rootDisplayWidth, "display-width", 0, "Display width of one page in CSS pixels (default 595)")
	rootCmd.PersistentFlags().BoolVar(&rootNoSandbox, "no-sandbox", false, "Run Chrome without its sandbox (containers)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
