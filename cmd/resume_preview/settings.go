package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-preview/internal/cache"
	"github.com/jonathan/resume-preview/internal/config"
	"github.com/jonathan/resume-preview/internal/measure"
	"github.com/jonathan/resume-preview/internal/preview"
	"github.com/jonathan/resume-preview/internal/schemas"
	"github.com/jonathan/resume-preview/internal/templates"
	"github.com/jonathan/resume-preview/internal/types"
)

// inputFlags are the schema and data selectors shared by document commands
type inputFlags struct {
	template string
	schema   string
	data     string
}

func (in *inputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.template, "template", "t", "", "Built-in template ID (classic, modern, minimal, creative, professional)")
	cmd.Flags().StringVarP(&in.schema, "schema", "s", "", "Path to a template schema JSON file (overrides --template)")
	cmd.Flags().StringVarP(&in.data, "data", "d", "", "Path to resume data JSON file")
}

// loadSettings resolves the effective configuration: config file first, then
// explicitly set flags, then environment defaults, then built-in defaults.
func loadSettings(cmd *cobra.Command, in *inputFlags) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if rootConfigPath != "" {
		loadedCfg, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
		if rootVerbose {
			_, _ = fmt.Fprintf(os.Stderr, "Loaded config from: %s\n", rootConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (only flags that were explicitly set)
	flags := cmd.Flags()
	if in != nil {
		if flags.Changed("template") {
			cfg.Template = in.template
		}
		if flags.Changed("schema") {
			cfg.Schema = in.schema
		}
		if flags.Changed("data") {
			cfg.Data = in.data
		}
	}
	if flags.Changed("verbose") {
		cfg.Verbose = rootVerbose
	}
	if flags.Changed("surface") {
		cfg.Surface = rootSurface
	}
	if flags.Changed("display-width") {
		cfg.DisplayWidth = rootDisplayWidth
	}
	if flags.Changed("no-sandbox") {
		cfg.NoSandbox = rootNoSandbox
	}

	// Step 3: Apply environment and built-in defaults for unset values
	cfg = cfg.MergeWithDefaults(envDefaults())

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// envDefaults reads deployment settings from the environment.
func envDefaults() config.Config {
	defaults := config.Config{
		Surface:       os.Getenv("MEASURE_SURFACE"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}
	if db, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		defaults.RedisDB = db
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		defaults.Port = port
	}
	return defaults
}

// loadInputs reads and validates the schema and data files named by cfg.
func loadInputs(cfg config.Config) (types.TemplateSchema, types.ResumeData, error) {
	if cfg.Data == "" {
		return types.TemplateSchema{}, types.ResumeData{}, fmt.Errorf("--data is required (via flag or config)")
	}

	var schema types.TemplateSchema
	if cfg.Schema != "" {
		loaded, err := schemas.LoadTemplateSchema(cfg.Schema)
		if err != nil {
			return schema, types.ResumeData{}, fmt.Errorf("failed to load template schema: %w", err)
		}
		schema = *loaded
	} else {
		builtin, ok := templates.Get(cfg.Template)
		if !ok {
			return schema, types.ResumeData{}, fmt.Errorf("unknown template %q", cfg.Template)
		}
		schema = builtin
	}
	if err := schema.Validate(); err != nil {
		return schema, types.ResumeData{}, fmt.Errorf("invalid template schema: %w", err)
	}

	data, err := schemas.LoadResumeData(cfg.Data)
	if err != nil {
		return schema, types.ResumeData{}, fmt.Errorf("failed to load resume data: %w", err)
	}
	if err := data.Validate(); err != nil {
		return schema, types.ResumeData{}, fmt.Errorf("invalid resume data: %w", err)
	}
	return schema, *data, nil
}

// newSurface builds the configured measurement surface and its cleanup.
func newSurface(ctx context.Context, cfg config.Config) (measure.Surface, func()) {
	if cfg.Surface == config.SurfaceEstimate {
		return measure.EstimateSurface{}, func() {}
	}
	chrome := measure.NewChromeSurface(ctx, measure.ChromeOptions{
		Headless:  cfg.IsHeadless(),
		NoSandbox: cfg.NoSandbox,
		Verbose:   cfg.Verbose,
	})
	return chrome, chrome.Close
}

// newEngine wires a preview engine for cfg. A Redis cache is used when
// configured and reachable; otherwise memoryFallback selects an in-process
// cache or none at all.
func newEngine(ctx context.Context, cfg config.Config, memoryFallback bool) (*preview.Engine, func()) {
	surface, closeSurface := newSurface(ctx, cfg)
	cleanup := []func(){closeSurface}

	var hc cache.HeightCache
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL())
		if err != nil {
			log.Printf("[CACHE] %v; continuing without Redis", err)
		} else {
			hc = rc
			cleanup = append(cleanup, func() { _ = rc.Close() })
			if cfg.Verbose {
				log.Printf("[CACHE] using Redis at %s", cfg.RedisAddr)
			}
		}
	}
	if hc == nil && memoryFallback {
		hc = cache.NewMemoryCache(cfg.CacheTTL())
	}

	engine := &preview.Engine{
		Surface:        surface,
		SurfaceName:    cfg.Surface,
		Cache:          hc,
		DisplayWidth:   cfg.DisplayWidth,
		SettleWindow:   cfg.SettleWindow(),
		ScrollInterval: cfg.ScrollInterval(),
		Verbose:        cfg.Verbose,
	}
	return engine, func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}
}

// writeOutput writes content to path, or to stdout when path is empty.
func writeOutput(path string, content []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(content)
		return err
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "Output: %s\n", path)
	return nil
}
