package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-preview/internal/export"
	"github.com/jonathan/resume-preview/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP preview server",
	Long: `Starts an HTTP server exposing render, paginate, preview and export endpoints.

Endpoints:
  GET  /health            Health check
  GET  /templates         List built-in templates
  GET  /templates/{id}    Get one template schema
  GET  /schemas/{name}    Get an embedded JSON Schema
  POST /render            Render a document
  POST /paginate          Slice a height into pages
  POST /preview           Render, measure and paginate
  POST /preview/stream    Preview with viewer state events (SSE)
  POST /preview/batch     Preview data under several templates
  POST /export            Export print HTML or PDF`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default 8080, or PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd, nil)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	// The surface and cache live for the whole server, not one request.
	ctx := context.Background()
	engine, cleanup := newEngine(ctx, cfg, true)

	srv, err := server.New(server.Config{
		Port:   cfg.Port,
		Engine: engine,
		Export: export.PDFOptions{
			Headless:  cfg.IsHeadless(),
			NoSandbox: cfg.NoSandbox,
			Timeout:   cfg.Timeout(),
			Verbose:   cfg.Verbose,
		},
		OnShutdown: []func(){cleanup},
		Verbose:    cfg.Verbose,
	})
	if err != nil {
		cleanup()
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Printf("Measuring on %s surface at display width %.1f", cfg.Surface, cfg.DisplayWidth)
	return srv.Start()
}
