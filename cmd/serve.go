package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/UnknownOlympus/pinpoint/internal/buildings"
	"github.com/UnknownOlympus/pinpoint/internal/config"
	"github.com/UnknownOlympus/pinpoint/internal/geocoding"
	"github.com/UnknownOlympus/pinpoint/internal/handler"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const (
	readTimeout     = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

func newServeCmd() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve address lookups over HTTP",
		Long: `
serve exposes GET /geocode?address=..., /healthz and /metrics.
Every request performs exactly one lookup.

With --catalog the buildings CSV is loaded at startup and served on
GET /buildings?architect=...&yearFrom=...&yearTo=... and /buildings/architects.
`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	serve.Flags().String(config.KeyHTTPPort, "8080", "port of the HTTP server")
	serve.Flags().String(config.KeyCatalog, "", "path of a buildings catalog CSV to serve")

	return serve
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Env, cmd.ErrOrStderr())

	// Create a separate registry for metrics with the runtime collectors.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	resolver, err := newResolver(cfg, logger, reg)
	if err != nil {
		return err
	}

	var catalog handler.Catalog
	if cfg.Catalog != "" {
		loaded, err := buildings.LoadFile(cfg.Catalog)
		if err != nil {
			return fmt.Errorf("failed to load buildings catalog: %w", err)
		}
		logger.InfoContext(ctx, "Buildings catalog loaded", "path", cfg.Catalog, "buildings", loaded.Len())
		catalog = loaded
	}

	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler.NewRouter(logger, resolver, catalog, reg),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout(cfg.Timeout),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
		logger.InfoContext(ctx, "Shutdown signal received. Stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	logger.InfoContext(ctx, "Server stopped gracefully.")

	return nil
}

// writeTimeout leaves room for a full lookup after the request is read.
// A non-positive lookup timeout means the provider default applies.
func writeTimeout(lookupTimeout time.Duration) time.Duration {
	if lookupTimeout <= 0 {
		lookupTimeout = geocoding.DefaultTimeout
	}

	return lookupTimeout + readTimeout
}
