// ABOUTME: CLI command for running the REST API.
// ABOUTME: Hot-reloads analyzer and coach settings when the config file changes.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitlog/internal/api"
	"github.com/harperreed/fitlog/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API",
	Long: `Run the journal REST API.

ROUTES:

  GET    /api/health/records            List records
  POST   /api/health/records            Add or replace a record
  DELETE /api/health/records            Delete every record
  DELETE /api/health/records/{date}     Delete one record
  GET    /api/health/analysis           Health report (?window=N&mode=composite)
  GET    /api/health/analysis/per_run   Per-day summaries
  GET    /api/health/tips               Random tip
  GET    /api/health/stats              Totals plus the current report
  GET    /api/health/coach              AI coaching paragraph
  GET    /metrics                       Prometheus gauges
  GET    /healthz                       Liveness

Edits to the config file are picked up without a restart for window, mode,
and coach settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetServerAddr()
		}

		coachClient, err := cfg.NewCoach(logger)
		if err != nil {
			return fmt.Errorf("failed to configure coach: %w", err)
		}

		h := api.NewHandler(repo, cfg.GetBackend(), cfg.AnalyzerOptions(), coachClient, logger)
		srv := api.NewServer(addr, h)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		configPath := config.GetConfigPath()
		if _, err := os.Stat(configPath); err == nil {
			go func() {
				err := config.Watch(ctx, configPath, logger, func(c *config.Config) {
					client, err := c.NewCoach(logger)
					if err != nil {
						logger.Error("config: rebuild coach failed", zap.Error(err))
						return
					}
					h.SetCoach(client)
					h.SetAnalyzerOptions(c.AnalyzerOptions())
				})
				if err != nil {
					logger.Warn("config: watch stopped", zap.Error(err))
				}
			}()
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("http server listening", zap.String("addr", addr), zap.String("backend", cfg.GetBackend()))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		color.Green("✓ Listening on http://%s", addr)

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, 127.0.0.1:5000)")
	rootCmd.AddCommand(serveCmd)
}
