// cmd/dashboard/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github-dashboard/internal/api"
	"github-dashboard/internal/config"
	"github-dashboard/internal/dashboard"
	"github-dashboard/internal/github"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("Application startup error", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// 1. Initialize structured logger
	logLevel := new(slog.LevelVar)
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 2. Load configuration
	flags := config.Flags(filepath.Base(os.Args[0]))
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	cfg, err := config.LoadConfig(flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel, logLevel)
	logger.Info("Configuration loaded successfully", "account", cfg.Account, "mode", cfg.Mode)

	// 3. Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 4. Initialize application components
	ghClient, err := github.NewClient(cfg.APIBaseURL, cfg.GithubToken, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}
	dash := dashboard.NewDashboard(ghClient, cfg.Account, cfg.Location, logger)

	if cfg.Mode == config.ModeServe {
		return serve(ctx, cfg.ListenAddr, api.NewRouter(dash, logger), logger)
	}
	return renderPage(ctx, dash, cfg.OutputPath, logger)
}

// renderPage performs a single page load and writes the document to path.
func renderPage(ctx context.Context, dash *dashboard.Dashboard, path string, logger *slog.Logger) error {
	page, _ := dash.Build(ctx)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := page.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write dashboard: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write dashboard: %w", err)
	}

	logger.Info("Dashboard written", "path", path)
	return nil
}

func serve(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("Shutdown signal received. Exiting.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
