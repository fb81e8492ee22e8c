package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/parsenplate/scraper/internal/api"
	"github.com/parsenplate/scraper/internal/config"
	"github.com/parsenplate/scraper/internal/httpclient"
	"github.com/parsenplate/scraper/internal/logger"
	"github.com/parsenplate/scraper/internal/metrics"
	"github.com/parsenplate/scraper/internal/pipeline"
	"github.com/parsenplate/scraper/internal/sentry"
	"github.com/parsenplate/scraper/internal/services/fetch"
	"github.com/parsenplate/scraper/internal/services/scraper"
	"github.com/parsenplate/scraper/internal/telemetry"
	"github.com/parsenplate/scraper/internal/validation"
)

const validatorTimeout = 5 * time.Second

func main() {
	defer sentry.Recover()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slog.SetDefault(logger.New(cfg.Env, cfg.LogLevel, os.Stdout))

	shutdownTelemetry, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env, cfg.OtelExporterOTLPEndpoint, cfg.OTLPHeaders())
	if err != nil {
		slog.Warn("Failed to init telemetry", "error", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdownTelemetry(shutdownCtx)
		}()
	}

	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init Sentry", "error", err)
	}
	defer sentry.Flush(2 * time.Second)

	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	// The API fetches URLs chosen by callers.
	cfg.Scraper.BlockPrivateNetworks = true

	p := pipeline.New(scraper.NewExtractor(cfg.Scraper), cfg.Scraper.OutputFormat)
	validatorPages := fetch.NewPageFetcher("validator", cfg.Scraper.UserAgent, validatorTimeout,
		httpclient.WithDialControl(validation.DialControl))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewServer(cfg, p, validatorPages).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port, "mode", cfg.Scraper.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
