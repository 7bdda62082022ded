package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"railscope.indrail.org/internal/appconf"
	"railscope.indrail.org/internal/logging"
	"railscope.indrail.org/internal/rail"
)

func main() {
	var cfg appconf.Config
	var envFlag, apiKeys string

	flag.IntVar(&cfg.Port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
	flag.StringVar(&apiKeys, "api-keys", "", "Comma-separated API keys exempt from rate limiting")
	flag.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per API key")
	flag.StringVar(&cfg.DatasetPath, "dataset", "schedule.csv", "Path to the merged schedule CSV (plain or gzip)")
	flag.StringVar(&cfg.DBPath, "db", ":memory:", "Path to the schedule SQLite database")
	flag.DurationVar(&cfg.RefreshInterval, "refresh-interval", rail.DefaultRefreshInterval, "Delay refresh interval")
	flag.Parse()

	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)
	cfg.ApiKeys = ParseAPIKeys(apiKeys)

	application, err := BuildApplication(cfg)
	if err != nil {
		slog.Error("unable to build application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Manager.Start(ctx); err != nil {
		logging.LogError(application.Logger, "unable to start refresh job", err)
		os.Exit(1)
	}

	server, api := CreateServer(application)

	go func() {
		application.Logger.Info("starting server",
			slog.Int("port", cfg.Port),
			slog.String("env", cfg.Env.String()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.LogError(application.Logger, "server failed", err)
			stop()
		}
	}()

	<-ctx.Done()
	application.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.LogError(application.Logger, "server shutdown failed", err)
	}

	api.Shutdown()
	application.Manager.Stop()
	application.Metrics.Shutdown()
	logging.SafeCloseWithLogging(application.RailDB, application.Logger, "schedule_database")
}
