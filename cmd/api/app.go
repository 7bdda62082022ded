package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"railscope.indrail.org/internal/app"
	"railscope.indrail.org/internal/appconf"
	"railscope.indrail.org/internal/clock"
	"railscope.indrail.org/internal/dataset"
	"railscope.indrail.org/internal/geo"
	"railscope.indrail.org/internal/logging"
	"railscope.indrail.org/internal/metrics"
	"railscope.indrail.org/internal/rail"
	"railscope.indrail.org/internal/raildb"
	"railscope.indrail.org/internal/restapi"
)

// ParseAPIKeys splits the comma-separated -api-keys flag value into
// trimmed keys. Empty segments are dropped; an empty input yields an
// empty slice.
func ParseAPIKeys(raw string) []string {
	keys := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}

// BuildApplication loads the schedule dataset, imports it into the
// database, and wires the engine and its supporting services together.
// The manager's refresh job is not started here; main starts it once
// signal handling is in place.
func BuildApplication(cfg appconf.Config) (*app.Application, error) {
	logger := logging.NewLogger(cfg.Env, cfg.Verbose)
	appMetrics := metrics.NewWithLogger(logger)

	ds, err := dataset.Load(cfg.DatasetPath, logger)
	if err != nil {
		return nil, fmt.Errorf("unable to load dataset: %w", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = ":memory:"
	}
	db, err := raildb.NewClient(dbPath)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := db.ImportDataset(ctx, ds); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to import dataset: %w", err)
	}

	// The engine reads the schedule back from the database rather than the
	// in-memory dataset, so the persisted ordering is the one that counts.
	records, err := db.ListScheduleRows(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	stations, err := db.ListStations(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	realClock := clock.RealClock{}
	manager, err := rail.NewManager(records, stations, rail.Options{
		Clock:           realClock,
		Logger:          logger,
		Metrics:         appMetrics,
		RefreshInterval: cfg.RefreshInterval,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	appMetrics.StartDBStatsCollector(db.DB, 15*time.Second)

	return &app.Application{
		Config:       cfg,
		Logger:       logger,
		Manager:      manager,
		RailDB:       db,
		StationIndex: geo.NewStationIndex(stations),
		Clock:        realClock,
		Metrics:      appMetrics,
	}, nil
}

// CreateServer builds the HTTP server around the API layer.
func CreateServer(application *app.Application) (*http.Server, *restapi.RestAPI) {
	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", application.Config.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return srv, api
}
