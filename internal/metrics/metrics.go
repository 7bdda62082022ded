// Package metrics provides Prometheus metrics for the railscope server.
package metrics

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the application, registered on
// their own registry so tests can assert against a clean slate.
type Metrics struct {
	Registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Refresh job metrics
	RefreshTicksTotal *prometheus.CounterVec
	RefreshDuration   prometheus.Histogram
	LastRefreshUnix   prometheus.Gauge

	// Query metrics
	RouteSearchesTotal prometheus.Counter

	// Database metrics
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge

	logger           *slog.Logger
	collectorStarted atomic.Bool
	cancel           context.CancelFunc
	wg               sync.WaitGroup
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	return NewWithLogger(nil)
}

// NewWithLogger creates metrics with a logger for error reporting.
func NewWithLogger(logger *slog.Logger) *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railscope_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "railscope_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	refreshTicksTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railscope_refresh_ticks_total",
			Help: "Total refresh ticks by outcome",
		},
		[]string{"status"},
	)

	refreshDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "railscope_refresh_duration_seconds",
		Help:    "Snapshot rebuild latency distribution",
		Buckets: prometheus.DefBuckets,
	})

	lastRefreshUnix := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "railscope_last_refresh_timestamp_seconds",
		Help: "Unix time of the last successfully published snapshot",
	})

	routeSearchesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "railscope_route_searches_total",
		Help: "Total route searches executed",
	})

	dbConnectionsOpen := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "railscope_db_connections_open",
		Help: "Number of open database connections",
	})

	dbConnectionsInUse := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "railscope_db_connections_in_use",
		Help: "Number of database connections currently in use",
	})

	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		refreshTicksTotal,
		refreshDuration,
		lastRefreshUnix,
		routeSearchesTotal,
		dbConnectionsOpen,
		dbConnectionsInUse,
	)

	return &Metrics{
		Registry:            registry,
		HTTPRequestsTotal:   httpRequestsTotal,
		HTTPRequestDuration: httpRequestDuration,
		RefreshTicksTotal:   refreshTicksTotal,
		RefreshDuration:     refreshDuration,
		LastRefreshUnix:     lastRefreshUnix,
		RouteSearchesTotal:  routeSearchesTotal,
		DBConnectionsOpen:   dbConnectionsOpen,
		DBConnectionsInUse:  dbConnectionsInUse,
		logger:              logger,
	}
}

// StartDBStatsCollector starts a goroutine that periodically copies
// database pool statistics into the gauges. Idempotent; stop with
// Shutdown.
func (m *Metrics) StartDBStatsCollector(db *sql.DB, interval time.Duration) {
	if db == nil {
		return
	}
	if !m.collectorStarted.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	m.wg.Add(1)
	m.cancel = cancel

	go func() {
		defer m.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				if m.logger != nil {
					m.logger.Error("panic in DB stats collector", "error", r)
				}
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				stats := db.Stats()
				m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
				m.DBConnectionsInUse.Set(float64(stats.InUse))
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Shutdown stops the DB stats collector goroutine and waits for it to
// exit. Safe to call multiple times.
func (m *Metrics) Shutdown() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}
