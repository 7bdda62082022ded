package app

import (
	"log/slog"

	"railscope.indrail.org/internal/appconf"
	"railscope.indrail.org/internal/clock"
	"railscope.indrail.org/internal/geo"
	"railscope.indrail.org/internal/metrics"
	"railscope.indrail.org/internal/rail"
	"railscope.indrail.org/internal/raildb"
)

// Application holds the dependencies for the HTTP handlers, helpers, and
// middleware: the configuration, the logger, the rail manager owning the
// engine state, and the supporting services around it.
type Application struct {
	Config       appconf.Config
	Logger       *slog.Logger
	Manager      *rail.Manager
	RailDB       *raildb.Client
	StationIndex *geo.StationIndex
	Clock        clock.Clock
	Metrics      *metrics.Metrics
}
