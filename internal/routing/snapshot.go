package routing

import (
	"time"

	"railscope.indrail.org/internal/models"
)

// Snapshot pairs one tick's graph with the delay maps it was derived from.
// The refresh job builds a Snapshot to completion and publishes it by
// atomic pointer swap; readers hold one snapshot for the duration of a
// query and never observe a graph under construction or a delay map from a
// different tick.
type Snapshot struct {
	Graph         *Graph
	TrainDelays   map[string]int
	StationDelays map[string]int
	BuiltAt       time.Time
}

// BuildSnapshot scans the schedule records once, in slice order, and
// produces a fresh graph plus the per-station delay attribution.
//
// For each record the assigned train's delay is resolved (zero when the
// train is absent from trainDelays, e.g. dropped single-stop trains), the
// edge origin->destination is upserted with weight duration+delay, and the
// delay is recorded against the origin station. Both the edge and the
// station entry are last-write-wins across records sharing a leg or an
// origin; input order fixes the outcome.
//
// The graph is rebuilt from scratch every tick rather than patched, so
// edges from trains no longer in the schedule cannot linger.
func BuildSnapshot(records []models.ScheduleRecord, trainDelays map[string]int, builtAt time.Time) *Snapshot {
	graph := NewGraph()
	stationDelays := make(map[string]int)

	for _, rec := range records {
		delay := trainDelays[rec.TrainID]
		graph.UpsertEdge(rec.FromStation, rec.ToStation, rec.DurationMin+float64(delay))
		stationDelays[rec.FromStation] = delay
	}

	return &Snapshot{
		Graph:         graph,
		TrainDelays:   trainDelays,
		StationDelays: stationDelays,
		BuiltAt:       builtAt,
	}
}
