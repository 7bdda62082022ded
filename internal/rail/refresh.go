package rail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"railscope.indrail.org/internal/routing"
)

// Start launches the background refresh job. The job rebuilds the snapshot
// once per interval, scheduling each tick only after the previous rebuild
// completed, so ticks drift under load instead of piling up. Calling Start
// twice without Stop is an error.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return fmt.Errorf("refresh job is already running")
	}
	m.started = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})

	m.logger.Info("starting refresh job", slog.Duration("interval", m.interval))

	go m.refreshLoop(ctx, m.stopCh, m.doneCh)
	return nil
}

// Stop halts the refresh job and waits for the in-flight tick, if any, to
// finish. Safe to call when not started.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return
	}
	m.started = false
	close(m.stopCh)
	done := m.doneCh
	m.mu.Unlock()

	<-done
	m.logger.Info("refresh job stopped")
}

func (m *Manager) refreshLoop(ctx context.Context, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	timer := time.NewTimer(m.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-timer.C:
			if err := m.Rebuild(); err != nil {
				// Transient: the previous snapshot stays authoritative.
				m.logger.Error("refresh tick failed, keeping previous snapshot",
					slog.Any("error", err))
			}
			timer.Reset(m.interval)
		}
	}
}

// Rebuild samples fresh delays, rebuilds the graph from the full schedule
// scan, and atomically publishes the new snapshot. On error nothing is
// published.
func (m *Manager) Rebuild() error {
	start := time.Now()

	trainDelays, err := m.source.Delays(m.trainIDs)
	if err != nil {
		if m.metrics != nil {
			m.metrics.RefreshTicksTotal.WithLabelValues("error").Inc()
		}
		return fmt.Errorf("delay source: %w", err)
	}

	snap := m.buildSnapshot(trainDelays)
	m.snapshot.Store(snap)

	if m.metrics != nil {
		m.metrics.RefreshTicksTotal.WithLabelValues("ok").Inc()
		m.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
		m.metrics.LastRefreshUnix.Set(float64(snap.BuiltAt.Unix()))
	}
	m.logger.Debug("published new snapshot",
		slog.Int("edges", snap.Graph.EdgeCount()),
		slog.Int("trains", len(trainDelays)),
		slog.Duration("build_time", time.Since(start)))

	return nil
}

func (m *Manager) buildSnapshot(trainDelays map[string]int) *routing.Snapshot {
	return routing.BuildSnapshot(m.records, trainDelays, m.clock.Now())
}
