// Package rail hosts the engine core: the manager owning timetables and
// the published delay/graph snapshot, the periodic refresh job, the live
// status resolver, and the query entry points the API layer calls.
package rail

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"railscope.indrail.org/internal/clock"
	"railscope.indrail.org/internal/delays"
	"railscope.indrail.org/internal/metrics"
	"railscope.indrail.org/internal/models"
	"railscope.indrail.org/internal/routing"
	"railscope.indrail.org/internal/timetable"
)

// Typed query errors. The API layer maps these to response codes; they are
// the only errors query methods return.
var (
	ErrTrainNotFound   = errors.New("train not found")
	ErrStationNotFound = errors.New("station not found")
	ErrNoRoute         = errors.New("no valid path found")
)

// DefaultRefreshInterval matches the original system's 300-unit cadence.
const DefaultRefreshInterval = 300 * time.Second

// Options configures a Manager. Zero-value fields get production defaults.
type Options struct {
	Source          delays.Source
	Clock           clock.Clock
	Logger          *slog.Logger
	Metrics         *metrics.Metrics
	RefreshInterval time.Duration
}

// Manager owns the immutable timetables built at startup and the mutable
// delay/graph snapshot replaced by the refresh job. It is the single
// writer of the snapshot; queries are lock-free readers of whichever
// snapshot is current when they start.
type Manager struct {
	timetables map[string]timetable.Timetable
	records    []models.ScheduleRecord
	stations   map[string]models.Station
	trainIDs   []string

	source   delays.Source
	clock    clock.Clock
	logger   *slog.Logger
	metrics  *metrics.Metrics
	interval time.Duration

	snapshot atomic.Pointer[routing.Snapshot]

	mu      sync.Mutex
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
}

// NewManager builds timetables from the schedule records (anchored to the
// clock's current date, once) and publishes an initial snapshot so queries
// never observe a nil graph. Records must be in ingestion order; that
// order fixes the outcome of last-write-wins scans.
func NewManager(records []models.ScheduleRecord, stations []models.Station, opts Options) (*Manager, error) {
	if opts.Source == nil {
		opts.Source = delays.NewSimulatedSource()
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}

	stationsByCode := make(map[string]models.Station, len(stations))
	for _, s := range stations {
		stationsByCode[s.Code] = s
	}

	m := &Manager{
		records:  records,
		stations: stationsByCode,
		source:   opts.Source,
		clock:    opts.Clock,
		logger:   opts.Logger.With(slog.String("component", "rail_manager")),
		metrics:  opts.Metrics,
		interval: opts.RefreshInterval,
	}

	// Reference date is fixed at construction time. Day offsets anchor to
	// this date for the life of the process.
	m.timetables = timetable.Build(records, m.clock.Now())

	m.trainIDs = make([]string, 0, len(m.timetables))
	for id := range m.timetables {
		m.trainIDs = append(m.trainIDs, id)
	}
	sort.Strings(m.trainIDs)

	if err := m.Rebuild(); err != nil {
		return nil, fmt.Errorf("initial snapshot build failed: %w", err)
	}

	m.logger.Info("manager initialized",
		slog.Int("schedule_rows", len(records)),
		slog.Int("trains", len(m.timetables)),
		slog.Int("stations", len(stationsByCode)))

	return m, nil
}

// Snapshot returns the current delay/graph snapshot. The returned value is
// immutable; callers keep it for the duration of one query.
func (m *Manager) Snapshot() *routing.Snapshot {
	return m.snapshot.Load()
}

// TrainIDs returns the known train identifiers in sorted order.
func (m *Manager) TrainIDs() []string {
	return m.trainIDs
}

// Timetable returns the timetable for a train, if it exists.
func (m *Manager) Timetable(trainID string) (timetable.Timetable, bool) {
	tt, ok := m.timetables[trainID]
	return tt, ok
}

// Station looks up a station by code.
func (m *Manager) Station(code string) (models.Station, bool) {
	s, ok := m.stations[code]
	return s, ok
}

// Stations returns all known stations, unordered.
func (m *Manager) Stations() []models.Station {
	result := make([]models.Station, 0, len(m.stations))
	for _, s := range m.stations {
		result = append(result, s)
	}
	return result
}
