// Shared fixture for handler integration tests: a fully wired API over a
// small in-memory schedule.
package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"railscope.indrail.org/internal/app"
	"railscope.indrail.org/internal/appconf"
	"railscope.indrail.org/internal/clock"
	"railscope.indrail.org/internal/delays"
	"railscope.indrail.org/internal/geo"
	"railscope.indrail.org/internal/metrics"
	"railscope.indrail.org/internal/models"
	"railscope.indrail.org/internal/rail"
)

// envelope mirrors models.ResponseModel with raw data so tests can decode
// the payload into the type they expect.
type envelope struct {
	Code        int             `json:"code"`
	CurrentTime int64           `json:"currentTime"`
	Text        string          `json:"text"`
	Version     int             `json:"version"`
	Data        json.RawMessage `json:"data"`
}

func testTimeOfDay(t *testing.T, s string) models.TimeOfDay {
	t.Helper()
	v, err := models.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

// testFixture is two trains over four stations:
//   - 11111 "Shatabdi": NDLS -> AGC -> BPL
//   - 22222 "Rajdhani": NDLS -> CNB
func testFixture(t *testing.T) ([]models.ScheduleRecord, []models.Station) {
	t.Helper()
	records := []models.ScheduleRecord{
		{TrainID: "11111", FromStation: "NDLS", ToStation: "AGC", TrainName: "Shatabdi",
			Arrival: testTimeOfDay(t, "08:00:00"), Departure: testTimeOfDay(t, "08:10:00"), Day: 1, DurationMin: 120},
		{TrainID: "11111", FromStation: "AGC", ToStation: "BPL", TrainName: "Shatabdi",
			Arrival: testTimeOfDay(t, "10:10:00"), Departure: testTimeOfDay(t, "10:15:00"), Day: 1, DurationMin: 240},
		{TrainID: "11111", FromStation: "BPL", ToStation: "BPL", TrainName: "Shatabdi",
			Arrival: testTimeOfDay(t, "14:15:00"), Departure: testTimeOfDay(t, "14:20:00"), Day: 1, DurationMin: 0},
		{TrainID: "22222", FromStation: "NDLS", ToStation: "CNB", TrainName: "Rajdhani",
			Arrival: testTimeOfDay(t, "09:00:00"), Departure: testTimeOfDay(t, "09:05:00"), Day: 1, DurationMin: 300},
		{TrainID: "22222", FromStation: "CNB", ToStation: "CNB", TrainName: "Rajdhani",
			Arrival: testTimeOfDay(t, "14:05:00"), Departure: testTimeOfDay(t, "14:10:00"), Day: 1, DurationMin: 0},
	}
	stations := []models.Station{
		{Code: "NDLS", Name: "New Delhi", Latitude: 28.64, Longitude: 77.22},
		{Code: "AGC", Name: "Agra Cantt", Latitude: 27.16, Longitude: 78.01},
		{Code: "BPL", Name: "Bhopal", Latitude: 23.27, Longitude: 77.40},
		{Code: "CNB", Name: "Kanpur Central", Latitude: 26.45, Longitude: 80.35},
	}
	return records, stations
}

type testAPIOptions struct {
	source    delays.Source
	rateLimit int
}

func newTestAPI(t *testing.T, opts testAPIOptions) (*RestAPI, *clock.MockClock) {
	t.Helper()

	if opts.source == nil {
		opts.source = delays.FixedSource{"11111": 15, "22222": 0}
	}
	if opts.rateLimit == 0 {
		opts.rateLimit = 1000
	}

	mockClock := clock.NewMockClock(time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC))
	records, stations := testFixture(t)

	manager, err := rail.NewManager(records, stations, rail.Options{
		Source: opts.source,
		Clock:  mockClock,
		Logger: slog.Default(),
	})
	require.NoError(t, err)

	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.Test,
			RateLimit: opts.rateLimit,
			ApiKeys:   []string{"test-key"},
		},
		Logger:       slog.Default(),
		Manager:      manager,
		StationIndex: geo.NewStationIndex(stations),
		Clock:        mockClock,
		Metrics:      metrics.New(),
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api, mockClock
}

// serveRequest runs a request through the routed mux without middleware.
func serveRequest(t *testing.T, api *RestAPI, target string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

// serveThroughHandler runs a request through the full middleware chain.
func serveThroughHandler(t *testing.T, api *RestAPI, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	api.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}
