package webui

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railscope.indrail.org/internal/clock"
	"railscope.indrail.org/internal/delays"
	"railscope.indrail.org/internal/models"
	"railscope.indrail.org/internal/rail"
)

func newTestManager(t *testing.T) *rail.Manager {
	t.Helper()

	arrival, err := models.ParseTimeOfDay("08:00:00")
	require.NoError(t, err)
	departure, err := models.ParseTimeOfDay("08:10:00")
	require.NoError(t, err)
	terminalArrival, err := models.ParseTimeOfDay("10:00:00")
	require.NoError(t, err)

	records := []models.ScheduleRecord{
		{TrainID: "11111", FromStation: "NDLS", ToStation: "AGC", TrainName: "Shatabdi",
			Arrival: arrival, Departure: departure, Day: 1, DurationMin: 120},
		{TrainID: "11111", FromStation: "AGC", ToStation: "AGC", TrainName: "Shatabdi",
			Arrival: terminalArrival, Departure: terminalArrival, Day: 1, DurationMin: 0},
	}
	stations := []models.Station{
		{Code: "NDLS", Name: "New Delhi", Latitude: 28.64, Longitude: 77.22},
		{Code: "AGC", Name: "Agra Cantt", Latitude: 27.16, Longitude: 78.01},
	}

	m, err := rail.NewManager(records, stations, rail.Options{
		Source: delays.FixedSource{"11111": 5},
		Clock:  clock.NewMockClock(time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	return m
}

func TestDebugHandlerSnapshot(t *testing.T) {
	handler := NewDebugHandler(newTestManager(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/debug?dataType=snapshot", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "train_delays")
	assert.Contains(t, rr.Body.String(), "Current Snapshot")
}

func TestDebugHandlerTrains(t *testing.T) {
	handler := NewDebugHandler(newTestManager(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/debug?dataType=trains", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "11111")
}

func TestDebugHandlerTablesWithoutDatabase(t *testing.T) {
	handler := NewDebugHandler(newTestManager(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/debug?dataType=tables", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "no database configured")
}

func TestDebugHandlerUnknownDataType(t *testing.T) {
	handler := NewDebugHandler(newTestManager(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/debug?dataType=bogus", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Choose a data type")
}
