package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"railscope.indrail.org/internal/models"
)

var refDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func tod(t *testing.T, s string) models.TimeOfDay {
	t.Helper()
	v, err := models.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func record(t *testing.T, trainID, station, arrival, departure string, day int) models.ScheduleRecord {
	t.Helper()
	return models.ScheduleRecord{
		TrainID:     trainID,
		FromStation: station,
		ToStation:   "XX",
		TrainName:   "Test Express",
		Arrival:     tod(t, arrival),
		Departure:   tod(t, departure),
		Day:         day,
		DurationMin: 60,
	}
}

func TestBuildSortsByArrival(t *testing.T) {
	records := []models.ScheduleRecord{
		record(t, "12345", "BPL", "16:00:00", "16:05:00", 1),
		record(t, "12345", "NDLS", "08:00:00", "08:10:00", 1),
		record(t, "12345", "AGC", "10:30:00", "10:35:00", 1),
	}

	timetables := Build(records, refDate)
	require.Contains(t, timetables, "12345")

	tt := timetables["12345"]
	require.Len(t, tt, 3)
	assert.Equal(t, []string{"NDLS", "AGC", "BPL"}, tt.Stations())
	for i := 1; i < len(tt); i++ {
		assert.False(t, tt[i].Arrival.Before(tt[i-1].Arrival),
			"entries must be non-decreasing by arrival")
	}
}

func TestBuildAnchorsDayOffset(t *testing.T) {
	records := []models.ScheduleRecord{
		record(t, "12345", "NDLS", "23:30:00", "23:40:00", 1),
		record(t, "12345", "BCT", "06:15:00", "06:25:00", 2),
	}

	timetables := Build(records, refDate)
	tt := timetables["12345"]
	require.Len(t, tt, 2)

	assert.Equal(t, time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC), tt[0].Arrival)
	assert.Equal(t, time.Date(2025, 6, 2, 6, 15, 0, 0, time.UTC), tt[1].Arrival)
	assert.Equal(t, time.Date(2025, 6, 2, 6, 25, 0, 0, time.UTC), tt[1].Departure)
}

func TestBuildDropsSingleStopTrains(t *testing.T) {
	records := []models.ScheduleRecord{
		record(t, "11111", "NDLS", "08:00:00", "08:10:00", 1),
		record(t, "22222", "NDLS", "09:00:00", "09:10:00", 1),
		record(t, "22222", "AGC", "11:30:00", "11:35:00", 1),
	}

	timetables := Build(records, refDate)

	assert.NotContains(t, timetables, "11111", "single-stop train has no route to model")
	assert.Contains(t, timetables, "22222")
}

func TestBuildGroupsByTrain(t *testing.T) {
	records := []models.ScheduleRecord{
		record(t, "11111", "NDLS", "08:00:00", "08:10:00", 1),
		record(t, "22222", "MAS", "09:00:00", "09:10:00", 1),
		record(t, "11111", "AGC", "10:30:00", "10:35:00", 1),
		record(t, "22222", "SBC", "14:00:00", "14:10:00", 1),
	}

	timetables := Build(records, refDate)
	require.Len(t, timetables, 2)
	assert.Equal(t, []string{"NDLS", "AGC"}, timetables["11111"].Stations())
	assert.Equal(t, []string{"MAS", "SBC"}, timetables["22222"].Stations())
}

func TestTimetableAccessors(t *testing.T) {
	records := []models.ScheduleRecord{
		record(t, "12345", "NDLS", "08:00:00", "08:10:00", 1),
		record(t, "12345", "AGC", "10:30:00", "10:35:00", 1),
	}
	tt := Build(records, refDate)["12345"]

	assert.Equal(t, "Test Express", tt.TrainName())

	entry, ok := tt.StopAt("AGC")
	require.True(t, ok)
	assert.Equal(t, "AGC", entry.Station)

	_, ok = tt.StopAt("ZZZ")
	assert.False(t, ok)

	var empty Timetable
	assert.Equal(t, "", empty.TrainName())
}
