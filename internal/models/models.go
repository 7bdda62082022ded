// Package models defines the core records the engine operates on and the
// JSON shapes exposed by the REST API.
package models

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time within a day, stored as seconds since
// midnight. Schedule times carry no date; the timetable builder anchors
// them to an absolute day.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM:SS" schedule time.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("malformed time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay(h*3600 + m*60 + sec), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)%3600/60, int(t)%60)
}

// At anchors the time of day to the given date, in the date's location.
func (t TimeOfDay) At(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location()).Add(time.Duration(t) * time.Second)
}

// Station is a stop on the network. Coordinates are carried for the
// dashboard map only; core routing never reads them.
type Station struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ScheduleRecord is one leg of one train's run, as produced by the
// ingestion pipeline. Day is 1-based: the offset of this stop within the
// train's multi-day run. DurationMin is the scheduled leg duration.
type ScheduleRecord struct {
	TrainID     string
	FromStation string
	ToStation   string
	TrainName   string
	Arrival     TimeOfDay
	Departure   TimeOfDay
	Day         int
	DurationMin float64
}
