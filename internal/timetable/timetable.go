// Package timetable builds ordered, time-anchored itineraries from raw
// schedule records. The build runs once at startup; timetables are
// immutable afterwards and safe to read without synchronization.
package timetable

import (
	"sort"
	"time"

	"railscope.indrail.org/internal/models"
)

// Entry is one stop of one train with absolute arrival and departure
// timestamps.
type Entry struct {
	Station   string
	Arrival   time.Time
	Departure time.Time
	TrainName string
}

// Timetable is the ordered stop sequence of a single train, sorted
// ascending by arrival.
type Timetable []Entry

// Build groups records by train and constructs one Timetable per train.
//
// Times of day are anchored to refDate plus (Day-1) days, so a train whose
// run spans multiple days gets monotonically later timestamps. refDate is
// computed once at process start and never re-anchored: a long-running
// process keeps its startup notion of "today". Trains with fewer than two
// stops carry no leg to model and are dropped.
func Build(records []models.ScheduleRecord, refDate time.Time) map[string]Timetable {
	grouped := make(map[string][]models.ScheduleRecord)
	for _, rec := range records {
		grouped[rec.TrainID] = append(grouped[rec.TrainID], rec)
	}

	timetables := make(map[string]Timetable, len(grouped))
	for trainID, group := range grouped {
		tt := make(Timetable, 0, len(group))
		for _, rec := range group {
			day := refDate.AddDate(0, 0, rec.Day-1)
			tt = append(tt, Entry{
				Station:   rec.FromStation,
				Arrival:   rec.Arrival.At(day),
				Departure: rec.Departure.At(day),
				TrainName: rec.TrainName,
			})
		}
		if len(tt) < 2 {
			continue
		}
		sort.SliceStable(tt, func(i, j int) bool {
			return tt[i].Arrival.Before(tt[j].Arrival)
		})
		timetables[trainID] = tt
	}
	return timetables
}

// Stations returns the station codes of the timetable in stop order.
func (t Timetable) Stations() []string {
	codes := make([]string, len(t))
	for i, e := range t {
		codes[i] = e.Station
	}
	return codes
}

// TrainName returns the display name carried on the first stop.
func (t Timetable) TrainName() string {
	if len(t) == 0 {
		return ""
	}
	return t[0].TrainName
}

// StopAt returns the first entry for the given station, if any.
func (t Timetable) StopAt(station string) (Entry, bool) {
	for _, e := range t {
		if e.Station == station {
			return e, true
		}
	}
	return Entry{}, false
}
