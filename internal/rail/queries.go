package rail

import (
	"math"
	"sort"

	"railscope.indrail.org/internal/models"
	"railscope.indrail.org/internal/routing"
)

// stopTimeFormat matches the presentation format the dashboard renders.
const (
	stopTimeFormat    = "2006-01-02 15:04"
	updatedTimeFormat = "2006-01-02 15:04:05"
)

// TrainStatus returns the live status of every stop on the train's route,
// in arrival order, under the train's current delay.
func (m *Manager) TrainStatus(trainID string) (models.TrainStatus, error) {
	tt, ok := m.timetables[trainID]
	if !ok {
		return models.TrainStatus{}, ErrTrainNotFound
	}

	snap := m.Snapshot()
	now := m.clock.Now()
	delay := snap.TrainDelays[trainID]

	route := make([]models.StopStatus, 0, len(tt))
	for _, entry := range tt {
		arrival, departure, status := ResolveStatus(entry, delay, now)
		route = append(route, models.StopStatus{
			Station:   entry.Station,
			Arrival:   arrival.Format(stopTimeFormat),
			Departure: departure.Format(stopTimeFormat),
			Status:    status,
			DelayMin:  delay,
		})
	}

	return models.TrainStatus{
		TrainNumber: trainID,
		TrainName:   tt.TrainName(),
		Route:       route,
		LastUpdated: now.Format(updatedTimeFormat),
	}, nil
}

// StationStatus returns one entry per train whose timetable includes the
// station, using the first matching stop only. Trains are reported in
// sorted train-number order so the output is reproducible.
func (m *Manager) StationStatus(stationCode string) (models.StationStatus, error) {
	if _, ok := m.stations[stationCode]; !ok {
		return models.StationStatus{}, ErrStationNotFound
	}

	snap := m.Snapshot()
	now := m.clock.Now()

	calls := make([]models.TrainCall, 0)
	for _, trainID := range m.trainIDs {
		entry, ok := m.timetables[trainID].StopAt(stationCode)
		if !ok {
			continue
		}
		delay := snap.TrainDelays[trainID]
		arrival, departure, status := ResolveStatus(entry, delay, now)
		calls = append(calls, models.TrainCall{
			TrainNumber: trainID,
			TrainName:   entry.TrainName,
			Arrival:     arrival.Format(stopTimeFormat),
			Departure:   departure.Format(stopTimeFormat),
			DelayMin:    delay,
			Status:      status,
		})
	}

	return models.StationStatus{
		Station:     stationCode,
		LiveStatus:  calls,
		LastUpdated: now.Format(updatedTimeFormat),
	}, nil
}

// AllTrains summarizes every known train: number, display name, and the
// ordered station codes of its route.
func (m *Manager) AllTrains() []models.TrainSummary {
	summaries := make([]models.TrainSummary, 0, len(m.trainIDs))
	for _, trainID := range m.trainIDs {
		tt := m.timetables[trainID]
		summaries = append(summaries, models.TrainSummary{
			TrainNumber: trainID,
			TrainName:   tt.TrainName(),
			Route:       tt.Stations(),
		})
	}
	return summaries
}

// Route runs the delay-aware shortest-path search on the current snapshot
// and, when alternates > 0, the penalized re-search for alternates.
// Returns ErrNoRoute when the destination is unreachable. Same-station and
// missing-parameter rejection belong to the API layer.
func (m *Manager) Route(source, destination string, alternates int) (float64, []string, []routing.Alternate, error) {
	snap := m.Snapshot()

	cost, path := routing.FindFastestRoute(snap.Graph, snap.StationDelays, source, destination)
	if math.IsInf(cost, 1) {
		return 0, nil, nil, ErrNoRoute
	}

	var alts []routing.Alternate
	if alternates > 0 {
		alts = routing.FindAlternateRoutes(snap.Graph, snap.StationDelays, source, destination, alternates)
		sort.SliceStable(alts, func(i, j int) bool { return alts[i].Cost < alts[j].Cost })
	}
	return cost, path, alts, nil
}

// LastUpdated reports when the current snapshot was built.
func (m *Manager) LastUpdated() models.LastUpdate {
	return models.LastUpdate{
		LastUpdated: m.Snapshot().BuiltAt.Format(updatedTimeFormat),
	}
}
