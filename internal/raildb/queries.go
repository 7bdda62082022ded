package raildb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"railscope.indrail.org/internal/models"
)

// ErrStationNotFound is returned by GetStation for unknown codes.
var ErrStationNotFound = errors.New("station not found")

// ListScheduleRows returns all schedule rows in insertion order. The engine
// depends on this ordering: last-write-wins scans must replay the original
// ingestion order.
func (c *Client) ListScheduleRows(ctx context.Context) ([]models.ScheduleRecord, error) {
	rows, err := c.DB.QueryContext(ctx, `SELECT train_id, from_station, to_station,
		train_name, arrival_sec, departure_sec, day, duration_min
		FROM schedule_rows ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("unable to query schedule rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.ScheduleRecord
	for rows.Next() {
		var r models.ScheduleRecord
		var arrivalSec, departureSec int
		if err := rows.Scan(&r.TrainID, &r.FromStation, &r.ToStation, &r.TrainName,
			&arrivalSec, &departureSec, &r.Day, &r.DurationMin); err != nil {
			return nil, fmt.Errorf("unable to scan schedule row: %w", err)
		}
		r.Arrival = models.TimeOfDay(arrivalSec)
		r.Departure = models.TimeOfDay(departureSec)
		records = append(records, r)
	}
	return records, rows.Err()
}

// ListStations returns all stations ordered by code.
func (c *Client) ListStations(ctx context.Context) ([]models.Station, error) {
	rows, err := c.DB.QueryContext(ctx,
		"SELECT code, name, latitude, longitude FROM stations ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("unable to query stations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stations []models.Station
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.Code, &s.Name, &s.Latitude, &s.Longitude); err != nil {
			return nil, fmt.Errorf("unable to scan station: %w", err)
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

// GetStation looks up a single station by code.
func (c *Client) GetStation(ctx context.Context, code string) (models.Station, error) {
	var s models.Station
	err := c.DB.QueryRowContext(ctx,
		"SELECT code, name, latitude, longitude FROM stations WHERE code = ?", code).
		Scan(&s.Code, &s.Name, &s.Latitude, &s.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Station{}, ErrStationNotFound
	}
	if err != nil {
		return models.Station{}, fmt.Errorf("unable to query station %s: %w", code, err)
	}
	return s, nil
}

// TableCounts returns row counts per table, for the debug page.
func (c *Client) TableCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, table := range []string{"stations", "schedule_rows"} {
		var n int
		if err := c.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("unable to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}
