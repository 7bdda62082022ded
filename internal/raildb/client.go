// Package raildb persists the finalized schedule dataset in SQLite and
// feeds it back to the engine at startup. The import happens once; after
// that the database serves read-only lookups and debugging counts.
package raildb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // CGo-based SQLite driver

	"railscope.indrail.org/internal/dataset"
)

const schema = `
CREATE TABLE IF NOT EXISTS stations (
	code      TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	latitude  REAL NOT NULL,
	longitude REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS schedule_rows (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	train_id      TEXT NOT NULL,
	from_station  TEXT NOT NULL,
	to_station    TEXT NOT NULL,
	train_name    TEXT NOT NULL,
	arrival_sec   INTEGER NOT NULL,
	departure_sec INTEGER NOT NULL,
	day           INTEGER NOT NULL,
	duration_min  REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_schedule_rows_train ON schedule_rows(train_id);
CREATE INDEX IF NOT EXISTS idx_schedule_rows_from ON schedule_rows(from_station);
`

// Client wraps the schedule database. Use ":memory:" as the path for
// throwaway databases in tests.
type Client struct {
	DB   *sql.DB
	path string
}

// NewClient opens (or creates) the database and ensures the schema exists.
func NewClient(path string) (*Client, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open schedule database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to create schema: %w", err)
	}
	return &Client{DB: db, path: path}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

func (c *Client) Path() string {
	return c.path
}

// ImportDataset replaces the stored dataset with the given one, inside a
// single transaction so a failed import leaves the previous contents
// intact.
func (c *Client) ImportDataset(ctx context.Context, ds *dataset.Dataset) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("unable to begin import transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM schedule_rows"); err != nil {
		return fmt.Errorf("unable to clear schedule rows: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM stations"); err != nil {
		return fmt.Errorf("unable to clear stations: %w", err)
	}

	insertStation, err := tx.PrepareContext(ctx,
		"INSERT INTO stations (code, name, latitude, longitude) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = insertStation.Close() }()

	for _, s := range ds.Stations {
		if _, err := insertStation.ExecContext(ctx, s.Code, s.Name, s.Latitude, s.Longitude); err != nil {
			return fmt.Errorf("unable to insert station %s: %w", s.Code, err)
		}
	}

	insertRow, err := tx.PrepareContext(ctx, `INSERT INTO schedule_rows
		(train_id, from_station, to_station, train_name, arrival_sec, departure_sec, day, duration_min)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = insertRow.Close() }()

	for _, r := range ds.Records {
		if _, err := insertRow.ExecContext(ctx,
			r.TrainID, r.FromStation, r.ToStation, r.TrainName,
			int(r.Arrival), int(r.Departure), r.Day, r.DurationMin); err != nil {
			return fmt.Errorf("unable to insert schedule row for train %s: %w", r.TrainID, err)
		}
	}

	return tx.Commit()
}
