// Package dataset loads the finalized merged schedule CSV produced by the
// ingestion pipeline. Rows that fail validation are a data-quality concern
// of that pipeline: they are dropped and counted here, never surfaced as
// query-time errors and never fatal to startup.
package dataset

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/gzip"

	"railscope.indrail.org/internal/logging"
	"railscope.indrail.org/internal/models"
)

// maxDatasetSize caps how much schedule data we are willing to read.
const maxDatasetSize = 200 * 1024 * 1024

// csvRow mirrors the column names of the merged capstone dataset. Extra
// columns in the file are ignored.
type csvRow struct {
	TrainNumber   string `csv:"train_number"`
	FromStation   string `csv:"from_station_code"`
	FromName      string `csv:"from_station_name"`
	ToStation     string `csv:"to_station_code"`
	TrainName     string `csv:"train_name_y"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	Day           string `csv:"day"`
	DurationMin   string `csv:"total_duration_min"`
	Latitude      string `csv:"latitude"`
	Longitude     string `csv:"longitude"`
}

// Dataset is the validated schedule data, in input-row order. Stations are
// deduplicated by code, first occurrence wins.
type Dataset struct {
	Records  []models.ScheduleRecord
	Stations []models.Station
	Dropped  int
}

// Load reads the dataset from a local CSV file, transparently decompressing
// gzip (sniffed by magic bytes, so both schedule.csv and schedule.csv.gz
// work).
func Load(path string, logger *slog.Logger) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset: %w", err)
	}
	defer logging.SafeCloseWithLogging(f,
		logger.With(slog.String("component", "dataset_loader")), "dataset_file")

	raw, err := io.ReadAll(io.LimitReader(f, maxDatasetSize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}
	if int64(len(raw)) > maxDatasetSize {
		return nil, fmt.Errorf("dataset exceeds size limit of %d bytes", maxDatasetSize)
	}

	return Parse(raw, logger)
}

// Parse decodes and validates dataset bytes.
func Parse(raw []byte, logger *slog.Logger) (*Dataset, error) {
	if len(raw) >= 2 && raw[0] == 0x1f && raw[1] == 0x8b {
		gz, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("error opening gzip dataset: %w", err)
		}
		raw, err = io.ReadAll(io.LimitReader(gz, maxDatasetSize+1))
		if closeErr := gz.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return nil, fmt.Errorf("error decompressing dataset: %w", err)
		}
	}

	var rows []csvRow
	if err := gocsv.UnmarshalBytes(raw, &rows); err != nil {
		return nil, fmt.Errorf("error decoding dataset CSV: %w", err)
	}

	ds := &Dataset{}
	seenStations := make(map[string]bool)

	for _, row := range rows {
		rec, ok := validate(row)
		if !ok {
			ds.Dropped++
			continue
		}
		ds.Records = append(ds.Records, rec)

		if !seenStations[row.FromStation] {
			seenStations[row.FromStation] = true
			lat, _ := strconv.ParseFloat(row.Latitude, 64)
			lon, _ := strconv.ParseFloat(row.Longitude, 64)
			ds.Stations = append(ds.Stations, models.Station{
				Code:      row.FromStation,
				Name:      row.FromName,
				Latitude:  lat,
				Longitude: lon,
			})
		}
	}

	if ds.Dropped > 0 {
		logger.Warn("dropped malformed schedule rows",
			slog.Int("dropped", ds.Dropped),
			slog.Int("kept", len(ds.Records)))
	}
	logging.LogOperation(logger, "dataset loaded",
		slog.Int("schedule_rows", len(ds.Records)),
		slog.Int("stations", len(ds.Stations)))

	return ds, nil
}

// validate applies the row-level invariants: all required fields present,
// parseable times of day, day offset >= 1, duration >= 0.
func validate(row csvRow) (models.ScheduleRecord, bool) {
	if row.TrainNumber == "" || row.FromStation == "" || row.ToStation == "" || row.TrainName == "" {
		return models.ScheduleRecord{}, false
	}

	arrival, err := models.ParseTimeOfDay(row.ArrivalTime)
	if err != nil {
		return models.ScheduleRecord{}, false
	}
	departure, err := models.ParseTimeOfDay(row.DepartureTime)
	if err != nil {
		return models.ScheduleRecord{}, false
	}

	day, err := strconv.Atoi(row.Day)
	if err != nil || day < 1 {
		return models.ScheduleRecord{}, false
	}

	duration, err := strconv.ParseFloat(row.DurationMin, 64)
	if err != nil || duration < 0 {
		return models.ScheduleRecord{}, false
	}

	return models.ScheduleRecord{
		TrainID:     row.TrainNumber,
		FromStation: row.FromStation,
		ToStation:   row.ToStation,
		TrainName:   row.TrainName,
		Arrival:     arrival,
		Departure:   departure,
		Day:         day,
		DurationMin: duration,
	}, true
}
