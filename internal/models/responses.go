package models

import (
	"railscope.indrail.org/internal/clock"
)

// ResponseModel is the envelope every API response is wrapped in.
type ResponseModel struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
	Data        any    `json:"data,omitempty"`
}

// ResponseCurrentTime returns the envelope timestamp for the given clock.
func ResponseCurrentTime(c clock.Clock) int64 {
	return c.NowUnixMilli()
}

// NewOKResponse wraps data in a success envelope.
func NewOKResponse(data any, c clock.Clock) ResponseModel {
	return ResponseModel{
		Code:        200,
		CurrentTime: ResponseCurrentTime(c),
		Text:        "OK",
		Version:     2,
		Data:        data,
	}
}

// StopStatus is the live status of one train at one stop.
type StopStatus struct {
	Station   string `json:"station"`
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
	Status    string `json:"status"`
	DelayMin  int    `json:"delay_min"`
}

// TrainStatus is the full live view of a train: one StopStatus per
// scheduled stop, in arrival order.
type TrainStatus struct {
	TrainNumber string       `json:"train_number"`
	TrainName   string       `json:"train_name"`
	Route       []StopStatus `json:"route"`
	LastUpdated string       `json:"last_updated"`
}

// TrainCall is one train's visit to a station, as returned by the
// station-status query.
type TrainCall struct {
	TrainNumber string `json:"train_number"`
	TrainName   string `json:"train_name"`
	Arrival     string `json:"arrival"`
	Departure   string `json:"departure"`
	DelayMin    int    `json:"delay_min"`
	Status      string `json:"status"`
}

// StationStatus lists every train calling at a station.
type StationStatus struct {
	Station     string      `json:"station"`
	LiveStatus  []TrainCall `json:"live_status"`
	LastUpdated string      `json:"last_updated"`
}

// TrainSummary is the all-trains listing entry.
type TrainSummary struct {
	TrainNumber string   `json:"train_number"`
	TrainName   string   `json:"train_name"`
	Route       []string `json:"route"`
}

// AlternateRoute is a secondary path suggestion for a route query.
type AlternateRoute struct {
	TimeMin int      `json:"time"`
	Path    []string `json:"path"`
}

// RouteResult is the answer to a route query: the fastest path under
// current delays, plus optional alternates and an encoded polyline of the
// station coordinates for map rendering.
type RouteResult struct {
	Source          string           `json:"source"`
	Destination     string           `json:"destination"`
	TimeMin         int              `json:"time_min"`
	Route           []string         `json:"route"`
	Polyline        string           `json:"polyline,omitempty"`
	AlternateRoutes []AlternateRoute `json:"alternate_routes,omitempty"`
	Timestamp       string           `json:"timestamp"`
}

// LastUpdate reports when the current delay/graph snapshot was built.
type LastUpdate struct {
	LastUpdated string `json:"last_updated"`
}

// StationWithDistance is a stations-for-location result entry.
type StationWithDistance struct {
	Station
	DistanceMeters float64 `json:"distance_meters"`
}
