// Package webui serves the development-only debug page, a spew dump of
// whichever engine structure is requested.
package webui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"railscope.indrail.org/internal/rail"
	"railscope.indrail.org/internal/raildb"
)

//go:embed debug_index.html
var templateFS embed.FS

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")
	tmpl, err := template.ParseFS(templateFS, "debug_index.html")
	if err != nil {
		slog.Error("failed to parse debug template", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	if err := tmpl.Execute(w, dataStruct); err != nil {
		slog.Error("failed to execute debug template", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

type debugHandler struct {
	manager *rail.Manager
	db      *raildb.Client
}

// NewDebugHandler serves engine internals for local inspection. Mounted only
// in the development environment.
func NewDebugHandler(manager *rail.Manager, db *raildb.Client) http.Handler {
	return &debugHandler{manager: manager, db: db}
}

func (h *debugHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "snapshot":
		snap := h.manager.Snapshot()
		data = map[string]interface{}{
			"built_at":       snap.BuiltAt,
			"edges":          snap.Graph.EdgeCount(),
			"train_delays":   snap.TrainDelays,
			"station_delays": snap.StationDelays,
		}
		title = "Engine - Current Snapshot"
	case "trains":
		data = h.manager.TrainIDs()
		title = "Engine - Train IDs"
	case "stations":
		data = h.manager.Stations()
		title = "Engine - Stations"
	case "tables":
		if h.db == nil {
			data = map[string]string{"error": "no database configured"}
		} else {
			counts, err := h.db.TableCounts(r.Context())
			if err != nil {
				data = map[string]string{"error": err.Error()}
			} else {
				data = counts
			}
		}
		title = "Database - Table Counts"
	default:
		data = map[string]string{
			"error": "Please use one of the following: snapshot, trains, stations, tables.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
