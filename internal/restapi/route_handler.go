package restapi

import (
	"errors"
	"net/http"
	"strconv"

	"railscope.indrail.org/internal/geo"
	"railscope.indrail.org/internal/models"
	"railscope.indrail.org/internal/rail"
)

// routeHandler answers /live/route. Validation lives here; the manager only
// sees well-formed source/destination pairs.
func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	source := query.Get("source")
	destination := query.Get("destination")

	if source == "" || destination == "" {
		api.validationErrorResponse(w, r, "source and destination are required")
		return
	}
	if source == destination {
		api.validationErrorResponse(w, r, "source and destination cannot be the same")
		return
	}

	alternates := 0
	if raw := query.Get("alternates"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			api.validationErrorResponse(w, r, "alternates must be a non-negative integer")
			return
		}
		alternates = n
	}

	cost, path, alts, err := api.Manager.Route(source, destination, alternates)
	if err != nil {
		if errors.Is(err, rail.ErrNoRoute) {
			api.sendNotFound(w, r, "no valid path found")
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	if api.Metrics != nil {
		api.Metrics.RouteSearchesTotal.Inc()
	}

	result := models.RouteResult{
		Source:      source,
		Destination: destination,
		TimeMin:     int(cost),
		Route:       path,
		Timestamp:   api.Clock.Now().Format("2006-01-02 15:04:05"),
	}

	if api.StationIndex != nil {
		result.Polyline = geo.EncodePath(path, api.Manager.Station)
	}

	for _, alt := range alts {
		result.AlternateRoutes = append(result.AlternateRoutes, models.AlternateRoute{
			TimeMin: int(alt.Cost),
			Path:    alt.Path,
		})
	}

	api.sendResponse(w, r, models.NewOKResponse(result, api.Clock))
}
