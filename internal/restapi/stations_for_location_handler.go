package restapi

import (
	"net/http"
	"strconv"

	"railscope.indrail.org/internal/models"
)

const defaultLocationRadiusMeters = 10000.0

func (api *RestAPI) stationsForLocationHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.validationErrorResponse(w, r, "lat must be a valid number")
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.validationErrorResponse(w, r, "lon must be a valid number")
		return
	}

	radius := defaultLocationRadiusMeters
	if raw := query.Get("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			api.validationErrorResponse(w, r, "radius must be a positive number")
			return
		}
	}

	stations := api.StationIndex.Nearby(lat, lon, radius)
	if stations == nil {
		stations = []models.StationWithDistance{}
	}

	api.sendResponse(w, r, models.NewOKResponse(stations, api.Clock))
}
