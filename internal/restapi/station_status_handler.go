package restapi

import (
	"errors"
	"net/http"

	"railscope.indrail.org/internal/models"
	"railscope.indrail.org/internal/rail"
)

func (api *RestAPI) stationStatusHandler(w http.ResponseWriter, r *http.Request) {
	stationCode := r.PathValue("stationCode")

	status, err := api.Manager.StationStatus(stationCode)
	if err != nil {
		if errors.Is(err, rail.ErrStationNotFound) {
			api.sendNotFound(w, r, "station not found")
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewOKResponse(status, api.Clock))
}
