package restapi

import (
	"net/http"

	"railscope.indrail.org/internal/models"
)

func (api *RestAPI) allTrainsHandler(w http.ResponseWriter, r *http.Request) {
	trains := api.Manager.AllTrains()
	api.sendResponse(w, r, models.NewOKResponse(trains, api.Clock))
}
