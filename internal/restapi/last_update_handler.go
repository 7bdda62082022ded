package restapi

import (
	"net/http"

	"railscope.indrail.org/internal/models"
)

func (api *RestAPI) lastUpdateHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewOKResponse(api.Manager.LastUpdated(), api.Clock))
}
