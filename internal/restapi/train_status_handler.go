package restapi

import (
	"errors"
	"net/http"

	"railscope.indrail.org/internal/models"
	"railscope.indrail.org/internal/rail"
)

func (api *RestAPI) trainStatusHandler(w http.ResponseWriter, r *http.Request) {
	trainID := r.PathValue("trainID")

	status, err := api.Manager.TrainStatus(trainID)
	if err != nil {
		if errors.Is(err, rail.ErrTrainNotFound) {
			api.sendNotFound(w, r, "train not found")
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewOKResponse(status, api.Clock))
}
