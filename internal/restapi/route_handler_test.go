package restapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railscope.indrail.org/internal/delays"
	"railscope.indrail.org/internal/models"
)

func TestRouteHandler(t *testing.T) {
	api, _ := newTestAPI(t, testAPIOptions{
		source: delays.FixedSource{"11111": 5, "22222": 0},
	})

	rr := serveRequest(t, api, "/live/route?source=NDLS&destination=BPL")
	require.Equal(t, http.StatusOK, rr.Code)

	env := decodeEnvelope(t, rr)
	var result models.RouteResult
	require.NoError(t, json.Unmarshal(env.Data, &result))

	assert.Equal(t, "NDLS", result.Source)
	assert.Equal(t, "BPL", result.Destination)
	assert.Equal(t, []string{"NDLS", "AGC", "BPL"}, result.Route)
	// 125 (NDLS->AGC) + 0 (NDLS delay) + 245 (AGC->BPL) + 5 (AGC delay).
	assert.Equal(t, 375, result.TimeMin)
	assert.NotEmpty(t, result.Polyline)
	assert.NotEmpty(t, result.Timestamp)
}

func TestRouteHandlerMissingParams(t *testing.T) {
	api, _ := newTestAPI(t, testAPIOptions{})

	for _, target := range []string{
		"/live/route",
		"/live/route?source=NDLS",
		"/live/route?destination=BPL",
	} {
		rr := serveRequest(t, api, target)
		require.Equal(t, http.StatusBadRequest, rr.Code, target)

		env := decodeEnvelope(t, rr)
		assert.Equal(t, "source and destination are required", env.Text)
	}
}

func TestRouteHandlerSameStation(t *testing.T) {
	api, _ := newTestAPI(t, testAPIOptions{})

	rr := serveRequest(t, api, "/live/route?source=NDLS&destination=NDLS")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	env := decodeEnvelope(t, rr)
	assert.Equal(t, "source and destination cannot be the same", env.Text)
}

func TestRouteHandlerNoPath(t *testing.T) {
	api, _ := newTestAPI(t, testAPIOptions{})

	rr := serveRequest(t, api, "/live/route?source=BPL&destination=NDLS")
	require.Equal(t, http.StatusNotFound, rr.Code)

	env := decodeEnvelope(t, rr)
	assert.Equal(t, "no valid path found", env.Text)
}

func TestRouteHandlerInvalidAlternates(t *testing.T) {
	api, _ := newTestAPI(t, testAPIOptions{})

	rr := serveRequest(t, api, "/live/route?source=NDLS&destination=BPL&alternates=x")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serveRequest(t, api, "/live/route?source=NDLS&destination=BPL&alternates=-1")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouteHandlerAlternatesWithSinglePath(t *testing.T) {
	api, _ := newTestAPI(t, testAPIOptions{})

	// The fixture has exactly one NDLS->BPL path, so the penalized
	// re-search rediscovers it and deduplication leaves no alternates.
	rr := serveRequest(t, api, "/live/route?source=NDLS&destination=BPL&alternates=2")
	require.Equal(t, http.StatusOK, rr.Code)

	env := decodeEnvelope(t, rr)
	var result models.RouteResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Empty(t, result.AlternateRoutes)
}
