// Package restapi exposes the engine over HTTP. Handlers translate typed
// engine errors into response codes; all responses share one envelope.
package restapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"railscope.indrail.org/internal/app"
	"railscope.indrail.org/internal/appconf"
	"railscope.indrail.org/internal/webui"
)

// RestAPI wires the application into HTTP handlers and middleware.
type RestAPI struct {
	*app.Application

	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates the API layer, including its rate limiter.
func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{
		Application: application,
		rateLimiter: NewRateLimitMiddleware(
			application.Config.RateLimit,
			application.Config.ApiKeys,
			application.Clock,
		),
	}
}

// Shutdown stops background goroutines owned by the API layer.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}

// SetRoutes registers all endpoints on the mux, wrapped in the middleware
// chain: request ID, request logging, metrics, rate limiting.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /live/trains", api.allTrainsHandler)
	mux.HandleFunc("GET /live/trains/{trainID}", api.trainStatusHandler)
	mux.HandleFunc("GET /live/stations/{stationCode}", api.stationStatusHandler)
	mux.HandleFunc("GET /live/route", api.routeHandler)
	mux.HandleFunc("GET /live/last_update", api.lastUpdateHandler)
	mux.HandleFunc("GET /live/stations-for-location", api.stationsForLocationHandler)

	if api.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(
			api.Metrics.Registry, promhttp.HandlerOpts{}))
	}
	if api.Config.Env == appconf.Development {
		mux.Handle("GET /debug", webui.NewDebugHandler(api.Manager, api.RailDB))
	}
}

// Handler returns the mux wrapped in the full middleware chain.
func (api *RestAPI) Handler() http.Handler {
	mux := http.NewServeMux()
	api.SetRoutes(mux)

	var handler http.Handler = mux
	handler = api.rateLimiter.Handler()(handler)
	handler = MetricsHandler(api.Metrics)(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = RequestIDMiddleware(handler)
	return handler
}
