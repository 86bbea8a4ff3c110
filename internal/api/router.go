package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"meeting-point-service/internal/api/handlers"
	"meeting-point-service/internal/ports"
	"meeting-point-service/internal/services"
)

// Dependencies are the adapters the HTTP layer is wired with.
// Geocoder may be nil, in which case addresses must carry coordinates.
type Dependencies struct {
	Businesses ports.BusinessSearcher
	Isochrones ports.IsochroneProvider
	Geocoder   ports.Geocoder

	// HealthChecks are probed by GET /health, keyed by dependency name.
	HealthChecks map[string]handlers.HealthCheck

	IsochroneMinutes int
	IsochroneProfile string
	Median           services.MedianOptions
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Checks: deps.HealthChecks}
	centerHandler := &handlers.CenterHandler{
		Tolerance:     deps.Median.Tolerance,
		MaxIterations: deps.Median.MaxIterations,
	}
	businessHandler := &handlers.BusinessHandler{Searcher: deps.Businesses}
	isochroneHandler := &handlers.IsochroneHandler{
		Provider:       deps.Isochrones,
		DefaultMinutes: deps.IsochroneMinutes,
		DefaultProfile: deps.IsochroneProfile,
	}
	meetingPointHandler := &handlers.MeetingPointHandler{
		Deps: services.MeetingPointDeps{
			Geocoder:   deps.Geocoder,
			Isochrones: deps.Isochrones,
			Businesses: deps.Businesses,
		},
		DefaultMinutes: deps.IsochroneMinutes,
		DefaultProfile: deps.IsochroneProfile,
		Median:         deps.Median,
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/center", centerHandler.Center)
	mux.HandleFunc("/api/yelp/businesses", businessHandler.Search)
	mux.HandleFunc("/api/isochrone", isochroneHandler.Get)
	mux.HandleFunc("/api/meeting-point", meetingPointHandler.Find)

	return requestIDMiddleware(loggingMiddleware(mux))
}
