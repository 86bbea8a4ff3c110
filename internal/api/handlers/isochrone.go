package handlers

import (
	"net/http"
	"strconv"

	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/ports"
)

type IsochroneHandler struct {
	Provider       ports.IsochroneProvider
	DefaultMinutes int
	DefaultProfile string
}

// Get returns the GeoJSON polygons reachable from latitude/longitude.
func (h *IsochroneHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()

	lat, errLat := strconv.ParseFloat(q.Get("latitude"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("longitude"), 64)
	if errLat != nil || errLon != nil {
		writeError(w, r, http.StatusBadRequest, "latitude and longitude must be numbers")
		return
	}

	at := domain.Coordinates{Lat: lat, Lon: lon}
	if err := at.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	minutes := h.DefaultMinutes
	if v := q.Get("minutes"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 60 {
			writeError(w, r, http.StatusBadRequest, "minutes must be between 1 and 60")
			return
		}
		minutes = m
	}

	profile := h.DefaultProfile
	if v := q.Get("profile"); v != "" {
		if !validProfile(v) {
			writeError(w, r, http.StatusBadRequest, "profile must be driving, walking or cycling")
			return
		}
		profile = v
	}

	fc, err := h.Provider.GetIsochrone(r.Context(), at, minutes, profile)
	if err != nil {
		writeServiceError(w, r, "get isochrone", err)
		return
	}

	writeJSON(w, r, http.StatusOK, fc)
}

func validProfile(p string) bool {
	switch p {
	case "driving", "walking", "cycling":
		return true
	}
	return false
}
