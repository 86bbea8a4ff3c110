package handlers

import (
	"net/http"

	"meeting-point-service/internal/api/dto"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/ports"
)

// BusinessHandler proxies business searches so the provider key stays server-side.
type BusinessHandler struct {
	Searcher ports.BusinessSearcher
}

func (h *BusinessHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.BusinessSearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Latitude == nil || req.Longitude == nil {
		writeError(w, r, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	at := domain.Coordinates{Lat: *req.Latitude, Lon: *req.Longitude}
	if err := at.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	businesses, err := h.Searcher.SearchBusinesses(r.Context(), at)
	if err != nil {
		writeServiceError(w, r, "search businesses", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.BusinessSearchResponse{
		Data:    dto.BusinessList{Businesses: toBusinessResponses(businesses, false)},
		Message: "Data retrieved!",
	})
}
