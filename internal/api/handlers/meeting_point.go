package handlers

import (
	"net/http"

	"meeting-point-service/internal/api/dto"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/services"
)

// MeetingPointHandler runs the whole flow: resolve addresses, find the
// median, then load the reachable area and businesses around it.
type MeetingPointHandler struct {
	Deps           services.MeetingPointDeps
	DefaultMinutes int
	DefaultProfile string
	Median         services.MedianOptions
}

func (h *MeetingPointHandler) Find(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.MeetingPointRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.Addresses) > 25 {
		writeError(w, r, http.StatusBadRequest, "at most 25 addresses are allowed")
		return
	}

	minutes := req.Minutes
	if minutes == 0 {
		minutes = h.DefaultMinutes
	}
	if minutes < 1 || minutes > 60 {
		writeError(w, r, http.StatusBadRequest, "minutes must be between 1 and 60")
		return
	}

	profile := req.Profile
	if profile == "" {
		profile = h.DefaultProfile
	}
	if !validProfile(profile) {
		writeError(w, r, http.StatusBadRequest, "profile must be driving, walking or cycling")
		return
	}

	addresses := make([]services.AddressInput, 0, len(req.Addresses))
	for _, a := range req.Addresses {
		in := services.AddressInput{ID: a.ID, Label: a.Label, Query: a.Query}
		if (a.Latitude == nil) != (a.Longitude == nil) {
			writeError(w, r, http.StatusBadRequest, "latitude and longitude must be provided together")
			return
		}
		if a.Latitude != nil {
			in.Location = &domain.Coordinates{Lat: *a.Latitude, Lon: *a.Longitude}
		}
		addresses = append(addresses, in)
	}

	mp, err := services.FindMeetingPoint(r.Context(), services.MeetingPointRequest{
		Addresses: addresses,
		Minutes:   minutes,
		Profile:   profile,
		Median:    h.Median,
	}, h.Deps)
	if err != nil {
		writeServiceError(w, r, "find meeting point", err)
		return
	}

	res := dto.MeetingPointResponse{
		Center:     toCoordinatesDTO(mp.Center),
		Converged:  mp.Converged,
		Iterations: mp.Iterations,
		Addresses:  make([]dto.AddressResponse, 0, len(mp.Addresses)),
		Isochrone:  mp.Isochrone,
		Businesses: toBusinessResponses(mp.Businesses, mp.Isochrone != nil),
	}
	for i, a := range mp.Addresses {
		res.Addresses = append(res.Addresses, dto.AddressResponse{
			ID:             a.ID,
			Label:          a.Label,
			Coordinates:    toCoordinatesDTO(a.Location),
			DistanceMeters: mp.DistancesMeters[i],
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
