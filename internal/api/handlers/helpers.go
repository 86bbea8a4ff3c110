package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"meeting-point-service/internal/api/dto"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/httpx"
	"meeting-point-service/internal/platform/report"
	"meeting-point-service/internal/ports"
	"meeting-point-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON decodes exactly one JSON object from the body, rejecting unknown fields.
// It writes the error response itself and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// writeServiceError maps service and upstream errors onto HTTP statuses.
// Client errors carry their message; everything else is logged and reported.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var se *httpx.StatusError

	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, services.ErrDegenerateInput):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.As(err, &se):
		log.Printf("%s failed: upstream status=%d err=%v", op, se.Code, err)
		report.CaptureError(r.Context(), op, err)
		writeError(w, r, http.StatusBadGateway, "upstream service error")
		return
	case errors.Is(err, context.DeadlineExceeded):
		log.Printf("%s failed: %v", op, err)
		writeError(w, r, http.StatusGatewayTimeout, "upstream timeout")
		return
	}

	log.Printf("%s failed: %v", op, err)
	report.CaptureError(r.Context(), op, err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func toCoordinatesDTO(c domain.Coordinates) dto.CoordinatesDTO {
	return dto.CoordinatesDTO{Latitude: c.Lat, Longitude: c.Lon}
}

func toBusinessResponses(businesses []domain.Business, withReach bool) []dto.BusinessResponse {
	out := make([]dto.BusinessResponse, 0, len(businesses))
	for _, b := range businesses {
		res := dto.BusinessResponse{
			ID:          b.ID,
			Name:        b.Name,
			Rating:      b.Rating,
			ReviewCount: b.ReviewCount,
			Coordinates: toCoordinatesDTO(b.Coordinates),
			Categories:  b.Categories,
			Address:     b.Address,
			ImageURL:    b.ImageURL,
			URL:         b.URL,
			Distance:    b.Distance,
		}
		if res.Categories == nil {
			res.Categories = []string{}
		}
		if withReach {
			inReach := b.InReach
			res.InReach = &inReach
		}
		out = append(out, res)
	}
	return out
}
