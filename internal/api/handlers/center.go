package handlers

import (
	"errors"
	"net/http"
	"strings"

	"meeting-point-service/internal/api/dto"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/obs"
	"meeting-point-service/internal/services"
)

// CenterHandler computes the center of a point set without calling any
// external service.
type CenterHandler struct {
	Tolerance     float64
	MaxIterations int
}

func (h *CenterHandler) Center(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CenterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.Points) == 0 {
		writeError(w, r, http.StatusBadRequest, "points must not be empty")
		return
	}
	if len(req.Points) > 100 {
		writeError(w, r, http.StatusBadRequest, "at most 100 points are allowed")
		return
	}

	points := make([]domain.Coordinates, 0, len(req.Points))
	for _, p := range req.Points {
		c := domain.Coordinates{Lat: p.Latitude, Lon: p.Longitude}
		if err := c.Validate(); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		points = append(points, c)
	}

	method := strings.ToLower(strings.TrimSpace(req.Method))
	switch method {
	case "", "median":
		method = "median"
	case "mean":
		center, err := services.ArithmeticCenter(points)
		if err != nil {
			writeServiceError(w, r, "arithmetic center", err)
			return
		}
		writeJSON(w, r, http.StatusOK, dto.CenterResponse{
			Center:    toCoordinatesDTO(center),
			Method:    method,
			Converged: true,
		})
		return
	default:
		writeError(w, r, http.StatusBadRequest, "method must be median or mean")
		return
	}

	opts := services.MedianOptions{Tolerance: h.Tolerance, MaxIterations: h.MaxIterations}
	if req.Tolerance != nil {
		opts.Tolerance = *req.Tolerance
	}
	if req.MaxIterations != nil {
		opts.MaxIterations = *req.MaxIterations
	}
	if opts.Tolerance < 0 || opts.MaxIterations < 0 || opts.MaxIterations > 100000 {
		writeError(w, r, http.StatusBadRequest, "tolerance must not be negative and max_iterations must be between 0 and 100000 (0 selects the default)")
		return
	}

	res, err := services.GeometricMedian(points, opts)
	if err != nil && !errors.Is(err, services.ErrNonConvergence) {
		writeServiceError(w, r, "geometric median", err)
		return
	}
	obs.ObserveSolver(res.Iterations, res.Converged)

	writeJSON(w, r, http.StatusOK, dto.CenterResponse{
		Center:     toCoordinatesDTO(res.Center),
		Method:     method,
		Converged:  res.Converged,
		Iterations: res.Iterations,
	})
}
