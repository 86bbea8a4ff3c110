package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-point-service/internal/adapters/mock"
	"meeting-point-service/internal/api/dto"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/httpx"
	"meeting-point-service/internal/services"
)

func do(t *testing.T, h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := &HealthHandler{}

	rec := do(t, h.Health, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, h.Health, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestHealthChecks(t *testing.T) {
	h := &HealthHandler{Checks: map[string]HealthCheck{
		"postgres": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
	}}

	rec := do(t, h.Health, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t,
		`{"status":"degraded","checks":{"postgres":"ok","redis":"error: connection refused"}}`,
		rec.Body.String())
}

func TestCenterMedian(t *testing.T) {
	h := &CenterHandler{}
	rec := do(t, h.Center, http.MethodPost, "/api/center",
		`{"points":[{"latitude":0,"longitude":0},{"latitude":0,"longitude":2}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.CenterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "median", res.Method)
	assert.True(t, res.Converged)
	assert.InDelta(t, 0.0, res.Center.Latitude, 1e-6)
	assert.InDelta(t, 1.0, res.Center.Longitude, 1e-6)
}

func TestCenterMean(t *testing.T) {
	h := &CenterHandler{}
	rec := do(t, h.Center, http.MethodPost, "/api/center",
		`{"method":"mean","points":[{"latitude":1,"longitude":1},{"latitude":3,"longitude":5}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.CenterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "mean", res.Method)
	assert.Equal(t, 0, res.Iterations)
	assert.InDelta(t, 2.0, res.Center.Latitude, 1e-12)
	assert.InDelta(t, 3.0, res.Center.Longitude, 1e-12)
}

func TestCenterRejectsBadRequests(t *testing.T) {
	h := &CenterHandler{}

	tests := []struct {
		name string
		body string
	}{
		{"empty", `{"points":[]}`},
		{"unknown field", `{"points":[{"latitude":1,"longitude":1}],"extra":1}`},
		{"trailing object", `{"points":[{"latitude":1,"longitude":1}]}{}`},
		{"out of range", `{"points":[{"latitude":91,"longitude":1}]}`},
		{"bad method", `{"method":"mode","points":[{"latitude":1,"longitude":1}]}`},
		{"negative tolerance", `{"tolerance":-1,"points":[{"latitude":1,"longitude":1}]}`},
		{"not json", `points`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h.Center, http.MethodPost, "/api/center", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestCenterIterationCapStillAnswers(t *testing.T) {
	h := &CenterHandler{}
	rec := do(t, h.Center, http.MethodPost, "/api/center",
		`{"max_iterations":1,"points":[{"latitude":0,"longitude":0},{"latitude":0,"longitude":10},{"latitude":8,"longitude":3}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.CenterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
}

func TestBusinessSearch(t *testing.T) {
	searcher := &mock.BusinessSearcher{Businesses: []domain.Business{{
		ID:          "b1",
		Name:        "Taco Spot",
		Rating:      4.5,
		ReviewCount: 120,
		Coordinates: domain.Coordinates{Lat: 33.45, Lon: -112.07},
		Address:     "1 Main St, Phoenix, AZ",
	}}}
	h := &BusinessHandler{Searcher: searcher}

	rec := do(t, h.Search, http.MethodPost, "/api/yelp/businesses", `{"latitude":33.45,"longitude":-112.07}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.BusinessSearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Data retrieved!", res.Message)
	require.Len(t, res.Data.Businesses, 1)
	assert.Equal(t, "Taco Spot", res.Data.Businesses[0].Name)
	assert.Equal(t, []string{}, res.Data.Businesses[0].Categories)
	assert.Nil(t, res.Data.Businesses[0].InReach)

	require.Len(t, searcher.Calls, 1)
	assert.Equal(t, domain.Coordinates{Lat: 33.45, Lon: -112.07}, searcher.Calls[0])
}

func TestBusinessSearchValidation(t *testing.T) {
	h := &BusinessHandler{Searcher: &mock.BusinessSearcher{}}

	rec := do(t, h.Search, http.MethodPost, "/api/yelp/businesses", `{"latitude":33.45}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h.Search, http.MethodGet, "/api/yelp/businesses", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestBusinessSearchUpstreamError(t *testing.T) {
	h := &BusinessHandler{Searcher: &mock.BusinessSearcher{
		Err: &httpx.StatusError{Code: http.StatusUnauthorized, Body: "bad key"},
	}}

	rec := do(t, h.Search, http.MethodPost, "/api/yelp/businesses", `{"latitude":1,"longitude":1}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "bad key")

	h.Searcher = &mock.BusinessSearcher{Err: errors.New("boom")}
	rec = do(t, h.Search, http.MethodPost, "/api/yelp/businesses", `{"latitude":1,"longitude":1}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestIsochrone(t *testing.T) {
	provider := &mock.IsochroneProvider{HalfSide: 0.1}
	h := &IsochroneHandler{Provider: provider, DefaultMinutes: 15, DefaultProfile: "driving"}

	rec := do(t, h.Get, http.MethodGet, "/api/isochrone?latitude=10&longitude=20&minutes=5", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"FeatureCollection"`)
	assert.Contains(t, rec.Body.String(), `"contour":5`)
	assert.Contains(t, rec.Body.String(), `"profile":"driving"`)

	for _, target := range []string{
		"/api/isochrone?latitude=x&longitude=20",
		"/api/isochrone?latitude=10&longitude=200",
		"/api/isochrone?latitude=10&longitude=20&minutes=61",
		"/api/isochrone?latitude=10&longitude=20&profile=flying",
	} {
		rec = do(t, h.Get, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestMeetingPoint(t *testing.T) {
	h := &MeetingPointHandler{
		Deps: services.MeetingPointDeps{
			Geocoder:   &mock.Geocoder{Results: map[string]domain.Coordinates{"2 Elm St": {Lat: 0, Lon: 2}}},
			Isochrones: &mock.IsochroneProvider{HalfSide: 0.5},
			Businesses: &mock.BusinessSearcher{Businesses: []domain.Business{
				{ID: "near", Coordinates: domain.Coordinates{Lat: 0.1, Lon: 1.1}},
				{ID: "far", Coordinates: domain.Coordinates{Lat: 5, Lon: 5}},
			}},
		},
		DefaultMinutes: 15,
		DefaultProfile: "driving",
	}

	body := `{"addresses":[
		{"id":"a","label":"Home","latitude":0,"longitude":0},
		{"id":"b","label":"Work","query":"2 Elm St"}
	]}`
	rec := do(t, h.Find, http.MethodPost, "/api/meeting-point", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.MeetingPointResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Converged)
	assert.InDelta(t, 1.0, res.Center.Longitude, 1e-6)
	require.Len(t, res.Addresses, 2)
	assert.Equal(t, "Work", res.Addresses[1].Label)
	assert.InDelta(t, res.Addresses[0].DistanceMeters, res.Addresses[1].DistanceMeters, 1)
	require.NotNil(t, res.Isochrone)

	require.Len(t, res.Businesses, 2)
	require.NotNil(t, res.Businesses[0].InReach)
	assert.True(t, *res.Businesses[0].InReach)
	assert.False(t, *res.Businesses[1].InReach)
}

func TestMeetingPointValidation(t *testing.T) {
	h := &MeetingPointHandler{
		Deps:           services.MeetingPointDeps{Businesses: &mock.BusinessSearcher{}},
		DefaultMinutes: 15,
		DefaultProfile: "driving",
	}

	tests := []struct {
		name string
		body string
	}{
		{"one address", `{"addresses":[{"latitude":0,"longitude":0}]}`},
		{"half coordinates", `{"addresses":[{"latitude":0},{"latitude":1,"longitude":1}]}`},
		{"duplicate", `{"addresses":[{"id":"a","latitude":0,"longitude":0},{"id":"a","latitude":1,"longitude":1}]}`},
		{"bad minutes", `{"minutes":90,"addresses":[{"latitude":0,"longitude":0},{"latitude":1,"longitude":1}]}`},
		{"bad profile", `{"profile":"boat","addresses":[{"latitude":0,"longitude":0},{"latitude":1,"longitude":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h.Find, http.MethodPost, "/api/meeting-point", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestMeetingPointUnknownAddress(t *testing.T) {
	h := &MeetingPointHandler{
		Deps: services.MeetingPointDeps{
			Geocoder:   &mock.Geocoder{Results: map[string]domain.Coordinates{}},
			Businesses: &mock.BusinessSearcher{},
		},
		DefaultMinutes: 15,
		DefaultProfile: "driving",
	}

	body := `{"addresses":[{"id":"a","latitude":0,"longitude":0},{"id":"b","query":"nowhere zzz"}]}`
	rec := do(t, h.Find, http.MethodPost, "/api/meeting-point", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "nowhere zzz")
}

func TestCenterOptionsMessageAllowsDefaults(t *testing.T) {
	h := &CenterHandler{}

	rec := do(t, h.Center, http.MethodPost, "/api/center",
		`{"tolerance":0,"max_iterations":0,"points":[{"latitude":0,"longitude":0},{"latitude":0,"longitude":2}]}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h.Center, http.MethodPost, "/api/center",
		`{"max_iterations":-1,"points":[{"latitude":0,"longitude":0}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "0 selects the default")
}
