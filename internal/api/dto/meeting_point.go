package dto

import "github.com/paulmach/orb/geojson"

type AddressRequest struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Query     string   `json:"query"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type MeetingPointRequest struct {
	Addresses []AddressRequest `json:"addresses"`
	Minutes   int              `json:"minutes"`
	Profile   string           `json:"profile"`
}

type AddressResponse struct {
	ID             string         `json:"id"`
	Label          string         `json:"label"`
	Coordinates    CoordinatesDTO `json:"coordinates"`
	DistanceMeters float64        `json:"distance_meters"`
}

type MeetingPointResponse struct {
	Center     CoordinatesDTO             `json:"center"`
	Converged  bool                       `json:"converged"`
	Iterations int                        `json:"iterations"`
	Addresses  []AddressResponse          `json:"addresses"`
	Isochrone  *geojson.FeatureCollection `json:"isochrone,omitempty"`
	Businesses []BusinessResponse         `json:"businesses"`
}
