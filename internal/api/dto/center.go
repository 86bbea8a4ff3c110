package dto

type CoordinatesDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CenterRequest struct {
	Points        []CoordinatesDTO `json:"points"`
	Method        string           `json:"method"`
	Tolerance     *float64         `json:"tolerance"`
	MaxIterations *int             `json:"max_iterations"`
}

type CenterResponse struct {
	Center     CoordinatesDTO `json:"center"`
	Method     string         `json:"method"`
	Converged  bool           `json:"converged"`
	Iterations int            `json:"iterations"`
}
