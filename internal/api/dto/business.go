package dto

type BusinessSearchRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type BusinessResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Rating      float64        `json:"rating"`
	ReviewCount int            `json:"review_count"`
	Coordinates CoordinatesDTO `json:"coordinates"`
	Categories  []string       `json:"categories"`
	Address     string         `json:"address"`
	ImageURL    string         `json:"image_url,omitempty"`
	URL         string         `json:"url,omitempty"`
	Distance    float64        `json:"distance"`
	InReach     *bool          `json:"in_reach,omitempty"`
}

type BusinessList struct {
	Businesses []BusinessResponse `json:"businesses"`
}

type BusinessSearchResponse struct {
	Data    BusinessList `json:"data"`
	Message string       `json:"message"`
}
