package domain

// Represents a single business record returned by the business search provider.
// Distance is the provider-reported distance in meters from the search point.
// InReach is set by the meeting point planner when the business lies inside
// the travel-time polygon around the meeting point.
type Business struct {
	ID          string
	Name        string
	Rating      float64
	ReviewCount int
	Coordinates Coordinates
	Categories  []string
	Address     string
	ImageURL    string
	URL         string
	Distance    float64
	InReach     bool
}
