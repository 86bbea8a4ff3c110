package domain

// A user-picked address. ID is the geocoder feature identifier and is
// used to reject the same address being added twice.
type Address struct {
	ID       string
	Label    string
	Location Coordinates
}
