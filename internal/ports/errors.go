package ports

import "errors"

// ErrNotFound is returned by adapters when the upstream answered but had no match
// (an address the geocoder cannot resolve).
var ErrNotFound = errors.New("not found")
