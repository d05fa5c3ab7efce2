package geocode

// Coordinate is an approximate map position for a neighborhood.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Resolver maps neighborhood names to coordinates. Every requested name
// appears in the result map; a nil value means the name could not be
// resolved. Unresolved names are excluded from map output only, the
// listings themselves stay in every other view.
type Resolver interface {
	Resolve(names []string) map[string]*Coordinate
}
