package models

// Stop is a named boarding point shared by reference across routes.
// Stops are immutable once created.
type Stop struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LatLng is a geographic point on a route path.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Route is a service pattern: an ordered stop sequence with fixed geometry
// and a nominal schedule. The first stop is the origin and the last stop is
// the destination; those endpoints are the only pair the route can satisfy
// in search. Routes are created at catalog load time and never mutated.
type Route struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	OperatorName         string   `json:"operatorName"`
	BusType              string   `json:"busType"`
	Stops                []*Stop  `json:"stops"`
	Path                 []LatLng `json:"path"`
	DepartureTime        string   `json:"departureTime"` // time of day at the first stop, "15:04"
	AverageDurationHours float64  `json:"averageDurationHours"`
	DistanceKm           int      `json:"distanceKm"`
}

// Origin returns the route's first stop.
func (r *Route) Origin() *Stop { return r.Stops[0] }

// Destination returns the route's last stop.
func (r *Route) Destination() *Stop { return r.Stops[len(r.Stops)-1] }

// StopByID returns the stop with the given id, or nil if the route does not
// serve it.
func (r *Route) StopByID(stopID string) *Stop {
	for _, s := range r.Stops {
		if s.ID == stopID {
			return s
		}
	}
	return nil
}
