package models

import (
	"sync"
	"time"
)

// EtaPrediction is an arrival estimate for one stop, produced by the
// external predictor. Predictions are advisory: they are cached for display
// and a later prediction for the same stop always replaces the earlier one.
type EtaPrediction struct {
	StopID               string    `json:"stopId"`
	EstimatedArrivalTime time.Time `json:"estimatedArrivalTime"`
	Confidence           float64   `json:"confidence"`
	Reasoning            string    `json:"reasoning"`
}

// TripInstance is one schedulable, bookable occurrence of a route, operated
// by a specific vehicle. Seat state and live position are guarded by a
// per-trip mutex so that concurrent reservations on the same trip serialize
// while different trips never contend.
type TripInstance struct {
	ID      string
	RouteID string

	mu          sync.Mutex
	lat, lng    float64
	totalSeats  int
	bookedSeats int
	predictions map[string]EtaPrediction
}

// NewTripInstance creates a trip with fixed capacity and an initial position.
func NewTripInstance(id, routeID string, lat, lng float64, totalSeats, bookedSeats int) *TripInstance {
	return &TripInstance{
		ID:          id,
		RouteID:     routeID,
		lat:         lat,
		lng:         lng,
		totalSeats:  totalSeats,
		bookedSeats: bookedSeats,
		predictions: make(map[string]EtaPrediction),
	}
}

// TotalSeats returns the fixed capacity of the vehicle.
func (t *TripInstance) TotalSeats() int { return t.totalSeats }

// AvailableSeats returns totalSeats - bookedSeats.
func (t *TripInstance) AvailableSeats() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalSeats - t.bookedSeats
}

// Reserve atomically checks availability and increments the booked-seat
// count. The check and the increment happen under the trip lock, so two
// concurrent reservations can never jointly exceed capacity. On failure it
// reports the number of seats that were available at decision time.
func (t *TripInstance) Reserve(seats int) (newBooked int, available int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	available = t.totalSeats - t.bookedSeats
	if seats > available {
		return t.bookedSeats, available, false
	}
	t.bookedSeats += seats
	return t.bookedSeats, available - seats, true
}

// SetPosition overwrites the vehicle's current coordinates. Fed by the
// external position feed; plausibility of movement is not validated.
func (t *TripInstance) SetPosition(lat, lng float64) {
	t.mu.Lock()
	t.lat, t.lng = lat, lng
	t.mu.Unlock()
}

// Position returns the vehicle's current coordinates.
func (t *TripInstance) Position() (lat, lng float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lat, t.lng
}

// StorePrediction caches the latest prediction for its stop, replacing any
// previous entry regardless of confidence.
func (t *TripInstance) StorePrediction(p EtaPrediction) {
	t.mu.Lock()
	t.predictions[p.StopID] = p
	t.mu.Unlock()
}

// Prediction returns the cached prediction for a stop, if any. Absence
// means "no prediction yet", not an error.
func (t *TripInstance) Prediction(stopID string) (EtaPrediction, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.predictions[stopID]
	return p, ok
}

// Predictions returns a copy of the prediction cache.
func (t *TripInstance) Predictions() map[string]EtaPrediction {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]EtaPrediction, len(t.predictions))
	for k, v := range t.predictions {
		out[k] = v
	}
	return out
}

// Snapshot captures the trip's current state for responses and broadcasts.
func (t *TripInstance) Snapshot() TripSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TripSnapshot{
		ID:               t.ID,
		RouteID:          t.RouteID,
		CurrentLatitude:  t.lat,
		CurrentLongitude: t.lng,
		TotalSeats:       t.totalSeats,
		BookedSeats:      t.bookedSeats,
		AvailableSeats:   t.totalSeats - t.bookedSeats,
	}
}

// TripSnapshot is a point-in-time view of a trip instance.
type TripSnapshot struct {
	ID               string  `json:"id"`
	RouteID          string  `json:"routeId"`
	CurrentLatitude  float64 `json:"currentLatitude"`
	CurrentLongitude float64 `json:"currentLongitude"`
	TotalSeats       int     `json:"totalSeats"`
	BookedSeats      int     `json:"bookedSeats"`
	AvailableSeats   int     `json:"availableSeats"`
}
