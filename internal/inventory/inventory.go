// Package inventory guards the seat-count invariant: for any trip,
// 0 <= bookedSeats <= totalSeats holds at all times, including under
// concurrent reservation attempts.
package inventory

import (
	"errors"
	"fmt"

	"github.com/routeradar/bus-booking-system/internal/catalog"
	"github.com/routeradar/bus-booking-system/internal/models"
)

var (
	ErrInvalidSeatCount     = errors.New("number of seats must be positive")
	ErrExceedsPerRequestCap = errors.New("requested seats exceed the per-booking limit")
)

// InsufficientSeatsError reports a failed capacity check with the exact
// number of seats that were available when the request was evaluated.
type InsufficientSeatsError struct {
	Available int
}

func (e InsufficientSeatsError) Error() string {
	return fmt.Sprintf("not enough seats available: only %d left", e.Available)
}

// Manager performs atomic all-or-nothing seat reservations. The
// availability check and the booked-seat increment execute as one
// indivisible step under the trip's own lock, so two concurrent requests
// can never jointly oversell a trip and no compensation step exists or is
// needed. Reservations are immediate and final; releasing seats is out of
// scope.
type Manager struct {
	store         *catalog.Store
	perRequestCap int
}

// NewManager creates a seat inventory manager. perRequestCap bounds the
// seats a single booking may take; the HTTP layer validates it too, but the
// manager re-validates because it is the invariant owner.
func NewManager(store *catalog.Store, perRequestCap int) *Manager {
	return &Manager{store: store, perRequestCap: perRequestCap}
}

// Reserve books seats on a trip. Preconditions are checked in order, first
// failure wins: trip existence, positive seat count, per-request cap, then
// availability evaluated atomically with the increment. On success the
// returned snapshot reflects the trip state after the seats committed.
func (m *Manager) Reserve(tripID string, seats int) (models.TripSnapshot, error) {
	trip, err := m.store.GetTrip(tripID)
	if err != nil {
		return models.TripSnapshot{}, fmt.Errorf("trip %s: %w", tripID, err)
	}
	if seats <= 0 {
		return models.TripSnapshot{}, ErrInvalidSeatCount
	}
	if seats > m.perRequestCap {
		return models.TripSnapshot{}, fmt.Errorf("%w of %d", ErrExceedsPerRequestCap, m.perRequestCap)
	}

	if _, available, ok := trip.Reserve(seats); !ok {
		return models.TripSnapshot{}, InsufficientSeatsError{Available: available}
	}
	return trip.Snapshot(), nil
}
