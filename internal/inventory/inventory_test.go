package inventory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeradar/bus-booking-system/internal/catalog"
	"github.com/routeradar/bus-booking-system/internal/models"
)

func newManager(t *testing.T, totalSeats, bookedSeats, cap int) (*Manager, *models.TripInstance) {
	t.Helper()
	s := catalog.NewStore()
	stops := []*models.Stop{
		{ID: "s1", Name: "Delhi ISBT Kashmiri Gate"},
		{ID: "s3", Name: "Agra ISBT"},
	}
	for _, stop := range stops {
		require.NoError(t, s.AddStop(stop))
	}
	require.NoError(t, s.AddRoute(&models.Route{
		ID: "R1", Name: "Delhi - Agra", Stops: stops,
		DepartureTime: "07:00", AverageDurationHours: 5.5, DistanceKm: 230,
	}))
	trip := models.NewTripInstance("T1", "R1", 27.85, 77.55, totalSeats, bookedSeats)
	require.NoError(t, s.AddTrip(trip))
	return NewManager(s, cap), trip
}

func TestReserveSuccess(t *testing.T) {
	m, trip := newManager(t, 45, 20, 5)

	snap, err := m.Reserve("T1", 5)
	require.NoError(t, err)
	assert.Equal(t, 25, snap.BookedSeats)
	assert.Equal(t, 20, snap.AvailableSeats)
	assert.Equal(t, 25, trip.Snapshot().BookedSeats)
}

func TestReservePreconditions(t *testing.T) {
	tests := []struct {
		name    string
		tripID  string
		seats   int
		wantErr error
	}{
		{name: "unknown trip", tripID: "nope", seats: 1, wantErr: catalog.ErrNotFound},
		{name: "zero seats", tripID: "T1", seats: 0, wantErr: ErrInvalidSeatCount},
		{name: "negative seats", tripID: "T1", seats: -3, wantErr: ErrInvalidSeatCount},
		{name: "over per-request cap", tripID: "T1", seats: 6, wantErr: ErrExceedsPerRequestCap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, trip := newManager(t, 45, 20, 5)
			_, err := m.Reserve(tt.tripID, tt.seats)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 20, trip.Snapshot().BookedSeats, "failed reservation must not change state")
		})
	}
}

func TestReserveInsufficientSeats(t *testing.T) {
	// Cap raised so the capacity check is the one that fires.
	m, trip := newManager(t, 45, 20, 30)

	_, err := m.Reserve("T1", 30)
	var insufficient InsufficientSeatsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 25, insufficient.Available)
	assert.Contains(t, err.Error(), "only 25 left")
	assert.Equal(t, 20, trip.Snapshot().BookedSeats)
}

func TestReserveExactlyAvailable(t *testing.T) {
	m, trip := newManager(t, 10, 5, 5)

	snap, err := m.Reserve("T1", 5)
	require.NoError(t, err)
	assert.Equal(t, 10, snap.BookedSeats)
	assert.Zero(t, snap.AvailableSeats)

	_, err = m.Reserve("T1", 1)
	var insufficient InsufficientSeatsError
	require.ErrorAs(t, err, &insufficient)
	assert.Zero(t, insufficient.Available)
	assert.Equal(t, 10, trip.Snapshot().BookedSeats)
}

func TestConcurrentReservationsNeverOversell(t *testing.T) {
	const (
		totalSeats = 45
		booked     = 20
		workers    = 100
		perRequest = 2
	)
	m, trip := newManager(t, totalSeats, booked, 5)

	var wg sync.WaitGroup
	committed := make(chan int, workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := m.Reserve("T1", perRequest); err == nil {
				committed <- perRequest
			} else {
				var insufficient InsufficientSeatsError
				if !errors.As(err, &insufficient) {
					t.Errorf("unexpected reservation error: %v", err)
				}
			}
		}()
	}
	wg.Wait()
	close(committed)

	var sum int
	for n := range committed {
		sum += n
	}
	snap := trip.Snapshot()
	assert.Equal(t, booked+sum, snap.BookedSeats)
	assert.LessOrEqual(t, snap.BookedSeats, totalSeats)
	assert.GreaterOrEqual(t, snap.AvailableSeats, 0)
	// 25 seats were free and every request wanted 2, so exactly 12
	// requests can commit.
	assert.Equal(t, 24, sum)
}

func TestConcurrentPairCannotBothSucceed(t *testing.T) {
	// available = 3; two concurrent requests for 2 seats each cannot both
	// fit, so at most one commits.
	m, trip := newManager(t, 5, 2, 5)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Reserve("T1", 2)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 4, trip.Snapshot().BookedSeats)
}
