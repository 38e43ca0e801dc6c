package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeradar/bus-booking-system/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	stops := []*models.Stop{
		{ID: "s1", Name: "Delhi ISBT Kashmiri Gate", Latitude: 28.6679, Longitude: 77.2276},
		{ID: "s2", Name: "Mathura Junction", Latitude: 27.4763, Longitude: 77.6728},
		{ID: "s3", Name: "Agra ISBT", Latitude: 27.1907, Longitude: 77.9998},
	}
	for _, stop := range stops {
		require.NoError(t, s.AddStop(stop))
	}
	require.NoError(t, s.AddRoute(&models.Route{
		ID: "r1", Name: "Delhi - Agra", Stops: []*models.Stop{stops[0], stops[1], stops[2]},
		DepartureTime: "07:00", AverageDurationHours: 5.5, DistanceKm: 230,
	}))
	require.NoError(t, s.AddRoute(&models.Route{
		ID: "r2", Name: "Agra - Delhi", Stops: []*models.Stop{stops[2], stops[0]},
		DepartureTime: "16:00", AverageDurationHours: 5.5, DistanceKm: 230,
	}))
	require.NoError(t, s.AddTrip(models.NewTripInstance("t1", "r1", 28.0, 77.5, 45, 20)))
	return s
}

func TestFindRoutesByEndpoints(t *testing.T) {
	s := testStore(t)

	tests := []struct {
		name        string
		origin      string
		destination string
		wantRoutes  []string
	}{
		{
			name:        "exact match",
			origin:      "Delhi ISBT Kashmiri Gate",
			destination: "Agra ISBT",
			wantRoutes:  []string{"r1"},
		},
		{
			name:        "case insensitive",
			origin:      "delhi isbt kashmiri gate",
			destination: "AGRA ISBT",
			wantRoutes:  []string{"r1"},
		},
		{
			name:        "no substring matching",
			origin:      "Delhi",
			destination: "Agra",
			wantRoutes:  nil,
		},
		{
			name:        "intermediate stop is not an endpoint",
			origin:      "Mathura Junction",
			destination: "Agra ISBT",
			wantRoutes:  nil,
		},
		{
			name:        "reverse direction matches the reverse route only",
			origin:      "Agra ISBT",
			destination: "Delhi ISBT Kashmiri Gate",
			wantRoutes:  []string{"r2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := s.FindRoutesByEndpoints(tt.origin, tt.destination)
			var ids []string
			for _, r := range matched {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantRoutes, ids)
		})
	}
}

func TestLookups(t *testing.T) {
	s := testStore(t)

	route, err := s.GetRoute("r1")
	require.NoError(t, err)
	assert.Equal(t, "Delhi - Agra", route.Name)

	_, err = s.GetRoute("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	trip, err := s.GetTrip("t1")
	require.NoError(t, err)
	assert.Equal(t, "r1", trip.RouteID)

	_, err = s.GetTrip("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTripsForRoute(t *testing.T) {
	s := testStore(t)

	trips := s.TripsForRoute("r1")
	require.Len(t, trips, 1)
	assert.Equal(t, "t1", trips[0].ID)

	// A matched route with zero trip instances is a valid state.
	assert.Empty(t, s.TripsForRoute("r2"))
}

func TestAddValidation(t *testing.T) {
	s := testStore(t)

	err := s.AddRoute(&models.Route{ID: "bad", Stops: []*models.Stop{{ID: "s1"}}})
	assert.ErrorIs(t, err, ErrInvalidRoute)

	err = s.AddTrip(models.NewTripInstance("t2", "missing-route", 0, 0, 40, 0))
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.AddTrip(models.NewTripInstance("t1", "r1", 0, 0, 40, 0))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestUpdatePosition(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.UpdatePosition("t1", 27.9, 77.6))
	trip, err := s.GetTrip("t1")
	require.NoError(t, err)
	lat, lng := trip.Position()
	assert.Equal(t, 27.9, lat)
	assert.Equal(t, 77.6, lng)

	assert.ErrorIs(t, s.UpdatePosition("nope", 0, 0), ErrNotFound)
}

func TestLoadSeedData(t *testing.T) {
	s := NewStore()
	require.NoError(t, LoadSeedData(s, 45))

	routes := s.Routes()
	assert.GreaterOrEqual(t, len(routes), 11)

	// Reference scenario network: Delhi -> Agra on route1 with trip
	// busDL01AG1234 at 45 total / 20 booked.
	trip, err := s.GetTrip("busDL01AG1234")
	require.NoError(t, err)
	assert.Equal(t, 45, trip.TotalSeats())
	assert.Equal(t, 25, trip.AvailableSeats())

	matched := s.FindRoutesByEndpoints("Delhi ISBT Kashmiri Gate", "Agra ISBT")
	var ids []string
	for _, r := range matched {
		ids = append(ids, r.ID)
	}
	assert.Contains(t, ids, "route1")
	assert.Contains(t, ids, "route4")

	// Every generated route carries geometry-derived distance and duration.
	for _, r := range routes[11:] {
		assert.Greater(t, r.DistanceKm, 0, "route %s", r.ID)
		assert.Greater(t, r.AverageDurationHours, 0.0, "route %s", r.ID)
	}
}
