// Package catalog owns the lifetime of stops, routes and trip instances.
// It is the single source of truth for route and trip existence: everything
// is created at load time and never deleted during normal operation. Seat
// invariants are not enforced here; that is the inventory manager's job.
package catalog

import (
	"errors"
	"strings"
	"sync"

	"github.com/routeradar/bus-booking-system/internal/models"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateID  = errors.New("duplicate id")
	ErrInvalidRoute = errors.New("route must have at least two stops")
)

// Store is an explicit, process-wide catalog handle passed to the search,
// inventory and estimation components. Routes and stops are read-only after
// load; trip seat counts and positions mutate through the TripInstance's
// own lock, so reads here never contend across trips.
type Store struct {
	mu           sync.RWMutex
	stops        map[string]*models.Stop
	routes       map[string]*models.Route
	routeOrder   []*models.Route
	trips        map[string]*models.TripInstance
	tripsByRoute map[string][]*models.TripInstance
}

// NewStore creates an empty catalog.
func NewStore() *Store {
	return &Store{
		stops:        make(map[string]*models.Stop),
		routes:       make(map[string]*models.Route),
		trips:        make(map[string]*models.TripInstance),
		tripsByRoute: make(map[string][]*models.TripInstance),
	}
}

// AddStop registers a stop. Load-time only.
func (s *Store) AddStop(stop *models.Stop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.stops[stop.ID]; exists {
		return ErrDuplicateID
	}
	s.stops[stop.ID] = stop
	return nil
}

// AddRoute registers a route. Load-time only. The stop sequence must have
// at least two entries; its endpoints define the only origin/destination
// pair the route can satisfy in search.
func (s *Store) AddRoute(route *models.Route) error {
	if len(route.Stops) < 2 {
		return ErrInvalidRoute
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.routes[route.ID]; exists {
		return ErrDuplicateID
	}
	s.routes[route.ID] = route
	s.routeOrder = append(s.routeOrder, route)
	return nil
}

// AddTrip registers a trip instance. Load-time only. The owning route must
// already exist.
func (s *Store) AddTrip(trip *models.TripInstance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.trips[trip.ID]; exists {
		return ErrDuplicateID
	}
	if _, exists := s.routes[trip.RouteID]; !exists {
		return ErrNotFound
	}
	s.trips[trip.ID] = trip
	s.tripsByRoute[trip.RouteID] = append(s.tripsByRoute[trip.RouteID], trip)
	return nil
}

// GetRoute looks up a route by id.
func (s *Store) GetRoute(routeID string) (*models.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	route, ok := s.routes[routeID]
	if !ok {
		return nil, ErrNotFound
	}
	return route, nil
}

// GetTrip looks up a trip instance by id.
func (s *Store) GetTrip(tripID string) (*models.TripInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trip, ok := s.trips[tripID]
	if !ok {
		return nil, ErrNotFound
	}
	return trip, nil
}

// GetStop looks up a stop by id.
func (s *Store) GetStop(stopID string) (*models.Stop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stop, ok := s.stops[stopID]
	if !ok {
		return nil, ErrNotFound
	}
	return stop, nil
}

// Routes returns all routes in load order.
func (s *Store) Routes() []*models.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Route, len(s.routeOrder))
	copy(out, s.routeOrder)
	return out
}

// Trips returns all trip instances grouped by route load order.
func (s *Store) Trips() []*models.TripInstance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.TripInstance
	for _, route := range s.routeOrder {
		out = append(out, s.tripsByRoute[route.ID]...)
	}
	return out
}

// FindRoutesByEndpoints returns all routes whose first stop name equals
// originName and whose last stop name equals destinationName. Matching is
// case-insensitive and exact; no substring or fuzzy matching, no trimming
// beyond what the caller supplies. Routes come back in load order so that
// downstream offer ordering stays stable.
func (s *Store) FindRoutesByEndpoints(originName, destinationName string) []*models.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []*models.Route
	for _, route := range s.routeOrder {
		if strings.EqualFold(route.Origin().Name, originName) &&
			strings.EqualFold(route.Destination().Name, destinationName) {
			matched = append(matched, route)
		}
	}
	return matched
}

// TripsForRoute returns all trip instances referencing a route, in load
// order. A route with no trips yields an empty slice, a valid "routes
// exist, no buses" state.
func (s *Store) TripsForRoute(routeID string) []*models.TripInstance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trips := s.tripsByRoute[routeID]
	out := make([]*models.TripInstance, len(trips))
	copy(out, trips)
	return out
}

// UpdatePosition overwrites a trip's current coordinates from the position
// feed.
func (s *Store) UpdatePosition(tripID string, lat, lng float64) error {
	trip, err := s.GetTrip(tripID)
	if err != nil {
		return err
	}
	trip.SetPosition(lat, lng)
	return nil
}
