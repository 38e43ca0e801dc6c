// Package search turns the route network plus a journey date into priced,
// time-stamped trip offers.
package search

import (
	"fmt"
	"sort"
	"time"

	"github.com/routeradar/bus-booking-system/internal/catalog"
	"github.com/routeradar/bus-booking-system/internal/models"
)

// Engine matches routes by their endpoints and expands each match against
// the route's trip instances. It only reads the catalog; searching never
// mutates anything, so an abandoned request has no side effects.
type Engine struct {
	store      *catalog.Store
	pricePerKm float64
	location   *time.Location
}

// Result carries the produced offers together with how many routes matched
// the endpoints, so callers can tell "no routes at all" apart from "routes
// exist but no buses run them".
type Result struct {
	Offers        []models.TripOffer `json:"offers"`
	MatchedRoutes int                `json:"matchedRoutes"`
}

// NewEngine creates a search engine over the given catalog. pricePerKm is
// the fare rate applied to each route's nominal distance; location anchors
// the route's departure time-of-day on the journey date.
func NewEngine(store *catalog.Store, pricePerKm float64, location *time.Location) *Engine {
	if location == nil {
		location = time.Local
	}
	return &Engine{store: store, pricePerKm: pricePerKm, location: location}
}

// Search returns one offer per trip instance of every route whose first
// stop equals originName and last stop equals destinationName
// (case-insensitive exact match), sorted ascending by departure time with
// ties kept in catalog enumeration order. Sold-out trips are included with
// availableSeats 0 so the caller can render them as such.
func (e *Engine) Search(originName, destinationName string, journeyDate time.Time) (Result, error) {
	routes := e.store.FindRoutesByEndpoints(originName, destinationName)
	result := Result{MatchedRoutes: len(routes), Offers: []models.TripOffer{}}

	for _, route := range routes {
		departure, err := departureOn(journeyDate, route.DepartureTime, e.location)
		if err != nil {
			return Result{}, fmt.Errorf("route %s has malformed departure time %q: %w",
				route.ID, route.DepartureTime, err)
		}
		arrival := departure.Add(durationFromHours(route.AverageDurationHours))
		price := float64(route.DistanceKm) * e.pricePerKm

		for _, trip := range e.store.TripsForRoute(route.ID) {
			snap := trip.Snapshot()
			result.Offers = append(result.Offers, models.TripOffer{
				TripID:                   trip.ID,
				RouteID:                  route.ID,
				OperatorName:             route.OperatorName,
				BusType:                  route.BusType,
				RouteName:                route.Name,
				DepartureStopName:        route.Origin().Name,
				ArrivalStopName:          route.Destination().Name,
				DepartureDateTime:        departure,
				EstimatedArrivalDateTime: arrival,
				Price:                    price,
				AvailableSeats:           snap.AvailableSeats,
				TotalSeats:               snap.TotalSeats,
				DistanceKm:               route.DistanceKm,
				AverageDurationHours:     route.AverageDurationHours,
			})
		}
	}

	sort.SliceStable(result.Offers, func(i, j int) bool {
		return result.Offers[i].DepartureDateTime.Before(result.Offers[j].DepartureDateTime)
	})
	return result, nil
}

// departureOn anchors a route's "15:04" time-of-day on the journey date.
func departureOn(journeyDate time.Time, timeOfDay string, loc *time.Location) (time.Time, error) {
	tod, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		journeyDate.Year(), journeyDate.Month(), journeyDate.Day(),
		tod.Hour(), tod.Minute(), 0, 0, loc,
	), nil
}

func durationFromHours(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
