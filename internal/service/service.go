// Package service exposes the core as a single facade interface so the
// HTTP layer and tests depend on one contract rather than on the
// individual components.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/routeradar/bus-booking-system/internal/catalog"
	"github.com/routeradar/bus-booking-system/internal/eta"
	"github.com/routeradar/bus-booking-system/internal/inventory"
	"github.com/routeradar/bus-booking-system/internal/metrics"
	"github.com/routeradar/bus-booking-system/internal/models"
	"github.com/routeradar/bus-booking-system/internal/search"
)

// TripService is the inbound surface of the core, consumed by the HTTP
// handlers and any other UI-facing caller.
type TripService interface {
	SearchTrips(ctx context.Context, originName, destinationName string, journeyDate time.Time) (search.Result, error)
	ReserveSeats(ctx context.Context, req models.BookingRequest) (models.BookingResult, error)
	GetEtaPrediction(ctx context.Context, tripID string, req models.EtaRequest) (models.EtaPrediction, error)
	GetRoutes(ctx context.Context) []*models.Route
	GetRoute(ctx context.Context, routeID string) (*models.Route, error)
	GetTrips(ctx context.Context) []models.TripSnapshot
	GetTrip(ctx context.Context, tripID string) (models.TripSnapshot, error)
	GetPredictions(ctx context.Context, tripID string) (map[string]models.EtaPrediction, error)
}

// Broadcaster pushes trip updates to live watchers after successful
// reservations and fresh predictions. Optional collaborator.
type Broadcaster interface {
	BroadcastSeatUpdate(snapshot models.TripSnapshot)
	BroadcastEtaUpdate(tripID string, prediction models.EtaPrediction)
}

type tripService struct {
	store       *catalog.Store
	engine      *search.Engine
	seats       *inventory.Manager
	estimator   *eta.Estimator
	collector   *metrics.Collector
	broadcaster Broadcaster
}

// New creates the trip service over its components. collector and
// broadcaster may be nil.
func New(store *catalog.Store, engine *search.Engine, seats *inventory.Manager, estimator *eta.Estimator, collector *metrics.Collector, broadcaster Broadcaster) TripService {
	return &tripService{
		store:       store,
		engine:      engine,
		seats:       seats,
		estimator:   estimator,
		collector:   collector,
		broadcaster: broadcaster,
	}
}

func (s *tripService) SearchTrips(ctx context.Context, originName, destinationName string, journeyDate time.Time) (search.Result, error) {
	result, err := s.engine.Search(originName, destinationName, journeyDate)
	if err != nil {
		return search.Result{}, err
	}
	if s.collector != nil {
		s.collector.SearchesTotal.Inc()
		s.collector.OffersReturned.Observe(float64(len(result.Offers)))
	}
	return result, nil
}

func (s *tripService) ReserveSeats(ctx context.Context, req models.BookingRequest) (models.BookingResult, error) {
	snap, err := s.seats.Reserve(req.TripID, req.Seats)
	if err != nil {
		if s.collector != nil {
			s.collector.ReservationsTotal.WithLabelValues(reservationOutcome(err)).Inc()
		}
		return models.BookingResult{}, err
	}
	if s.collector != nil {
		s.collector.ReservationsTotal.WithLabelValues("confirmed").Inc()
		s.collector.SeatsBooked.Add(float64(req.Seats))
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastSeatUpdate(snap)
	}
	return models.BookingResult{
		Success:     true,
		BookingID:   uuid.New().String(),
		Seats:       req.Seats,
		Message:     fmt.Sprintf("Ticket confirmation for %s. %d seat(s) on bus %s.", req.PassengerName, req.Seats, req.TripID),
		UpdatedTrip: &snap,
	}, nil
}

func reservationOutcome(err error) string {
	var insufficient inventory.InsufficientSeatsError
	switch {
	case errors.As(err, &insufficient):
		return "insufficient_seats"
	case errors.Is(err, catalog.ErrNotFound):
		return "not_found"
	default:
		return "rejected"
	}
}

func (s *tripService) GetEtaPrediction(ctx context.Context, tripID string, req models.EtaRequest) (models.EtaPrediction, error) {
	start := time.Now()
	prediction, err := s.estimator.PredictEta(ctx, tripID, req.StopID, req.CurrentLatitude, req.CurrentLongitude)
	if s.collector != nil {
		s.collector.PredictionDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			s.collector.PredictionsTotal.WithLabelValues("unavailable").Inc()
		} else {
			s.collector.PredictionsTotal.WithLabelValues("ok").Inc()
		}
	}
	if err == nil && s.broadcaster != nil {
		s.broadcaster.BroadcastEtaUpdate(tripID, prediction)
	}
	return prediction, err
}

func (s *tripService) GetRoutes(ctx context.Context) []*models.Route {
	return s.store.Routes()
}

func (s *tripService) GetRoute(ctx context.Context, routeID string) (*models.Route, error) {
	return s.store.GetRoute(routeID)
}

func (s *tripService) GetTrips(ctx context.Context) []models.TripSnapshot {
	trips := s.store.Trips()
	out := make([]models.TripSnapshot, 0, len(trips))
	for _, trip := range trips {
		out = append(out, trip.Snapshot())
	}
	return out
}

func (s *tripService) GetTrip(ctx context.Context, tripID string) (models.TripSnapshot, error) {
	trip, err := s.store.GetTrip(tripID)
	if err != nil {
		return models.TripSnapshot{}, err
	}
	return trip.Snapshot(), nil
}

func (s *tripService) GetPredictions(ctx context.Context, tripID string) (map[string]models.EtaPrediction, error) {
	trip, err := s.store.GetTrip(tripID)
	if err != nil {
		return nil, err
	}
	return trip.Predictions(), nil
}
