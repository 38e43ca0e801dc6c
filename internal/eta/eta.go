// Package eta orchestrates arrival-time estimation. It assembles a feature
// bundle from current trip and route state and delegates the forecasting
// itself to an injected external predictor; it never fabricates an estimate
// of its own.
package eta

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/routeradar/bus-booking-system/internal/catalog"
	"github.com/routeradar/bus-booking-system/internal/geo"
	"github.com/routeradar/bus-booking-system/internal/models"
)

// ErrPredictionUnavailable covers every predictor failure mode: transport
// errors, timeouts, and malformed output.
var ErrPredictionUnavailable = errors.New("prediction unavailable")

// Estimator builds prediction requests and caches the results per
// (trip, stop) pair. A newer prediction for a stop always supersedes the
// cached one regardless of confidence.
type Estimator struct {
	store     *catalog.Store
	history   HistoryProvider
	traffic   TrafficProvider
	predictor Predictor
	timeout   time.Duration
}

// NewEstimator wires the estimation component. timeout bounds each
// predictor call; zero means the caller's context alone bounds it.
func NewEstimator(store *catalog.Store, history HistoryProvider, traffic TrafficProvider, predictor Predictor, timeout time.Duration) *Estimator {
	return &Estimator{
		store:     store,
		history:   history,
		traffic:   traffic,
		predictor: predictor,
		timeout:   timeout,
	}
}

// PredictEta estimates the arrival time of a trip at a stop given the
// vehicle's current coordinates. The target stop must be served by the
// trip's route. The result is cached on the trip for display; the cache
// write is advisory and harmless if the caller has already gone away.
func (e *Estimator) PredictEta(ctx context.Context, tripID, stopID string, currentLat, currentLng float64) (models.EtaPrediction, error) {
	trip, err := e.store.GetTrip(tripID)
	if err != nil {
		return models.EtaPrediction{}, fmt.Errorf("trip %s: %w", tripID, err)
	}
	route, err := e.store.GetRoute(trip.RouteID)
	if err != nil {
		return models.EtaPrediction{}, fmt.Errorf("route %s: %w", trip.RouteID, err)
	}
	stop := route.StopByID(stopID)
	if stop == nil {
		return models.EtaPrediction{}, fmt.Errorf("stop %s on route %s: %w", stopID, route.ID, catalog.ErrNotFound)
	}
	if e.predictor == nil {
		return models.EtaPrediction{}, fmt.Errorf("%w: no predictor configured", ErrPredictionUnavailable)
	}

	req := PredictionRequest{
		TripID:            trip.ID,
		RouteID:           route.ID,
		StopID:            stop.ID,
		StopLatitude:      stop.Latitude,
		StopLongitude:     stop.Longitude,
		CurrentLatitude:   currentLat,
		CurrentLongitude:  currentLng,
		RemainingKm:       geo.DistanceKm(currentLat, currentLng, stop.Latitude, stop.Longitude),
		Historical:        e.history.Punctuality(route.ID, stop.ID),
		TrafficConditions: e.traffic.Snapshot(route.ID),
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.predictor.Predict(ctx, req)
	if err != nil {
		return models.EtaPrediction{}, fmt.Errorf("%w: %v", ErrPredictionUnavailable, err)
	}
	if resp.Confidence < 0 || resp.Confidence > 1 || resp.EstimatedArrivalTime.IsZero() {
		return models.EtaPrediction{}, fmt.Errorf("%w: predictor returned malformed output", ErrPredictionUnavailable)
	}

	prediction := models.EtaPrediction{
		StopID:               stop.ID,
		EstimatedArrivalTime: resp.EstimatedArrivalTime,
		Confidence:           resp.Confidence,
		Reasoning:            resp.Reasoning,
	}
	trip.StorePrediction(prediction)
	return prediction, nil
}
