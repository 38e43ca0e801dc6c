package eta

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeradar/bus-booking-system/internal/catalog"
	"github.com/routeradar/bus-booking-system/internal/models"
)

type fakePredictor struct {
	resp    PredictionResponse
	err     error
	lastReq PredictionRequest
	delay   time.Duration
}

func (f *fakePredictor) Predict(ctx context.Context, req PredictionRequest) (PredictionResponse, error) {
	f.lastReq = req
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return PredictionResponse{}, ctx.Err()
		}
	}
	return f.resp, f.err
}

func testEstimator(t *testing.T, predictor Predictor, timeout time.Duration) (*Estimator, *models.TripInstance, *PunctualityRecorder) {
	t.Helper()
	s := catalog.NewStore()
	stops := []*models.Stop{
		{ID: "stop1", Name: "Delhi ISBT Kashmiri Gate", Latitude: 28.6679, Longitude: 77.2276},
		{ID: "stop2", Name: "Mathura Junction", Latitude: 27.4763, Longitude: 77.6728},
		{ID: "stop3", Name: "Agra ISBT", Latitude: 27.1907, Longitude: 77.9998},
	}
	for _, stop := range stops {
		require.NoError(t, s.AddStop(stop))
	}
	require.NoError(t, s.AddRoute(&models.Route{
		ID: "R1", Name: "Delhi - Agra", Stops: stops,
		DepartureTime: "07:00", AverageDurationHours: 5.5, DistanceKm: 230,
	}))
	trip := models.NewTripInstance("T1", "R1", 27.85, 77.55, 45, 20)
	require.NoError(t, s.AddTrip(trip))

	history := NewPunctualityRecorder()
	return NewEstimator(s, history, NewStaticTrafficProvider(), predictor, timeout), trip, history
}

func TestPredictEtaSuccess(t *testing.T) {
	arrival := time.Date(2024, 1, 10, 11, 42, 0, 0, time.UTC)
	predictor := &fakePredictor{resp: PredictionResponse{
		EstimatedArrivalTime: arrival,
		Confidence:           0.8,
		Reasoning:            "moderate traffic near Mathura",
	}}
	estimator, trip, history := testEstimator(t, predictor, 0)

	history.Observe("R1", "stop2", PunctualitySample{TripID: "busA", DelayMinutes: 2})
	history.Observe("R1", "stop2", PunctualitySample{TripID: "busA", DelayMinutes: 0})

	got, err := estimator.PredictEta(context.Background(), "T1", "stop2", 27.85, 77.55)
	require.NoError(t, err)
	assert.Equal(t, "stop2", got.StopID)
	assert.Equal(t, arrival, got.EstimatedArrivalTime)
	assert.Equal(t, 0.8, got.Confidence)

	// Feature bundle is assembled from catalog state and providers.
	assert.Equal(t, "R1", predictor.lastReq.RouteID)
	assert.Equal(t, 2, predictor.lastReq.Historical.SampleCount)
	assert.Equal(t, 1.0, predictor.lastReq.Historical.MeanDelayMinutes)
	assert.NotEmpty(t, predictor.lastReq.TrafficConditions)
	assert.Greater(t, predictor.lastReq.RemainingKm, 0)

	// Result is cached on the trip for display.
	cached, ok := trip.Prediction("stop2")
	require.True(t, ok)
	assert.Equal(t, got, cached)
}

func TestPredictEtaSupersedesCachedEntry(t *testing.T) {
	first := time.Date(2024, 1, 10, 11, 0, 0, 0, time.UTC)
	second := time.Date(2024, 1, 10, 11, 25, 0, 0, time.UTC)
	predictor := &fakePredictor{resp: PredictionResponse{
		EstimatedArrivalTime: first, Confidence: 0.8, Reasoning: "first",
	}}
	estimator, trip, _ := testEstimator(t, predictor, 0)

	_, err := estimator.PredictEta(context.Background(), "T1", "stop2", 27.85, 77.55)
	require.NoError(t, err)

	// A later, lower-confidence prediction still fully replaces the entry;
	// there is no keep-higher-confidence merge.
	predictor.resp = PredictionResponse{EstimatedArrivalTime: second, Confidence: 0.4, Reasoning: "second"}
	_, err = estimator.PredictEta(context.Background(), "T1", "stop2", 27.80, 77.60)
	require.NoError(t, err)

	cached, ok := trip.Prediction("stop2")
	require.True(t, ok)
	assert.Equal(t, second, cached.EstimatedArrivalTime)
	assert.Equal(t, 0.4, cached.Confidence)
	assert.Equal(t, "second", cached.Reasoning)
	assert.Len(t, trip.Predictions(), 1)
}

func TestPredictEtaNotFound(t *testing.T) {
	estimator, _, _ := testEstimator(t, &fakePredictor{}, 0)

	tests := []struct {
		name   string
		tripID string
		stopID string
	}{
		{name: "unknown trip", tripID: "nope", stopID: "stop2"},
		{name: "stop not on route", tripID: "T1", stopID: "stop99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := estimator.PredictEta(context.Background(), tt.tripID, tt.stopID, 0, 0)
			assert.ErrorIs(t, err, catalog.ErrNotFound)
		})
	}
}

func TestPredictEtaUnavailable(t *testing.T) {
	valid := PredictionResponse{
		EstimatedArrivalTime: time.Date(2024, 1, 10, 11, 0, 0, 0, time.UTC),
		Confidence:           0.7,
	}

	tests := []struct {
		name      string
		predictor *fakePredictor
		timeout   time.Duration
	}{
		{
			name:      "transport failure",
			predictor: &fakePredictor{err: errors.New("connection refused")},
		},
		{
			name:      "timeout",
			predictor: &fakePredictor{resp: valid, delay: 200 * time.Millisecond},
			timeout:   10 * time.Millisecond,
		},
		{
			name:      "confidence above range",
			predictor: &fakePredictor{resp: PredictionResponse{EstimatedArrivalTime: valid.EstimatedArrivalTime, Confidence: 1.3}},
		},
		{
			name:      "negative confidence",
			predictor: &fakePredictor{resp: PredictionResponse{EstimatedArrivalTime: valid.EstimatedArrivalTime, Confidence: -0.1}},
		},
		{
			name:      "zero arrival time",
			predictor: &fakePredictor{resp: PredictionResponse{Confidence: 0.9}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimator, trip, _ := testEstimator(t, tt.predictor, tt.timeout)
			_, err := estimator.PredictEta(context.Background(), "T1", "stop2", 27.85, 77.55)
			assert.ErrorIs(t, err, ErrPredictionUnavailable)
			// A failed prediction never lands in the cache.
			_, ok := trip.Prediction("stop2")
			assert.False(t, ok)
		})
	}
}

func TestPunctualityRecorder(t *testing.T) {
	r := NewPunctualityRecorder()

	assert.Zero(t, r.Punctuality("R1", "stop2").SampleCount)

	for _, delay := range []float64{2, 4, 6} {
		r.Observe("R1", "stop2", PunctualitySample{TripID: "busA", DelayMinutes: delay})
	}
	stats := r.Punctuality("R1", "stop2")
	assert.Equal(t, 3, stats.SampleCount)
	assert.InDelta(t, 4.0, stats.MeanDelayMinutes, 1e-9)
	assert.InDelta(t, 1.632993, stats.StdDevDelayMinutes, 1e-5)
	assert.Equal(t, 6.0, stats.MaxDelayMinutes)
	assert.Len(t, stats.Recent, 3)

	// Tail is bounded.
	for i := 0; i < 20; i++ {
		r.Observe("R1", "stop2", PunctualitySample{TripID: "busA", DelayMinutes: 1})
	}
	assert.Len(t, r.Punctuality("R1", "stop2").Recent, 10)
	assert.Equal(t, 23, r.Punctuality("R1", "stop2").SampleCount)
}
