package eta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PredictionRequest is the serializable evidence bundle handed to the
// external predictor: the target stop's identity and coordinates, the
// vehicle's live position, the remaining straight-line distance, historical
// punctuality for the stop, and the traffic snapshot for the route.
type PredictionRequest struct {
	TripID            string             `json:"tripId"`
	RouteID           string             `json:"routeId"`
	StopID            string             `json:"stopId"`
	StopLatitude      float64            `json:"stopLatitude"`
	StopLongitude     float64            `json:"stopLongitude"`
	CurrentLatitude   float64            `json:"currentLatitude"`
	CurrentLongitude  float64            `json:"currentLongitude"`
	RemainingKm       int                `json:"remainingKm"`
	Historical        PunctualityStats   `json:"historicalData"`
	TrafficConditions []SegmentCondition `json:"trafficConditions"`
}

// PredictionResponse is what the external predictor returns. Confidence
// must lie in [0,1]; anything else is treated as malformed output.
type PredictionResponse struct {
	EstimatedArrivalTime time.Time `json:"estimatedArrivalTime"`
	Confidence           float64   `json:"confidence"`
	Reasoning            string    `json:"reasoning"`
}

// Predictor is the external arrival-time model, injected as a capability so
// the estimation component can be exercised with a deterministic fake. Its
// internal reasoning is out of scope here.
type Predictor interface {
	Predict(ctx context.Context, req PredictionRequest) (PredictionResponse, error)
}

// HTTPPredictor calls a remote prediction service over JSON/HTTP. The
// caller-supplied context bounds the call; there is no retrying here —
// retries with backoff belong to the caller.
type HTTPPredictor struct {
	url    string
	client *http.Client
}

// NewHTTPPredictor creates a predictor client for the given endpoint.
func NewHTTPPredictor(url string, client *http.Client) *HTTPPredictor {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPPredictor{url: url, client: client}
}

func (p *HTTPPredictor) Predict(ctx context.Context, req PredictionRequest) (PredictionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return PredictionResponse{}, fmt.Errorf("failed to encode prediction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return PredictionResponse{}, fmt.Errorf("failed to build prediction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return PredictionResponse{}, fmt.Errorf("predictor call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PredictionResponse{}, fmt.Errorf("predictor returned status %d", resp.StatusCode)
	}

	var out PredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return PredictionResponse{}, fmt.Errorf("failed to decode prediction response: %w", err)
	}
	return out, nil
}
