package eta

import "sync"

// SegmentCondition is a congestion/speed reading for one route segment.
type SegmentCondition struct {
	Segment  string  `json:"segment"`
	Status   string  `json:"status"` // light, moderate, heavy
	SpeedKmh float64 `json:"speedKmh"`
}

// TrafficProvider supplies the traffic-condition half of the feature
// bundle. Readings are opaque evidence to this core; only the predictor
// interprets them.
type TrafficProvider interface {
	Snapshot(routeID string) []SegmentCondition
}

// StaticTrafficProvider serves per-route segment readings from memory,
// with a fallback set for routes that have no dedicated readings. It
// stands in for a live traffic feed.
type StaticTrafficProvider struct {
	mu       sync.RWMutex
	byRoute  map[string][]SegmentCondition
	fallback []SegmentCondition
}

// NewStaticTrafficProvider creates a provider with a default fallback
// snapshot.
func NewStaticTrafficProvider() *StaticTrafficProvider {
	return &StaticTrafficProvider{
		byRoute: make(map[string][]SegmentCondition),
		fallback: []SegmentCondition{
			{Segment: "segment1", Status: "moderate", SpeedKmh: 32},
			{Segment: "segment2", Status: "light", SpeedKmh: 56},
		},
	}
}

// SetConditions replaces the readings for a route.
func (p *StaticTrafficProvider) SetConditions(routeID string, conditions []SegmentCondition) {
	p.mu.Lock()
	p.byRoute[routeID] = conditions
	p.mu.Unlock()
}

// Snapshot returns the readings for a route, or the fallback set when none
// were recorded.
func (p *StaticTrafficProvider) Snapshot(routeID string) []SegmentCondition {
	p.mu.RLock()
	defer p.mu.RUnlock()
	conditions, ok := p.byRoute[routeID]
	if !ok {
		conditions = p.fallback
	}
	out := make([]SegmentCondition, len(conditions))
	copy(out, conditions)
	return out
}
