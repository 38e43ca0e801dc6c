package eta

import (
	"math"
	"sync"
	"time"
)

// recentSampleLimit bounds how many raw samples ride along with the running
// statistics in a feature bundle.
const recentSampleLimit = 10

// PunctualitySample is one observed arrival at a stop.
type PunctualitySample struct {
	TripID       string    `json:"tripId"`
	ArrivalTime  time.Time `json:"arrivalTime"`
	DelayMinutes float64   `json:"delayMinutes"`
}

// PunctualityStats summarizes past arrival punctuality for one stop on one
// route: running mean and spread of the delay plus the most recent raw
// samples. Serializable evidence passed through to the predictor.
type PunctualityStats struct {
	SampleCount        int                 `json:"sampleCount"`
	MeanDelayMinutes   float64             `json:"meanDelayMinutes"`
	StdDevDelayMinutes float64             `json:"stdDevDelayMinutes"`
	MaxDelayMinutes    float64             `json:"maxDelayMinutes"`
	Recent             []PunctualitySample `json:"recent,omitempty"`
}

// HistoryProvider supplies the historical-punctuality half of the feature
// bundle.
type HistoryProvider interface {
	Punctuality(routeID, stopID string) PunctualityStats
}

// welfordState accumulates mean and variance incrementally, so arbitrary
// numbers of observations cost O(1) space.
type welfordState struct {
	count int
	mean  float64
	m2    float64
	max   float64
}

func (w *welfordState) update(v float64) {
	w.count++
	delta := v - w.mean
	w.mean += delta / float64(w.count)
	w.m2 += delta * (v - w.mean)
	if abs := math.Abs(v); abs > w.max {
		w.max = abs
	}
}

func (w *welfordState) stdDev() float64 {
	if w.count < 2 {
		return 0
	}
	return math.Sqrt(w.m2 / float64(w.count))
}

// PunctualityRecorder keeps per-(route, stop) delay statistics in memory.
// Observations arrive from whatever records actual arrivals (the position
// feed in this system); reads assemble prediction evidence.
type PunctualityRecorder struct {
	mu    sync.RWMutex
	stats map[string]*welfordState
	tail  map[string][]PunctualitySample
}

// NewPunctualityRecorder creates an empty recorder.
func NewPunctualityRecorder() *PunctualityRecorder {
	return &PunctualityRecorder{
		stats: make(map[string]*welfordState),
		tail:  make(map[string][]PunctualitySample),
	}
}

func historyKey(routeID, stopID string) string { return routeID + "|" + stopID }

// Observe folds one observed arrival into the running statistics for the
// stop and keeps it in the bounded recent-sample tail.
func (r *PunctualityRecorder) Observe(routeID, stopID string, sample PunctualitySample) {
	key := historyKey(routeID, stopID)
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.stats[key]
	if !ok {
		state = &welfordState{}
		r.stats[key] = state
	}
	state.update(sample.DelayMinutes)

	tail := append(r.tail[key], sample)
	if len(tail) > recentSampleLimit {
		tail = tail[len(tail)-recentSampleLimit:]
	}
	r.tail[key] = tail
}

// Punctuality returns the current statistics for a stop. A stop with no
// observations yields zero-valued stats, which is still valid evidence.
func (r *PunctualityRecorder) Punctuality(routeID, stopID string) PunctualityStats {
	key := historyKey(routeID, stopID)
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.stats[key]
	if !ok {
		return PunctualityStats{}
	}
	recent := make([]PunctualitySample, len(r.tail[key]))
	copy(recent, r.tail[key])
	return PunctualityStats{
		SampleCount:        state.count,
		MeanDelayMinutes:   state.mean,
		StdDevDelayMinutes: state.stdDev(),
		MaxDelayMinutes:    state.max,
		Recent:             recent,
	}
}
