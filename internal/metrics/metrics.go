// Package metrics exposes operational counters for the booking core on a
// dedicated registry.
package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	SearchesTotal  prometheus.Counter
	OffersReturned prometheus.Histogram

	ReservationsTotal *prometheus.CounterVec // outcome: confirmed|insufficient_seats|not_found|rejected
	SeatsBooked       prometheus.Counter

	PredictionsTotal   *prometheus.CounterVec // outcome: ok|unavailable
	PredictionDuration prometheus.Histogram

	PositionUpdates prometheus.Counter
	NATSConnected   prometheus.Gauge

	CatalogRoutes prometheus.Gauge
	CatalogTrips  prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		SearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busbooking_searches_total",
			Help: "Total trip searches served.",
		}),
		OffersReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "busbooking_search_offers",
			Help:    "Offers returned per search.",
			Buckets: prometheus.LinearBuckets(0, 2, 10),
		}),
		ReservationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busbooking_reservations_total",
			Help: "Seat reservation attempts by outcome.",
		}, []string{"outcome"}),
		SeatsBooked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busbooking_seats_booked_total",
			Help: "Total seats committed by confirmed reservations.",
		}),
		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busbooking_eta_predictions_total",
			Help: "Arrival predictions by outcome.",
		}, []string{"outcome"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "busbooking_eta_prediction_duration_seconds",
			Help:    "Duration of predictor round trips.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		PositionUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busbooking_position_updates_total",
			Help: "Vehicle position updates applied from the feed.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busbooking_nats_connected",
			Help: "1 if the position-feed NATS connection is established.",
		}),
		CatalogRoutes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busbooking_catalog_routes",
			Help: "Routes loaded in the catalog.",
		}),
		CatalogTrips: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "busbooking_catalog_trips",
			Help: "Trip instances loaded in the catalog.",
		}),
	}

	reg.MustRegister(
		c.SearchesTotal, c.OffersReturned,
		c.ReservationsTotal, c.SeatsBooked,
		c.PredictionsTotal, c.PredictionDuration,
		c.PositionUpdates, c.NATSConnected,
		c.CatalogRoutes, c.CatalogTrips,
	)
	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
