package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routeradar/bus-booking-system/internal/catalog"
	"github.com/routeradar/bus-booking-system/internal/config"
	"github.com/routeradar/bus-booking-system/internal/eta"
	"github.com/routeradar/bus-booking-system/internal/handlers"
	"github.com/routeradar/bus-booking-system/internal/inventory"
	"github.com/routeradar/bus-booking-system/internal/metrics"
	"github.com/routeradar/bus-booking-system/internal/positions"
	"github.com/routeradar/bus-booking-system/internal/router"
	"github.com/routeradar/bus-booking-system/internal/search"
	"github.com/routeradar/bus-booking-system/internal/service"
	"github.com/routeradar/bus-booking-system/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Build the catalog, either from Postgres or the built-in seed network
	store := catalog.NewStore()
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			cancel()
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := catalog.LoadFromPostgres(ctx, pool, store); err != nil {
			cancel()
			log.Fatalf("Failed to load catalog from database: %v", err)
		}
		cancel()
		pool.Close()
		log.Printf("Catalog loaded from database")
	} else {
		if err := catalog.LoadSeedData(store, cfg.AverageSpeedKmh); err != nil {
			log.Fatalf("Failed to load seed data: %v", err)
		}
		log.Printf("Catalog loaded from seed data")
	}
	log.Printf("Catalog ready: %d routes, %d trips", len(store.Routes()), len(store.Trips()))

	collector := metrics.NewCollector()
	collector.CatalogRoutes.Set(float64(len(store.Routes())))
	collector.CatalogTrips.Set(float64(len(store.Trips())))

	// WebSocket hub for live trip updates
	hub := websocket.NewHub()
	go hub.Run()

	// Core components
	engine := search.NewEngine(store, cfg.PricePerKm, cfg.Location)
	seats := inventory.NewManager(store, cfg.MaxSeatsPerBooking)
	recorder := eta.NewPunctualityRecorder()
	traffic := eta.NewStaticTrafficProvider()

	var predictor eta.Predictor
	if cfg.PredictorURL != "" {
		predictor = eta.NewHTTPPredictor(cfg.PredictorURL, &http.Client{Timeout: cfg.PredictorTimeout})
	}
	estimator := eta.NewEstimator(store, recorder, traffic, predictor, cfg.PredictorTimeout)

	tripService := service.New(store, engine, seats, estimator, collector, hub)

	// Live vehicle feed over NATS (optional)
	var feed *positions.Feed
	if cfg.NATSURL != "" {
		feed, err = positions.Connect(cfg.NATSURL, store, hub, recorder, collector)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		if err := feed.Start(cfg.PositionSubject, cfg.ArrivalSubject); err != nil {
			log.Fatalf("Failed to subscribe to vehicle feed: %v", err)
		}
		log.Printf("Subscribed to vehicle feed at %s", cfg.NATSURL)
	}

	// Metrics endpoint (optional)
	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = collector.Serve(cfg.MetricsAddr)
	}

	// Initialize handlers
	h := handlers.NewHandler(tripService)

	// Create router
	r := router.SetupRouter(h, hub)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("API server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if feed != nil {
		feed.Close()
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if metricsSrv != nil {
		metricsSrv.Shutdown(ctx)
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
