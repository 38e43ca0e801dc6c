package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/routeradar/bus-booking-system/internal/handlers"
	"github.com/routeradar/bus-booking-system/internal/websocket"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler, hub *websocket.Hub) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Trip search and booking
	api.HandleFunc("/search", h.SearchTrips).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost, http.MethodOptions)

	// Routes
	api.HandleFunc("/routes", h.GetRoutes).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/routes/{id}", h.GetRoute).Methods(http.MethodGet, http.MethodOptions)

	// Trips
	api.HandleFunc("/trips", h.GetTrips).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/trips/{id}", h.GetTrip).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/trips/{id}/eta", h.PredictEta).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/trips/{id}/predictions", h.GetPredictions).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket for real-time updates
	api.HandleFunc("/trips/{id}/ws", func(w http.ResponseWriter, r *http.Request) {
		websocket.ServeTrip(hub, mux.Vars(r)["id"], w, r)
	})

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
