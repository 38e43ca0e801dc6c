package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/routeradar/bus-booking-system/internal/catalog"
	"github.com/routeradar/bus-booking-system/internal/eta"
	"github.com/routeradar/bus-booking-system/internal/inventory"
	"github.com/routeradar/bus-booking-system/internal/models"
	"github.com/routeradar/bus-booking-system/internal/service"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	tripService service.TripService
}

// NewHandler creates a new Handler instance
func NewHandler(tripService service.TripService) *Handler {
	return &Handler{
		tripService: tripService,
	}
}

// SearchResponse is the payload for GET /api/search. Message is set only
// when no offers could be produced, and says whether it was the route
// network or the day's schedule that came up empty.
type SearchResponse struct {
	Trips   []models.TripOffer `json:"trips"`
	Message string             `json:"message,omitempty"`
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// SearchTrips handles GET /api/search?from=&to=&date=
func (h *Handler) SearchTrips(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	date := r.URL.Query().Get("date")

	if from == "" || to == "" {
		respondError(w, http.StatusBadRequest, "Query parameters 'from' and 'to' are required")
		return
	}

	journeyDate := time.Now()
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		journeyDate = parsed
	}

	result, err := h.tripService.SearchTrips(r.Context(), from, to, journeyDate)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	resp := SearchResponse{Trips: result.Offers}
	if len(result.Offers) == 0 {
		if result.MatchedRoutes == 0 {
			resp.Message = fmt.Sprintf("No routes found from %s to %s", from, to)
		} else {
			resp.Message = "No buses are scheduled on this route for the selected date"
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// CreateBooking handles POST /api/bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validate request
	if req.TripID == "" {
		respondError(w, http.StatusBadRequest, "Trip ID is required")
		return
	}
	if req.PassengerName == "" {
		respondError(w, http.StatusBadRequest, "Passenger name is required")
		return
	}
	if !req.PassengerGender.Valid() {
		respondError(w, http.StatusBadRequest, "Passenger gender must be male, female or other")
		return
	}

	result, err := h.tripService.ReserveSeats(r.Context(), req)
	if err != nil {
		var insufficient inventory.InsufficientSeatsError
		switch {
		case errors.As(err, &insufficient):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, catalog.ErrNotFound):
			respondError(w, http.StatusNotFound, "Trip not found")
		case errors.Is(err, inventory.ErrInvalidSeatCount), errors.Is(err, inventory.ErrExceedsPerRequestCap):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// PredictEta handles POST /api/trips/{id}/eta
func (h *Handler) PredictEta(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["id"]

	var req models.EtaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.StopID == "" {
		respondError(w, http.StatusBadRequest, "Stop ID is required")
		return
	}

	prediction, err := h.tripService.GetEtaPrediction(r.Context(), tripID, req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, eta.ErrPredictionUnavailable):
			respondError(w, http.StatusBadGateway, "Arrival prediction is currently unavailable")
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, prediction)
}

// GetPredictions handles GET /api/trips/{id}/predictions
func (h *Handler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["id"]

	predictions, err := h.tripService.GetPredictions(r.Context(), tripID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Trip not found")
		return
	}
	respondJSON(w, http.StatusOK, predictions)
}

// GetRoutes handles GET /api/routes
func (h *Handler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	routes := h.tripService.GetRoutes(r.Context())
	respondJSON(w, http.StatusOK, routes)
}

// GetRoute handles GET /api/routes/{id}
func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	routeID := mux.Vars(r)["id"]
	route, err := h.tripService.GetRoute(r.Context(), routeID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Route not found")
		return
	}
	respondJSON(w, http.StatusOK, route)
}

// GetTrips handles GET /api/trips
func (h *Handler) GetTrips(w http.ResponseWriter, r *http.Request) {
	trips := h.tripService.GetTrips(r.Context())
	respondJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /api/trips/{id}
func (h *Handler) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["id"]
	trip, err := h.tripService.GetTrip(r.Context(), tripID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Trip not found")
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
