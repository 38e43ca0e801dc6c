package models

import "time"

// TripOffer is an ephemeral search result combining a route and a trip
// instance with a concrete journey date. Computed fresh per search call and
// never persisted.
type TripOffer struct {
	TripID                   string    `json:"tripId"`
	RouteID                  string    `json:"routeId"`
	OperatorName             string    `json:"operatorName"`
	BusType                  string    `json:"busType"`
	RouteName                string    `json:"routeName"`
	DepartureStopName        string    `json:"departureStopName"`
	ArrivalStopName          string    `json:"arrivalStopName"`
	DepartureDateTime        time.Time `json:"departureDateTime"`
	EstimatedArrivalDateTime time.Time `json:"estimatedArrivalDateTime"`
	Price                    float64   `json:"price"`
	AvailableSeats           int       `json:"availableSeats"`
	TotalSeats               int       `json:"totalSeats"`
	DistanceKm               int       `json:"distanceKm"`
	AverageDurationHours     float64   `json:"averageDurationHours"`
}

// PassengerGender is the passenger descriptor enum carried on bookings.
type PassengerGender string

const (
	GenderMale   PassengerGender = "male"
	GenderFemale PassengerGender = "female"
	GenderOther  PassengerGender = "other"
)

// Valid reports whether g is one of the accepted values.
func (g PassengerGender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// BookingRequest is a request to reserve seats on a trip.
type BookingRequest struct {
	TripID          string          `json:"tripId" validate:"required"`
	Seats           int             `json:"seats" validate:"required,min=1"`
	PassengerName   string          `json:"passengerName" validate:"required"`
	PassengerGender PassengerGender `json:"passengerGender" validate:"required"`
}

// BookingResult is the outcome of a reservation attempt. On success the
// snapshot reflects the trip state after the seats were committed.
type BookingResult struct {
	Success     bool          `json:"success"`
	Message     string        `json:"message"`
	BookingID   string        `json:"bookingId,omitempty"`
	Seats       int           `json:"seats,omitempty"`
	UpdatedTrip *TripSnapshot `json:"updatedTrip,omitempty"`
}

// EtaRequest asks for an arrival estimate at a stop given the vehicle's
// current coordinates.
type EtaRequest struct {
	StopID           string  `json:"stopId" validate:"required"`
	CurrentLatitude  float64 `json:"currentLat"`
	CurrentLongitude float64 `json:"currentLng"`
}
