package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/routeradar/bus-booking-system/internal/models"
	"github.com/routeradar/bus-booking-system/internal/search"
)

// MockTripService is a mock implementation of TripService
type MockTripService struct {
	mock.Mock
}

func (m *MockTripService) SearchTrips(ctx context.Context, originName, destinationName string, journeyDate time.Time) (search.Result, error) {
	args := m.Called(ctx, originName, destinationName, journeyDate)
	return args.Get(0).(search.Result), args.Error(1)
}

func (m *MockTripService) ReserveSeats(ctx context.Context, req models.BookingRequest) (models.BookingResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.BookingResult), args.Error(1)
}

func (m *MockTripService) GetEtaPrediction(ctx context.Context, tripID string, req models.EtaRequest) (models.EtaPrediction, error) {
	args := m.Called(ctx, tripID, req)
	return args.Get(0).(models.EtaPrediction), args.Error(1)
}

func (m *MockTripService) GetRoutes(ctx context.Context) []*models.Route {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*models.Route)
}

func (m *MockTripService) GetRoute(ctx context.Context, routeID string) (*models.Route, error) {
	args := m.Called(ctx, routeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Route), args.Error(1)
}

func (m *MockTripService) GetTrips(ctx context.Context) []models.TripSnapshot {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.TripSnapshot)
}

func (m *MockTripService) GetTrip(ctx context.Context, tripID string) (models.TripSnapshot, error) {
	args := m.Called(ctx, tripID)
	return args.Get(0).(models.TripSnapshot), args.Error(1)
}

func (m *MockTripService) GetPredictions(ctx context.Context, tripID string) (map[string]models.EtaPrediction, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.EtaPrediction), args.Error(1)
}
