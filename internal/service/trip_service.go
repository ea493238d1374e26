package service

import (
	"context"
	"errors"

	"github.com/thebiblebus/biblebus-backend/internal/model"
	"github.com/thebiblebus/biblebus-backend/internal/repository"
)

// ErrTripDates rejects a trip whose return date precedes its departure.
var ErrTripDates = errors.New("return date is before departure date")

// TripService handles trip logistics business logic.
type TripService struct {
	tripRepo *repository.TripRepository
}

// NewTripService creates a new TripService.
func NewTripService(tripRepo *repository.TripRepository) *TripService {
	return &TripService{tripRepo: tripRepo}
}

// GetByID retrieves a trip, or nil when missing.
func (s *TripService) GetByID(ctx context.Context, id int) (*model.Trip, error) {
	return s.tripRepo.GetByID(ctx, id)
}

// List retrieves all trips.
func (s *TripService) List(ctx context.Context) ([]model.Trip, error) {
	return s.tripRepo.List(ctx)
}

// Create validates and inserts a new trip.
func (s *TripService) Create(ctx context.Context, t *model.Trip) error {
	if t.ReturnsOn.Before(t.DepartsOn) {
		return ErrTripDates
	}
	return s.tripRepo.Create(ctx, t)
}

// Update validates and modifies an existing trip.
func (s *TripService) Update(ctx context.Context, t *model.Trip) error {
	if t.ReturnsOn.Before(t.DepartsOn) {
		return ErrTripDates
	}
	return s.tripRepo.Update(ctx, t)
}

// Delete removes a trip.
func (s *TripService) Delete(ctx context.Context, id int) error {
	return s.tripRepo.Delete(ctx, id)
}
