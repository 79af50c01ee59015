// Package service contains the business logic for the trip planner API.
// Services orchestrate repo calls and reshape their results.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// TripService implements the read operations for a trip and its collections.
// Each method performs exactly one repo call.
type TripService struct {
	repo repo.TripRepo
	loc  *time.Location
}

// NewTripService constructs a TripService backed by the provided TripRepo.
// loc is the single timezone used to decide which calendar day a timestamp
// falls on; nil means UTC.
func NewTripService(r repo.TripRepo, loc *time.Location) *TripService {
	if loc == nil {
		loc = time.UTC
	}
	return &TripService{repo: r, loc: loc}
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListActivities returns the trip's activities grouped into one bucket per
// calendar day of the trip. Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) ListActivities(ctx context.Context, id uuid.UUID) ([]domain.DayBucket, error) {
	trip, activities, err := s.repo.FindWithActivities(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListActivities: %w", err)
	}
	return domain.GroupActivitiesByDay(trip.StartsAt, trip.EndsAt, s.loc, activities), nil
}

// ListLinks returns the trip's links.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListLinks(ctx context.Context, id uuid.UUID) ([]domain.Link, error) {
	_, links, err := s.repo.FindWithLinks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListLinks: %w", err)
	}
	if links == nil {
		return []domain.Link{}, nil
	}
	return links, nil
}

// ListParticipants returns the trip's participants.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListParticipants(ctx context.Context, id uuid.UUID) ([]domain.Participant, error) {
	_, participants, err := s.repo.FindWithParticipants(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListParticipants: %w", err)
	}
	if participants == nil {
		return []domain.Participant{}, nil
	}
	return participants, nil
}
