package handler

import (
	"context"
	"errors"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

const tripNotFound = "trip not found"

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(ctx context.Context, req gen.GetTripRequestObject) (gen.GetTripResponseObject, error) {
	trip, err := s.trips.GetByID(ctx, req.TripId)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetTrip404JSONResponse{NotFoundJSONResponse: notFoundBody(tripNotFound)}, nil
		}
		return nil, err
	}

	return gen.GetTrip200JSONResponse{Trip: tripToResponse(trip)}, nil
}

// tripToResponse converts a domain.Trip into the generated gen.Trip type.
func tripToResponse(t domain.Trip) gen.Trip {
	return gen.Trip{
		Id:          t.ID,
		Destination: t.Destination,
		StartsAt:    t.StartsAt,
		EndsAt:      t.EndsAt,
		IsConfirmed: t.IsConfirmed,
	}
}
