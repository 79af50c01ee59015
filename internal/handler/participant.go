package handler

import (
	"context"
	"errors"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// ListTripParticipants handles GET /trips/{tripId}/participants.
// A trip nobody has joined yet returns {"participants": []}.
func (s *Server) ListTripParticipants(ctx context.Context, req gen.ListTripParticipantsRequestObject) (gen.ListTripParticipantsResponseObject, error) {
	participants, err := s.trips.ListParticipants(ctx, req.TripId)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.ListTripParticipants404JSONResponse{NotFoundJSONResponse: notFoundBody(tripNotFound)}, nil
		}
		return nil, err
	}

	out := make([]gen.Participant, len(participants))
	for i, p := range participants {
		out[i] = gen.Participant{
			Id:          p.ID,
			Name:        p.Name,
			Email:       p.Email,
			IsConfirmed: p.IsConfirmed,
		}
	}
	return gen.ListTripParticipants200JSONResponse{Participants: out}, nil
}
