package handler

import (
	"context"
	"errors"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// ListTripLinks handles GET /trips/{tripId}/links.
// The list is returned under the "trip" key, which existing clients read.
func (s *Server) ListTripLinks(ctx context.Context, req gen.ListTripLinksRequestObject) (gen.ListTripLinksResponseObject, error) {
	links, err := s.trips.ListLinks(ctx, req.TripId)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.ListTripLinks404JSONResponse{NotFoundJSONResponse: notFoundBody(tripNotFound)}, nil
		}
		return nil, err
	}

	out := make([]gen.Link, len(links))
	for i, l := range links {
		out[i] = gen.Link{Id: l.ID, TripId: l.TripID, Title: l.Title, Url: l.URL}
	}
	return gen.ListTripLinks200JSONResponse{Trip: out}, nil
}
