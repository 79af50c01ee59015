package handler

import (
	"context"
	"errors"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// ListTripActivities handles GET /trips/{tripId}/activities.
// The body has one entry per calendar day of the trip, empty days included.
func (s *Server) ListTripActivities(ctx context.Context, req gen.ListTripActivitiesRequestObject) (gen.ListTripActivitiesResponseObject, error) {
	buckets, err := s.trips.ListActivities(ctx, req.TripId)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.ListTripActivities404JSONResponse{NotFoundJSONResponse: notFoundBody(tripNotFound)}, nil
		}
		return nil, err
	}

	days := make([]gen.DayActivities, len(buckets))
	for i, b := range buckets {
		days[i] = dayToResponse(b)
	}
	return gen.ListTripActivities200JSONResponse{Activities: days}, nil
}

// dayToResponse converts a DayBucket. openapi_types.Date marshals as
// "YYYY-MM-DD", matching DayBucket.Label.
func dayToResponse(b domain.DayBucket) gen.DayActivities {
	activities := make([]gen.Activity, len(b.Activities))
	for i, a := range b.Activities {
		activities[i] = gen.Activity{
			Id:       a.ID,
			TripId:   a.TripID,
			Title:    a.Title,
			OccursAt: a.OccursAt,
		}
	}
	return gen.DayActivities{
		Date:       openapi_types.Date{Time: b.Date},
		Activities: activities,
	}
}
