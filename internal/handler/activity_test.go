package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
)

// activitiesBody mirrors the wire shape so the test asserts on raw JSON keys
// rather than on the generated types.
type activitiesBody struct {
	Activities []struct {
		Date       string `json:"date"`
		Activities []struct {
			ID       string `json:"id"`
			TripID   string `json:"trip_id"`
			Title    string `json:"title"`
			OccursAt string `json:"occurs_at"`
		} `json:"activities"`
	} `json:"activities"`
}

func TestListTripActivities_200(t *testing.T) {
	trip := tripFixture()
	breakfast := domain.Activity{
		ID: uuid.New(), TripID: trip.ID, Title: "breakfast",
		OccursAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
	}
	buckets := []domain.DayBucket{
		{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Activities: []domain.Activity{breakfast}},
		{Date: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), Activities: []domain.Activity{}},
	}
	var gotID uuid.UUID
	svc := &mockTripServicer{
		listActivities: func(_ context.Context, id uuid.UUID) ([]domain.DayBucket, error) {
			gotID = id
			return buckets, nil
		},
	}

	rec := serve(t, svc, "/trips/"+trip.ID.String()+"/activities")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, trip.ID, gotID)

	var body activitiesBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Activities, 2)

	assert.Equal(t, "2024-01-10", body.Activities[0].Date)
	require.Len(t, body.Activities[0].Activities, 1)
	got := body.Activities[0].Activities[0]
	assert.Equal(t, breakfast.ID.String(), got.ID)
	assert.Equal(t, trip.ID.String(), got.TripID)
	assert.Equal(t, "breakfast", got.Title)
	assert.Equal(t, "2024-01-10T09:00:00Z", got.OccursAt)

	assert.Equal(t, "2024-01-11", body.Activities[1].Date)
	assert.Empty(t, body.Activities[1].Activities)
}

// TestListTripActivities_EmptyDayIsArray checks empty days serialize as []
// and an empty bucket list serializes as [], never null.
func TestListTripActivities_EmptyDayIsArray(t *testing.T) {
	t.Run("empty day", func(t *testing.T) {
		svc := &mockTripServicer{
			listActivities: func(_ context.Context, _ uuid.UUID) ([]domain.DayBucket, error) {
				return []domain.DayBucket{{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}}, nil
			},
		}

		rec := serve(t, svc, "/trips/"+uuid.New().String()+"/activities")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"activities":[{"date":"2024-01-10","activities":[]}]}`, rec.Body.String())
	})

	t.Run("no days", func(t *testing.T) {
		svc := &mockTripServicer{
			listActivities: func(_ context.Context, _ uuid.UUID) ([]domain.DayBucket, error) {
				return []domain.DayBucket{}, nil
			},
		}

		rec := serve(t, svc, "/trips/"+uuid.New().String()+"/activities")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"activities":[]}`, rec.Body.String())
	})
}

// TestListTripActivities_DateInBucketLocation checks the date label comes from
// the bucket's own location, not from UTC.
func TestListTripActivities_DateInBucketLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	svc := &mockTripServicer{
		listActivities: func(_ context.Context, _ uuid.UUID) ([]domain.DayBucket, error) {
			// Midnight in Tokyo is 15:00 the previous day in UTC.
			return []domain.DayBucket{{Date: time.Date(2024, 1, 11, 0, 0, 0, 0, tokyo)}}, nil
		},
	}

	rec := serve(t, svc, "/trips/"+uuid.New().String()+"/activities")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"date":"2024-01-11"`)
}
