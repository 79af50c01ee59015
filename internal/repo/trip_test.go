package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/testutil"
)

// newTestTx opens a transaction against the test database. The transaction is
// rolled back when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; TestMain applies the migrations.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// insertTrip inserts a three-day trip and returns its ID.
func insertTrip(t *testing.T, tx pgx.Tx) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := tx.QueryRow(context.Background(), `
		INSERT INTO trips (destination, starts_at, ends_at, is_confirmed)
		VALUES (@destination, @starts_at, @ends_at, true)
		RETURNING id`,
		pgx.NamedArgs{
			"destination": "Florianópolis",
			"starts_at":   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			"ends_at":     time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC),
		},
	).Scan(&id)
	require.NoError(t, err, "insert trip")
	return id
}

func insertActivity(t *testing.T, tx pgx.Tx, tripID uuid.UUID, title string, at time.Time) {
	t.Helper()
	_, err := tx.Exec(context.Background(),
		`INSERT INTO activities (trip_id, title, occurs_at) VALUES (@trip_id, @title, @occurs_at)`,
		pgx.NamedArgs{"trip_id": tripID, "title": title, "occurs_at": at},
	)
	require.NoError(t, err, "insert activity")
}

func insertLink(t *testing.T, tx pgx.Tx, tripID uuid.UUID, title, url string) {
	t.Helper()
	_, err := tx.Exec(context.Background(),
		`INSERT INTO links (trip_id, title, url) VALUES (@trip_id, @title, @url)`,
		pgx.NamedArgs{"trip_id": tripID, "title": title, "url": url},
	)
	require.NoError(t, err, "insert link")
}

func insertParticipant(t *testing.T, tx pgx.Tx, tripID uuid.UUID, name *string, email string, confirmed bool) {
	t.Helper()
	_, err := tx.Exec(context.Background(), `
		INSERT INTO participants (trip_id, name, email, is_confirmed, is_owner)
		VALUES (@trip_id, @name, @email, @is_confirmed, false)`,
		pgx.NamedArgs{"trip_id": tripID, "name": name, "email": email, "is_confirmed": confirmed},
	)
	require.NoError(t, err, "insert participant")
}

// ghostID is a UUID that is never inserted.
var ghostID = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

func TestTripRepo_GetByID(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	id := insertTrip(t, tx)

	got, err := r.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Florianópolis", got.Destination)
	assert.True(t, got.StartsAt.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got.EndsAt.Equal(time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got.IsConfirmed)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), ghostID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_FindWithActivities_OrderedByOccursAt(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	id := insertTrip(t, tx)

	// Inserted out of order on purpose.
	insertActivity(t, tx, id, "hike", time.Date(2024, 1, 11, 8, 0, 0, 0, time.UTC))
	insertActivity(t, tx, id, "breakfast", time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
	insertActivity(t, tx, id, "museum", time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC))

	trip, activities, err := r.FindWithActivities(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, trip.ID)
	require.Len(t, activities, 3)
	assert.Equal(t, "breakfast", activities[0].Title)
	assert.Equal(t, "museum", activities[1].Title)
	assert.Equal(t, "hike", activities[2].Title)
	for _, a := range activities {
		assert.Equal(t, id, a.TripID)
		assert.NotEqual(t, uuid.Nil, a.ID)
	}
}

func TestTripRepo_FindWithActivities_NoActivities(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	id := insertTrip(t, tx)

	trip, activities, err := r.FindWithActivities(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, trip.ID)
	assert.NotNil(t, activities)
	assert.Empty(t, activities)
}

func TestTripRepo_FindWithActivities_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	_, _, err := r.FindWithActivities(context.Background(), ghostID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_FindWithActivities_ScopedToTrip(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	mine := insertTrip(t, tx)
	other := insertTrip(t, tx)
	insertActivity(t, tx, mine, "mine", time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
	insertActivity(t, tx, other, "other", time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))

	_, activities, err := r.FindWithActivities(context.Background(), mine)

	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "mine", activities[0].Title)
}

func TestTripRepo_FindWithLinks(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	id := insertTrip(t, tx)
	insertLink(t, tx, id, "Airbnb", "https://airbnb.com/rooms/1")
	insertLink(t, tx, id, "Flight", "https://example.com/booking/42")

	trip, links, err := r.FindWithLinks(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, trip.ID)
	require.Len(t, links, 2)
	assert.Equal(t, "Airbnb", links[0].Title)
	assert.Equal(t, "https://airbnb.com/rooms/1", links[0].URL)
	assert.Equal(t, "Flight", links[1].Title)
}

func TestTripRepo_FindWithLinks_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	_, _, err := r.FindWithLinks(context.Background(), ghostID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_FindWithParticipants(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	id := insertTrip(t, tx)
	name := "Ana"
	insertParticipant(t, tx, id, &name, "ana@example.com", true)
	insertParticipant(t, tx, id, nil, "bruno@example.com", false)

	_, participants, err := r.FindWithParticipants(context.Background(), id)

	require.NoError(t, err)
	require.Len(t, participants, 2)

	assert.Equal(t, "ana@example.com", participants[0].Email)
	require.NotNil(t, participants[0].Name)
	assert.Equal(t, "Ana", *participants[0].Name)
	assert.True(t, participants[0].IsConfirmed)

	assert.Equal(t, "bruno@example.com", participants[1].Email)
	assert.Nil(t, participants[1].Name, "unset name should stay nil")
	assert.False(t, participants[1].IsConfirmed)
}

func TestTripRepo_FindWithParticipants_Empty(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	id := insertTrip(t, tx)

	_, participants, err := r.FindWithParticipants(context.Background(), id)

	require.NoError(t, err)
	assert.NotNil(t, participants)
	assert.Empty(t, participants)
}

func TestTripRepo_FindWithParticipants_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	_, _, err := r.FindWithParticipants(context.Background(), ghostID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
