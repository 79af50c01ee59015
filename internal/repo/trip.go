// Package repo contains all database access logic for the trip planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the read operations for a Trip and its child collections.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
//
// Every FindWith* method loads the trip and the requested collection in a
// single round trip and returns domain.ErrNotFound if the trip does not exist.
// A trip with no children yields an empty, non-nil slice.
type TripRepo interface {
	// GetByID retrieves a single trip by its UUID primary key.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// FindWithActivities returns the trip and its activities ordered by
	// occurs_at ascending.
	FindWithActivities(ctx context.Context, id uuid.UUID) (domain.Trip, []domain.Activity, error)

	// FindWithLinks returns the trip and its links.
	FindWithLinks(ctx context.Context, id uuid.UUID) (domain.Trip, []domain.Link, error)

	// FindWithParticipants returns the trip and its participants projected to
	// id, name, email, and is_confirmed.
	FindWithParticipants(ctx context.Context, id uuid.UUID) (domain.Trip, []domain.Participant, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns is the projection shared by every trip query. scanTrip and the
// FindWith* scanners expect these columns first, in this order.
const tripColumns = `t.id, t.destination, t.starts_at, t.ends_at, t.is_confirmed, t.created_at`

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips t
		WHERE t.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// FindWithActivities joins activities onto the trip row.
// NULLS LAST keeps the all-NULL row of a childless trip out of the way; the
// id tiebreak makes the order stable for activities at the same instant.
func (r *pgTripRepo) FindWithActivities(ctx context.Context, id uuid.UUID) (domain.Trip, []domain.Activity, error) {
	const q = `
		SELECT ` + tripColumns + `, a.id, a.title, a.occurs_at
		FROM trips t
		LEFT JOIN activities a ON a.trip_id = t.id
		WHERE t.id = @id
		ORDER BY a.occurs_at ASC NULLS LAST, a.id`

	var (
		aID       pgtype.UUID
		aTitle    pgtype.Text
		aOccursAt pgtype.Timestamptz
	)
	activities := []domain.Activity{}

	trip, err := r.collect(ctx, q, id, []any{&aID, &aTitle, &aOccursAt}, func() {
		if !aID.Valid {
			return
		}
		activities = append(activities, domain.Activity{
			ID:       uuid.UUID(aID.Bytes),
			TripID:   id,
			Title:    aTitle.String,
			OccursAt: aOccursAt.Time,
		})
	})
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("repo.TripRepo.FindWithActivities: %w", err)
	}
	return trip, activities, nil
}

// FindWithLinks joins links onto the trip row.
func (r *pgTripRepo) FindWithLinks(ctx context.Context, id uuid.UUID) (domain.Trip, []domain.Link, error) {
	const q = `
		SELECT ` + tripColumns + `, l.id, l.title, l.url
		FROM trips t
		LEFT JOIN links l ON l.trip_id = t.id
		WHERE t.id = @id
		ORDER BY l.title NULLS LAST, l.id`

	var (
		lID    pgtype.UUID
		lTitle pgtype.Text
		lURL   pgtype.Text
	)
	links := []domain.Link{}

	trip, err := r.collect(ctx, q, id, []any{&lID, &lTitle, &lURL}, func() {
		if !lID.Valid {
			return
		}
		links = append(links, domain.Link{
			ID:     uuid.UUID(lID.Bytes),
			TripID: id,
			Title:  lTitle.String,
			URL:    lURL.String,
		})
	})
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("repo.TripRepo.FindWithLinks: %w", err)
	}
	return trip, links, nil
}

// FindWithParticipants joins participants onto the trip row. is_owner is
// deliberately not selected.
func (r *pgTripRepo) FindWithParticipants(ctx context.Context, id uuid.UUID) (domain.Trip, []domain.Participant, error) {
	const q = `
		SELECT ` + tripColumns + `, p.id, p.name, p.email, p.is_confirmed
		FROM trips t
		LEFT JOIN participants p ON p.trip_id = t.id
		WHERE t.id = @id
		ORDER BY p.email NULLS LAST, p.id`

	var (
		pID        pgtype.UUID
		pName      pgtype.Text
		pEmail     pgtype.Text
		pConfirmed pgtype.Bool
	)
	participants := []domain.Participant{}

	trip, err := r.collect(ctx, q, id, []any{&pID, &pName, &pEmail, &pConfirmed}, func() {
		if !pID.Valid {
			return
		}
		p := domain.Participant{
			ID:          uuid.UUID(pID.Bytes),
			Email:       pEmail.String,
			IsConfirmed: pConfirmed.Bool,
		}
		if pName.Valid {
			name := pName.String
			p.Name = &name
		}
		participants = append(participants, p)
	})
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("repo.TripRepo.FindWithParticipants: %w", err)
	}
	return trip, participants, nil
}

// collect runs a trip LEFT JOIN child query and scans each row into the trip
// columns followed by childDest. onRow is called after every successful scan
// so the caller can append the child, which is NULL for a childless trip.
// Returns domain.ErrNotFound when the query yields no rows at all.
func (r *pgTripRepo) collect(ctx context.Context, q string, id uuid.UUID, childDest []any, onRow func()) (domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return domain.Trip{}, err
	}
	defer rows.Close()

	var (
		trip  domain.Trip
		found bool
		tr    tripRow
	)
	dest := append(tr.dest(), childDest...)

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return domain.Trip{}, fmt.Errorf("scan: %w", err)
		}
		if !found {
			trip = tr.toDomain()
			found = true
		}
		onRow()
	}
	if err := rows.Err(); err != nil {
		return domain.Trip{}, fmt.Errorf("rows: %w", err)
	}
	if !found {
		return domain.Trip{}, domain.ErrNotFound
	}

	return trip, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// tripRow holds the raw scan targets for tripColumns.
type tripRow struct {
	id          pgtype.UUID
	destination string
	startsAt    pgtype.Timestamptz
	endsAt      pgtype.Timestamptz
	isConfirmed bool
	createdAt   pgtype.Timestamptz
}

func (tr *tripRow) dest() []any {
	return []any{&tr.id, &tr.destination, &tr.startsAt, &tr.endsAt, &tr.isConfirmed, &tr.createdAt}
}

func (tr *tripRow) toDomain() domain.Trip {
	return domain.Trip{
		ID:          uuid.UUID(tr.id.Bytes),
		Destination: tr.destination,
		StartsAt:    tr.startsAt.Time,
		EndsAt:      tr.endsAt.Time,
		IsConfirmed: tr.isConfirmed,
		CreatedAt:   tr.createdAt.Time,
	}
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var tr tripRow
	if err := s.Scan(tr.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	return tr.toDomain(), nil
}
