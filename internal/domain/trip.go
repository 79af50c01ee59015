// Package domain contains the core data types for the trip planner API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a planned journey from StartsAt to EndsAt.
// A trip is the aggregate root; activities, links, and participants belong to a trip.
type Trip struct {
	ID          uuid.UUID
	Destination string
	StartsAt    time.Time
	EndsAt      time.Time
	IsConfirmed bool
	CreatedAt   time.Time
}
