package domain

import "github.com/google/uuid"

// Participant is a person invited to a trip.
// Name is nil until the invitee fills it in on confirmation.
type Participant struct {
	ID          uuid.UUID
	Name        *string
	Email       string
	IsConfirmed bool
}
