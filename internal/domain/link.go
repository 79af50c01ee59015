package domain

import "github.com/google/uuid"

// Link is a shared URL attached to a trip (booking confirmations, maps, docs).
type Link struct {
	ID     uuid.UUID
	TripID uuid.UUID
	Title  string
	URL    string
}
