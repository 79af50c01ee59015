// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server, which implements gen.StrictServerInterface.
// Methods are split into resource-specific files (health.go, trip.go, etc.) but
// all share the same Server struct so they can access its dependencies.
package handler

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -generate types,chi-server,strict-server -package gen -o gen/api.gen.go ../../spec/openapi.yaml

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// TripServicer defines the read operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListActivities(ctx context.Context, id uuid.UUID) ([]domain.DayBucket, error)
	ListLinks(ctx context.Context, id uuid.UUID) ([]domain.Link, error)
	ListParticipants(ctx context.Context, id uuid.UUID) ([]domain.Participant, error)
}

// Server implements gen.StrictServerInterface for all API endpoints.
// Wire it with NewHTTPHandler.
type Server struct {
	trips TripServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer) *Server {
	return &Server{trips: trips}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil)
}

// NewHTTPHandler adapts s to the generated chi router.
//
// A malformed path parameter (e.g. a tripId that is not a UUID) is rejected by
// the router with 400 before any handler runs. Errors returned by handlers
// become a 500 with a generic body; the cause is only logged.
// A nil log means slog.Default().
func NewHTTPHandler(s *Server, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	strict := gen.NewStrictHandlerWithOptions(s, nil, gen.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  requestErrorHandler(log),
		ResponseErrorHandlerFunc: responseErrorHandler(log),
	})
	return gen.HandlerWithOptions(strict, gen.ChiServerOptions{
		ErrorHandlerFunc: requestErrorHandler(log),
	})
}
