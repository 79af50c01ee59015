package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/trip-planner/internal/handler/gen"
)

const (
	codeNotFound   = "not_found"
	codeValidation = "validation_error"
	codeInternal   = "internal_error"
)

// notFoundBody returns the NotFound response for a missing resource.
// The caller supplies the human-readable message (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) gen.NotFoundJSONResponse {
	return gen.NotFoundJSONResponse{Error: gen.ErrorDetail{Code: codeNotFound, Message: message}}
}

// requestErrorHandler answers requests the router could not bind, such as a
// path parameter that is not a valid UUID, with 400.
func requestErrorHandler(log *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		msg := err.Error()
		var invalid *gen.InvalidParamFormatError
		if errors.As(err, &invalid) {
			msg = fmt.Sprintf("%s must be a valid UUID", invalid.ParamName)
		}
		writeError(log, w, r, http.StatusBadRequest, codeValidation, msg, err)
	}
}

// responseErrorHandler answers any error a handler returned with 500. The
// error text is logged but never sent to the client.
func responseErrorHandler(log *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		writeError(log, w, r, http.StatusInternalServerError, codeInternal, "internal server error", err)
	}
}

// writeError logs err and writes an ErrorResponse with the given status.
// 5xx responses log at ERROR; everything else at DEBUG, since client mistakes
// are not operational problems.
func writeError(log *slog.Logger, w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.LogAttrs(r.Context(), level, "error response",
		slog.Int("status", status),
		slog.String("code", code),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", chimiddleware.GetReqID(r.Context())),
		slog.Any("error", err),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := gen.ErrorResponse{Error: gen.ErrorDetail{Code: code, Message: message}}
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		log.ErrorContext(r.Context(), "failed to encode error response", "error", encErr)
	}
}
