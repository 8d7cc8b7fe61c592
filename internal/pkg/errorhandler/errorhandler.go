package errorhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/familytree/gallery-api/internal/pkg/apperror"
	"github.com/familytree/gallery-api/internal/pkg/response"
)

// Handle writes the response for a service error.
// Kinds from apperror map to 404/400/409; anything else is logged and becomes a 500.
func Handle(ctx context.Context, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		response.NotFound(w, apperror.Message(err, "Not found"))
	case errors.Is(err, apperror.ErrValidation):
		LogValidationError(ctx, map[string]string{"error": err.Error()})
		response.Invalid(w, apperror.Message(err, "Invalid request"))
	case errors.Is(err, apperror.ErrConflict):
		response.Conflict(w, apperror.Message(err, "Conflict"))
	case errors.Is(err, context.Canceled):
		log.Warn().
			Str("request_id", getRequestID(ctx)).
			Str("operation", operation).
			Msg("Request cancelled")
	default:
		log.Error().
			Str("request_id", getRequestID(ctx)).
			Str("operation", operation).
			Err(err).
			Msg("Request error")
		response.InternalError(w)
	}
}

// LogDatabaseError logs database errors with context
func LogDatabaseError(ctx context.Context, operation string, err error, query string) {
	log.Error().
		Str("request_id", getRequestID(ctx)).
		Str("operation", operation).
		Str("query", query).
		Err(err).
		Msg("Database error")
}

// LogValidationError logs validation errors with details
func LogValidationError(ctx context.Context, fieldErrors map[string]string) {
	errJSON, _ := json.Marshal(fieldErrors)
	log.Warn().
		Str("request_id", getRequestID(ctx)).
		RawJSON("validation_errors", errJSON).
		Msg("Validation error")
}

type requestIDKey string

// RequestIDKey is the context key the RequestID middleware stores the id under
const RequestIDKey requestIDKey = "request_id"

func getRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return "unknown"
}
