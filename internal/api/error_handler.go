package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/workledger/timesheet-service/internal/core/domain"
)

// errorResponse mirrors the success envelope with success=false and no data.
type errorResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  any       `json:"metadata,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the three domain error kinds to their deterministic status codes:
//     validation → 400, not found → 404, invalid state → 409.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the standard JSON envelope on every error.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, meta := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{
			Success:   false,
			Message:   msg,
			Timestamp: time.Now().UTC(),
			Metadata:  meta,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, any) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	// Domain error kinds → deterministic HTTP codes, with diagnostic metadata.
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Message, nil
	}

	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		return http.StatusNotFound, notFoundErr.Error(), map[string]string{
			"resource": notFoundErr.Resource,
			"field":    notFoundErr.Field,
			"value":    notFoundErr.Value,
		}
	}

	var stateErr *domain.InvalidStateError
	if errors.As(err, &stateErr) {
		return http.StatusConflict, stateErr.Message, map[string]string{
			"current_status":  stateErr.Current,
			"expected_status": stateErr.Expected,
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", nil
}
