package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/activityhub/membership-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Errors
// carries the aggregated message list of a validation failure.
type errorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
	Detail string   `json:"detail,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders validation failures as a message list.
//   - Logs unexpected errors internally without leaking details to the
//     client; in development mode the full error detail is echoed back.
func NewHTTPErrorHandler(log zerolog.Logger, development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Error(), Errors: ve.Messages})
			return
		}

		code, msg, detail := resolveError(err, log, c, development)
		_ = c.JSON(code, errorResponse{Error: msg, Detail: detail})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, development bool) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), ""
	}

	// Known domain errors map to deterministic HTTP codes. Auth failures are
	// kept distinct: "not logged in", "invalid token" and "session expired"
	// tell the client whether to log in again or just refresh the session.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusBadRequest, err.Error(), ""
	case errors.Is(err, domain.ErrNotLoggedIn),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrSessionExpired),
		errors.Is(err, domain.ErrAccountUnavailable):
		return http.StatusUnauthorized, err.Error(), ""
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, err.Error(), ""
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrActivityNotFound),
		errors.Is(err, domain.ErrNewsNotFound):
		return http.StatusNotFound, err.Error(), ""
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error(), ""
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, domain.ErrUploadFailed.Error(), ""
	}

	// Unexpected error: log the real cause, return a generic message. In
	// development the detail is echoed back for debugging.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	if development {
		return http.StatusInternalServerError, "internal server error", err.Error()
	}
	return http.StatusInternalServerError, "internal server error", ""
}
