package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/activityhub/membership-api/internal/core/domain"
)

func invokeErrorHandler(t *testing.T, err error, development bool) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop(), development)(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return rec, body
}

func TestHTTPErrorHandler_DomainErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusBadRequest},
		{domain.ErrDuplicateEmail, http.StatusBadRequest},
		{domain.ErrDuplicateUsername, http.StatusBadRequest},
		{domain.ErrNotLoggedIn, http.StatusUnauthorized},
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{domain.ErrSessionExpired, http.StatusUnauthorized},
		{domain.ErrAccountUnavailable, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrActivityNotFound, http.StatusNotFound},
		{domain.ErrNewsNotFound, http.StatusNotFound},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{domain.ErrUploadFailed, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec, body := invokeErrorHandler(t, tc.err, false)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if body.Error != tc.err.Error() {
				t.Fatalf("expected message %q, got %q", tc.err.Error(), body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_DistinctAuthMessages(t *testing.T) {
	_, invalid := invokeErrorHandler(t, domain.ErrInvalidToken, false)
	_, expired := invokeErrorHandler(t, domain.ErrSessionExpired, false)
	if invalid.Error == expired.Error {
		t.Fatalf("invalid token and expired session share the message %q", invalid.Error)
	}
}

func TestHTTPErrorHandler_ValidationError(t *testing.T) {
	err := &domain.ValidationError{Messages: []string{"email is required", "password is too short"}}

	rec, body := invokeErrorHandler(t, err, false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(body.Errors) != 2 {
		t.Fatalf("expected both messages, got %v", body.Errors)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	rec, body := invokeErrorHandler(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body.Error != "invalid payload" {
		t.Fatalf("unexpected message: %q", body.Error)
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	cause := errors.New("mongo: connection reset")

	rec, body := invokeErrorHandler(t, cause, false)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body.Error != "internal server error" {
		t.Fatalf("unexpected message: %q", body.Error)
	}
	if body.Detail != "" {
		t.Fatalf("internal detail leaked in production mode: %q", body.Detail)
	}

	_, devBody := invokeErrorHandler(t, cause, true)
	if devBody.Detail != cause.Error() {
		t.Fatalf("expected detail in development mode, got %q", devBody.Detail)
	}
}
