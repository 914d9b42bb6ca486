package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/activityhub/membership-api/internal/api/middleware"
	"github.com/activityhub/membership-api/internal/core/domain"
)

type stubAuthService struct {
	registerErr  error
	loginToken   string
	loginUser    *domain.User
	loginErr     error
	loggedOutSID string
}

func (s *stubAuthService) Register(_ context.Context, email, username, _ string) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.User{ID: "user-1", Email: email, Username: username, Role: domain.RoleUser}, nil
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.loginToken, s.loginUser, nil
}

func (s *stubAuthService) Logout(_ context.Context, sessionID string) error {
	s.loggedOutSID = sessionID
	return nil
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, rec := newJSONContext(http.MethodPost, "/v1/auth/register",
		`{"email":"a@x.com","username":"bob","password":"Secret123"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_BadPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, _ := newJSONContext(http.MethodPost, "/v1/auth/register",
		`{"email":"not-an-email","password":"Secret123"}`)

	err := h.Register(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Messages) != 2 {
		t.Fatalf("expected email and username problems, got %v", ve.Messages)
	}
}

func TestAuthHandler_Register_ServiceError(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrDuplicateEmail})
	c, _ := newJSONContext(http.MethodPost, "/v1/auth/register",
		`{"email":"a@x.com","username":"bob","password":"Secret123"}`)

	// Domain errors pass through untouched for the central error handler.
	if err := h.Register(c); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginToken: "signed-token",
		loginUser:  &domain.User{Email: "a@x.com", Username: "bob", Picture: "https://img/p.png"},
	})
	c, rec := newJSONContext(http.MethodPost, "/v1/auth/login",
		`{"email":"a@x.com","password":"Secret123"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body.Token != "signed-token" {
		t.Fatalf("token missing from response: %+v", body)
	}
	if body.User.Username != "bob" || body.User.Email != "a@x.com" {
		t.Fatalf("user missing from response: %+v", body)
	}
}

func TestAuthHandler_Login_ServiceError(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})
	c, _ := newJSONContext(http.MethodPost, "/v1/auth/login",
		`{"email":"a@x.com","password":"nope"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)
	c, rec := newJSONContext(http.MethodPost, "/v1/auth/logout", "")
	c.Set(middleware.CtxSessionID, "sess-1")

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.loggedOutSID != "sess-1" {
		t.Fatalf("service not asked to revoke sess-1, got %q", svc.loggedOutSID)
	}
}

func TestAuthHandler_Logout_WithoutGuard(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, _ := newJSONContext(http.MethodPost, "/v1/auth/logout", "")

	if err := h.Logout(c); !errors.Is(err, domain.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}
