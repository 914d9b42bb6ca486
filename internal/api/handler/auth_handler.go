package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/activityhub/membership-api/internal/api/metrics"
	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Picture  string `json:"picture,omitempty"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  profileResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates a new member account.
//
// @Summary      Register a new member
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, err := h.authService.Register(c.Request().Context(), req.Email, req.Username, req.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationResult(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "registration successful"})
}

func registrationResult(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail), errors.Is(err, domain.ErrDuplicateUsername):
		return "duplicate"
	case errors.As(err, &ve):
		return "invalid"
	default:
		return "error"
	}
}

// Login authenticates a member and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token: token,
		User: profileResponse{
			Email:    user.Email,
			Username: user.Username,
			Picture:  user.Picture,
		},
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "bad_password"
	case errors.Is(err, domain.ErrAccountUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

// Logout revokes the current session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), sessionID); err != nil {
		return err
	}
	metrics.SessionsRevokedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}
