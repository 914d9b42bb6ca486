package middleware

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUser      = "user"
	CtxRole      = "role"
	CtxSessionID = "session_id"
)

// Auth is the access guard for protected routes. Per request it walks:
// bearer extraction, signature and expiry verification, session revocation
// check, identity re-hydration from the store. It short-circuits on the
// first failure; disabled and deleted accounts are rejected even when their
// token is still valid.
func Auth(jwtSecret string, users ports.UserRepository, sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrNotLoggedIn
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrNotLoggedIn
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil {
				// Expiry is reported distinctly so clients can tell "session
				// expired" from "invalid token".
				if errors.Is(err, jwt.ErrTokenExpired) {
					return domain.ErrSessionExpired
				}
				return domain.ErrInvalidToken
			}
			if !tkn.Valid {
				return domain.ErrInvalidToken
			}

			userID, _ := claims["sub"].(string)
			sessionID, _ := claims["sid"].(string)
			if userID == "" || sessionID == "" {
				return domain.ErrInvalidToken
			}

			// A logged-out session is gone from the store; its token is
			// treated the same as an expired one.
			session, err := sessions.Get(c.Request().Context(), sessionID)
			if err != nil {
				return err
			}
			if session == nil || !session.IsLogin {
				return domain.ErrSessionExpired
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return domain.ErrAccountUnavailable
				}
				return err
			}
			if user.IsDisabled {
				return domain.ErrAccountUnavailable
			}

			c.Set(CtxUser, user)
			c.Set(CtxRole, user.Role)
			c.Set(CtxSessionID, sessionID)

			return next(c)
		}
	}
}
