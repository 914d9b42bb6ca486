package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/activityhub/membership-api/internal/api/middleware"
	"github.com/activityhub/membership-api/internal/core/domain"
)

// ctxUser extracts the identity resolved by the Auth middleware. Its absence
// means the guard did not run; fail closed.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.CtxUser).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrNotLoggedIn
	}
	return user, nil
}

func ctxSessionID(c echo.Context) (string, error) {
	sessionID, ok := c.Get(middleware.CtxSessionID).(string)
	if !ok || sessionID == "" {
		return "", domain.ErrNotLoggedIn
	}
	return sessionID, nil
}
