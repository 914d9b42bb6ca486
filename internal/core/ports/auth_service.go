package ports

import (
	"context"

	"github.com/activityhub/membership-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, username, password string) (*domain.User, error)
	// Login returns a signed bearer token and the authenticated user. Each
	// successful login mints a fresh session correlator.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, sessionID string) error
}
