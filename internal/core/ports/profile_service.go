package ports

import (
	"context"

	"github.com/activityhub/membership-api/internal/core/domain"
)

type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	// Update writes username and, when non-empty, picture. No other field is
	// ever touched by a profile update.
	Update(ctx context.Context, userID, username, picture string) error
	ChangePassword(ctx context.Context, userID, current, newPassword, confirm string) error
}
