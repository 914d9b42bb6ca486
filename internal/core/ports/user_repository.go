package ports

import (
	"context"

	"github.com/activityhub/membership-api/internal/core/domain"
)

// MemberFilter narrows the member listing. Search is a literal substring
// matched against id, username and email; Disabled selects the soft-disable
// partition (active members by default).
type MemberFilter struct {
	Search   string
	Disabled bool
}

// UserRepository defines persistence for user accounts. Read methods never
// populate PasswordHash; FindCredentialsByEmail is the single path that does.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindCredentialsByEmail loads a member account including its password
	// hash for authentication. Only role=user accounts are matched.
	FindCredentialsByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindCredentialsByID loads any account including its password hash, with
	// no role restriction. Used for password changes of the authenticated
	// principal, admin accounts included.
	FindCredentialsByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, username, picture string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetDisabled(ctx context.Context, id string, disabled bool) error
	Delete(ctx context.Context, id string) error
	CountMembers(ctx context.Context, filter MemberFilter) (int64, error)
	FindMembers(ctx context.Context, filter MemberFilter, sortAsc bool, skip, limit int64) ([]domain.User, error)
}
