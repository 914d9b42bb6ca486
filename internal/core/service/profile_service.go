package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
)

// ProfileService covers the member self-service surface: profile read,
// profile update and password change. A profile update writes username and
// picture only; password changes go exclusively through ChangePassword.
type ProfileService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewProfileService(users ports.UserRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *ProfileService) Update(ctx context.Context, userID, username, picture string) error {
	if username == "" {
		return domain.NewValidationError("username must not be empty")
	}
	return s.users.UpdateProfile(ctx, userID, username, picture)
}

func (s *ProfileService) ChangePassword(ctx context.Context, userID, current, newPassword, confirm string) error {
	// Lookup is by id with no role filter; admins change their own password
	// through the same path as members.
	creds, err := s.users.FindCredentialsByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	if newPassword == "" {
		return domain.NewValidationError("new password is required")
	}
	if newPassword == current {
		return domain.NewValidationError("new password must differ from the current one")
	}
	var msgs []string
	msgs = append(msgs, passwordProblems(newPassword)...)
	if newPassword != confirm {
		msgs = append(msgs, "password confirmation does not match")
	}
	if len(msgs) > 0 {
		return &domain.ValidationError{Messages: msgs}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("password changed")
	return nil
}
