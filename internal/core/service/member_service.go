package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
)

// MemberService is the admin-facing query and management layer over member
// accounts. Listing is read-only; count and page fetch share one filter but
// are not transactional, so a concurrent write between them is tolerated.
type MemberService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewMemberService(users ports.UserRepository, logger zerolog.Logger) *MemberService {
	return &MemberService{users: users, logger: logger}
}

func (s *MemberService) List(ctx context.Context, query ports.MemberListQuery) (*ports.MemberPage, error) {
	// limit=0 would make totalPages a division by zero; it is invalid input,
	// not a default. Defaults are applied at the HTTP boundary for absent
	// parameters only.
	if query.Page <= 0 || query.Limit <= 0 {
		return nil, domain.NewValidationError("page and limit must be positive")
	}

	filter := ports.MemberFilter{Search: query.Search, Disabled: query.Disabled}

	total, err := s.users.CountMembers(ctx, filter)
	if err != nil {
		return nil, err
	}

	skip := int64(query.Page-1) * int64(query.Limit)
	items, err := s.users.FindMembers(ctx, filter, query.SortAsc, skip, int64(query.Limit))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.User{}
	}

	totalPages := (total + int64(query.Limit) - 1) / int64(query.Limit)

	return &ports.MemberPage{
		Items:       items,
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: query.Page,
		Limit:       query.Limit,
	}, nil
}

func (s *MemberService) SetDisabled(ctx context.Context, userID string, disabled bool) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.SetDisabled(ctx, userID, disabled); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Bool("disabled", disabled).Msg("member disabled flag updated")
	return nil
}

func (s *MemberService) Delete(ctx context.Context, userID string) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("member deleted")
	return nil
}
