package ports

import (
	"context"

	"github.com/activityhub/membership-api/internal/core/domain"
)

// MemberListQuery describes one page of the admin member listing.
// Page is 1-based.
type MemberListQuery struct {
	Search   string
	Disabled bool
	SortAsc  bool
	Page     int
	Limit    int
}

type MemberPage struct {
	Items       []domain.User `json:"users"`
	TotalCount  int64         `json:"total_count"`
	TotalPages  int64         `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
	Limit       int           `json:"limit"`
}

type MemberService interface {
	List(ctx context.Context, query MemberListQuery) (*MemberPage, error)
	SetDisabled(ctx context.Context, userID string, disabled bool) error
	Delete(ctx context.Context, userID string) error
}
