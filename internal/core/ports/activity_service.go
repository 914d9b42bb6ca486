package ports

import (
	"context"
	"time"

	"github.com/activityhub/membership-api/internal/core/domain"
)

type ActivityInput struct {
	Title       string
	Description string
	Location    string
	StartAt     time.Time
	EndAt       time.Time
	Price       int64
	Capacity    int
	Picture     string
}

type ActivityPage struct {
	Items       []domain.Activity `json:"activities"`
	TotalCount  int64             `json:"total_count"`
	TotalPages  int64             `json:"total_pages"`
	CurrentPage int               `json:"current_page"`
	Limit       int               `json:"limit"`
}

type ActivityService interface {
	Create(ctx context.Context, input ActivityInput) (*domain.Activity, error)
	Update(ctx context.Context, id string, input ActivityInput) (*domain.Activity, error)
	Publish(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Activity, error)
	List(ctx context.Context, page, limit int) (*ActivityPage, error)
	// Published variants serve the member-facing surface: only published
	// activities are visible.
	GetPublished(ctx context.Context, id string) (*domain.Activity, error)
	ListPublished(ctx context.Context, page, limit int) (*ActivityPage, error)
}
