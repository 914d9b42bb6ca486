package ports

import (
	"context"

	"github.com/activityhub/membership-api/internal/core/domain"
)

// ActivityFilter narrows activity listings. An empty Status matches all.
type ActivityFilter struct {
	Status string
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error)
	FindByID(ctx context.Context, id string) (*domain.Activity, error)
	Update(ctx context.Context, activity *domain.Activity) error
	SetStatus(ctx context.Context, id, status string) error
	Count(ctx context.Context, filter ActivityFilter) (int64, error)
	Find(ctx context.Context, filter ActivityFilter, skip, limit int64) ([]domain.Activity, error)
}
