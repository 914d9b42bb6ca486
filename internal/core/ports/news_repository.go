package ports

import (
	"context"

	"github.com/activityhub/membership-api/internal/core/domain"
)

type NewsRepository interface {
	Create(ctx context.Context, news *domain.News) (*domain.News, error)
	FindByID(ctx context.Context, id string) (*domain.News, error)
	Update(ctx context.Context, news *domain.News) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Find(ctx context.Context, skip, limit int64) ([]domain.News, error)
}
