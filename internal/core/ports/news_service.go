package ports

import (
	"context"

	"github.com/activityhub/membership-api/internal/core/domain"
)

type NewsInput struct {
	Title   string
	Content string
	Picture string
}

type NewsPage struct {
	Items       []domain.News `json:"news"`
	TotalCount  int64         `json:"total_count"`
	TotalPages  int64         `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
	Limit       int           `json:"limit"`
}

type NewsService interface {
	Create(ctx context.Context, input NewsInput) (*domain.News, error)
	Update(ctx context.Context, id string, input NewsInput) (*domain.News, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.News, error)
	List(ctx context.Context, page, limit int) (*NewsPage, error)
}
