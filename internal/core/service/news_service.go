package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
)

type NewsService struct {
	repo   ports.NewsRepository
	logger zerolog.Logger
}

func NewNewsService(repo ports.NewsRepository, logger zerolog.Logger) *NewsService {
	return &NewsService{repo: repo, logger: logger}
}

func (s *NewsService) Create(ctx context.Context, input ports.NewsInput) (*domain.News, error) {
	if input.Title == "" || input.Content == "" {
		return nil, domain.NewValidationError("title and content are required")
	}

	now := time.Now().UTC()
	news := &domain.News{
		Title:     input.Title,
		Content:   input.Content,
		Picture:   input.Picture,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, news)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("news_id", created.ID).Msg("news created")
	return created, nil
}

func (s *NewsService) Update(ctx context.Context, id string, input ports.NewsInput) (*domain.News, error) {
	if input.Title == "" || input.Content == "" {
		return nil, domain.NewValidationError("title and content are required")
	}

	news, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	news.Title = input.Title
	news.Content = input.Content
	if input.Picture != "" {
		news.Picture = input.Picture
	}
	news.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("news_id", id).Msg("news deleted")
	return nil
}

func (s *NewsService) Get(ctx context.Context, id string) (*domain.News, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *NewsService) List(ctx context.Context, page, limit int) (*ports.NewsPage, error) {
	if page <= 0 || limit <= 0 {
		return nil, domain.NewValidationError("page and limit must be positive")
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Find(ctx, int64(page-1)*int64(limit), int64(limit))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.News{}
	}

	return &ports.NewsPage{
		Items:       items,
		TotalCount:  total,
		TotalPages:  (total + int64(limit) - 1) / int64(limit),
		CurrentPage: page,
		Limit:       limit,
	}, nil
}
