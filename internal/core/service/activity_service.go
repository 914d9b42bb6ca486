package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
)

// ActivityService manages the activity lifecycle: activities are created as
// drafts, published for members, and canceled when called off.
type ActivityService struct {
	repo   ports.ActivityRepository
	logger zerolog.Logger
}

func NewActivityService(repo ports.ActivityRepository, logger zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, logger: logger}
}

func (s *ActivityService) Create(ctx context.Context, input ports.ActivityInput) (*domain.Activity, error) {
	if msgs := activityProblems(input); len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	now := time.Now().UTC()
	activity := &domain.Activity{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		StartAt:     input.StartAt,
		EndAt:       input.EndAt,
		Price:       input.Price,
		Capacity:    input.Capacity,
		Picture:     input.Picture,
		Status:      domain.ActivityDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, activity)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("activity_id", created.ID).Msg("activity created")
	return created, nil
}

func (s *ActivityService) Update(ctx context.Context, id string, input ports.ActivityInput) (*domain.Activity, error) {
	if msgs := activityProblems(input); len(msgs) > 0 {
		return nil, &domain.ValidationError{Messages: msgs}
	}

	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	activity.Title = input.Title
	activity.Description = input.Description
	activity.Location = input.Location
	activity.StartAt = input.StartAt
	activity.EndAt = input.EndAt
	activity.Price = input.Price
	activity.Capacity = input.Capacity
	if input.Picture != "" {
		activity.Picture = input.Picture
	}
	activity.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *ActivityService) Publish(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.ActivityPublished)
}

func (s *ActivityService) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.ActivityCanceled)
}

func (s *ActivityService) transition(ctx context.Context, id, target string) error {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !activity.CanTransition(target) {
		return domain.ErrInvalidTransition
	}
	if err := s.repo.SetStatus(ctx, id, target); err != nil {
		return err
	}
	s.logger.Info().Str("activity_id", id).Str("status", target).Msg("activity status changed")
	return nil
}

func (s *ActivityService) Get(ctx context.Context, id string) (*domain.Activity, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ActivityService) List(ctx context.Context, page, limit int) (*ports.ActivityPage, error) {
	return s.list(ctx, ports.ActivityFilter{}, page, limit)
}

func (s *ActivityService) GetPublished(ctx context.Context, id string) (*domain.Activity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity.Status != domain.ActivityPublished {
		return nil, domain.ErrActivityNotFound
	}
	return activity, nil
}

func (s *ActivityService) ListPublished(ctx context.Context, page, limit int) (*ports.ActivityPage, error) {
	return s.list(ctx, ports.ActivityFilter{Status: domain.ActivityPublished}, page, limit)
}

func (s *ActivityService) list(ctx context.Context, filter ports.ActivityFilter, page, limit int) (*ports.ActivityPage, error) {
	if page <= 0 || limit <= 0 {
		return nil, domain.NewValidationError("page and limit must be positive")
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Find(ctx, filter, int64(page-1)*int64(limit), int64(limit))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Activity{}
	}

	return &ports.ActivityPage{
		Items:       items,
		TotalCount:  total,
		TotalPages:  (total + int64(limit) - 1) / int64(limit),
		CurrentPage: page,
		Limit:       limit,
	}, nil
}

func activityProblems(input ports.ActivityInput) []string {
	var msgs []string
	if input.Title == "" {
		msgs = append(msgs, "title is required")
	}
	if input.StartAt.IsZero() || input.EndAt.IsZero() {
		msgs = append(msgs, "start_at and end_at are required")
	} else if !input.EndAt.After(input.StartAt) {
		msgs = append(msgs, "end_at must be after start_at")
	}
	if input.Capacity < 0 {
		msgs = append(msgs, "capacity must not be negative")
	}
	if input.Price < 0 {
		msgs = append(msgs, "price must not be negative")
	}
	return msgs
}
