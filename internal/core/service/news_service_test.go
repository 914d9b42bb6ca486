package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
)

type stubNewsRepo struct {
	items map[string]*domain.News
	seq   int
}

func newStubNewsRepo() *stubNewsRepo {
	return &stubNewsRepo{items: make(map[string]*domain.News)}
}

func (r *stubNewsRepo) Create(_ context.Context, news *domain.News) (*domain.News, error) {
	r.seq++
	clone := *news
	clone.ID = fmt.Sprintf("news-%d", r.seq)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubNewsRepo) FindByID(_ context.Context, id string) (*domain.News, error) {
	n, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNewsNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *stubNewsRepo) Update(_ context.Context, news *domain.News) error {
	if _, ok := r.items[news.ID]; !ok {
		return domain.ErrNewsNotFound
	}
	clone := *news
	r.items[news.ID] = &clone
	return nil
}

func (r *stubNewsRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNewsNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubNewsRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *stubNewsRepo) Find(_ context.Context, skip, limit int64) ([]domain.News, error) {
	var out []domain.News
	for _, n := range r.items {
		out = append(out, *n)
	}
	if skip >= int64(len(out)) {
		return nil, nil
	}
	out = out[skip:]
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestNewsService_CreateAndGet(t *testing.T) {
	svc := NewNewsService(newStubNewsRepo(), zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.NewsInput{Title: "summer schedule", Content: "doors open at six"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Title != "summer schedule" {
		t.Fatalf("unexpected title: %q", got.Title)
	}
}

func TestNewsService_Create_RequiresTitleAndContent(t *testing.T) {
	svc := NewNewsService(newStubNewsRepo(), zerolog.Nop())

	var ve *domain.ValidationError
	if _, err := svc.Create(context.Background(), ports.NewsInput{Title: "only a title"}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestNewsService_Update_UnknownID(t *testing.T) {
	svc := NewNewsService(newStubNewsRepo(), zerolog.Nop())

	_, err := svc.Update(context.Background(), "ghost", ports.NewsInput{Title: "t", Content: "c"})
	if !errors.Is(err, domain.ErrNewsNotFound) {
		t.Fatalf("expected ErrNewsNotFound, got %v", err)
	}
}

func TestNewsService_Delete(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.NewsInput{Title: "old notice", Content: "superseded"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrNewsNotFound) {
		t.Fatalf("expected ErrNewsNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrNewsNotFound) {
		t.Fatalf("expected ErrNewsNotFound on second delete, got %v", err)
	}
}

func TestNewsService_List_EmptyPage(t *testing.T) {
	svc := NewNewsService(newStubNewsRepo(), zerolog.Nop())

	page, err := svc.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 || page.TotalCount != 0 {
		t.Fatalf("unexpected page: %+v", page)
	}
}
