package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/gotube/internal/domain/model"
	"github.com/hszk-dev/gotube/internal/domain/repository"
)

func TestCachedVideoRepository_GetByID_CacheHit(t *testing.T) {
	ownerID := uuid.New()
	video := publishedVideo(ownerID)

	inner := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			t.Error("store must not be hit on a cache hit")
			return nil, nil
		},
	}
	videoCache := &mockVideoCache{
		getFn: func(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
			return video, nil
		},
	}

	repo := NewCachedVideoRepository(inner, videoCache, DefaultCachedVideoRepositoryConfig())

	got, err := repo.GetByID(context.Background(), video.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ID != video.ID {
		t.Errorf("ID = %v, want %v", got.ID, video.ID)
	}
}

func TestCachedVideoRepository_GetByID_CacheMissPopulatesCache(t *testing.T) {
	ownerID := uuid.New()
	video := publishedVideo(ownerID)

	inner := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			return video, nil
		},
	}

	var cached *model.Video
	var cachedTTL time.Duration
	videoCache := &mockVideoCache{
		setFn: func(ctx context.Context, v *model.Video, ttl time.Duration) error {
			cached = v
			cachedTTL = ttl
			return nil
		},
	}

	cfg := CachedVideoRepositoryConfig{CacheTTL: 2 * time.Minute}
	repo := NewCachedVideoRepository(inner, videoCache, cfg)

	got, err := repo.GetByID(context.Background(), video.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ID != video.ID {
		t.Errorf("ID = %v, want %v", got.ID, video.ID)
	}
	if cached == nil || cached.ID != video.ID {
		t.Error("expected video to be cached after the miss")
	}
	if cachedTTL != 2*time.Minute {
		t.Errorf("cache TTL = %v, want 2m", cachedTTL)
	}
}

func TestCachedVideoRepository_GetByID_CacheErrorFallsBack(t *testing.T) {
	ownerID := uuid.New()
	video := publishedVideo(ownerID)

	inner := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			return video, nil
		},
	}
	videoCache := &mockVideoCache{
		getFn: func(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
			return nil, errors.New("redis down")
		},
	}

	repo := NewCachedVideoRepository(inner, videoCache, DefaultCachedVideoRepositoryConfig())

	got, err := repo.GetByID(context.Background(), video.ID)
	if err != nil {
		t.Fatalf("cache failure must not fail the read, got %v", err)
	}
	if got.ID != video.ID {
		t.Errorf("ID = %v, want %v", got.ID, video.ID)
	}
}

func TestCachedVideoRepository_GetByID_NotFoundPassthrough(t *testing.T) {
	inner := &mockVideoRepository{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
			return nil, repository.ErrVideoNotFound
		},
	}

	repo := NewCachedVideoRepository(inner, &mockVideoCache{}, DefaultCachedVideoRepositoryConfig())

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, repository.ErrVideoNotFound) {
		t.Errorf("error = %v, want %v", err, repository.ErrVideoNotFound)
	}
}

func TestCachedVideoRepository_MutationsInvalidate(t *testing.T) {
	ownerID := uuid.New()
	video := publishedVideo(ownerID)

	tests := []struct {
		name   string
		mutate func(repo repository.VideoRepository) error
	}{
		{
			name: "update",
			mutate: func(repo repository.VideoRepository) error {
				return repo.Update(context.Background(), video)
			},
		},
		{
			name: "set published",
			mutate: func(repo repository.VideoRepository) error {
				return repo.SetPublished(context.Background(), video.ID, true)
			},
		},
		{
			name: "delete",
			mutate: func(repo repository.VideoRepository) error {
				return repo.Delete(context.Background(), video.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var invalidated bool
			videoCache := &mockVideoCache{
				deleteFn: func(ctx context.Context, videoID uuid.UUID) error {
					if videoID != video.ID {
						t.Errorf("invalidated %v, want %v", videoID, video.ID)
					}
					invalidated = true
					return nil
				},
			}

			repo := NewCachedVideoRepository(&mockVideoRepository{}, videoCache, DefaultCachedVideoRepositoryConfig())

			if err := tt.mutate(repo); err != nil {
				t.Fatalf("mutation failed: %v", err)
			}
			if !invalidated {
				t.Error("expected cache invalidation")
			}
		})
	}
}

func TestCachedVideoRepository_MutationErrorSkipsInvalidation(t *testing.T) {
	inner := &mockVideoRepository{
		updateFn: func(ctx context.Context, video *model.Video) error {
			return repository.ErrVideoNotFound
		},
	}
	videoCache := &mockVideoCache{
		deleteFn: func(ctx context.Context, videoID uuid.UUID) error {
			t.Error("no invalidation expected when the write fails")
			return nil
		},
	}

	repo := NewCachedVideoRepository(inner, videoCache, DefaultCachedVideoRepositoryConfig())

	err := repo.Update(context.Background(), publishedVideo(uuid.New()))
	if !errors.Is(err, repository.ErrVideoNotFound) {
		t.Errorf("error = %v, want %v", err, repository.ErrVideoNotFound)
	}
}

func TestCachedVideoRepository_IncrementViewsPassesThrough(t *testing.T) {
	var incremented bool
	inner := &mockVideoRepository{
		incrementViewsFn: func(ctx context.Context, id uuid.UUID) error {
			incremented = true
			return nil
		},
	}
	videoCache := &mockVideoCache{
		deleteFn: func(ctx context.Context, videoID uuid.UUID) error {
			t.Error("view increments must not invalidate the cache")
			return nil
		},
	}

	repo := NewCachedVideoRepository(inner, videoCache, DefaultCachedVideoRepositoryConfig())

	if err := repo.IncrementViews(context.Background(), uuid.New()); err != nil {
		t.Fatalf("IncrementViews failed: %v", err)
	}
	if !incremented {
		t.Error("expected delegation to the store")
	}
}
