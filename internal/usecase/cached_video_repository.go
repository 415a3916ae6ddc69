package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/hszk-dev/gotube/internal/domain/model"
	"github.com/hszk-dev/gotube/internal/domain/query"
	"github.com/hszk-dev/gotube/internal/domain/repository"
	"github.com/hszk-dev/gotube/internal/infrastructure/cache"
	"github.com/hszk-dev/gotube/internal/infrastructure/metrics"
)

// CachedVideoRepositoryConfig holds configuration for CachedVideoRepository.
type CachedVideoRepositoryConfig struct {
	// CacheTTL is the TTL for cached video records.
	CacheTTL time.Duration
}

// DefaultCachedVideoRepositoryConfig returns the default configuration.
func DefaultCachedVideoRepositoryConfig() CachedVideoRepositoryConfig {
	return CachedVideoRepositoryConfig{
		CacheTTL: 5 * time.Minute,
	}
}

// cachedVideoRepository decorates a VideoRepository with a cache-aside read
// path for GetByID. Only the base video record is cached; viewer-relative
// enrichment is computed per request and never enters the cache.
//
// IncrementViews passes through without invalidation, so the cached view
// counter may lag the store by up to the TTL.
type cachedVideoRepository struct {
	inner   repository.VideoRepository
	cache   cache.VideoCache
	sfGroup singleflight.Group

	cacheTTL time.Duration
}

// NewCachedVideoRepository wraps a VideoRepository with caching.
func NewCachedVideoRepository(
	inner repository.VideoRepository,
	videoCache cache.VideoCache,
	cfg CachedVideoRepositoryConfig,
) repository.VideoRepository {
	return &cachedVideoRepository{
		inner:    inner,
		cache:    videoCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// Create delegates to the underlying repository. The record is not cached
// until the first read asks for it.
func (r *cachedVideoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.inner.Create(ctx, video)
}

// GetByID retrieves a video through the cache. Singleflight coalesces
// concurrent misses for the same id into one store read.
func (r *cachedVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	result, err, shared := r.sfGroup.Do(id.String(), func() (any, error) {
		return r.getWithCache(ctx, id)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}
	return result.(*model.Video), nil
}

// getWithCache implements the cache-aside pattern.
func (r *cachedVideoRepository) getWithCache(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	video, err := r.cache.Get(ctx, id)
	if err != nil {
		// Cache trouble must not take down the read path.
		slog.Warn("cache get failed, falling back to store",
			"video_id", id,
			"error", err,
		)
	}
	if video != nil {
		return video, nil
	}

	video, err = r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, video, r.cacheTTL); err != nil {
		slog.Warn("failed to cache video",
			"video_id", id,
			"error", err,
		)
	}

	return video, nil
}

// ExecutePlan delegates to the underlying repository. List results are not
// cached; the plan space is too large for useful hit rates.
func (r *cachedVideoRepository) ExecutePlan(ctx context.Context, plan query.Plan, page query.PageRequest) ([]repository.VideoWithOwner, int64, error) {
	return r.inner.ExecutePlan(ctx, plan, page)
}

// Update delegates and invalidates the cached record.
func (r *cachedVideoRepository) Update(ctx context.Context, video *model.Video) error {
	if err := r.inner.Update(ctx, video); err != nil {
		return err
	}
	r.invalidate(ctx, video.ID)
	return nil
}

// SetPublished delegates and invalidates the cached record.
func (r *cachedVideoRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	if err := r.inner.SetPublished(ctx, id, published); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// Delete delegates and invalidates the cached record.
func (r *cachedVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// IncrementViews delegates without invalidation. The counter moves on every
// detail fetch; invalidating here would defeat the cache entirely.
func (r *cachedVideoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.inner.IncrementViews(ctx, id)
}

func (r *cachedVideoRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, id); err != nil {
		slog.Warn("failed to invalidate cached video",
			"video_id", id,
			"error", err,
		)
	}
}

// Compile-time verification that cachedVideoRepository implements VideoRepository.
var _ repository.VideoRepository = (*cachedVideoRepository)(nil)
