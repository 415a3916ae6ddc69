package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hszk-dev/gotube/internal/domain/repository"
	"github.com/hszk-dev/gotube/internal/infrastructure/metrics"
)

// ViewSideEffects applies the post-read effects of a successful detail fetch:
// the atomic view-counter increment and the idempotent watch-history add.
// Both effects are best-effort and independent of each other and of the read.
// Failures are logged and counted but never propagated, so a detail response
// already computed is never invalidated by its own side effects.
type ViewSideEffects struct {
	videos repository.VideoRepository
	users  repository.UserRepository
}

// NewViewSideEffects creates a ViewSideEffects coordinator.
func NewViewSideEffects(videos repository.VideoRepository, users repository.UserRepository) *ViewSideEffects {
	return &ViewSideEffects{
		videos: videos,
		users:  users,
	}
}

// Apply runs both effects for one detail fetch. The watch-history add is
// skipped entirely for anonymous viewers; the view increment always runs.
func (e *ViewSideEffects) Apply(ctx context.Context, videoID uuid.UUID, viewer *uuid.UUID) {
	if err := e.videos.IncrementViews(ctx, videoID); err != nil {
		metrics.SideEffectFailuresTotal.WithLabelValues(metrics.EffectViewCount).Inc()
		slog.Warn("view count increment failed",
			"video_id", videoID,
			"error", err,
		)
	}

	if viewer == nil {
		return
	}

	if err := e.users.AddToWatchHistory(ctx, *viewer, videoID); err != nil {
		metrics.SideEffectFailuresTotal.WithLabelValues(metrics.EffectWatchHistory).Inc()
		slog.Warn("watch history add failed",
			"video_id", videoID,
			"viewer_id", *viewer,
			"error", err,
		)
	}
}
