package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hszk-dev/gotube/internal/domain/repository"
	"github.com/hszk-dev/gotube/internal/infrastructure/metrics"
)

// CleanupService is the worker's compensating pass over partially failed
// delete cascades. Every step is idempotent, so re-running a task that
// already partially succeeded is safe.
type CleanupService struct {
	engagements repository.EngagementRepository
	storage     repository.ObjectStorage
	maxRetries  int
}

// CleanupServiceConfig holds configuration for CleanupService.
type CleanupServiceConfig struct {
	// MaxRetries is the number of attempts before a task is dropped.
	MaxRetries int
}

// DefaultCleanupServiceConfig returns the default configuration.
func DefaultCleanupServiceConfig() CleanupServiceConfig {
	return CleanupServiceConfig{
		MaxRetries: 3,
	}
}

// NewCleanupService creates a new CleanupService instance.
func NewCleanupService(
	engagements repository.EngagementRepository,
	storage repository.ObjectStorage,
	cfg CleanupServiceConfig,
) *CleanupService {
	return &CleanupService{
		engagements: engagements,
		storage:     storage,
		maxRetries:  cfg.MaxRetries,
	}
}

// ProcessTask re-runs the outstanding cascade steps of one task. Returning an
// error makes the queue republish the task with an incremented retry count;
// tasks past the retry limit are dropped with an error log so the queue does
// not loop forever.
func (s *CleanupService) ProcessTask(ctx context.Context, task repository.CleanupTask) error {
	if task.RetryCount >= s.maxRetries {
		slog.Error("dropping cleanup task after max retries",
			"video_id", task.VideoID,
			"retry_count", task.RetryCount,
			"remove_likes", task.RemoveLikes,
			"remove_comments", task.RemoveComments,
			"storage_keys", task.StorageKeys,
		)
		return nil
	}

	var failed int

	if task.RemoveLikes {
		if err := s.engagements.RemoveVideoLikes(ctx, task.VideoID); err != nil {
			metrics.CleanupStepsTotal.WithLabelValues(metrics.CleanupStepLikes, metrics.StepStatusError).Inc()
			slog.Warn("cleanup: remove likes failed", "video_id", task.VideoID, "error", err)
			failed++
		} else {
			metrics.CleanupStepsTotal.WithLabelValues(metrics.CleanupStepLikes, metrics.StepStatusSuccess).Inc()
		}
	}

	if task.RemoveComments {
		if err := s.engagements.RemoveVideoComments(ctx, task.VideoID); err != nil {
			metrics.CleanupStepsTotal.WithLabelValues(metrics.CleanupStepComments, metrics.StepStatusError).Inc()
			slog.Warn("cleanup: remove comments failed", "video_id", task.VideoID, "error", err)
			failed++
		} else {
			metrics.CleanupStepsTotal.WithLabelValues(metrics.CleanupStepComments, metrics.StepStatusSuccess).Inc()
		}
	}

	for _, key := range task.StorageKeys {
		if err := s.storage.Delete(ctx, key); err != nil {
			metrics.CleanupStepsTotal.WithLabelValues(metrics.CleanupStepStorage, metrics.StepStatusError).Inc()
			slog.Warn("cleanup: release asset failed", "video_id", task.VideoID, "storage_id", key, "error", err)
			failed++
		} else {
			metrics.CleanupStepsTotal.WithLabelValues(metrics.CleanupStepStorage, metrics.StepStatusSuccess).Inc()
		}
	}

	if failed > 0 {
		return fmt.Errorf("cleanup incomplete: %d step(s) failed for video %s", failed, task.VideoID)
	}

	slog.Info("cleanup task completed", "video_id", task.VideoID, "retry_count", task.RetryCount)
	return nil
}
