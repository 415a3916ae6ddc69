package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/gotube/internal/domain/model"
	"github.com/hszk-dev/gotube/internal/domain/repository"
	"github.com/hszk-dev/gotube/internal/infrastructure/metrics"
)

var (
	// ErrNotOwner is returned when a viewer attempts an owner-scoped mutation
	// on a video they do not own.
	ErrNotOwner = errors.New("viewer does not own this video")

	// ErrNoFieldsToUpdate is returned when an update request carries no
	// changes.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrVideoFileNotUploaded is returned when a create request references a
	// video object that is not present in storage.
	ErrVideoFileNotUploaded = errors.New("video file has not been uploaded")
)

// CreateVideoInput contains the input parameters for creating a video. Both
// locators must reference already-uploaded assets.
type CreateVideoInput struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	VideoFile   model.ContentLocator
	Thumbnail   model.ContentLocator
	Duration    float64
}

// UpdateVideoInput carries a partial update; nil fields are left unchanged.
type UpdateVideoInput struct {
	Title       *string
	Description *string
	Thumbnail   *model.ContentLocator
}

// UploadTicket holds presigned PUT URLs for a pending upload. The client
// uploads directly to storage and then creates the video with the returned
// storage keys.
type UploadTicket struct {
	VideoKey           string
	VideoUploadURL     string
	ThumbnailKey       string
	ThumbnailUploadURL string
}

// MutationService defines the owner-guarded write side of the catalog.
type MutationService interface {
	// RequestUpload generates presigned upload URLs for a new video file and
	// its thumbnail.
	RequestUpload(ctx context.Context, ownerID uuid.UUID, fileName string) (*UploadTicket, error)

	// CreateVideo persists a new video record after its assets are uploaded.
	CreateVideo(ctx context.Context, input CreateVideoInput) (*model.Video, error)

	// UpdateVideo applies a partial update to title, description and
	// thumbnail. Owner only.
	UpdateVideo(ctx context.Context, viewerID, videoID uuid.UUID, input UpdateVideoInput) (*model.Video, error)

	// DeleteVideo removes the video and cascades over its likes, comments
	// and stored assets. Owner only. Failed cascade steps are handed to the
	// cleanup queue for a later compensating pass.
	DeleteVideo(ctx context.Context, viewerID, videoID uuid.UUID) error

	// TogglePublish flips the publish flag and returns the new state. Owner
	// only.
	TogglePublish(ctx context.Context, viewerID, videoID uuid.UUID) (bool, error)
}

// MutationServiceConfig holds configuration for MutationService.
type MutationServiceConfig struct {
	UploadURLExpiry time.Duration
}

// DefaultMutationServiceConfig returns the default configuration.
func DefaultMutationServiceConfig() MutationServiceConfig {
	return MutationServiceConfig{
		UploadURLExpiry: 15 * time.Minute,
	}
}

type mutationService struct {
	videos      repository.VideoRepository
	users       repository.UserRepository
	engagements repository.EngagementRepository
	storage     repository.ObjectStorage
	queue       repository.CleanupQueue

	uploadURLExpiry time.Duration
}

// NewMutationService creates a new MutationService instance.
func NewMutationService(
	videos repository.VideoRepository,
	users repository.UserRepository,
	engagements repository.EngagementRepository,
	storage repository.ObjectStorage,
	queue repository.CleanupQueue,
	cfg MutationServiceConfig,
) MutationService {
	return &mutationService{
		videos:          videos,
		users:           users,
		engagements:     engagements,
		storage:         storage,
		queue:           queue,
		uploadURLExpiry: cfg.UploadURLExpiry,
	}
}

// RequestUpload generates presigned upload URLs for a video and its thumbnail.
func (s *mutationService) RequestUpload(ctx context.Context, ownerID uuid.UUID, fileName string) (*UploadTicket, error) {
	id := uuid.New()
	videoKey := path.Join("videos", id.String(), fileName)
	thumbKey := path.Join("thumbnails", id.String(), "thumbnail.jpg")

	videoURL, err := s.storage.GeneratePresignedUploadURL(ctx, videoKey, s.uploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate video upload URL: %w", err)
	}

	thumbURL, err := s.storage.GeneratePresignedUploadURL(ctx, thumbKey, s.uploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("generate thumbnail upload URL: %w", err)
	}

	return &UploadTicket{
		VideoKey:           videoKey,
		VideoUploadURL:     videoURL,
		ThumbnailKey:       thumbKey,
		ThumbnailUploadURL: thumbURL,
	}, nil
}

// CreateVideo persists a new video after verifying the owner exists and the
// video asset has actually been uploaded.
func (s *mutationService) CreateVideo(ctx context.Context, input CreateVideoInput) (*model.Video, error) {
	video, err := model.NewVideo(input.OwnerID, input.Title, input.Description, input.VideoFile, input.Thumbnail, input.Duration)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("check owner: %w", err)
	}
	if !exists {
		return nil, repository.ErrUserNotFound
	}

	uploaded, err := s.storage.Exists(ctx, input.VideoFile.StorageID)
	if err != nil {
		return nil, fmt.Errorf("check video upload: %w", err)
	}
	if !uploaded {
		return nil, ErrVideoFileNotUploaded
	}

	if err := s.videos.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}

	return video, nil
}

// UpdateVideo applies a partial update after the owner check. When the
// thumbnail is replaced, the old asset is released best-effort.
func (s *mutationService) UpdateVideo(ctx context.Context, viewerID, videoID uuid.UUID, input UpdateVideoInput) (*model.Video, error) {
	if input.Title == nil && input.Description == nil && input.Thumbnail == nil {
		return nil, ErrNoFieldsToUpdate
	}

	video, err := s.loadOwned(ctx, viewerID, videoID)
	if err != nil {
		return nil, err
	}

	var oldThumbnail model.ContentLocator
	if input.Title != nil {
		video.Title = *input.Title
	}
	if input.Description != nil {
		video.Description = *input.Description
	}
	if input.Thumbnail != nil {
		oldThumbnail = video.SetThumbnail(*input.Thumbnail)
	}
	video.UpdatedAt = time.Now()

	if err := s.videos.Update(ctx, video); err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}

	// Release the replaced thumbnail only after the update persisted.
	if input.Thumbnail != nil && !oldThumbnail.IsZero() {
		if err := s.storage.Delete(ctx, oldThumbnail.StorageID); err != nil {
			slog.Warn("failed to release replaced thumbnail",
				"video_id", video.ID,
				"storage_id", oldThumbnail.StorageID,
				"error", err,
			)
		}
	}

	return video, nil
}

// DeleteVideo removes the video row, then runs the cascade steps. Each step
// is idempotent and independent; failures leave work for the queued
// compensating pass instead of failing the delete.
func (s *mutationService) DeleteVideo(ctx context.Context, viewerID, videoID uuid.UUID) error {
	video, err := s.loadOwned(ctx, viewerID, videoID)
	if err != nil {
		return err
	}

	if err := s.videos.Delete(ctx, video.ID); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}

	task := repository.CleanupTask{VideoID: video.ID}

	if err := s.engagements.RemoveVideoLikes(ctx, video.ID); err != nil {
		metrics.CleanupStepsTotal.WithLabelValues(metrics.CleanupStepLikes, metrics.StepStatusError).Inc()
		slog.Warn("failed to remove video likes", "video_id", video.ID, "error", err)
		task.RemoveLikes = true
	} else {
		metrics.CleanupStepsTotal.WithLabelValues(metrics.CleanupStepLikes, metrics.StepStatusSuccess).Inc()
	}

	if err := s.engagements.RemoveVideoComments(ctx, video.ID); err != nil {
		metrics.CleanupStepsTotal.WithLabelValues(metrics.CleanupStepComments, metrics.StepStatusError).Inc()
		slog.Warn("failed to remove video comments", "video_id", video.ID, "error", err)
		task.RemoveComments = true
	} else {
		metrics.CleanupStepsTotal.WithLabelValues(metrics.CleanupStepComments, metrics.StepStatusSuccess).Inc()
	}

	for _, key := range []string{video.VideoFile.StorageID, video.Thumbnail.StorageID} {
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			metrics.CleanupStepsTotal.WithLabelValues(metrics.CleanupStepStorage, metrics.StepStatusError).Inc()
			slog.Warn("failed to release stored asset", "video_id", video.ID, "storage_id", key, "error", err)
			task.StorageKeys = append(task.StorageKeys, key)
		} else {
			metrics.CleanupStepsTotal.WithLabelValues(metrics.CleanupStepStorage, metrics.StepStatusSuccess).Inc()
		}
	}

	if task.Pending() {
		if err := s.queue.PublishCleanupTask(ctx, task); err != nil {
			// The leftovers stay until the next manual sweep.
			slog.Error("failed to enqueue cleanup task",
				"video_id", video.ID,
				"error", err,
			)
		}
	}

	return nil
}

// TogglePublish flips the publish flag and returns the new state.
func (s *mutationService) TogglePublish(ctx context.Context, viewerID, videoID uuid.UUID) (bool, error) {
	video, err := s.loadOwned(ctx, viewerID, videoID)
	if err != nil {
		return false, err
	}

	published := !video.IsPublished
	if err := s.videos.SetPublished(ctx, video.ID, published); err != nil {
		return false, fmt.Errorf("set published: %w", err)
	}

	return published, nil
}

// loadOwned loads a video and enforces the single-owner check. No write
// happens on a mismatch.
func (s *mutationService) loadOwned(ctx context.Context, viewerID, videoID uuid.UUID) (*model.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.OwnerID != viewerID {
		return nil, ErrNotOwner
	}
	return video, nil
}
