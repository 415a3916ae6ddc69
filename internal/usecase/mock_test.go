package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/gotube/internal/domain/model"
	"github.com/hszk-dev/gotube/internal/domain/query"
	"github.com/hszk-dev/gotube/internal/domain/repository"
)

// mockVideoRepository provides a configurable mock for VideoRepository.
type mockVideoRepository struct {
	createFn         func(ctx context.Context, video *model.Video) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	executePlanFn    func(ctx context.Context, plan query.Plan, page query.PageRequest) ([]repository.VideoWithOwner, int64, error)
	updateFn         func(ctx context.Context, video *model.Video) error
	setPublishedFn   func(ctx context.Context, id uuid.UUID, published bool) error
	deleteFn         func(ctx context.Context, id uuid.UUID) error
	incrementViewsFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	if m.createFn != nil {
		return m.createFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockVideoRepository) ExecutePlan(ctx context.Context, plan query.Plan, page query.PageRequest) ([]repository.VideoWithOwner, int64, error) {
	if m.executePlanFn != nil {
		return m.executePlanFn(ctx, plan, page)
	}
	return nil, 0, nil
}

func (m *mockVideoRepository) Update(ctx context.Context, video *model.Video) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	if m.setPublishedFn != nil {
		return m.setPublishedFn(ctx, id, published)
	}
	return nil
}

func (m *mockVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockVideoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if m.incrementViewsFn != nil {
		return m.incrementViewsFn(ctx, id)
	}
	return nil
}

// mockUserRepository provides a configurable mock for UserRepository.
type mockUserRepository struct {
	getByIDFn           func(ctx context.Context, id uuid.UUID) (*model.User, error)
	existsFn            func(ctx context.Context, id uuid.UUID) (bool, error)
	addToWatchHistoryFn func(ctx context.Context, userID, videoID uuid.UUID) error
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.User{ID: id, Username: "someone"}, nil
}

func (m *mockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return true, nil
}

func (m *mockUserRepository) AddToWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	if m.addToWatchHistoryFn != nil {
		return m.addToWatchHistoryFn(ctx, userID, videoID)
	}
	return nil
}

// mockEngagementRepository provides a configurable mock for EngagementRepository.
type mockEngagementRepository struct {
	likerIDsFn            func(ctx context.Context, videoID uuid.UUID) ([]uuid.UUID, error)
	subscriberIDsFn       func(ctx context.Context, channelID uuid.UUID) ([]uuid.UUID, error)
	removeVideoLikesFn    func(ctx context.Context, videoID uuid.UUID) error
	removeVideoCommentsFn func(ctx context.Context, videoID uuid.UUID) error
}

func (m *mockEngagementRepository) LikerIDs(ctx context.Context, videoID uuid.UUID) ([]uuid.UUID, error) {
	if m.likerIDsFn != nil {
		return m.likerIDsFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockEngagementRepository) SubscriberIDs(ctx context.Context, channelID uuid.UUID) ([]uuid.UUID, error) {
	if m.subscriberIDsFn != nil {
		return m.subscriberIDsFn(ctx, channelID)
	}
	return nil, nil
}

func (m *mockEngagementRepository) RemoveVideoLikes(ctx context.Context, videoID uuid.UUID) error {
	if m.removeVideoLikesFn != nil {
		return m.removeVideoLikesFn(ctx, videoID)
	}
	return nil
}

func (m *mockEngagementRepository) RemoveVideoComments(ctx context.Context, videoID uuid.UUID) error {
	if m.removeVideoCommentsFn != nil {
		return m.removeVideoCommentsFn(ctx, videoID)
	}
	return nil
}

// mockObjectStorage provides a configurable mock for ObjectStorage.
type mockObjectStorage struct {
	generatePresignedUploadURLFn func(ctx context.Context, key string, expiry time.Duration) (string, error)
	deleteFn                     func(ctx context.Context, key string) error
	existsFn                     func(ctx context.Context, key string) (bool, error)
}

func (m *mockObjectStorage) GeneratePresignedUploadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if m.generatePresignedUploadURLFn != nil {
		return m.generatePresignedUploadURLFn(ctx, key, expiry)
	}
	return "http://example.com/upload", nil
}

func (m *mockObjectStorage) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

func (m *mockObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return true, nil
}

// mockCleanupQueue provides a configurable mock for CleanupQueue.
type mockCleanupQueue struct {
	publishCleanupTaskFn  func(ctx context.Context, task repository.CleanupTask) error
	consumeCleanupTasksFn func(ctx context.Context, handler func(task repository.CleanupTask) error) error
}

func (m *mockCleanupQueue) PublishCleanupTask(ctx context.Context, task repository.CleanupTask) error {
	if m.publishCleanupTaskFn != nil {
		return m.publishCleanupTaskFn(ctx, task)
	}
	return nil
}

func (m *mockCleanupQueue) ConsumeCleanupTasks(ctx context.Context, handler func(task repository.CleanupTask) error) error {
	if m.consumeCleanupTasksFn != nil {
		return m.consumeCleanupTasksFn(ctx, handler)
	}
	return nil
}

func (m *mockCleanupQueue) Close() error {
	return nil
}

// mockVideoCache provides a configurable mock for cache.VideoCache.
type mockVideoCache struct {
	getFn    func(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	setFn    func(ctx context.Context, video *model.Video, ttl time.Duration) error
	deleteFn func(ctx context.Context, videoID uuid.UUID) error
}

func (m *mockVideoCache) Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if m.getFn != nil {
		return m.getFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockVideoCache) Set(ctx context.Context, video *model.Video, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, video, ttl)
	}
	return nil
}

func (m *mockVideoCache) Delete(ctx context.Context, videoID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, videoID)
	}
	return nil
}

// publishedVideo builds a published video owned by ownerID for tests.
func publishedVideo(ownerID uuid.UUID) *model.Video {
	now := time.Now()
	return &model.Video{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       "A Video",
		Description: "About things",
		VideoFile:   model.ContentLocator{URL: "https://cdn.example.com/v/a.mp4", StorageID: "videos/a"},
		Thumbnail:   model.ContentLocator{URL: "https://cdn.example.com/t/a.jpg", StorageID: "thumbnails/a"},
		Duration:    120,
		Views:       10,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
