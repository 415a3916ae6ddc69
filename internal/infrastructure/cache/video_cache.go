package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/gotube/internal/domain/model"
)

// VideoCache defines the interface for caching video records by id.
// Implementations handle serialization transparently.
type VideoCache interface {
	// Get retrieves a video from cache by id.
	// Returns nil, nil if the video is not cached (cache miss).
	Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error)

	// Set stores a video in cache with the specified TTL.
	Set(ctx context.Context, video *model.Video, ttl time.Duration) error

	// Delete removes a video from cache by id.
	// Returns nil if the video was not cached.
	Delete(ctx context.Context, videoID uuid.UUID) error
}
