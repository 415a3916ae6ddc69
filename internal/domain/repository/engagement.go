package repository

import (
	"context"

	"github.com/google/uuid"
)

// EngagementRepository exposes the like/subscription/comment data the
// enrichment layer joins onto videos, plus the cascade removals run on video
// deletion. The id-set reads feed the pure viewer-relative computation in the
// usecase layer.
type EngagementRepository interface {
	// LikerIDs returns the ids of all users who liked the video.
	LikerIDs(ctx context.Context, videoID uuid.UUID) ([]uuid.UUID, error)

	// SubscriberIDs returns the ids of all users subscribed to the channel.
	SubscriberIDs(ctx context.Context, channelID uuid.UUID) ([]uuid.UUID, error)

	// RemoveVideoLikes deletes all likes referencing the video. Idempotent.
	RemoveVideoLikes(ctx context.Context, videoID uuid.UUID) error

	// RemoveVideoComments deletes all comments referencing the video. Idempotent.
	RemoveVideoComments(ctx context.Context, videoID uuid.UUID) error
}
