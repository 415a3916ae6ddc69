package model

import (
	"time"

	"github.com/google/uuid"
)

// Like marks that a user liked a video. The (VideoID, UserID) pair is unique
// and rows cascade when the video is deleted.
type Like struct {
	VideoID   uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

// Subscription marks that a user follows a channel (another user).
type Subscription struct {
	SubscriberID uuid.UUID
	ChannelID    uuid.UUID
	CreatedAt    time.Time
}

// Comment is attached to a video and cascades on video deletion. Comment CRUD
// itself is handled by a separate service; this service only needs the type
// for cascade cleanup.
type Comment struct {
	ID        uuid.UUID
	VideoID   uuid.UUID
	OwnerID   uuid.UUID
	Text      string
	CreatedAt time.Time
}
