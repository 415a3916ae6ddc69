package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/gotube/internal/domain/model"
)

// UserRepository defines persistence operations for user accounts and their
// watch history.
type UserRepository interface {
	// GetByID retrieves a user by id.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// Exists reports whether a user exists without loading it.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// AddToWatchHistory records that a user viewed a video. The watch history
	// is a deduplicated set: adding an already-present video id is a no-op,
	// not an error.
	AddToWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error
}
