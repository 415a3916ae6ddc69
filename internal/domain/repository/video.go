package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/gotube/internal/domain/model"
	"github.com/hszk-dev/gotube/internal/domain/query"
)

// VideoWithOwner is one list-query row: the video joined one-to-one with its
// owner's public profile. List results carry no viewer-relative fields.
type VideoWithOwner struct {
	Video          model.Video
	OwnerUsername  string
	OwnerAvatarURL string
}

// VideoRepository defines the persistence contract for videos, including the
// query-plan execution used by the list endpoint. Implementations translate
// plan stages into native store clauses; the same plan must be executable
// against any backing store.
type VideoRepository interface {
	// Create persists a new video entity.
	Create(ctx context.Context, video *model.Video) error

	// GetByID retrieves a video by id regardless of publish state.
	// Returns ErrVideoNotFound if the video does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// ExecutePlan runs a list-query plan with pagination, returning the page
	// of owner-joined rows and the total match count before pagination.
	ExecutePlan(ctx context.Context, plan query.Plan, page query.PageRequest) ([]VideoWithOwner, int64, error)

	// Update persists title, description and thumbnail changes.
	// Returns ErrVideoNotFound if the video does not exist.
	Update(ctx context.Context, video *model.Video) error

	// SetPublished sets the publish flag.
	// Returns ErrVideoNotFound if the video does not exist.
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error

	// Delete removes the video row only; dependent likes, comments and
	// storage objects are cleaned up by the caller's cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementViews atomically adds 1 to the view counter. The increment is
	// a single store-level operation, safe under concurrent readers.
	IncrementViews(ctx context.Context, id uuid.UUID) error
}
