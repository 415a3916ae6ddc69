package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hszk-dev/gotube/internal/domain/repository"
)

// EngagementRepository implements repository.EngagementRepository using
// PostgreSQL.
type EngagementRepository struct {
	db DBTX
}

// NewEngagementRepository creates a new EngagementRepository instance.
func NewEngagementRepository(db DBTX) *EngagementRepository {
	return &EngagementRepository{db: db}
}

// LikerIDs returns the ids of all users who liked the video.
func (r *EngagementRepository) LikerIDs(ctx context.Context, videoID uuid.UUID) ([]uuid.UUID, error) {
	const sql = `SELECT user_id FROM likes WHERE video_id = $1`
	return r.queryIDs(ctx, sql, videoID, "likers")
}

// SubscriberIDs returns the ids of all users subscribed to the channel.
func (r *EngagementRepository) SubscriberIDs(ctx context.Context, channelID uuid.UUID) ([]uuid.UUID, error) {
	const sql = `SELECT subscriber_id FROM subscriptions WHERE channel_id = $1`
	return r.queryIDs(ctx, sql, channelID, "subscribers")
}

func (r *EngagementRepository) queryIDs(ctx context.Context, sql string, arg uuid.UUID, what string) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", what, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", what, err)
	}
	return ids, nil
}

// RemoveVideoLikes deletes all likes referencing the video. Zero rows
// affected is success, so the cascade step can be re-run safely.
func (r *EngagementRepository) RemoveVideoLikes(ctx context.Context, videoID uuid.UUID) error {
	const sql = `DELETE FROM likes WHERE video_id = $1`

	if _, err := r.db.Exec(ctx, sql, videoID); err != nil {
		return fmt.Errorf("failed to remove video likes: %w", err)
	}
	return nil
}

// RemoveVideoComments deletes all comments referencing the video. Idempotent.
func (r *EngagementRepository) RemoveVideoComments(ctx context.Context, videoID uuid.UUID) error {
	const sql = `DELETE FROM comments WHERE video_id = $1`

	if _, err := r.db.Exec(ctx, sql, videoID); err != nil {
		return fmt.Errorf("failed to remove video comments: %w", err)
	}
	return nil
}

// Compile-time verification that EngagementRepository implements repository.EngagementRepository.
var _ repository.EngagementRepository = (*EngagementRepository)(nil)
