package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/gotube/internal/domain/model"
	"github.com/hszk-dev/gotube/internal/domain/repository"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const sql = `
		SELECT id, username, avatar_url, avatar_storage_id, created_at
		FROM users
		WHERE id = $1
	`

	var u model.User
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&u.ID, &u.Username, &u.Avatar.URL, &u.Avatar.StorageID, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &u, nil
}

// Exists reports whether a user exists without loading it.
func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	const sql = `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, sql, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// AddToWatchHistory records a viewed video. The (user_id, video_id) primary
// key plus ON CONFLICT DO NOTHING makes the set-add idempotent: re-watching
// never produces a duplicate entry or an error.
func (r *UserRepository) AddToWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	const sql = `
		INSERT INTO watch_history (user_id, video_id, watched_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id, video_id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, sql, userID, videoID); err != nil {
		return fmt.Errorf("failed to add to watch history: %w", err)
	}
	return nil
}

// Compile-time verification that UserRepository implements repository.UserRepository.
var _ repository.UserRepository = (*UserRepository)(nil)
