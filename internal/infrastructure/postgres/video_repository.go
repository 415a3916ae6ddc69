package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/gotube/internal/domain/model"
	"github.com/hszk-dev/gotube/internal/domain/query"
	"github.com/hszk-dev/gotube/internal/domain/repository"
	"github.com/hszk-dev/gotube/internal/infrastructure/metrics"
)

// DBTX is an interface that abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VideoRepository implements repository.VideoRepository using PostgreSQL,
// translating query plans into WHERE/ORDER BY/LIMIT clauses.
type VideoRepository struct {
	db DBTX
}

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

const videoColumns = `id, owner_id, title, description,
		video_url, video_storage_id, thumbnail_url, thumbnail_storage_id,
		duration, views, is_published, created_at, updated_at`

// Create persists a new video entity.
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	const sql = `
		INSERT INTO videos (` + videoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, sql,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.VideoFile.URL,
		video.VideoFile.StorageID,
		video.Thumbnail.URL,
		video.Thumbnail.StorageID,
		video.Duration,
		video.Views,
		video.IsPublished,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateVideo
		}
		return fmt.Errorf("failed to create video: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, metrics.TableVideos).Inc()
	return nil
}

// GetByID retrieves a video by id regardless of publish state.
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	const sql = `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	video, err := scanVideo(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableVideos).Inc()
	return video, nil
}

// ExecutePlan runs a list-query plan with pagination. The stage sequence is
// translated into SQL: search and filter stages become WHERE conditions in
// plan order, the sort stage becomes ORDER BY (with id as tiebreak so paging
// is stable), and the page request becomes LIMIT/OFFSET. The owner profile
// join is the list-level enrichment and is part of the same query.
func (r *VideoRepository) ExecutePlan(ctx context.Context, plan query.Plan, page query.PageRequest) ([]repository.VideoWithOwner, int64, error) {
	where, orderBy, args := translatePlan(plan)

	countSQL := `SELECT COUNT(*) FROM videos v` + where

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count plan matches: %w", err)
	}

	listSQL := `
		SELECT v.id, v.owner_id, v.title, v.description,
			v.video_url, v.video_storage_id, v.thumbnail_url, v.thumbnail_storage_id,
			v.duration, v.views, v.is_published, v.created_at, v.updated_at,
			u.username, u.avatar_url
		FROM videos v
		JOIN users u ON u.id = v.owner_id` +
		where + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	args = append(args, page.Limit, page.Offset())

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query plan: %w", err)
	}
	defer rows.Close()

	var results []repository.VideoWithOwner
	for rows.Next() {
		var (
			item repository.VideoWithOwner
			v    = &item.Video
		)
		err := rows.Scan(
			&v.ID, &v.OwnerID, &v.Title, &v.Description,
			&v.VideoFile.URL, &v.VideoFile.StorageID, &v.Thumbnail.URL, &v.Thumbnail.StorageID,
			&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
			&item.OwnerUsername, &item.OwnerAvatarURL,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan plan row: %w", err)
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating plan rows: %w", err)
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableVideos).Inc()
	return results, total, nil
}

// translatePlan converts plan stages into SQL fragments. Conditions appear in
// stage order, so identical plans always produce identical SQL.
func translatePlan(plan query.Plan) (where, orderBy string, args []any) {
	var conds []string
	orderBy = " ORDER BY v.created_at DESC, v.id"

	for _, stage := range plan.Stages {
		switch s := stage.(type) {
		case query.SearchStage:
			// Backed by the trigram index on title/description.
			args = append(args, "%"+s.Text+"%")
			n := len(args)
			conds = append(conds, fmt.Sprintf("(v.title ILIKE $%d OR v.description ILIKE $%d)", n, n))
		case query.OwnerFilterStage:
			args = append(args, s.OwnerID)
			conds = append(conds, fmt.Sprintf("v.owner_id = $%d", len(args)))
		case query.PublishedFilterStage:
			conds = append(conds, "v.is_published")
		case query.SortStage:
			dir := " ASC"
			if s.Descending {
				dir = " DESC"
			}
			orderBy = " ORDER BY " + sortColumn(s.Field) + dir + ", v.id"
		}
	}

	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	return where, orderBy, args
}

func sortColumn(f query.SortField) string {
	switch f {
	case query.SortByViews:
		return "v.views"
	case query.SortByDuration:
		return "v.duration"
	default:
		return "v.created_at"
	}
}

// Update persists title, description and thumbnail changes.
func (r *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	const sql = `
		UPDATE videos
		SET title = $2, description = $3, thumbnail_url = $4, thumbnail_storage_id = $5, updated_at = $6
		WHERE id = $1
	`

	video.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, sql,
		video.ID,
		video.Title,
		video.Description,
		video.Thumbnail.URL,
		video.Thumbnail.StorageID,
		video.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, metrics.TableVideos).Inc()
	return nil
}

// SetPublished sets the publish flag. Last write wins under concurrent
// owner updates.
func (r *VideoRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	const sql = `UPDATE videos SET is_published = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, sql, id, published, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set publish state: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, metrics.TableVideos).Inc()
	return nil
}

// Delete removes the video row only. Cascade cleanup of likes, comments and
// storage objects is the caller's responsibility.
func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const sql = `DELETE FROM videos WHERE id = $1`

	tag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryDelete, metrics.TableVideos).Inc()
	return nil
}

// IncrementViews atomically adds 1 to the view counter. The increment happens
// in a single statement, so concurrent readers never lose counts.
func (r *VideoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	const sql = `UPDATE videos SET views = views + 1 WHERE id = $1`

	tag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryUpdate, metrics.TableVideos).Inc()
	return nil
}

// scanVideo scans a single row into a Video model.
func scanVideo(row pgx.Row) (*model.Video, error) {
	var v model.Video
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description,
		&v.VideoFile.URL, &v.VideoFile.StorageID, &v.Thumbnail.URL, &v.Thumbnail.StorageID,
		&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Compile-time verification that VideoRepository implements repository.VideoRepository.
var _ repository.VideoRepository = (*VideoRepository)(nil)
