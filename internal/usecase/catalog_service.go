package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/gotube/internal/domain/query"
	"github.com/hszk-dev/gotube/internal/domain/repository"
)

// VideoOwner is the owner projection of a detail response: public profile
// fields plus the two viewer-relative channel fields.
type VideoOwner struct {
	ID               uuid.UUID
	Username         string
	AvatarURL        string
	SubscribersCount int
	IsSubscribed     bool
}

// VideoDetail is the single-video projection returned by the detail fetch.
// Views holds the value read before the post-fetch increment.
type VideoDetail struct {
	ID          uuid.UUID
	VideoURL    string
	Title       string
	Description string
	Duration    float64
	Views       int64
	CreatedAt   time.Time
	Owner       VideoOwner
	LikesCount  int
	IsLiked     bool
}

// CatalogService defines the read side of the catalog: the paginated list
// query and the enriched detail fetch.
type CatalogService interface {
	// ListVideos builds a query plan from the parameters, executes it and
	// wraps the owner-joined results with page metadata. Only published
	// videos are returned.
	ListVideos(ctx context.Context, params query.ListParams, page query.PageRequest) (*query.Page[repository.VideoWithOwner], error)

	// GetVideoDetail fetches one video with its viewer-relative enrichment
	// and applies the post-read side effects. viewer is nil for anonymous
	// requests. Unpublished videos are visible only to their owner; anyone
	// else gets repository.ErrVideoNotFound.
	GetVideoDetail(ctx context.Context, videoID uuid.UUID, viewer *uuid.UUID) (*VideoDetail, error)
}

type catalogService struct {
	videos      repository.VideoRepository
	users       repository.UserRepository
	engagements repository.EngagementRepository
	effects     *ViewSideEffects
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(
	videos repository.VideoRepository,
	users repository.UserRepository,
	engagements repository.EngagementRepository,
	effects *ViewSideEffects,
) CatalogService {
	return &catalogService{
		videos:      videos,
		users:       users,
		engagements: engagements,
		effects:     effects,
	}
}

// ListVideos composes and executes the list query plan.
func (s *catalogService) ListVideos(ctx context.Context, params query.ListParams, page query.PageRequest) (*query.Page[repository.VideoWithOwner], error) {
	plan, err := query.BuildPlan(params)
	if err != nil {
		return nil, err
	}

	items, total, err := s.videos.ExecutePlan(ctx, plan, page)
	if err != nil {
		return nil, fmt.Errorf("execute list plan: %w", err)
	}

	result := query.NewPage(items, total, page)
	return &result, nil
}

// GetVideoDetail assembles the enriched detail projection. Side effects run
// after the response data is fully computed, so an effect failure can never
// invalidate the fetch.
func (s *catalogService) GetVideoDetail(ctx context.Context, videoID uuid.UUID, viewer *uuid.UUID) (*VideoDetail, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	// Hide unpublished videos from everyone but their owner.
	if !video.VisibleTo(viewer) {
		return nil, repository.ErrVideoNotFound
	}

	owner, err := s.users.GetByID(ctx, video.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("load owner: %w", err)
	}

	likerIDs, err := s.engagements.LikerIDs(ctx, video.ID)
	if err != nil {
		return nil, fmt.Errorf("load likers: %w", err)
	}

	subscriberIDs, err := s.engagements.SubscriberIDs(ctx, video.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("load subscribers: %w", err)
	}

	flags := ComputeViewerFlags(likerIDs, subscriberIDs, viewer)

	detail := &VideoDetail{
		ID:          video.ID,
		VideoURL:    video.VideoFile.URL,
		Title:       video.Title,
		Description: video.Description,
		Duration:    video.Duration,
		Views:       video.Views,
		CreatedAt:   video.CreatedAt,
		Owner: VideoOwner{
			ID:               owner.ID,
			Username:         owner.Username,
			AvatarURL:        owner.Avatar.URL,
			SubscribersCount: len(subscriberIDs),
			IsSubscribed:     flags.IsSubscribed,
		},
		LikesCount: len(likerIDs),
		IsLiked:    flags.IsLiked,
	}

	s.effects.Apply(ctx, video.ID, viewer)

	return detail, nil
}
