package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hszk-dev/gotube/internal/api/middleware"
	"github.com/hszk-dev/gotube/internal/domain/model"
	"github.com/hszk-dev/gotube/internal/domain/query"
	"github.com/hszk-dev/gotube/internal/domain/repository"
	"github.com/hszk-dev/gotube/internal/usecase"
)

// Request/Response types

type ContentLocatorPayload struct {
	URL       string `json:"url"`
	StorageID string `json:"storageId"`
}

type CreateVideoRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	VideoFile   ContentLocatorPayload `json:"videoFile"`
	Thumbnail   ContentLocatorPayload `json:"thumbnail"`
	Duration    float64               `json:"duration"`
}

type UpdateVideoRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Thumbnail   *ContentLocatorPayload `json:"thumbnail"`
}

type RequestUploadRequest struct {
	FileName string `json:"fileName"`
}

type UploadTicketResponse struct {
	VideoKey           string `json:"videoKey"`
	VideoUploadURL     string `json:"videoUploadUrl"`
	ThumbnailKey       string `json:"thumbnailKey"`
	ThumbnailUploadURL string `json:"thumbnailUploadUrl"`
}

type OwnerSummary struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type VideoListItem struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Thumbnail   string       `json:"thumbnail"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	CreatedAt   string       `json:"createdAt"`
	Owner       OwnerSummary `json:"owner"`
}

type VideoListResponse struct {
	Items       []VideoListItem `json:"items"`
	Page        int             `json:"page"`
	Limit       int             `json:"limit"`
	TotalItems  int64           `json:"totalItems"`
	TotalPages  int             `json:"totalPages"`
	HasNextPage bool            `json:"hasNextPage"`
	HasPrevPage bool            `json:"hasPrevPage"`
}

type VideoOwnerResponse struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Avatar           string `json:"avatar"`
	SubscribersCount int    `json:"subscribersCount"`
	IsSubscribed     bool   `json:"isSubscribed"`
}

type VideoDetailResponse struct {
	ID          string             `json:"id"`
	VideoFile   string             `json:"videoFile"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Duration    float64            `json:"duration"`
	Views       int64              `json:"views"`
	CreatedAt   string             `json:"createdAt"`
	Owner       VideoOwnerResponse `json:"owner"`
	LikesCount  int                `json:"likesCount"`
	IsLiked     bool               `json:"isLiked"`
}

type VideoResponse struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"ownerId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	VideoFile   string  `json:"videoFile"`
	Thumbnail   string  `json:"thumbnail"`
	Duration    float64 `json:"duration"`
	Views       int64   `json:"views"`
	IsPublished bool    `json:"isPublished"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type TogglePublishResponse struct {
	IsPublished bool `json:"isPublished"`
}

// VideoHandler handles video-related HTTP requests.
type VideoHandler struct {
	catalog   usecase.CatalogService
	mutations usecase.MutationService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(catalog usecase.CatalogService, mutations usecase.MutationService) *VideoHandler {
	return &VideoHandler{
		catalog:   catalog,
		mutations: mutations,
	}
}

// List handles GET /api/v1/videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := query.ListParams{
		SearchText:    q.Get("query"),
		OwnerID:       q.Get("userId"),
		SortField:     q.Get("sortBy"),
		SortDirection: q.Get("sortType"),
	}
	page := query.ParsePageRequest(q.Get("page"), q.Get("limit"))

	result, err := h.catalog.ListVideos(r.Context(), params, page)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	items := make([]VideoListItem, 0, len(result.Items))
	for _, row := range result.Items {
		items = append(items, VideoListItem{
			ID:          row.Video.ID.String(),
			Title:       row.Video.Title,
			Description: row.Video.Description,
			Thumbnail:   row.Video.Thumbnail.URL,
			Duration:    row.Video.Duration,
			Views:       row.Video.Views,
			CreatedAt:   row.Video.CreatedAt.Format(time.RFC3339),
			Owner: OwnerSummary{
				Username: row.OwnerUsername,
				Avatar:   row.OwnerAvatarURL,
			},
		})
	}

	JSON(w, http.StatusOK, VideoListResponse{
		Items:       items,
		Page:        result.Page,
		Limit:       result.Limit,
		TotalItems:  result.TotalItems,
		TotalPages:  result.TotalPages,
		HasNextPage: result.HasNextPage,
		HasPrevPage: result.HasPrevPage,
	}, "videos fetched successfully")
}

// Get handles GET /api/v1/videos/{id}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "Video ID must be a valid UUID")
		return
	}

	var viewer *uuid.UUID
	if id, ok := middleware.ViewerID(r.Context()); ok {
		viewer = &id
	}

	detail, err := h.catalog.GetVideoDetail(r.Context(), videoID, viewer)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, VideoDetailResponse{
		ID:          detail.ID.String(),
		VideoFile:   detail.VideoURL,
		Title:       detail.Title,
		Description: detail.Description,
		Duration:    detail.Duration,
		Views:       detail.Views,
		CreatedAt:   detail.CreatedAt.Format(time.RFC3339),
		Owner: VideoOwnerResponse{
			ID:               detail.Owner.ID.String(),
			Username:         detail.Owner.Username,
			Avatar:           detail.Owner.AvatarURL,
			SubscribersCount: detail.Owner.SubscribersCount,
			IsSubscribed:     detail.Owner.IsSubscribed,
		},
		LikesCount: detail.LikesCount,
		IsLiked:    detail.IsLiked,
	}, "video fetched successfully")
}

// RequestUpload handles POST /api/v1/videos/uploads
func (h *VideoHandler) RequestUpload(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.ViewerID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req RequestUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.FileName == "" {
		Error(w, http.StatusBadRequest, "File name is required")
		return
	}

	ticket, err := h.mutations.RequestUpload(r.Context(), viewerID, req.FileName)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, UploadTicketResponse{
		VideoKey:           ticket.VideoKey,
		VideoUploadURL:     ticket.VideoUploadURL,
		ThumbnailKey:       ticket.ThumbnailKey,
		ThumbnailUploadURL: ticket.ThumbnailUploadURL,
	}, "upload URLs generated")
}

// Create handles POST /api/v1/videos
func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.ViewerID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	video, err := h.mutations.CreateVideo(r.Context(), usecase.CreateVideoInput{
		OwnerID:     viewerID,
		Title:       req.Title,
		Description: req.Description,
		VideoFile:   model.ContentLocator{URL: req.VideoFile.URL, StorageID: req.VideoFile.StorageID},
		Thumbnail:   model.ContentLocator{URL: req.Thumbnail.URL, StorageID: req.Thumbnail.StorageID},
		Duration:    req.Duration,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toVideoResponse(video), "video created successfully")
}

// Update handles PATCH /api/v1/videos/{id}
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.ViewerID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "Video ID must be a valid UUID")
		return
	}

	var req UpdateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	input := usecase.UpdateVideoInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Thumbnail != nil {
		input.Thumbnail = &model.ContentLocator{URL: req.Thumbnail.URL, StorageID: req.Thumbnail.StorageID}
	}

	video, err := h.mutations.UpdateVideo(r.Context(), viewerID, videoID, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(video), "video updated successfully")
}

// Delete handles DELETE /api/v1/videos/{id}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.ViewerID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "Video ID must be a valid UUID")
		return
	}

	if err := h.mutations.DeleteVideo(r.Context(), viewerID, videoID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, nil, "video deleted successfully")
}

// TogglePublish handles PATCH /api/v1/videos/{id}/publish
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.ViewerID(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "Video ID must be a valid UUID")
		return
	}

	published, err := h.mutations.TogglePublish(r.Context(), viewerID, videoID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, TogglePublishResponse{IsPublished: published}, "publish state toggled")
}

func (h *VideoHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, query.ErrInvalidOwnerID):
		Error(w, http.StatusBadRequest, "Owner ID must be a valid UUID")
	case errors.Is(err, model.ErrEmptyTitle),
		errors.Is(err, model.ErrTitleTooLong),
		errors.Is(err, model.ErrEmptyDescription),
		errors.Is(err, model.ErrMissingVideoFile),
		errors.Is(err, model.ErrMissingThumbnail),
		errors.Is(err, model.ErrInvalidDuration),
		errors.Is(err, usecase.ErrNoFieldsToUpdate),
		errors.Is(err, usecase.ErrVideoFileNotUploaded):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrNotOwner):
		Error(w, http.StatusForbidden, "Only the owner may modify this video")
	case errors.Is(err, repository.ErrVideoNotFound):
		Error(w, http.StatusNotFound, "Video not found")
	case errors.Is(err, repository.ErrUserNotFound):
		Error(w, http.StatusNotFound, "User not found")
	default:
		Error(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func toVideoResponse(v *model.Video) VideoResponse {
	return VideoResponse{
		ID:          v.ID.String(),
		OwnerID:     v.OwnerID.String(),
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoFile.URL,
		Thumbnail:   v.Thumbnail.URL,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.Format(time.RFC3339),
	}
}
