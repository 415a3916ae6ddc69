package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ContentLocator identifies a media asset held by the external storage
// provider: a public URL for delivery plus the provider-side key needed to
// release the asset later.
type ContentLocator struct {
	URL       string
	StorageID string
}

// IsZero reports whether the locator has been populated.
func (l ContentLocator) IsZero() bool {
	return l.URL == "" && l.StorageID == ""
}

// Video represents a catalog entry. OwnerID is immutable after creation.
type Video struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	VideoFile   ContentLocator
	Thumbnail   ContentLocator
	Duration    float64 // seconds
	Views       int64
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrTitleTooLong     = errors.New("title exceeds maximum length of 255 characters")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidOwnerID   = errors.New("owner ID cannot be nil")
	ErrMissingVideoFile = errors.New("video file locator is required")
	ErrMissingThumbnail = errors.New("thumbnail locator is required")
	ErrInvalidDuration  = errors.New("duration must be positive")
)

const maxTitleLength = 255

// NewVideo creates a Video after upload completion, so both content locators
// must already exist. New videos start unpublished; the owner publishes
// explicitly.
func NewVideo(ownerID uuid.UUID, title, description string, videoFile, thumbnail ContentLocator, duration float64) (*Video, error) {
	if ownerID == uuid.Nil {
		return nil, ErrInvalidOwnerID
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if videoFile.IsZero() {
		return nil, ErrMissingVideoFile
	}
	if thumbnail.IsZero() {
		return nil, ErrMissingThumbnail
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	now := time.Now()
	return &Video{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
		Duration:    duration,
		IsPublished: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// VisibleTo reports whether a viewer may see this video via a direct detail
// fetch. Unpublished videos are visible only to their owner; viewer may be
// nil for anonymous requests.
func (v *Video) VisibleTo(viewer *uuid.UUID) bool {
	if v.IsPublished {
		return true
	}
	return viewer != nil && *viewer == v.OwnerID
}

// SetThumbnail replaces the thumbnail locator and returns the previous one so
// the caller can release the old asset.
func (v *Video) SetThumbnail(locator ContentLocator) ContentLocator {
	old := v.Thumbnail
	v.Thumbnail = locator
	v.UpdatedAt = time.Now()
	return old
}
