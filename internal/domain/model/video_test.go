package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

var (
	testVideoFile = ContentLocator{URL: "https://cdn.example.com/v/clip.mp4", StorageID: "videos/clip"}
	testThumbnail = ContentLocator{URL: "https://cdn.example.com/t/clip.jpg", StorageID: "thumbs/clip"}
)

func TestNewVideo(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name        string
		ownerID     uuid.UUID
		title       string
		description string
		videoFile   ContentLocator
		thumbnail   ContentLocator
		duration    float64
		wantErr     error
	}{
		{"valid", ownerID, "Title", "Description", testVideoFile, testThumbnail, 12.5, nil},
		{"nil owner", uuid.Nil, "Title", "Description", testVideoFile, testThumbnail, 12.5, ErrInvalidOwnerID},
		{"empty title", ownerID, "", "Description", testVideoFile, testThumbnail, 12.5, ErrEmptyTitle},
		{"title too long", ownerID, strings.Repeat("x", 256), "Description", testVideoFile, testThumbnail, 12.5, ErrTitleTooLong},
		{"empty description", ownerID, "Title", "", testVideoFile, testThumbnail, 12.5, ErrEmptyDescription},
		{"missing video file", ownerID, "Title", "Description", ContentLocator{}, testThumbnail, 12.5, ErrMissingVideoFile},
		{"missing thumbnail", ownerID, "Title", "Description", testVideoFile, ContentLocator{}, 12.5, ErrMissingThumbnail},
		{"zero duration", ownerID, "Title", "Description", testVideoFile, testThumbnail, 0, ErrInvalidDuration},
		{"negative duration", ownerID, "Title", "Description", testVideoFile, testThumbnail, -3, ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			video, err := NewVideo(tt.ownerID, tt.title, tt.description, tt.videoFile, tt.thumbnail, tt.duration)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewVideo() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewVideo() unexpected error: %v", err)
			}
			if video.ID == uuid.Nil {
				t.Error("expected generated id")
			}
			if video.IsPublished {
				t.Error("new videos must start unpublished")
			}
			if video.Views != 0 {
				t.Errorf("Views = %d, want 0", video.Views)
			}
		})
	}
}

func TestVideo_VisibleTo(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	published := &Video{OwnerID: owner, IsPublished: true}
	unpublished := &Video{OwnerID: owner, IsPublished: false}

	if !published.VisibleTo(nil) {
		t.Error("published video should be visible to anonymous viewers")
	}
	if !published.VisibleTo(&stranger) {
		t.Error("published video should be visible to any viewer")
	}
	if unpublished.VisibleTo(nil) {
		t.Error("unpublished video should not be visible to anonymous viewers")
	}
	if unpublished.VisibleTo(&stranger) {
		t.Error("unpublished video should not be visible to non-owners")
	}
	if !unpublished.VisibleTo(&owner) {
		t.Error("unpublished video should be visible to its owner")
	}
}

func TestVideo_SetThumbnail(t *testing.T) {
	video := &Video{Thumbnail: testThumbnail}
	replacement := ContentLocator{URL: "https://cdn.example.com/t/new.jpg", StorageID: "thumbs/new"}

	old := video.SetThumbnail(replacement)

	if old != testThumbnail {
		t.Errorf("SetThumbnail() returned %+v, want previous locator %+v", old, testThumbnail)
	}
	if video.Thumbnail != replacement {
		t.Errorf("Thumbnail = %+v, want %+v", video.Thumbnail, replacement)
	}
}
