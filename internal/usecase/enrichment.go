package usecase

import (
	"github.com/google/uuid"
)

// ViewerFlags are the viewer-relative fields of a detail response. Their
// values depend on who is asking, never on the video alone.
type ViewerFlags struct {
	IsLiked      bool
	IsSubscribed bool
}

// ComputeViewerFlags derives the viewer-relative flags from the video's liker
// set and the owner's subscriber set. A nil viewer (anonymous request) or a
// viewer absent from both sets yields false for both flags.
//
// Pure function: no store access, directly unit-testable.
func ComputeViewerFlags(likerIDs, subscriberIDs []uuid.UUID, viewer *uuid.UUID) ViewerFlags {
	if viewer == nil {
		return ViewerFlags{}
	}

	var flags ViewerFlags
	for _, id := range likerIDs {
		if id == *viewer {
			flags.IsLiked = true
			break
		}
	}
	for _, id := range subscriberIDs {
		if id == *viewer {
			flags.IsSubscribed = true
			break
		}
	}
	return flags
}
