package repository

import (
	"context"
	"time"
)

// ObjectStorage is the contract with the external media storage provider.
// The catalog never moves bytes itself: clients upload directly via presigned
// URLs, and the service only releases assets by their storage id.
type ObjectStorage interface {
	// GeneratePresignedUploadURL creates a presigned URL for direct client
	// upload of a new asset. key becomes the asset's storage id.
	GeneratePresignedUploadURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Delete releases a stored asset by its storage id. Deleting an absent
	// object is a no-op so cascade steps stay safely re-runnable.
	Delete(ctx context.Context, key string) error

	// Exists checks whether an asset is present.
	Exists(ctx context.Context, key string) (bool, error)
}
