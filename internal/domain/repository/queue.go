package repository

import (
	"context"

	"github.com/google/uuid"
)

// CleanupTask lists the cascade steps still owed after a video deletion.
// Every step is idempotent, so a task may be processed more than once.
type CleanupTask struct {
	VideoID        uuid.UUID `json:"video_id"`
	RemoveLikes    bool      `json:"remove_likes"`
	RemoveComments bool      `json:"remove_comments"`
	StorageKeys    []string  `json:"storage_keys"`
	RetryCount     int       `json:"retry_count"`
}

// Pending reports whether the task still has work to do.
func (t CleanupTask) Pending() bool {
	return t.RemoveLikes || t.RemoveComments || len(t.StorageKeys) > 0
}

// CleanupQueue carries compensating cleanup tasks from the API server to the
// background worker that retries partially failed delete cascades.
type CleanupQueue interface {
	// PublishCleanupTask enqueues a cleanup task.
	PublishCleanupTask(ctx context.Context, task CleanupTask) error

	// ConsumeCleanupTasks delivers tasks to the handler until the context is
	// cancelled. Used by the worker binary.
	ConsumeCleanupTasks(ctx context.Context, handler func(task CleanupTask) error) error

	// Close gracefully closes the connection to the queue.
	Close() error
}
