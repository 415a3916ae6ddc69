package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a channel owner / viewer account. The watch history lives
// in its own table and is accessed through UserRepository, not loaded here.
type User struct {
	ID        uuid.UUID
	Username  string
	Avatar    ContentLocator
	CreatedAt time.Time
}
