package domain

import (
	"time"

	"github.com/google/uuid"
)

// Follow rows are unique per (follower, followed); the store enforces it.
type Follow struct {
	FollowerID uuid.UUID `json:"follower_id" db:"follower_id"`
	FollowedID uuid.UUID `json:"followed_id" db:"followed_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
