package domain

import (
	"time"

	"github.com/google/uuid"
)

// Story is an ephemeral post. It is only visible while expires_at is in the
// future; expired rows are swept by a background job.
type Story struct {
	ID        uuid.UUID `json:"id" db:"story_id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	MediaURL  string    `json:"media_url" db:"media_url"`
	MediaType MediaType `json:"media_type" db:"media_type"`
	Caption   *string   `json:"caption,omitempty" db:"caption"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Author *GuestSummary `json:"author,omitempty"`
}

const StoryLifetime = 24 * time.Hour

type CreateStoryInput struct {
	MediaURL  string    `json:"media_url" validate:"required"`
	MediaType MediaType `json:"media_type" validate:"required,oneof=photo video"`
	Caption   *string   `json:"caption,omitempty" validate:"omitempty,max=500"`
}
