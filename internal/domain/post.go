package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID  `json:"id" db:"post_id"`
	AuthorID  uuid.UUID  `json:"author_id" db:"author_id"`
	Caption   *string    `json:"caption,omitempty" db:"caption"`
	MediaURL  *string    `json:"media_url,omitempty" db:"media_url"`
	MediaType MediaType  `json:"media_type" db:"media_type"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`

	Author       *GuestSummary `json:"author,omitempty"`
	LikeCount    int64         `json:"like_count"`
	CommentCount int64         `json:"comment_count"`
	LikedByMe    bool          `json:"liked_by_me"`
}

type MediaType string

const (
	MediaText  MediaType = "text"
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
)

func (m MediaType) IsValid() bool {
	switch m {
	case MediaText, MediaPhoto, MediaVideo:
		return true
	default:
		return false
	}
}

type CreatePostInput struct {
	Caption   *string   `json:"caption,omitempty" validate:"omitempty,max=2000"`
	MediaURL  *string   `json:"media_url,omitempty"`
	MediaType MediaType `json:"media_type" validate:"required,oneof=text photo video"`
}

// Like rows are unique per (post, guest); the store enforces it.
type Like struct {
	PostID    uuid.UUID `json:"post_id" db:"post_id"`
	GuestID   uuid.UUID `json:"guest_id" db:"guest_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
