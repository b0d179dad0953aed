package domain

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID  `json:"id" db:"comment_id"`
	PostID    uuid.UUID  `json:"post_id" db:"post_id"`
	GuestID   uuid.UUID  `json:"guest_id" db:"guest_id"`
	Content   string     `json:"content" db:"content"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`

	Author *GuestSummary `json:"author,omitempty"`
}

type CreateCommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}
