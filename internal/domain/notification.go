package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification is the durable in-app record of a delivery-worthy event. It is
// written regardless of push delivery outcome and is immutable except for the
// read flag, which only ever moves unread -> read.
type Notification struct {
	ID          uuid.UUID        `json:"id" db:"notification_id"`
	RecipientID uuid.UUID        `json:"recipient_id" db:"recipient_id"`
	SenderID    *uuid.UUID       `json:"sender_id,omitempty" db:"sender_id"`
	SubjectID   *uuid.UUID       `json:"subject_id,omitempty" db:"subject_id"`
	Type        NotificationType `json:"type" db:"type"`
	Title       string           `json:"title" db:"title"`
	Message     string           `json:"message" db:"message"`
	Data        json.RawMessage  `json:"data,omitempty" db:"data"`
	IsRead      bool             `json:"is_read" db:"is_read"`
	ReadAt      *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`

	Sender *GuestSummary `json:"sender,omitempty"`
}

type NotificationType string

const (
	NotifPostLike    NotificationType = "POST_LIKE"
	NotifNewComment  NotificationType = "NEW_COMMENT"
	NotifNewFollower NotificationType = "NEW_FOLLOWER"
	NotifSystem      NotificationType = "SYSTEM"
)

type SendNotificationInput struct {
	RecipientID uuid.UUID         `json:"recipient_id" validate:"required"`
	Title       string            `json:"title" validate:"required"`
	Body        string            `json:"body" validate:"required"`
	Data        map[string]string `json:"data,omitempty"`
}
