package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Guest        GuestRepository
	Post         PostRepository
	Comment      CommentRepository
	Story        StoryRepository
	Follow       FollowRepository
	Notification NotificationRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Guest:        NewGuestRepository(db),
		Post:         NewPostRepository(db),
		Comment:      NewCommentRepository(db),
		Story:        NewStoryRepository(db),
		Follow:       NewFollowRepository(db),
		Notification: NewNotificationRepository(db),
		Session:      NewSessionRepository(db),
	}
}
