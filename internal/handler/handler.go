package handler

import "wedding-feed/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	Guest        *GuestHandler
	Post         *PostHandler
	Comment      *CommentHandler
	Story        *StoryHandler
	Media        *MediaHandler
	Notification *NotificationHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Guest:        NewGuestHandler(services.Guest, services.Post, services.Follow),
		Post:         NewPostHandler(services.Post),
		Comment:      NewCommentHandler(services.Comment),
		Story:        NewStoryHandler(services.Story),
		Media:        NewMediaHandler(services.Media),
		Notification: NewNotificationHandler(services.Notification),
	}
}
