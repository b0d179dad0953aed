package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"wedding-feed/internal/config"
	"wedding-feed/internal/repository"
	"wedding-feed/internal/service/auth"
	"wedding-feed/internal/service/comment"
	"wedding-feed/internal/service/email"
	"wedding-feed/internal/service/follow"
	"wedding-feed/internal/service/guest"
	"wedding-feed/internal/service/media"
	"wedding-feed/internal/service/notification"
	"wedding-feed/internal/service/post"
	"wedding-feed/internal/service/push"
	"wedding-feed/internal/service/story"
)

type Services struct {
	Auth         auth.Service
	Guest        guest.Service
	Post         post.Service
	Comment      comment.Service
	Story        story.Service
	Follow       follow.Service
	Media        media.Service
	Email        email.Service
	Notification notification.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, sender push.Sender, cfg *config.Config, logger *zap.Logger) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.Guest, repos.Session, emailService, cfg, logger)
	guestService := guest.NewService(repos.Guest, repos.Post, repos.Follow)
	postService := post.NewService(repos.Post, redis)
	commentService := comment.NewService(repos.Comment, repos.Post)
	storyService := story.NewService(repos.Story, logger)
	followService := follow.NewService(repos.Follow, repos.Guest)
	mediaService := media.NewService(minioClient, cfg)

	notificationService := notification.NewService(repos.Notification, repos.Guest, repos.Post, repos.Comment, sender, redis, logger)
	postService.SetNotificationService(notificationService)
	commentService.SetNotificationService(notificationService)
	followService.SetNotificationService(notificationService)

	return &Services{
		Auth:         authService,
		Guest:        guestService,
		Post:         postService,
		Comment:      commentService,
		Story:        storyService,
		Follow:       followService,
		Media:        mediaService,
		Email:        emailService,
		Notification: notificationService,
	}
}
