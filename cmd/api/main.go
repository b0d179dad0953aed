package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"wedding-feed/internal/config"
	"wedding-feed/internal/handler"
	"wedding-feed/internal/middleware"
	"wedding-feed/internal/pkg/logger"
	"wedding-feed/internal/repository"
	"wedding-feed/internal/service"
	"wedding-feed/internal/service/auth"
	"wedding-feed/internal/service/push"
	"wedding-feed/internal/service/story"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		zlog.Warn("failed to connect to MinIO, media upload will not work", zap.Error(err))
	}

	sender, err := push.NewExpoSender(cfg.PushEndpoint, cfg.PushAccessToken, cfg.PushTimeout)
	if err != nil {
		zlog.Fatal("failed to configure push sender", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, sender, cfg, zlog)
	handlers := handler.NewHandlers(services)

	go sweepStories(services.Story, zlog)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	// Direct sends have no session; the caller is event tooling, not a guest.
	v1.Post("/notifications/send", h.Notification.Send)

	protected := v1.Group("", middleware.AuthRequired(authService))

	guests := protected.Group("/guests")
	guests.Get("/me", h.Guest.GetMe)
	guests.Put("/me", h.Guest.UpdateMe)
	guests.Get("/:guestId", h.Guest.GetProfile)
	guests.Get("/:guestId/posts", h.Guest.ListPosts)
	guests.Post("/:guestId/follow", h.Guest.Follow)
	guests.Delete("/:guestId/follow", h.Guest.Unfollow)
	guests.Get("/:guestId/followers", h.Guest.ListFollowers)
	guests.Get("/:guestId/following", h.Guest.ListFollowing)

	posts := protected.Group("/posts")
	posts.Post("/", h.Post.Create)
	posts.Get("/feed", h.Post.Feed)
	posts.Get("/:postId", h.Post.Get)
	posts.Delete("/:postId", h.Post.Delete)
	posts.Post("/:postId/like", h.Post.ToggleLike)
	posts.Post("/:postId/comments", h.Comment.Create)
	posts.Get("/:postId/comments", h.Comment.ListByPost)

	comments := protected.Group("/comments")
	comments.Delete("/:commentId", h.Comment.Delete)

	stories := protected.Group("/stories")
	stories.Post("/", h.Story.Create)
	stories.Get("/", h.Story.ListActive)

	media := protected.Group("/media")
	media.Post("/", h.Media.Upload)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Post("/mark-all-read", h.Notification.MarkAllRead)
	notifications.Post("/token", h.Notification.RegisterToken)
	notifications.Post("/test", h.Notification.SendTest)
}

// sweepStories removes expired stories on an interval so the active list stays
// bounded even though reads already filter on expires_at.
func sweepStories(storyService story.Service, zlog *zap.Logger) {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := storyService.SweepExpired(ctx); err != nil {
			zlog.Warn("story sweep failed", zap.Error(err))
		}
		cancel()
	}
}
