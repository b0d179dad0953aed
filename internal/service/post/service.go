package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/repository"
	"wedding-feed/internal/service/notification"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotAllowed   = errors.New("insufficient permissions for this post")
)

type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, input domain.CreatePostInput) (*domain.Post, error)
	GetByID(ctx context.Context, id, viewerID uuid.UUID) (*domain.Post, error)
	Delete(ctx context.Context, id uuid.UUID, caller *domain.Guest) error
	Feed(ctx context.Context, viewerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Post], error)
	ListByAuthor(ctx context.Context, authorID, viewerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Post], error)
	ToggleLike(ctx context.Context, postID, guestID uuid.UUID) (bool, error)

	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	postRepo repository.PostRepository
	redis    *redis.Client
	notifSvc notification.Service
}

func NewService(postRepo repository.PostRepository, redis *redis.Client) Service {
	return &service{
		postRepo: postRepo,
		redis:    redis,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Create(ctx context.Context, authorID uuid.UUID, input domain.CreatePostInput) (*domain.Post, error) {
	if !input.MediaType.IsValid() {
		return nil, fmt.Errorf("invalid media type %q", input.MediaType)
	}
	if input.MediaType != domain.MediaText && (input.MediaURL == nil || *input.MediaURL == "") {
		return nil, errors.New("media_url is required for photo and video posts")
	}
	if input.MediaType == domain.MediaText && (input.Caption == nil || *input.Caption == "") {
		return nil, errors.New("caption is required for text posts")
	}

	post := &domain.Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Caption:   input.Caption,
		MediaURL:  input.MediaURL,
		MediaType: input.MediaType,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.invalidateFeedCache(ctx)

	return post, nil
}

func (s *service) GetByID(ctx context.Context, id, viewerID uuid.UUID) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Delete is allowed for the author and for hosts moderating the feed.
func (s *service) Delete(ctx context.Context, id uuid.UUID, caller *domain.Guest) error {
	post, err := s.postRepo.GetByID(ctx, id, caller.ID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if post.AuthorID != caller.ID && !caller.HasRole("host") {
		return ErrNotAllowed
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateFeedCache(ctx)
	return nil
}

func (s *service) Feed(ctx context.Context, viewerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Post], error) {
	params.Validate()
	cacheKey := fmt.Sprintf("feed:%s:page:%d:size:%d", viewerID, params.Page, params.PageSize)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var result domain.PaginatedResponse[domain.Post]
			if json.Unmarshal([]byte(cached), &result) == nil {
				return result, nil
			}
		}
	}

	posts, total, err := s.postRepo.ListFeed(ctx, viewerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Post]{}, err
	}

	result := domain.NewPaginatedResponse(posts, params.Page, params.PageSize, total)

	if s.redis != nil {
		if resultJSON, err := json.Marshal(result); err == nil {
			_ = s.redis.Set(ctx, cacheKey, resultJSON, 30*time.Second).Err()
		}
	}

	return result, nil
}

func (s *service) ListByAuthor(ctx context.Context, authorID, viewerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Post], error) {
	params.Validate()

	posts, total, err := s.postRepo.ListByAuthor(ctx, authorID, viewerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Post]{}, err
	}

	return domain.NewPaginatedResponse(posts, params.Page, params.PageSize, total), nil
}

// ToggleLike reports whether the post is liked after the call. The store's
// uniqueness rule on (post, guest) makes the toggle itself idempotent; the
// notification fires only on an actual unliked -> liked transition.
func (s *service) ToggleLike(ctx context.Context, postID, guestID uuid.UUID) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, postID, guestID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, ErrPostNotFound
	}

	inserted, err := s.postRepo.InsertLike(ctx, postID, guestID)
	if err != nil {
		return false, err
	}

	if !inserted {
		if err := s.postRepo.DeleteLike(ctx, postID, guestID); err != nil {
			return true, err
		}
		return false, nil
	}

	if s.notifSvc != nil {
		if err := s.notifSvc.NotifyPostLiked(ctx, postID, guestID); err != nil {
			return true, err
		}
	}

	return true, nil
}

func (s *service) invalidateFeedCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	keys, _ := s.redis.Keys(ctx, "feed:*").Result()
	if len(keys) > 0 {
		_ = s.redis.Del(ctx, keys...).Err()
	}
}
