package story

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/repository"
)

type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, input domain.CreateStoryInput) (*domain.Story, error)
	ListActive(ctx context.Context, viewerID uuid.UUID) ([]domain.Story, error)
	SweepExpired(ctx context.Context) error
}

type service struct {
	storyRepo repository.StoryRepository
	logger    *zap.Logger
}

func NewService(storyRepo repository.StoryRepository, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		storyRepo: storyRepo,
		logger:    logger,
	}
}

func (s *service) Create(ctx context.Context, authorID uuid.UUID, input domain.CreateStoryInput) (*domain.Story, error) {
	if input.MediaType != domain.MediaPhoto && input.MediaType != domain.MediaVideo {
		return nil, errors.New("stories require a photo or video")
	}
	if input.MediaURL == "" {
		return nil, errors.New("media_url is required")
	}

	story := &domain.Story{
		ID:        uuid.New(),
		AuthorID:  authorID,
		MediaURL:  input.MediaURL,
		MediaType: input.MediaType,
		Caption:   input.Caption,
		ExpiresAt: time.Now().Add(domain.StoryLifetime),
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}

	return story, nil
}

func (s *service) ListActive(ctx context.Context, viewerID uuid.UUID) ([]domain.Story, error) {
	return s.storyRepo.ListActive(ctx, viewerID)
}

func (s *service) SweepExpired(ctx context.Context) error {
	deleted, err := s.storyRepo.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("swept expired stories", zap.Int64("deleted", deleted))
	}
	return nil
}
