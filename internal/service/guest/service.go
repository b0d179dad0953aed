package guest

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/repository"
)

var ErrGuestNotFound = errors.New("guest not found")

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error)
	GetProfile(ctx context.Context, id, viewerID uuid.UUID) (*domain.GuestProfile, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateGuestInput) (*domain.Guest, error)
}

type service struct {
	guestRepo  repository.GuestRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

func NewService(guestRepo repository.GuestRepository, postRepo repository.PostRepository, followRepo repository.FollowRepository) Service {
	return &service{
		guestRepo:  guestRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error) {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrGuestNotFound
	}
	return guest, nil
}

func (s *service) GetProfile(ctx context.Context, id, viewerID uuid.UUID) (*domain.GuestProfile, error) {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrGuestNotFound
	}

	postCount, err := s.postRepo.CountByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	followerCount, err := s.followRepo.CountFollowers(ctx, id)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.followRepo.CountFollowing(ctx, id)
	if err != nil {
		return nil, err
	}

	followedByMe := false
	if viewerID != id {
		followedByMe, err = s.followRepo.Exists(ctx, viewerID, id)
		if err != nil {
			return nil, err
		}
	}

	return &domain.GuestProfile{
		Guest:          *guest,
		PostCount:      postCount,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
		FollowedByMe:   followedByMe,
	}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateGuestInput) (*domain.Guest, error) {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrGuestNotFound
	}

	if input.FullName != nil {
		guest.FullName = *input.FullName
	}
	if input.AvatarURL != nil {
		guest.AvatarURL = *input.AvatarURL
	}
	if input.Bio != nil {
		guest.Bio = *input.Bio
	}

	if err := s.guestRepo.Update(ctx, guest); err != nil {
		return nil, err
	}

	return guest, nil
}
