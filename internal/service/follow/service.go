package follow

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/repository"
	"wedding-feed/internal/service/notification"
)

var (
	ErrSelfFollow    = errors.New("cannot follow yourself")
	ErrGuestNotFound = errors.New("guest not found")
)

type Service interface {
	Follow(ctx context.Context, followerID, followedID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followedID uuid.UUID) error
	ListFollowers(ctx context.Context, guestID uuid.UUID) ([]domain.GuestSummary, error)
	ListFollowing(ctx context.Context, guestID uuid.UUID) ([]domain.GuestSummary, error)

	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	followRepo repository.FollowRepository
	guestRepo  repository.GuestRepository
	notifSvc   notification.Service
}

func NewService(followRepo repository.FollowRepository, guestRepo repository.GuestRepository) Service {
	return &service{
		followRepo: followRepo,
		guestRepo:  guestRepo,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Follow(ctx context.Context, followerID, followedID uuid.UUID) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	followed, err := s.guestRepo.GetByID(ctx, followedID)
	if err != nil {
		return err
	}
	if followed == nil {
		return ErrGuestNotFound
	}

	inserted, err := s.followRepo.Insert(ctx, followerID, followedID)
	if err != nil {
		return err
	}

	// Re-following someone is a no-op and must not re-notify.
	if inserted && s.notifSvc != nil {
		if err := s.notifSvc.NotifyNewFollower(ctx, followedID, followerID); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) Unfollow(ctx context.Context, followerID, followedID uuid.UUID) error {
	return s.followRepo.Delete(ctx, followerID, followedID)
}

func (s *service) ListFollowers(ctx context.Context, guestID uuid.UUID) ([]domain.GuestSummary, error) {
	return s.followRepo.ListFollowers(ctx, guestID)
}

func (s *service) ListFollowing(ctx context.Context, guestID uuid.UUID) ([]domain.GuestSummary, error) {
	return s.followRepo.ListFollowing(ctx, guestID)
}
