package follow_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/mocks"
	"wedding-feed/internal/service/follow"
)

func TestFollowService_Follow(t *testing.T) {
	ctx := context.Background()
	followerID := uuid.New()
	followedID := uuid.New()

	t.Run("Success Notifies Followed Guest", func(t *testing.T) {
		mockRepo := new(mocks.FollowRepository)
		mockGuestRepo := new(mocks.GuestRepository)
		mockNotifSvc := new(mocks.NotificationService)
		svc := follow.NewService(mockRepo, mockGuestRepo)
		svc.SetNotificationService(mockNotifSvc)

		mockGuestRepo.On("GetByID", ctx, followedID).Return(&domain.Guest{ID: followedID}, nil).Once()
		mockRepo.On("Insert", ctx, followerID, followedID).Return(true, nil).Once()
		mockNotifSvc.On("NotifyNewFollower", ctx, followedID, followerID).Return(nil).Once()

		err := svc.Follow(ctx, followerID, followedID)

		assert.NoError(t, err)
		mockNotifSvc.AssertExpectations(t)
	})

	t.Run("Duplicate Follow Does Not Re-Notify", func(t *testing.T) {
		mockRepo := new(mocks.FollowRepository)
		mockGuestRepo := new(mocks.GuestRepository)
		mockNotifSvc := new(mocks.NotificationService)
		svc := follow.NewService(mockRepo, mockGuestRepo)
		svc.SetNotificationService(mockNotifSvc)

		mockGuestRepo.On("GetByID", ctx, followedID).Return(&domain.Guest{ID: followedID}, nil).Once()
		mockRepo.On("Insert", ctx, followerID, followedID).Return(false, nil).Once()

		err := svc.Follow(ctx, followerID, followedID)

		assert.NoError(t, err)
		mockNotifSvc.AssertNotCalled(t, "NotifyNewFollower", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Self Follow Rejected", func(t *testing.T) {
		mockRepo := new(mocks.FollowRepository)
		svc := follow.NewService(mockRepo, new(mocks.GuestRepository))

		err := svc.Follow(ctx, followerID, followerID)

		assert.ErrorIs(t, err, follow.ErrSelfFollow)
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Followed Guest Missing", func(t *testing.T) {
		mockRepo := new(mocks.FollowRepository)
		mockGuestRepo := new(mocks.GuestRepository)
		svc := follow.NewService(mockRepo, mockGuestRepo)

		mockGuestRepo.On("GetByID", ctx, followedID).Return(nil, nil).Once()

		err := svc.Follow(ctx, followerID, followedID)

		assert.ErrorIs(t, err, follow.ErrGuestNotFound)
	})
}

func TestFollowService_Unfollow(t *testing.T) {
	ctx := context.Background()
	followerID := uuid.New()
	followedID := uuid.New()

	mockRepo := new(mocks.FollowRepository)
	svc := follow.NewService(mockRepo, new(mocks.GuestRepository))

	mockRepo.On("Delete", ctx, followerID, followedID).Return(nil).Once()

	err := svc.Unfollow(ctx, followerID, followedID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
