package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wedding-feed/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, recipientID uuid.UUID) ([]domain.Notification, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}

func (m *NotificationService) RegisterPushToken(ctx context.Context, guestID uuid.UUID, token string) error {
	args := m.Called(ctx, guestID, token)
	return args.Error(0)
}

func (m *NotificationService) NotifyPostLiked(ctx context.Context, postID, actorID uuid.UUID) error {
	args := m.Called(ctx, postID, actorID)
	return args.Error(0)
}

func (m *NotificationService) NotifyNewComment(ctx context.Context, commentID, actorID uuid.UUID) error {
	args := m.Called(ctx, commentID, actorID)
	return args.Error(0)
}

func (m *NotificationService) NotifyNewFollower(ctx context.Context, followedID, actorID uuid.UUID) error {
	args := m.Called(ctx, followedID, actorID)
	return args.Error(0)
}

func (m *NotificationService) SendDirect(ctx context.Context, input domain.SendNotificationInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *NotificationService) SendTest(ctx context.Context, guestID uuid.UUID) (string, error) {
	args := m.Called(ctx, guestID)
	return args.String(0), args.Error(1)
}
