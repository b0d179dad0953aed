package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wedding-feed/internal/domain"
)

type FollowRepository struct {
	mock.Mock
}

func (m *FollowRepository) Insert(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *FollowRepository) Delete(ctx context.Context, followerID, followedID uuid.UUID) error {
	args := m.Called(ctx, followerID, followedID)
	return args.Error(0)
}

func (m *FollowRepository) Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *FollowRepository) ListFollowers(ctx context.Context, guestID uuid.UUID) ([]domain.GuestSummary, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GuestSummary), args.Error(1)
}

func (m *FollowRepository) ListFollowing(ctx context.Context, guestID uuid.UUID) ([]domain.GuestSummary, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GuestSummary), args.Error(1)
}

func (m *FollowRepository) CountFollowers(ctx context.Context, guestID uuid.UUID) (int64, error) {
	args := m.Called(ctx, guestID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FollowRepository) CountFollowing(ctx context.Context, guestID uuid.UUID) (int64, error) {
	args := m.Called(ctx, guestID)
	return args.Get(0).(int64), args.Error(1)
}
