package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wedding-feed/internal/domain"
)

type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*domain.Post, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PostRepository) ListFeed(ctx context.Context, viewerID uuid.UUID, params domain.PaginationParams) ([]domain.Post, int64, error) {
	args := m.Called(ctx, viewerID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *PostRepository) ListByAuthor(ctx context.Context, authorID, viewerID uuid.UUID, params domain.PaginationParams) ([]domain.Post, int64, error) {
	args := m.Called(ctx, authorID, viewerID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *PostRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PostRepository) InsertLike(ctx context.Context, postID, guestID uuid.UUID) (bool, error) {
	args := m.Called(ctx, postID, guestID)
	return args.Bool(0), args.Error(1)
}

func (m *PostRepository) DeleteLike(ctx context.Context, postID, guestID uuid.UUID) error {
	args := m.Called(ctx, postID, guestID)
	return args.Error(0)
}
