package post_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/mocks"
	"wedding-feed/internal/service/post"
)

func strPtr(s string) *string {
	return &s
}

func TestPostService_Create(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	t.Run("Text Post", func(t *testing.T) {
		mockRepo := new(mocks.PostRepository)
		svc := post.NewService(mockRepo, nil)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Post) bool {
			return p.AuthorID == authorID && p.MediaType == domain.MediaText
		})).Return(nil).Once()

		created, err := svc.Create(ctx, authorID, domain.CreatePostInput{
			Caption:   strPtr("What a beautiful ceremony"),
			MediaType: domain.MediaText,
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Photo Post Requires Media URL", func(t *testing.T) {
		mockRepo := new(mocks.PostRepository)
		svc := post.NewService(mockRepo, nil)

		_, err := svc.Create(ctx, authorID, domain.CreatePostInput{
			MediaType: domain.MediaPhoto,
		})

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Media Type", func(t *testing.T) {
		mockRepo := new(mocks.PostRepository)
		svc := post.NewService(mockRepo, nil)

		_, err := svc.Create(ctx, authorID, domain.CreatePostInput{
			MediaType: "gif",
		})

		assert.Error(t, err)
	})
}

func TestPostService_Delete(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()
	authorID := uuid.New()
	existing := &domain.Post{ID: postID, AuthorID: authorID}

	t.Run("Author Can Delete", func(t *testing.T) {
		mockRepo := new(mocks.PostRepository)
		svc := post.NewService(mockRepo, nil)

		mockRepo.On("GetByID", ctx, postID, authorID).Return(existing, nil).Once()
		mockRepo.On("Delete", ctx, postID).Return(nil).Once()

		err := svc.Delete(ctx, postID, &domain.Guest{ID: authorID, Role: "guest"})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Host Can Moderate", func(t *testing.T) {
		mockRepo := new(mocks.PostRepository)
		svc := post.NewService(mockRepo, nil)

		hostID := uuid.New()
		mockRepo.On("GetByID", ctx, postID, hostID).Return(existing, nil).Once()
		mockRepo.On("Delete", ctx, postID).Return(nil).Once()

		err := svc.Delete(ctx, postID, &domain.Guest{ID: hostID, Role: "host"})

		assert.NoError(t, err)
	})

	t.Run("Other Guest Forbidden", func(t *testing.T) {
		mockRepo := new(mocks.PostRepository)
		svc := post.NewService(mockRepo, nil)

		otherID := uuid.New()
		mockRepo.On("GetByID", ctx, postID, otherID).Return(existing, nil).Once()

		err := svc.Delete(ctx, postID, &domain.Guest{ID: otherID, Role: "guest"})

		assert.ErrorIs(t, err, post.ErrNotAllowed)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestPostService_ToggleLike(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()
	ownerID := uuid.New()
	guestID := uuid.New()
	existing := &domain.Post{ID: postID, AuthorID: ownerID}

	t.Run("Like Notifies Owner", func(t *testing.T) {
		mockRepo := new(mocks.PostRepository)
		mockNotifSvc := new(mocks.NotificationService)
		svc := post.NewService(mockRepo, nil)
		svc.SetNotificationService(mockNotifSvc)

		mockRepo.On("GetByID", ctx, postID, guestID).Return(existing, nil).Once()
		mockRepo.On("InsertLike", ctx, postID, guestID).Return(true, nil).Once()
		mockNotifSvc.On("NotifyPostLiked", ctx, postID, guestID).Return(nil).Once()

		liked, err := svc.ToggleLike(ctx, postID, guestID)

		assert.NoError(t, err)
		assert.True(t, liked)
		mockNotifSvc.AssertExpectations(t)
	})

	t.Run("Second Like Unlikes Without Notifying", func(t *testing.T) {
		mockRepo := new(mocks.PostRepository)
		mockNotifSvc := new(mocks.NotificationService)
		svc := post.NewService(mockRepo, nil)
		svc.SetNotificationService(mockNotifSvc)

		mockRepo.On("GetByID", ctx, postID, guestID).Return(existing, nil).Once()
		mockRepo.On("InsertLike", ctx, postID, guestID).Return(false, nil).Once()
		mockRepo.On("DeleteLike", ctx, postID, guestID).Return(nil).Once()

		liked, err := svc.ToggleLike(ctx, postID, guestID)

		assert.NoError(t, err)
		assert.False(t, liked)
		mockNotifSvc.AssertNotCalled(t, "NotifyPostLiked", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Post Not Found", func(t *testing.T) {
		mockRepo := new(mocks.PostRepository)
		svc := post.NewService(mockRepo, nil)

		mockRepo.On("GetByID", ctx, postID, guestID).Return(nil, nil).Once()

		_, err := svc.ToggleLike(ctx, postID, guestID)

		assert.ErrorIs(t, err, post.ErrPostNotFound)
	})
}

func TestPostService_Feed(t *testing.T) {
	ctx := context.Background()
	viewerID := uuid.New()

	mockRepo := new(mocks.PostRepository)
	svc := post.NewService(mockRepo, nil)

	posts := []domain.Post{{ID: uuid.New()}, {ID: uuid.New()}}
	params := domain.PaginationParams{Page: 1, PageSize: 20}
	mockRepo.On("ListFeed", ctx, viewerID, params).Return(posts, int64(2), nil).Once()

	result, err := svc.Feed(ctx, viewerID, params)

	assert.NoError(t, err)
	assert.Len(t, result.Data, 2)
	assert.Equal(t, int64(2), result.TotalItems)
	assert.False(t, result.HasNext)
}
