package comment_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/mocks"
	"wedding-feed/internal/service/comment"
)

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()
	guestID := uuid.New()
	input := domain.CreateCommentInput{Content: "Congratulations!"}

	t.Run("Success Notifies Post Owner", func(t *testing.T) {
		mockRepo := new(mocks.CommentRepository)
		mockPostRepo := new(mocks.PostRepository)
		mockNotifSvc := new(mocks.NotificationService)
		svc := comment.NewService(mockRepo, mockPostRepo)
		svc.SetNotificationService(mockNotifSvc)

		mockPostRepo.On("GetByID", ctx, postID, guestID).Return(&domain.Post{ID: postID}, nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.PostID == postID && c.GuestID == guestID && c.Content == input.Content
		})).Return(nil).Once()
		mockNotifSvc.On("NotifyNewComment", ctx, mock.AnythingOfType("uuid.UUID"), guestID).Return(nil).Once()

		created, err := svc.Create(ctx, postID, guestID, input)

		assert.NoError(t, err)
		assert.Equal(t, input.Content, created.Content)
		mockRepo.AssertExpectations(t)
		mockNotifSvc.AssertExpectations(t)
	})

	t.Run("Post Not Found", func(t *testing.T) {
		mockRepo := new(mocks.CommentRepository)
		mockPostRepo := new(mocks.PostRepository)
		svc := comment.NewService(mockRepo, mockPostRepo)

		mockPostRepo.On("GetByID", ctx, postID, guestID).Return(nil, nil).Once()

		created, err := svc.Create(ctx, postID, guestID, input)

		assert.ErrorIs(t, err, comment.ErrPostNotFound)
		assert.Nil(t, created)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()
	commentID := uuid.New()
	guestID := uuid.New()
	otherID := uuid.New()

	existing := &domain.Comment{ID: commentID, GuestID: guestID}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.CommentRepository)
		svc := comment.NewService(mockRepo, new(mocks.PostRepository))

		mockRepo.On("GetByID", ctx, commentID).Return(existing, nil).Once()
		mockRepo.On("Delete", ctx, commentID).Return(nil).Once()

		err := svc.Delete(ctx, guestID, commentID)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Permission Error", func(t *testing.T) {
		mockRepo := new(mocks.CommentRepository)
		svc := comment.NewService(mockRepo, new(mocks.PostRepository))

		mockRepo.On("GetByID", ctx, commentID).Return(existing, nil).Once()

		err := svc.Delete(ctx, otherID, commentID)

		assert.ErrorIs(t, err, comment.ErrNotAllowed)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := new(mocks.CommentRepository)
		svc := comment.NewService(mockRepo, new(mocks.PostRepository))

		mockRepo.On("GetByID", ctx, commentID).Return(nil, nil).Once()

		err := svc.Delete(ctx, guestID, commentID)

		assert.ErrorIs(t, err, comment.ErrCommentNotFound)
	})
}

func TestCommentService_ListByPost(t *testing.T) {
	ctx := context.Background()
	postID := uuid.New()

	mockRepo := new(mocks.CommentRepository)
	svc := comment.NewService(mockRepo, new(mocks.PostRepository))

	comments := []domain.Comment{{ID: uuid.New()}, {ID: uuid.New()}}
	params := domain.PaginationParams{Page: 1, PageSize: 20}
	mockRepo.On("ListByPost", ctx, postID, params).Return(comments, int64(2), nil).Once()

	result, err := svc.ListByPost(ctx, postID, params)

	assert.NoError(t, err)
	assert.Len(t, result.Data, 2)
}
