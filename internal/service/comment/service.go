package comment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/repository"
	"wedding-feed/internal/service/notification"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrNotAllowed      = errors.New("insufficient permissions for this comment")
)

type Service interface {
	Create(ctx context.Context, postID, guestID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, guestID, id uuid.UUID) error
	ListByPost(ctx context.Context, postID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error)

	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	notifSvc    notification.Service
}

func NewService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) Service {
	return &service{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Create(ctx context.Context, postID, guestID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID, guestID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &domain.Comment{
		ID:      uuid.New(),
		PostID:  postID,
		GuestID: guestID,
		Content: input.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		if err := s.notifSvc.NotifyNewComment(ctx, comment.ID, guestID); err != nil {
			return nil, err
		}
	}

	return comment, nil
}

func (s *service) Delete(ctx context.Context, guestID, id uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	if comment.GuestID != guestID {
		return ErrNotAllowed
	}

	return s.commentRepo.Delete(ctx, id)
}

func (s *service) ListByPost(ctx context.Context, postID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error) {
	comments, total, err := s.commentRepo.ListByPost(ctx, postID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, err
	}

	return domain.NewPaginatedResponse(comments, params.Page, params.PageSize, total), nil
}
