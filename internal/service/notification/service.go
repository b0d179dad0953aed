package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"wedding-feed/internal/domain"
	"wedding-feed/internal/repository"
	"wedding-feed/internal/service/push"
)

var (
	ErrPostNotFound      = errors.New("post not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrNoPushToken       = errors.New("recipient has no push token")
)

type Service interface {
	List(ctx context.Context, recipientID uuid.UUID) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
	RegisterPushToken(ctx context.Context, guestID uuid.UUID, token string) error

	NotifyPostLiked(ctx context.Context, postID, actorID uuid.UUID) error
	NotifyNewComment(ctx context.Context, commentID, actorID uuid.UUID) error
	NotifyNewFollower(ctx context.Context, followedID, actorID uuid.UUID) error

	SendDirect(ctx context.Context, input domain.SendNotificationInput) (string, error)
	SendTest(ctx context.Context, guestID uuid.UUID) (string, error)
}

type service struct {
	notifRepo   repository.NotificationRepository
	guestRepo   repository.GuestRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	sender      push.Sender
	redis       *redis.Client
	logger      *zap.Logger
}

func NewService(
	notifRepo repository.NotificationRepository,
	guestRepo repository.GuestRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	sender push.Sender,
	redis *redis.Client,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		notifRepo:   notifRepo,
		guestRepo:   guestRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		sender:      sender,
		redis:       redis,
		logger:      logger,
	}
}

func (s *service) List(ctx context.Context, recipientID uuid.UUID) ([]domain.Notification, error) {
	return s.notifRepo.ListByRecipient(ctx, recipientID)
}

func (s *service) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	cacheKey := unreadCacheKey(recipientID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		_ = s.redis.Set(ctx, cacheKey, strconv.FormatInt(count, 10), 5*time.Minute).Err()
	}

	return count, nil
}

func (s *service) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	if err := s.notifRepo.MarkAllAsRead(ctx, recipientID); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, recipientID)
	return nil
}

func (s *service) RegisterPushToken(ctx context.Context, guestID uuid.UUID, token string) error {
	if token == "" {
		return errors.New("push token must not be empty")
	}
	return s.guestRepo.SetPushToken(ctx, guestID, token)
}

func (s *service) NotifyPostLiked(ctx context.Context, postID, actorID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, postID, actorID)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return ErrPostNotFound
	}

	// Self-actions never notify.
	if post.AuthorID == actorID {
		return nil
	}

	actor, err := s.guestRepo.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to get actor: %w", err)
	}
	if actor == nil {
		return ErrRecipientNotFound
	}

	owner, err := s.guestRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to get post owner: %w", err)
	}
	if owner == nil {
		return ErrRecipientNotFound
	}

	msg := push.Message{
		Title: "New Like",
		Body:  fmt.Sprintf("%s liked your post", actor.FullName),
		Data: map[string]string{
			"type":    string(domain.NotifPostLike),
			"post_id": postID.String(),
		},
	}

	s.attemptDelivery(ctx, owner, msg)

	data, _ := json.Marshal(msg.Data)
	return s.recordNotification(ctx, &domain.Notification{
		ID:          uuid.New(),
		RecipientID: owner.ID,
		SenderID:    &actor.ID,
		SubjectID:   &postID,
		Type:        domain.NotifPostLike,
		Title:       msg.Title,
		Message:     msg.Body,
		Data:        data,
	})
}

func (s *service) NotifyNewComment(ctx context.Context, commentID, actorID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	post, err := s.postRepo.GetByID(ctx, comment.PostID, actorID)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return ErrPostNotFound
	}

	if post.AuthorID == actorID {
		return nil
	}

	actor, err := s.guestRepo.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to get actor: %w", err)
	}
	if actor == nil {
		return ErrRecipientNotFound
	}

	owner, err := s.guestRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to get post owner: %w", err)
	}
	if owner == nil {
		return ErrRecipientNotFound
	}

	msg := push.Message{
		Title: "New Comment",
		Body:  fmt.Sprintf("%s commented on your post", actor.FullName),
		Data: map[string]string{
			"type":       string(domain.NotifNewComment),
			"post_id":    post.ID.String(),
			"comment_id": commentID.String(),
		},
	}

	s.attemptDelivery(ctx, owner, msg)

	data, _ := json.Marshal(msg.Data)
	return s.recordNotification(ctx, &domain.Notification{
		ID:          uuid.New(),
		RecipientID: owner.ID,
		SenderID:    &actor.ID,
		SubjectID:   &post.ID,
		Type:        domain.NotifNewComment,
		Title:       msg.Title,
		Message:     msg.Body,
		Data:        data,
	})
}

func (s *service) NotifyNewFollower(ctx context.Context, followedID, actorID uuid.UUID) error {
	if followedID == actorID {
		return nil
	}

	actor, err := s.guestRepo.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to get actor: %w", err)
	}
	if actor == nil {
		return ErrRecipientNotFound
	}

	followed, err := s.guestRepo.GetByID(ctx, followedID)
	if err != nil {
		return fmt.Errorf("failed to get followed guest: %w", err)
	}
	if followed == nil {
		return ErrRecipientNotFound
	}

	msg := push.Message{
		Title: "New Follower",
		Body:  fmt.Sprintf("%s started following you", actor.FullName),
		Data: map[string]string{
			"type":     string(domain.NotifNewFollower),
			"guest_id": actorID.String(),
		},
	}

	s.attemptDelivery(ctx, followed, msg)

	data, _ := json.Marshal(msg.Data)
	return s.recordNotification(ctx, &domain.Notification{
		ID:          uuid.New(),
		RecipientID: followed.ID,
		SenderID:    &actor.ID,
		Type:        domain.NotifNewFollower,
		Title:       msg.Title,
		Message:     msg.Body,
		Data:        data,
	})
}

// SendDirect pushes to an arbitrary recipient and records a system
// notification. The push must succeed; this is the one path where a delivery
// failure surfaces to the caller.
func (s *service) SendDirect(ctx context.Context, input domain.SendNotificationInput) (string, error) {
	recipient, err := s.guestRepo.GetByID(ctx, input.RecipientID)
	if err != nil {
		return "", fmt.Errorf("failed to get recipient: %w", err)
	}
	if recipient == nil {
		return "", ErrRecipientNotFound
	}
	if recipient.PushToken == nil || *recipient.PushToken == "" {
		return "", ErrNoPushToken
	}

	outcome := s.sender.Send(ctx, *recipient.PushToken, push.Message{
		Title: input.Title,
		Body:  input.Body,
		Data:  input.Data,
	})
	if !outcome.Delivered {
		return "", fmt.Errorf("push delivery failed: %w", outcome.Err)
	}

	data, _ := json.Marshal(input.Data)
	if err := s.recordNotification(ctx, &domain.Notification{
		ID:          uuid.New(),
		RecipientID: recipient.ID,
		Type:        domain.NotifSystem,
		Title:       input.Title,
		Message:     input.Body,
		Data:        data,
	}); err != nil {
		return "", err
	}

	return outcome.MessageID, nil
}

func (s *service) SendTest(ctx context.Context, guestID uuid.UUID) (string, error) {
	guest, err := s.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		return "", fmt.Errorf("failed to get guest: %w", err)
	}
	if guest == nil {
		return "", ErrRecipientNotFound
	}
	if guest.PushToken == nil || *guest.PushToken == "" {
		return "", ErrNoPushToken
	}

	outcome := s.sender.Send(ctx, *guest.PushToken, push.Message{
		Title: "Test Notification",
		Body:  "Push notifications are working",
		Data:  map[string]string{"type": string(domain.NotifSystem)},
	})
	if !outcome.Delivered {
		return "", fmt.Errorf("push delivery failed: %w", outcome.Err)
	}

	return outcome.MessageID, nil
}

// attemptDelivery is phase one of the two-phase policy: a single best-effort
// push that never fails the caller. No token means no attempt.
func (s *service) attemptDelivery(ctx context.Context, recipient *domain.Guest, msg push.Message) push.DeliveryOutcome {
	if recipient.PushToken == nil || *recipient.PushToken == "" {
		return push.DeliveryOutcome{}
	}

	outcome := s.sender.Send(ctx, *recipient.PushToken, msg)
	if !outcome.Delivered {
		s.logger.Warn("push delivery failed",
			zap.String("recipient_id", recipient.ID.String()),
			zap.Error(outcome.Err),
		)
	}
	return outcome
}

// recordNotification is phase two: the in-app record is the system of record
// and is written regardless of the delivery outcome. Its error is the only
// one that propagates.
func (s *service) recordNotification(ctx context.Context, notif *domain.Notification) error {
	if notif.Data == nil {
		notif.Data = json.RawMessage("{}")
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	s.invalidateUnreadCount(ctx, notif.RecipientID)
	return nil
}

func (s *service) invalidateUnreadCount(ctx context.Context, recipientID uuid.UUID) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, unreadCacheKey(recipientID)).Err()
	}
}

func unreadCacheKey(recipientID uuid.UUID) string {
	return fmt.Sprintf("notifications:unread:%s", recipientID)
}
