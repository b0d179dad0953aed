package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wedding-feed/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]domain.Notification, error)
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, recipient_id, sender_id, subject_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.RecipientID, notif.SenderID, notif.SubjectID,
		notif.Type, notif.Title, notif.Message, notif.Data,
	).Scan(&notif.CreatedAt)
}

// ListByRecipient returns the full list newest first, with the sender's
// display name and avatar joined in for rendering.
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]domain.Notification, error) {
	query := `
		SELECT
			n.notification_id, n.recipient_id, n.sender_id, n.subject_id, n.type,
			n.title, n.message, n.data, n.is_read, n.read_at, n.created_at,
			g.full_name, g.avatar_url
		FROM notifications n
		LEFT JOIN guests g ON n.sender_id = g.guest_id
		WHERE n.recipient_id = $1
		ORDER BY n.created_at DESC`

	rows, err := r.db.QueryxContext(ctx, query, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		var senderName *string
		var senderAvatar *string
		err := rows.Scan(
			&n.ID, &n.RecipientID, &n.SenderID, &n.SubjectID, &n.Type,
			&n.Title, &n.Message, &n.Data, &n.IsRead, &n.ReadAt, &n.CreatedAt,
			&senderName, &senderAvatar,
		)
		if err != nil {
			return nil, err
		}
		if n.SenderID != nil && senderName != nil {
			n.Sender = &domain.GuestSummary{
				ID:        *n.SenderID,
				FullName:  *senderName,
				AvatarURL: senderAvatar,
			}
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE recipient_id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, recipientID)
	return err
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, recipientID)
	return count, err
}
