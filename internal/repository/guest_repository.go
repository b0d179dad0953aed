package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wedding-feed/internal/domain"
)

type GuestRepository interface {
	Create(ctx context.Context, guest *domain.Guest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error)
	GetByEmail(ctx context.Context, email string) (*domain.Guest, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, guest *domain.Guest) error
	SetPushToken(ctx context.Context, guestID uuid.UUID, token string) error
}

type guestRepository struct {
	db *sqlx.DB
}

func NewGuestRepository(db *sqlx.DB) GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) Create(ctx context.Context, guest *domain.Guest) error {
	query := `
		INSERT INTO guests (guest_id, email, password_hash, full_name, avatar_url, bio, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		guest.ID, guest.Email, guest.PasswordHash, guest.FullName,
		guest.AvatarURL, guest.Bio, guest.Role, guest.IsActive,
	).Scan(&guest.CreatedAt, &guest.UpdatedAt)
}

func (r *guestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error) {
	var guest domain.Guest
	query := `SELECT * FROM guests WHERE guest_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &guest, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *guestRepository) GetByEmail(ctx context.Context, email string) (*domain.Guest, error) {
	var guest domain.Guest
	query := `SELECT * FROM guests WHERE email = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &guest, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *guestRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM guests WHERE email = $1 AND deleted_at IS NULL)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *guestRepository) Update(ctx context.Context, guest *domain.Guest) error {
	query := `
		UPDATE guests
		SET full_name = :full_name, avatar_url = :avatar_url, bio = :bio, updated_at = NOW()
		WHERE guest_id = :guest_id AND deleted_at IS NULL`

	_, err := r.db.NamedExecContext(ctx, query, guest)
	return err
}

// SetPushToken overwrites any previous token; a guest has at most one
// push-delivery destination.
func (r *guestRepository) SetPushToken(ctx context.Context, guestID uuid.UUID, token string) error {
	query := `UPDATE guests SET push_token = $2, updated_at = NOW() WHERE guest_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, guestID, token)
	return err
}
