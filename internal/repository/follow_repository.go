package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wedding-feed/internal/domain"
)

type FollowRepository interface {
	Insert(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	Delete(ctx context.Context, followerID, followedID uuid.UUID) error
	Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	ListFollowers(ctx context.Context, guestID uuid.UUID) ([]domain.GuestSummary, error)
	ListFollowing(ctx context.Context, guestID uuid.UUID) ([]domain.GuestSummary, error)
	CountFollowers(ctx context.Context, guestID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, guestID uuid.UUID) (int64, error)
}

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Insert reports whether a row was actually inserted; the unique constraint
// on (follower_id, followed_id) turns duplicates into a no-op.
func (r *followRepository) Insert(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	query := `INSERT INTO follows (follower_id, followed_id) VALUES ($1, $2) ON CONFLICT (follower_id, followed_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID uuid.UUID) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`
	_, err := r.db.ExecContext(ctx, query, followerID, followedID)
	return err
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, followerID, followedID)
	return exists, err
}

func (r *followRepository) ListFollowers(ctx context.Context, guestID uuid.UUID) ([]domain.GuestSummary, error) {
	query := `
		SELECT g.guest_id, g.full_name, g.avatar_url
		FROM follows f
		INNER JOIN guests g ON f.follower_id = g.guest_id
		WHERE f.followed_id = $1 AND g.deleted_at IS NULL
		ORDER BY f.created_at DESC`
	return r.listSummaries(ctx, query, guestID)
}

func (r *followRepository) ListFollowing(ctx context.Context, guestID uuid.UUID) ([]domain.GuestSummary, error) {
	query := `
		SELECT g.guest_id, g.full_name, g.avatar_url
		FROM follows f
		INNER JOIN guests g ON f.followed_id = g.guest_id
		WHERE f.follower_id = $1 AND g.deleted_at IS NULL
		ORDER BY f.created_at DESC`
	return r.listSummaries(ctx, query, guestID)
}

func (r *followRepository) CountFollowers(ctx context.Context, guestID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE followed_id = $1`, guestID)
	return count, err
}

func (r *followRepository) CountFollowing(ctx context.Context, guestID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, guestID)
	return count, err
}

func (r *followRepository) listSummaries(ctx context.Context, query string, guestID uuid.UUID) ([]domain.GuestSummary, error) {
	rows, err := r.db.QueryxContext(ctx, query, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guests := []domain.GuestSummary{}
	for rows.Next() {
		var g domain.GuestSummary
		if err := rows.Scan(&g.ID, &g.FullName, &g.AvatarURL); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}
