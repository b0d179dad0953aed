package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wedding-feed/internal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*domain.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListFeed(ctx context.Context, viewerID uuid.UUID, params domain.PaginationParams) ([]domain.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID, viewerID uuid.UUID, params domain.PaginationParams) ([]domain.Post, int64, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	InsertLike(ctx context.Context, postID, guestID uuid.UUID) (bool, error)
	DeleteLike(ctx context.Context, postID, guestID uuid.UUID) error
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `
	p.post_id, p.author_id, p.caption, p.media_url, p.media_type, p.created_at,
	g.full_name, g.avatar_url,
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.post_id) AS like_count,
	(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.post_id AND c.deleted_at IS NULL) AS comment_count,
	EXISTS(SELECT 1 FROM likes l WHERE l.post_id = p.post_id AND l.guest_id = $1) AS liked_by_me`

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (post_id, author_id, caption, media_url, media_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		post.ID, post.AuthorID, post.Caption, post.MediaURL, post.MediaType,
	).Scan(&post.CreatedAt)
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*domain.Post, error) {
	query := `
		SELECT` + postColumns + `
		FROM posts p
		INNER JOIN guests g ON p.author_id = g.guest_id
		WHERE p.post_id = $2 AND p.deleted_at IS NULL`

	row := r.db.QueryRowxContext(ctx, query, viewerID, id)
	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE posts SET deleted_at = NOW() WHERE post_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// ListFeed returns posts by the viewer and everyone the viewer follows,
// newest first.
func (r *postRepository) ListFeed(ctx context.Context, viewerID uuid.UUID, params domain.PaginationParams) ([]domain.Post, int64, error) {
	params.Validate()

	var total int64
	countQuery := `
		SELECT COUNT(*) FROM posts p
		WHERE p.deleted_at IS NULL
		  AND (p.author_id = $1 OR p.author_id IN (SELECT followed_id FROM follows WHERE follower_id = $1))`
	if err := r.db.GetContext(ctx, &total, countQuery, viewerID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT` + postColumns + `
		FROM posts p
		INNER JOIN guests g ON p.author_id = g.guest_id
		WHERE p.deleted_at IS NULL
		  AND (p.author_id = $1 OR p.author_id IN (SELECT followed_id FROM follows WHERE follower_id = $1))
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryxContext(ctx, query, viewerID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID, viewerID uuid.UUID, params domain.PaginationParams) ([]domain.Post, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM posts WHERE author_id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery, authorID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT` + postColumns + `
		FROM posts p
		INNER JOIN guests g ON p.author_id = g.guest_id
		WHERE p.author_id = $2 AND p.deleted_at IS NULL
		ORDER BY p.created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.QueryxContext(ctx, query, viewerID, authorID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM posts WHERE author_id = $1 AND deleted_at IS NULL`
	err := r.db.GetContext(ctx, &count, query, authorID)
	return count, err
}

// InsertLike reports whether a row was actually inserted; the unique
// constraint on (post_id, guest_id) turns duplicates into a no-op.
func (r *postRepository) InsertLike(ctx context.Context, postID, guestID uuid.UUID) (bool, error) {
	query := `INSERT INTO likes (post_id, guest_id) VALUES ($1, $2) ON CONFLICT (post_id, guest_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, postID, guestID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *postRepository) DeleteLike(ctx context.Context, postID, guestID uuid.UUID) error {
	query := `DELETE FROM likes WHERE post_id = $1 AND guest_id = $2`
	_, err := r.db.ExecContext(ctx, query, postID, guestID)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var p domain.Post
	var author domain.GuestSummary
	err := row.Scan(
		&p.ID, &p.AuthorID, &p.Caption, &p.MediaURL, &p.MediaType, &p.CreatedAt,
		&author.FullName, &author.AvatarURL,
		&p.LikeCount, &p.CommentCount, &p.LikedByMe,
	)
	if err != nil {
		return nil, err
	}
	author.ID = p.AuthorID
	p.Author = &author
	return &p, nil
}

func scanPosts(rows *sqlx.Rows) ([]domain.Post, error) {
	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}
