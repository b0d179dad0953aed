package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"wedding-feed/internal/domain"
)

type StoryRepository interface {
	Create(ctx context.Context, story *domain.Story) error
	ListActive(ctx context.Context, viewerID uuid.UUID) ([]domain.Story, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type storyRepository struct {
	db *sqlx.DB
}

func NewStoryRepository(db *sqlx.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *domain.Story) error {
	query := `
		INSERT INTO stories (story_id, author_id, media_url, media_type, caption, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		story.ID, story.AuthorID, story.MediaURL, story.MediaType, story.Caption, story.ExpiresAt,
	).Scan(&story.CreatedAt)
}

// ListActive returns unexpired stories from the viewer and the guests the
// viewer follows, oldest first so clients can play them in order.
func (r *storyRepository) ListActive(ctx context.Context, viewerID uuid.UUID) ([]domain.Story, error) {
	query := `
		SELECT
			s.story_id, s.author_id, s.media_url, s.media_type, s.caption, s.expires_at, s.created_at,
			g.full_name, g.avatar_url
		FROM stories s
		INNER JOIN guests g ON s.author_id = g.guest_id
		WHERE s.expires_at > NOW()
		  AND (s.author_id = $1 OR s.author_id IN (SELECT followed_id FROM follows WHERE follower_id = $1))
		ORDER BY s.created_at ASC`

	rows, err := r.db.QueryxContext(ctx, query, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stories := []domain.Story{}
	for rows.Next() {
		var s domain.Story
		var author domain.GuestSummary
		err := rows.Scan(
			&s.ID, &s.AuthorID, &s.MediaURL, &s.MediaType, &s.Caption, &s.ExpiresAt, &s.CreatedAt,
			&author.FullName, &author.AvatarURL,
		)
		if err != nil {
			return nil, err
		}
		author.ID = s.AuthorID
		s.Author = &author
		stories = append(stories, s)
	}

	return stories, rows.Err()
}

func (r *storyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stories WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
