package domain

import (
	"time"

	"github.com/google/uuid"
)

type Guest struct {
	ID           uuid.UUID  `json:"id" db:"guest_id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"full_name" db:"full_name"`
	AvatarURL    *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	Bio          *string    `json:"bio,omitempty" db:"bio"`
	Role         string     `json:"role" db:"role"`
	PushToken    *string    `json:"-" db:"push_token"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

// GuestSummary is the shallow projection joined into feeds, comments and
// notifications for rendering.
type GuestSummary struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
}

type GuestProfile struct {
	Guest
	PostCount      int64 `json:"post_count"`
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
	FollowedByMe   bool  `json:"followed_by_me"`
}

type CreateGuestInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2"`
}

type UpdateGuestInput struct {
	FullName  *string  `json:"full_name,omitempty" validate:"omitempty,min=2"`
	AvatarURL **string `json:"avatar_url,omitempty"`
	Bio       **string `json:"bio,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterPushTokenInput struct {
	Token string `json:"token" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type GuestRole string

const (
	RoleGuest GuestRole = "guest"
	RoleHost  GuestRole = "host"
)

func (r GuestRole) IsValid() bool {
	switch r {
	case RoleGuest, RoleHost:
		return true
	default:
		return false
	}
}

func (g *Guest) HasRole(requiredRole string) bool {
	switch requiredRole {
	case "host":
		return g.Role == "host"
	case "guest":
		return g.Role == "guest" || g.Role == "host"
	default:
		return false
	}
}
