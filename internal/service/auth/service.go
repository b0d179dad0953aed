package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"wedding-feed/internal/config"
	"wedding-feed/internal/domain"
	"wedding-feed/internal/repository"
	"wedding-feed/internal/service/email"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrGuestNotFound      = errors.New("guest not found")
)

type Service interface {
	Register(ctx context.Context, input domain.CreateGuestInput) (*domain.Guest, *domain.TokenPair, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.Guest, *domain.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	ValidateAccessToken(token string) (*Claims, error)
	GetGuestByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error)
}

type Claims struct {
	GuestID uuid.UUID `json:"guest_id"`
	Email   string    `json:"email"`
	jwt.RegisteredClaims
}

type service struct {
	guestRepo    repository.GuestRepository
	sessionRepo  repository.SessionRepository
	emailService email.Service
	cfg          *config.Config
	logger       *zap.Logger
}

func NewService(guestRepo repository.GuestRepository, sessionRepo repository.SessionRepository, emailService email.Service, cfg *config.Config, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		guestRepo:    guestRepo,
		sessionRepo:  sessionRepo,
		emailService: emailService,
		cfg:          cfg,
		logger:       logger,
	}
}

func (s *service) Register(ctx context.Context, input domain.CreateGuestInput) (*domain.Guest, *domain.TokenPair, error) {
	exists, err := s.guestRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	guest := &domain.Guest{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FullName:     input.FullName,
		Role:         string(domain.RoleGuest),
		IsActive:     true,
	}

	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, nil, err
	}

	if s.emailService != nil {
		go func(toEmail, fullName string) {
			if err := s.emailService.SendWelcomeEmail(context.Background(), toEmail, fullName); err != nil {
				s.logger.Warn("failed to send welcome email", zap.Error(err))
			}
		}(guest.Email, guest.FullName)
	}

	tokens, err := s.generateTokenPair(ctx, guest)
	if err != nil {
		return nil, nil, err
	}

	return guest, tokens, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.Guest, *domain.TokenPair, error) {
	guest, err := s.guestRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if guest == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(guest.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokenPair(ctx, guest)
	if err != nil {
		return nil, nil, err
	}

	return guest, tokens, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	tokenHash := hashToken(refreshToken)

	session, err := s.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidToken
	}

	guest, err := s.guestRepo.GetByID(ctx, session.GuestID)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrGuestNotFound
	}

	// Rotate: the old refresh token is dead after one use.
	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		return nil, err
	}

	return s.generateTokenPair(ctx, guest)
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) GetGuestByID(ctx context.Context, id uuid.UUID) (*domain.Guest, error) {
	return s.guestRepo.GetByID(ctx, id)
}

func (s *service) generateTokenPair(ctx context.Context, guest *domain.Guest) (*domain.TokenPair, error) {
	accessClaims := &Claims{
		GuestID: guest.ID,
		Email:   guest.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.JWTAccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   guest.ID.String(),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshTokenRaw := uuid.New().String()

	session := &repository.Session{
		ID:        uuid.New(),
		GuestID:   guest.ID,
		TokenHash: hashToken(refreshTokenRaw),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenRaw,
		ExpiresIn:    int64(s.cfg.JWTAccessExpiry.Seconds()),
	}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
