package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"eventdiscovery/internal/domain"
)

// TokenLifetimes configures how long issued tokens stay valid.
type TokenLifetimes struct {
	Access  time.Duration
	Refresh time.Duration
}

type authService struct {
	userRepo     domain.UserRepository
	hasher       domain.PasswordHasher
	codec        domain.TokenCodec
	lifetimes    TokenLifetimes
	emailService domain.EmailService
	logger       *slog.Logger
	now          func() time.Time
}

// NewAuthService creates an AuthService. emailService may be nil, in which case no welcome mail is sent.
func NewAuthService(userRepo domain.UserRepository, hasher domain.PasswordHasher, codec domain.TokenCodec, lifetimes TokenLifetimes, emailService domain.EmailService, logger *slog.Logger) domain.AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		userRepo:     userRepo,
		hasher:       hasher,
		codec:        codec,
		lifetimes:    lifetimes,
		emailService: emailService,
		logger:       logger,
		now:          time.Now,
	}
}

// issue signs a token bound to the user's current digest.
func (s *authService) issue(u *domain.User, lifetime time.Duration) (string, error) {
	return s.codec.Sign(domain.TokenClaims{
		UserID:         u.ID,
		Username:       u.Username,
		Password:       u.Password,
		ExpirationTime: s.now().Add(lifetime).Unix(),
	})
}

func (s *authService) issuePair(u *domain.User) (*domain.TokenPair, error) {
	access, err := s.issue(u, s.lifetimes.Access)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issue(u, s.lifetimes.Refresh)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify resolves a token to its user. A token stops verifying once its
// expiration_time has passed or the user's password has changed since issue.
func (s *authService) Verify(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.codec.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoUser
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(claims.Password), []byte(user.Password)) != 1 {
		return nil, domain.ErrTokenExpired
	}
	if claims.ExpirationTime < s.now().Unix() {
		return nil, domain.ErrTokenExpired
	}
	return user, nil
}

func (s *authService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", domain.ErrInvalidInput)
	}
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	now := s.now()
	user := domain.NewUser(username, salt, s.hasher.Hash(password, salt), now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.emailService != nil {
		if addr, err := mail.ParseAddress(username); err == nil {
			data := &domain.WelcomeMessageEmailData{Email: addr.Address, Username: username}
			if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
				s.logger.WarnContext(ctx, "welcome email not sent", "user_id", user.ID, "error", err)
			}
		}
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrWrongCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !s.hasher.Compare(user.Password, user.Salt, password) {
		return nil, domain.ErrWrongPassword
	}
	return s.issuePair(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	user, err := s.Verify(ctx, refreshToken)
	if err != nil {
		if domain.IsUnauthorized(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrWrongRefreshToken, err)
		}
		return nil, err
	}
	return s.issuePair(user)
}

// ChangePassword re-salts and rehashes the password. Every token issued before
// the change fails verification afterwards, so a fresh pair is returned.
func (s *authService) ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) (*domain.TokenPair, error) {
	if newPassword == "" {
		return nil, fmt.Errorf("new password is required: %w", domain.ErrInvalidInput)
	}
	if !s.hasher.Compare(user.Password, user.Salt, oldPassword) {
		return nil, domain.ErrWrongPassword
	}
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	digest := s.hasher.Hash(newPassword, salt)
	if err := s.userRepo.UpdatePassword(ctx, user.ID, salt, digest); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}
	updated := *user
	updated.Salt, updated.Password = salt, digest
	return s.issuePair(&updated)
}
