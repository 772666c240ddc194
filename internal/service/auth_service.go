package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/listing-service/internal/auth"
	"github.com/spec-kit/listing-service/internal/config"
	"github.com/spec-kit/listing-service/internal/domain"
	"github.com/spec-kit/listing-service/internal/events"
	"github.com/spec-kit/listing-service/internal/repository"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// AuthService coordinates registration, login and token refresh.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account. Role defaults to buyer when empty.
func (s *AuthService) Register(ctx context.Context, username, email, password, roleStr string) (*domain.User, error) {
	role := domain.RoleBuyer
	if roleStr != "" {
		parsed, err := domain.ParseRole(roleStr)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": roleStr})
		}
		role = parsed
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventUserRegistered,
			Actor:     events.Actor{UserID: user.ID, Role: user.Role},
			Timestamp: time.Now(),
			Payload:   events.UserRegisteredPayload{Username: user.Username, Role: user.Role},
		})
	}
	return user, nil
}

// Login verifies the credential pair and issues a session token. Unknown
// username and wrong password both surface as invalid credentials so the
// response does not leak which usernames exist. Store failures surface as
// internal errors, never as a credential rejection.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Refresh issues a new token for an already-authenticated caller with a fresh
// expiry window. The previous token stays valid until its own expiry; the
// design is stateless and keeps no revocation list.
func (s *AuthService) Refresh(_ context.Context, user *domain.User) (string, time.Time, error) {
	return s.tokenMgr.Issue(user)
}

// Logout is a no-op for the stateless token approach.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
