package service

import (
	"context"

	"github.com/spec-kit/listing-service/internal/auth"
	"github.com/spec-kit/listing-service/internal/config"
	"github.com/spec-kit/listing-service/internal/domain"
	"github.com/spec-kit/listing-service/internal/repository"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// UserService covers the user-management operations beyond login.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, users repository.UserRepository) *UserService {
	return &UserService{users: users, bcryptCost: cfg.Auth.BcryptCost}
}

// List returns all accounts. Route-level guards restrict this to admins.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Get loads a single account by id.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UserUpdateInput carries optional profile fields. Nil means unchanged.
type UserUpdateInput struct {
	Username *string
	Email    *string
	Role     *string
}

// Update modifies an account. Only the account holder or an administrator may
// update, and only administrators may change roles.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id int64, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.AllowsOwner(actor, user.ID) {
		return nil, apperrors.NewForbidden("permission denied")
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil {
		if actor.Role != domain.RoleAdmin {
			return nil, apperrors.NewForbidden("only administrators may change roles")
		}
		role, err := domain.ParseRole(*input.Role)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *input.Role})
		}
		user.Role = role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the stored hash. Only the account holder or an
// administrator may change it.
func (s *UserService) ChangePassword(ctx context.Context, actor *domain.User, id int64, newPassword string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.AllowsOwner(actor, user.ID) {
		return apperrors.NewForbidden("permission denied")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}
