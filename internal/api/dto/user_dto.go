package dto

import "github.com/spec-kit/listing-service/internal/domain"

// RegisterUserRequest payload for new accounts.
type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest payload for profile updates. Pointers distinguish absent
// fields from empty ones.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// UserResponse is the public view of an account. The password hash never
// leaves the server.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// NewUserResponse maps a domain user onto its public view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	}
}
