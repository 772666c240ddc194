package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-service/internal/api/dto"
	"github.com/spec-kit/listing-service/internal/auth"
	"github.com/spec-kit/listing-service/internal/service"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// UsersHandler exposes account management endpoints.
type UsersHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService}
}

// Register handles POST /users. Open registration; role defaults to buyer.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("username, email, and password are required", nil)
	}

	user, err := h.auth.Register(c.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}

// List handles GET /users. Admin only (route guard).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"users": items})
}

// Get handles GET /users/:id. Admin only (route guard).
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.Context(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Update handles PUT /users/:id. Admin or the account holder; the service
// enforces the ownership rule and restricts role changes to admins.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewMissingToken()
	}
	id, err := userID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.Update(c.Context(), principal.User, id, service.UserUpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// ChangePassword handles PUT /users/:id/password.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewMissingToken()
	}
	id, err := userID(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.NewPassword == "" {
		return apperrors.NewValidationError("new password required", nil)
	}

	if err := h.users.ChangePassword(c.Context(), principal.User, id, req.NewPassword); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"message": "password updated successfully"})
}

func userID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid user id", nil)
	}
	return id, nil
}
