package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-service/internal/api/dto"
	"github.com/spec-kit/listing-service/internal/auth"
	"github.com/spec-kit/listing-service/internal/service"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// AuthHandler exposes the login and token refresh exchanges.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /login. Credentials come from the JSON body, or from an
// Authorization: Basic header on the alternate path. This is the only place
// basic credentials are accepted.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username, password, err := h.credentials(c)
	if err != nil {
		return err
	}

	_, token, _, err := h.auth.Login(c.Context(), username, password)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{Token: token})
}

// Refresh handles POST /refresh for an authenticated caller.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewMissingToken()
	}
	token, _, err := h.auth.Refresh(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{Token: token})
}

// Logout handles POST /logout. Tokens are stateless, so this only exists so
// clients have a definite end-of-session call.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewMissingToken()
	}
	if err := h.auth.Logout(c.Context(), principal.RawToken); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "successfully logged out"})
}

func (h *AuthHandler) credentials(c *fiber.Ctx) (string, string, error) {
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(strings.ToLower(header), "basic ") {
		return auth.BasicCredentials(header)
	}

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return "", "", apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return "", "", apperrors.NewValidationError("username and password are required", nil)
	}
	return req.Username, req.Password, nil
}
