package auth

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/listing-service/internal/domain"
	"github.com/spec-kit/listing-service/internal/repository"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for one request.
type Principal struct {
	User     *domain.User
	RawToken string
}

// Middleware validates bearer tokens and loads the live identity.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs the bearer authentication middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle enforces bearer authentication for protected routes. The token's
// embedded role is never trusted for authorization: the user is re-fetched by
// subject id so role changes and deletions take effect immediately.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewExpiredToken()
		}
		return apperrors.NewMalformedToken()
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnknownSubject()
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user, RawToken: token})
	return c.Next()
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewMissingToken()
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.NewMissingToken()
	}
	return parts[1], nil
}

// BasicCredentials decodes an Authorization: Basic header into a username and
// password pair. Only the login exchange accepts this form; resource routes
// require a bearer token.
func BasicCredentials(header string) (username, password string, err error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Basic") {
		return "", "", apperrors.NewMalformedCredentials()
	}
	decoded, decErr := base64.StdEncoding.DecodeString(parts[1])
	if decErr != nil {
		return "", "", apperrors.NewMalformedCredentials()
	}
	username, password, found := strings.Cut(string(decoded), ":")
	if !found || username == "" {
		return "", "", apperrors.NewMalformedCredentials()
	}
	return username, password, nil
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
