package auth

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/listing-service/internal/domain"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// RequireRole rejects callers whose current role is outside the allowed set.
// It must be chained after Middleware.Handle so a principal is present.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewMissingToken()
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// OwnerResolver looks up the owner id of a resource. It returns pgx.ErrNoRows
// when the resource does not exist.
type OwnerResolver func(ctx context.Context, resourceID int64) (int64, error)

// RequireOwnership guards mutating routes on owned resources. The resource id
// comes from the named route parameter; the resolver supplies the recorded
// owner. A missing resource yields not-found before any ownership comparison,
// and administrators pass unconditionally.
func RequireOwnership(resource, param string, resolve OwnerResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewMissingToken()
		}
		id, err := strconv.ParseInt(c.Params(param), 10, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid resource id", nil)
		}
		ownerID, err := resolve(c.Context(), id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound(resource, nil)
			}
			return apperrors.MapError(err)
		}
		if !AllowsOwner(principal.User, ownerID) {
			return apperrors.NewForbidden("not the owner")
		}
		return c.Next()
	}
}

// AllowsOwner reports whether the user may act on a resource recorded against
// ownerID. Administrators always pass.
func AllowsOwner(user *domain.User, ownerID int64) bool {
	if user == nil {
		return false
	}
	return user.Role == domain.RoleAdmin || user.ID == ownerID
}
