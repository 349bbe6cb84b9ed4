package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/zetroo/catalog-service/internal/domain"
	"github.com/zetroo/catalog-service/internal/repository"
	apperrors "github.com/zetroo/catalog-service/pkg/util"
)

// UserLookup is the slice of the user store the admin check needs.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AdminGuard admits callers whose stored role is exactly "admin".
type AdminGuard struct {
	users UserLookup
}

// NewAdminGuard constructs the guard.
func NewAdminGuard(users UserLookup) *AdminGuard {
	return &AdminGuard{users: users}
}

// Require wraps next with the admin check. It consumes and returns an
// IdentityHandler, so it can only be mounted behind Authenticator.Protect.
func (g *AdminGuard) Require(next IdentityHandler) IdentityHandler {
	return func(c *fiber.Ctx, id Identity) error {
		user, err := g.users.GetByEmail(c.UserContext(), id.Email())
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewUnauthorized(unauthorizedMessage)
			}
			return apperrors.NewInternalError(err)
		}
		if !user.IsAdmin() {
			return apperrors.NewUnauthorized(unauthorizedMessage)
		}
		return next(c, id)
	}
}
