package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/zetroo/catalog-service/pkg/util"
)

const identityKey = "auth_identity"

const unauthorizedMessage = "unauthorized access"

// Identity is a caller whose credential has been verified. Its fields are
// unexported so only Authenticator can produce a populated one.
type Identity struct {
	email     string
	name      string
	extra     map[string]any
	expiresAt time.Time
}

func (i Identity) Email() string        { return i.email }
func (i Identity) Name() string         { return i.name }
func (i Identity) ExpiresAt() time.Time { return i.expiresAt }

// Claim returns an additional identity claim carried by the credential.
func (i Identity) Claim(key string) (any, bool) {
	v, ok := i.extra[key]
	return v, ok
}

// IdentityHandler is a route handler that requires a verified caller.
type IdentityHandler func(c *fiber.Ctx, id Identity) error

// Authenticator validates the credential cookie on protected routes.
type Authenticator struct {
	tokens *TokenManager
}

// NewAuthenticator constructs the gate.
func NewAuthenticator(tokens *TokenManager) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Protect turns an IdentityHandler into a route handler. Requests without a
// valid credential fail with 401 and never reach next.
func (a *Authenticator) Protect(next IdentityHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(CookieName)
		if token == "" {
			return apperrors.NewUnauthorized(unauthorizedMessage)
		}

		claims, err := a.tokens.Parse(token)
		if err != nil {
			return apperrors.NewUnauthorized(unauthorizedMessage)
		}

		identity := Identity{
			email:     claims.Email,
			name:      claims.Name,
			extra:     claims.Extra,
			expiresAt: claims.ExpiresAt.Time,
		}
		c.Locals(identityKey, identity)
		return next(c, identity)
	}
}

// IdentityFromContext retrieves the identity attached by Protect.
func IdentityFromContext(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(identityKey).(Identity)
	return identity, ok
}
