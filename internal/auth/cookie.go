package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the cookie carrying the session credential.
const CookieName = "token"

// CookiePolicy decides the credential cookie attributes for a deployment.
type CookiePolicy struct {
	Secure   bool
	SameSite string
}

// NewCookiePolicy returns Secure+SameSite=None in production (cross-site
// storefront) and SameSite=Strict without Secure elsewhere.
func NewCookiePolicy(production bool) CookiePolicy {
	if production {
		return CookiePolicy{Secure: true, SameSite: fiber.CookieSameSiteNoneMode}
	}
	return CookiePolicy{Secure: false, SameSite: fiber.CookieSameSiteStrictMode}
}

// Set writes the credential cookie.
func (p CookiePolicy) Set(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(p.cookie(token, expiresAt))
}

// Clear expires the credential cookie on the client. The token itself stays
// valid until its own expiry.
func (p CookiePolicy) Clear(c *fiber.Ctx) {
	cookie := p.cookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	c.Cookie(cookie)
}

func (p CookiePolicy) cookie(value string, expiresAt time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}
