package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookieFrom(t *testing.T, policy CookiePolicy, clear bool) *http.Cookie {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if clear {
			policy.Clear(c)
		} else {
			policy.Set(c, "abc", time.Now().Add(time.Hour))
		}
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestCookiePolicy_Development(t *testing.T) {
	cookie := cookieFrom(t, NewCookiePolicy(false), false)

	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, "abc", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestCookiePolicy_Production(t *testing.T) {
	cookie := cookieFrom(t, NewCookiePolicy(true), false)

	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func TestCookiePolicy_ClearKeepsAttributes(t *testing.T) {
	cookie := cookieFrom(t, NewCookiePolicy(true), true)

	assert.Equal(t, CookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()))
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
}
