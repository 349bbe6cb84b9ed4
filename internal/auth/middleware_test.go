package auth

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zetroo/catalog-service/internal/domain"
	"github.com/zetroo/catalog-service/internal/mocks"
	apperrors "github.com/zetroo/catalog-service/pkg/util"
)

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Message)
		},
	})
}

func requestWithToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	return req
}

func issue(t *testing.T, tm *TokenManager, email string) string {
	t.Helper()
	token, _, err := tm.Issue(email, "", "")
	require.NoError(t, err)
	return token
}

func TestProtect(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	authn := NewAuthenticator(tm)

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantCalled bool
	}{
		{"missing cookie", "", http.StatusUnauthorized, false},
		{"garbage cookie", "abc.def.ghi", http.StatusUnauthorized, false},
		{"foreign signature", issue(t, NewTokenManager("other", time.Hour), "ana@example.com"), http.StatusUnauthorized, false},
		{"valid", issue(t, tm, "ana@example.com"), http.StatusOK, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			app := newTestApp()
			app.Get("/guarded", authn.Protect(func(c *fiber.Ctx, id Identity) error {
				called = true
				return c.SendString(id.Email())
			}))

			resp, err := app.Test(requestWithToken(tt.token), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}

func TestProtect_IdentityRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := newTestApp()
	app.Get("/guarded", NewAuthenticator(tm).Protect(func(c *fiber.Ctx, id Identity) error {
		fromLocals, ok := IdentityFromContext(c)
		require.True(t, ok)
		assert.Equal(t, id, fromLocals)
		return c.SendString(id.Email())
	}))

	resp, err := app.Test(requestWithToken(issue(t, tm, "Mixed.Case+tag@example.com")), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Mixed.Case+tag@example.com", string(body))
}

func TestAdminGuard(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	users := mocks.NewUserStore(
		domain.User{Email: "admin@example.com", Role: domain.RoleAdmin},
		domain.User{Email: "member@example.com"},
		domain.User{Email: "editor@example.com", Role: "editor"},
		domain.User{Email: "shout@example.com", Role: "ADMIN"},
	)

	tests := []struct {
		email      string
		wantStatus int
	}{
		{"admin@example.com", http.StatusOK},
		{"member@example.com", http.StatusUnauthorized},
		{"editor@example.com", http.StatusUnauthorized},
		{"shout@example.com", http.StatusUnauthorized},
		{"stranger@example.com", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			called := false
			app := newTestApp()
			guard := NewAdminGuard(users)
			app.Get("/guarded", NewAuthenticator(tm).Protect(guard.Require(func(c *fiber.Ctx, _ Identity) error {
				called = true
				return c.SendStatus(http.StatusOK)
			})))

			resp, err := app.Test(requestWithToken(issue(t, tm, tt.email)), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
		})
	}
}

func TestAdminGuard_StoreFailureIsInternal(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	users := mocks.NewUserStore()
	users.Err = errors.New("socket closed")

	app := newTestApp()
	app.Get("/guarded", NewAuthenticator(tm).Protect(NewAdminGuard(users).Require(func(c *fiber.Ctx, _ Identity) error {
		return c.SendStatus(http.StatusOK)
	})))

	resp, err := app.Test(requestWithToken(issue(t, tm, "admin@example.com")), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestProtect_ExposesExtraClaims(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, _, err := tm.IssueWithClaims("ana@example.com", "", "", map[string]any{"uid": "g-123"})
	require.NoError(t, err)

	app := newTestApp()
	app.Get("/guarded", NewAuthenticator(tm).Protect(func(c *fiber.Ctx, id Identity) error {
		uid, ok := id.Claim("uid")
		require.True(t, ok)
		_, ok = id.Claim("exp")
		assert.False(t, ok)
		return c.SendString(uid.(string))
	}))

	resp, err := app.Test(requestWithToken(token), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "g-123", string(body))
}
