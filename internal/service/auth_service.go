package service

import (
	"strings"
	"time"

	"github.com/zetroo/catalog-service/internal/auth"
	"github.com/zetroo/catalog-service/internal/config"
	apperrors "github.com/zetroo/catalog-service/pkg/util"
)

// CredentialInput is the identity a storefront client asks to be signed.
type CredentialInput struct {
	Email string
	Name  string
	Photo string
	// Extra holds any other identity claims to sign alongside.
	Extra map[string]any
}

// AuthService issues session credentials.
type AuthService struct {
	tokenMgr *auth.TokenManager
	cookies  auth.CookiePolicy
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config) *AuthService {
	return &AuthService{
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		cookies:  auth.NewCookiePolicy(cfg.App.IsProduction()),
	}
}

// IssueCredential signs the identity. Only the email is mandatory.
func (s *AuthService) IssueCredential(in CredentialInput) (string, time.Time, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return "", time.Time{}, apperrors.NewValidationError("email required", nil)
	}
	token, exp, err := s.tokenMgr.IssueWithClaims(email, in.Name, in.Photo, in.Extra)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// CookiePolicy returns the environment-specific cookie attributes.
func (s *AuthService) CookiePolicy() auth.CookiePolicy {
	return s.cookies
}
