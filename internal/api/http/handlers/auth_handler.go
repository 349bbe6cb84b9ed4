package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zetroo/catalog-service/internal/api/dto"
	"github.com/zetroo/catalog-service/internal/service"
	apperrors "github.com/zetroo/catalog-service/pkg/util"
)

// AuthHandler issues and clears the session cookie.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// IssueCredential handles POST /jwt.
func (h *AuthHandler) IssueCredential(c *fiber.Ctx) error {
	var req dto.CredentialRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	token, exp, err := h.auth.IssueCredential(service.CredentialInput{
		Email: req.Email,
		Name:  req.Name,
		Photo: req.Photo,
		Extra: req.Extra,
	})
	if err != nil {
		return err
	}

	h.auth.CookiePolicy().Set(c, token, exp)
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Logout handles POST /logout. The token is not revoked server side.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.auth.CookiePolicy().Clear(c)
	return c.JSON(dto.SuccessResponse{Success: true})
}
