package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/zetroo/catalog-service/internal/api/dto"
	"github.com/zetroo/catalog-service/internal/auth"
	"github.com/zetroo/catalog-service/internal/domain"
	"github.com/zetroo/catalog-service/internal/service"
	apperrors "github.com/zetroo/catalog-service/pkg/util"
)

// UsersHandler exposes storefront user endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Save handles POST /user.
func (h *UsersHandler) Save(c *fiber.Ctx) error {
	var req dto.SaveUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, created, err := h.users.SaveUser(c.UserContext(), service.UserInput{
		Email: req.Email,
		Name:  req.Name,
		Photo: req.Photo,
	})
	if err != nil {
		return err
	}
	if !created {
		return c.JSON(dto.MessageResponse{Message: "User already exists"})
	}
	return c.JSON(dto.MessageResponse{
		Message: "User saved successfully",
		Result:  &dto.InsertResult{InsertedID: user.ID.Hex()},
	})
}

// List handles GET /users. Admin only.
func (h *UsersHandler) List(c *fiber.Ctx, _ auth.Identity) error {
	users, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// Role handles GET /user/:email.
func (h *UsersHandler) Role(c *fiber.Ctx) error {
	email := c.Params("email")
	if unescaped, err := url.PathUnescape(email); err == nil {
		email = unescaped
	}

	role, found, err := h.users.RoleByEmail(c.UserContext(), email)
	if err != nil {
		return err
	}
	if !found {
		return c.Status(http.StatusNotFound).JSON(dto.RoleResponse{Role: domain.RoleGuest})
	}
	return c.JSON(dto.RoleResponse{Role: role})
}
