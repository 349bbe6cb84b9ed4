package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/zetroo/catalog-service/internal/domain"
	"github.com/zetroo/catalog-service/internal/events"
	"github.com/zetroo/catalog-service/internal/repository"
	apperrors "github.com/zetroo/catalog-service/pkg/util"
)

// UserInput carries the client-editable profile fields. Role is not one of
// them.
type UserInput struct {
	Email string
	Name  string
	Photo string
}

// UserService manages storefront user records.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	return &UserService{users: users, dispatcher: dispatcher, logger: logger}
}

// SaveUser inserts the user unless the email is already stored. created is
// false when an existing record was found. The check and the insert are not
// atomic: two concurrent saves of a new email can both insert.
func (s *UserService) SaveUser(ctx context.Context, in UserInput) (*domain.User, bool, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, false, apperrors.NewValidationError("email required", nil)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	user := &domain.User{Email: email, Name: in.Name, Photo: in.Photo}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, false, err
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventUserRegistered, user.ID.Hex(), email,
		events.UserRegisteredPayload{Email: email}))
	return user, true, nil
}

// ListUsers returns every stored user.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// RoleByEmail reports the stored role. found is false when no user exists.
func (s *UserService) RoleByEmail(ctx context.Context, email string) (role string, found bool, err error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return user.Role, true, nil
}
