package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zetroo/catalog-service/internal/config"
	"github.com/zetroo/catalog-service/internal/domain"
	"github.com/zetroo/catalog-service/internal/events"
	"github.com/zetroo/catalog-service/internal/mocks"
	"github.com/zetroo/catalog-service/internal/repository"
	apperrors "github.com/zetroo/catalog-service/pkg/util"
)

func TestAuthService_IssueCredential(t *testing.T) {
	svc := NewAuthService(config.Config{
		App:  config.AppConfig{Env: config.EnvProduction},
		Auth: config.AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour},
	})

	token, exp, err := svc.IssueCredential(CredentialInput{Email: " ana@example.com ", Name: "Ana"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
	assert.True(t, svc.CookiePolicy().Secure)

	claims, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)

	token, _, err = svc.IssueCredential(CredentialInput{Email: "ana@example.com", Extra: map[string]any{"locale": "pt-BR"}})
	require.NoError(t, err)
	claims, err = svc.TokenManager().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "pt-BR", claims.Extra["locale"])

	_, _, err = svc.IssueCredential(CredentialInput{})
	assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)
}

func TestUserService_SaveUserIsIdempotentByEmail(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	dispatcher := events.NewInMemoryDispatcher()
	NewActivityService(dispatcher, logger).RegisterHandlers()

	store := mocks.NewUserStore()
	svc := NewUserService(store, dispatcher, logger)

	first, created, err := svc.SaveUser(context.Background(), UserInput{Email: "ana@example.com", Name: "Ana"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, first.ID.IsZero())

	second, created, err := svc.SaveUser(context.Background(), UserInput{Email: "ana@example.com", Name: "Other"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ana", second.Name)

	assert.Equal(t, 1, store.CountByEmail("ana@example.com"))
	assert.Len(t, logs.FilterMessage("UserRegistered").All(), 1)
}

func TestUserService_SaveUserNeverSetsRole(t *testing.T) {
	store := mocks.NewUserStore()
	svc := NewUserService(store, nil, zap.NewNop())

	user, _, err := svc.SaveUser(context.Background(), UserInput{Email: "eve@example.com"})
	require.NoError(t, err)
	assert.Empty(t, user.Role)
}

func TestUserService_SaveUserStoreError(t *testing.T) {
	store := mocks.NewUserStore()
	store.Err = errors.New("timeout")
	svc := NewUserService(store, nil, zap.NewNop())

	_, _, err := svc.SaveUser(context.Background(), UserInput{Email: "ana@example.com"})
	assert.Error(t, err)
}

func TestUserService_RoleByEmail(t *testing.T) {
	store := mocks.NewUserStore(
		domain.User{Email: "admin@example.com", Role: domain.RoleAdmin},
		domain.User{Email: "plain@example.com"},
	)
	svc := NewUserService(store, nil, zap.NewNop())

	role, found, err := svc.RoleByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, domain.RoleAdmin, role)

	role, found, err = svc.RoleByEmail(context.Background(), "plain@example.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, role)

	_, found, err = svc.RoleByEmail(context.Background(), "none@x.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProductService(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	dispatcher := events.NewInMemoryDispatcher()
	NewActivityService(dispatcher, logger).RegisterHandlers()

	store := mocks.NewProductStore()
	svc := NewProductService(store, dispatcher, logger)

	product := domain.Product{"name": "Boot", "category": "shoes", "brand": "acme", "sizes": []any{40, 41}}
	id, err := svc.CreateProduct(context.Background(), "admin@example.com", product)
	require.NoError(t, err)
	require.False(t, id.IsZero())

	got, err := svc.GetProduct(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Boot", got.Text("name"))
	assert.Equal(t, []any{40, 41}, got["sizes"])

	_, err = svc.GetProduct(context.Background(), "not-an-id")
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)

	list, err := svc.ListProducts(context.Background(), repository.ProductFilter{Brands: []string{"acme"}})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	created := logs.FilterMessage("ProductCreated").All()
	require.Len(t, created, 1)
	assert.Equal(t, "admin@example.com", created[0].ContextMap()["actor"])
}

func TestPublish_HandlerFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventProductCreated, func(context.Context, events.Event) error {
		return errors.New("sink down")
	})

	svc := NewProductService(mocks.NewProductStore(), dispatcher, zap.New(core))
	_, err := svc.CreateProduct(context.Background(), "admin@example.com", domain.Product{"name": "Hat"})
	require.NoError(t, err)
	assert.Len(t, logs.FilterMessage("event handler failed").All(), 1)
}
