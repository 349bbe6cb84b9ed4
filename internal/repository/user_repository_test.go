package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/zetroo/catalog-service/internal/domain"
	"github.com/zetroo/catalog-service/internal/repository"
)

func TestUserRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("records inserted id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := repository.NewUserRepository(mt.Coll)

		user := &domain.User{Email: "ana@example.com", Name: "Ana"}
		require.NoError(mt, repo.Create(context.Background(), user))
		assert.False(mt, user.ID.IsZero())
		assert.False(mt, user.CreatedAt.IsZero())
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "email", Value: "ana@example.com"},
			{Key: "role", Value: domain.RoleAdmin},
		}))
		repo := repository.NewUserRepository(mt.Coll)

		user, err := repo.GetByEmail(context.Background(), "ana@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, oid, user.ID)
		assert.True(mt, user.IsAdmin())
		assert.Equal(mt, normalize(mt, bson.D{{Key: "email", Value: "ana@example.com"}}), sentFilter(mt))
	})

	mt.Run("missing maps to ErrNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		repo := repository.NewUserRepository(mt.Coll)

		_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestUserRepository_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes every user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: "a@example.com"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: "b@example.com"}, {Key: "role", Value: "admin"}},
		))
		repo := repository.NewUserRepository(mt.Coll)

		users, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, "a@example.com", users[0].Email)
		assert.Empty(mt, users[0].Role)
		assert.Equal(mt, domain.RoleAdmin, users[1].Role)
		assert.Empty(mt, sentFilter(mt))
	})

	mt.Run("cursor failure is returned", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))
		repo := repository.NewUserRepository(mt.Coll)

		_, err := repo.List(context.Background())
		assert.Error(mt, err)
	})
}
