package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserUpdate_OnlySetFields(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 123456789, time.UTC)
	email := "new@example.com"

	got := userUpdate(models.UserPatch{Email: &email}, now)

	assert.Equal(t, bson.M{"$set": bson.M{
		"email":     "new@example.com",
		"updatedAt": now.Truncate(time.Millisecond),
	}}, got)
}

func TestUserUpdate_EmptyPatchTouchesTimestamp(t *testing.T) {
	now := time.Now()
	got := userUpdate(models.UserPatch{}, now)

	set, ok := got["$set"].(bson.M)
	require.True(t, ok)
	assert.Len(t, set, 1)
	assert.Contains(t, set, "updatedAt")
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		got, err := repo.Create(context.Background(), &models.User{FullName: "Alice", Email: "alice@example.com", PasswordHash: "hash"})
		require.NoError(mt, err)
		assert.NotEmpty(mt, got.ID)
		assert.False(mt, got.CreatedAt.IsZero())
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repo.Create(context.Background(), &models.User{FullName: "Alice", Email: "alice@example.com", PasswordHash: "hash"})
		assert.True(mt, errors.Is(err, common.ErrorConflict), "got %v", err)
	})

	mt.Run("get by email", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: userID},
			{Key: "fullName", Value: "Alice"},
			{Key: "email", Value: "alice@example.com"},
			{Key: "passwordHash", Value: "hash"},
		}))

		got, err := repo.GetByEmail(context.Background(), "alice@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, userID, got.ID)
		assert.Equal(mt, "hash", got.PasswordHash)
	})

	mt.Run("get by id missing", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "nope")
		assert.True(mt, errors.Is(err, common.ErrorNotFound), "got %v", err)
	})

	mt.Run("update returns new document", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: bson.D{
				{Key: "_id", Value: userID},
				{Key: "fullName", Value: "Alice Cooper"},
				{Key: "email", Value: "alice@example.com"},
			}},
		})

		name := "Alice Cooper"
		got, err := repo.Update(context.Background(), userID, models.UserPatch{FullName: &name})
		require.NoError(mt, err)
		assert.Equal(mt, "Alice Cooper", got.FullName)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}})

		name := "x"
		_, err := repo.Update(context.Background(), userID, models.UserPatch{FullName: &name})
		assert.True(mt, errors.Is(err, common.ErrorNotFound), "got %v", err)
	})
}
