package tasks

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestListFilter(t *testing.T) {
	assert.Equal(t, bson.M{"userId": "u1"}, listFilter("u1", ""))

	f := listFilter("u1", "a.b*(c")
	re, ok := f["title"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "i", re.Options)

	compiled := regexp.MustCompile("(?i)" + re.Pattern)
	assert.True(t, compiled.MatchString("XA.B*(CX"))
	assert.False(t, compiled.MatchString("aXbbc"))
}

func TestOwnedFilterAlwaysCarriesOwner(t *testing.T) {
	assert.Equal(t, bson.M{"_id": "t1", "userId": "u1"}, ownedFilter("u1", "t1"))
}

func TestTaskUpdate(t *testing.T) {
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	done := true
	desc := ""

	got := taskUpdate(models.TaskPatch{Completed: &done, Description: &desc}, now)

	assert.Equal(t, bson.M{"$set": bson.M{
		"completed":   true,
		"description": "",
		"updatedAt":   now,
	}}, got)
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		got, err := repo.Create(context.Background(), &models.Task{OwnerID: ownerID, Title: "Buy milk"})
		require.NoError(mt, err)
		assert.NotEmpty(mt, got.ID)
		assert.False(mt, got.CreatedAt.IsZero())
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "b"}, {Key: "userId", Value: ownerID}, {Key: "title", Value: "Walk dog"}},
			bson.D{{Key: "_id", Value: "a"}, {Key: "userId", Value: ownerID}, {Key: "title", Value: "Buy milk"}},
		))

		got, err := repo.List(context.Background(), ownerID, "")
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "b", got[0].ID)
		assert.Equal(mt, "a", got[1].ID)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}})

		done := true
		_, err := repo.Update(context.Background(), otherID, taskID, models.TaskPatch{Completed: &done})
		assert.True(mt, errors.Is(err, common.ErrorNotFound), "got %v", err)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}},
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}},
		)

		require.NoError(mt, repo.Delete(context.Background(), ownerID, taskID))
		err := repo.Delete(context.Background(), ownerID, taskID)
		assert.True(mt, errors.Is(err, common.ErrorNotFound), "got %v", err)
	})
}
