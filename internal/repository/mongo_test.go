package repository

import (
	"context"
	"testing"
	"time"

	"exercise-tracker-service/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestLogQueryWithoutBounds(t *testing.T) {
	query, opts := logQuery("u1", entity.LogFilter{})

	assert.Equal(t, bson.M{"userid": "u1"}, query)
	assert.Nil(t, opts.Limit)
	assert.Equal(t, bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}, opts.Sort)
}

func TestLogQueryWithBoundsAndLimit(t *testing.T) {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)

	query, opts := logQuery("u1", entity.LogFilter{From: &from, To: &to, Limit: 3})

	assert.Equal(t, bson.M{"$gte": from, "$lte": to}, query["date"])
	if assert.NotNil(t, opts.Limit) {
		assert.EqualValues(t, 3, *opts.Limit)
	}
}

func TestMongoGetUserByIDRejectsNonObjectID(t *testing.T) {
	repo := &MongoRepository{}

	_, err := repo.GetUserByID(context.Background(), "not-an-object-id")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLogDocumentToEntity(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := logDocument{
		ID:          oid,
		UserID:      "u1",
		Date:        time.Date(2021, 5, 4, 13, 30, 0, 0, time.UTC),
		Duration:    45,
		Description: "bike",
	}

	ex := doc.toEntity()

	assert.Equal(t, oid.Hex(), ex.ID)
	assert.Equal(t, time.Date(2021, 5, 4, 0, 0, 0, 0, time.UTC), ex.Date)
	assert.Equal(t, 45, ex.Duration)
}

func newMockMongoRepository(mt *mtest.T) *MongoRepository {
	return &MongoRepository{client: mt.Client, users: mt.Coll, logs: mt.Coll}
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create user returns hex id", func(mt *mtest.T) {
		repo := newMockMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user, err := repo.CreateUser(ctx, &entity.User{Username: "alice"})

		require.NoError(mt, err)
		assert.Len(mt, user.ID, 24)
		_, err = primitive.ObjectIDFromHex(user.ID)
		assert.NoError(mt, err)
		assert.Equal(mt, "alice", user.Username)
		assert.Equal(mt, "insert", mt.GetStartedEvent().CommandName)
	})

	mt.Run("create user insert error", func(mt *mtest.T) {
		repo := newMockMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		_, err := repo.CreateUser(ctx, &entity.User{Username: "alice"})

		assert.Error(mt, err)
	})

	mt.Run("get user by id", func(mt *mtest.T) {
		repo := newMockMongoRepository(mt)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "username", Value: "alice"},
		}))

		user, err := repo.GetUserByID(ctx, oid.Hex())

		require.NoError(mt, err)
		assert.Equal(mt, &entity.User{ID: oid.Hex(), Username: "alice"}, user)
	})

	mt.Run("get user by id not found", func(mt *mtest.T) {
		repo := newMockMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		_, err := repo.GetUserByID(ctx, primitive.NewObjectID().Hex())

		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("get users", func(mt *mtest.T) {
		repo := newMockMongoRepository(mt)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "username", Value: "alice"}},
			bson.D{{Key: "_id", Value: second}, {Key: "username", Value: "bob"}},
		))

		users, err := repo.GetUsers(ctx)

		require.NoError(mt, err)
		assert.Equal(mt, []*entity.User{
			{ID: first.Hex(), Username: "alice"},
			{ID: second.Hex(), Username: "bob"},
		}, users)
		projection := mt.GetStartedEvent().Command.Lookup("projection").Document()
		assert.Equal(mt, int32(1), projection.Lookup("username").Int32())
	})

	mt.Run("get users empty", func(mt *mtest.T) {
		repo := newMockMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		users, err := repo.GetUsers(ctx)

		require.NoError(mt, err)
		assert.NotNil(mt, users)
		assert.Empty(mt, users)
	})

	mt.Run("create exercise", func(mt *mtest.T) {
		repo := newMockMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		date := time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)

		ex, err := repo.CreateExercise(ctx, &entity.Exercise{UserID: "u1", Date: date, Duration: 30, Description: "run"})

		require.NoError(mt, err)
		assert.Len(mt, ex.ID, 24)
		assert.Equal(mt, "u1", ex.UserID)
		assert.Equal(mt, date, ex.Date)
		doc := mt.GetStartedEvent().Command.Lookup("documents").Array().Index(0).Value().Document()
		assert.Equal(mt, "u1", doc.Lookup("userid").StringValue())
		assert.Equal(mt, "run", doc.Lookup("description").StringValue())
	})

	mt.Run("get exercises", func(mt *mtest.T) {
		repo := newMockMongoRepository(mt)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.logs", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "userid", Value: "u1"},
			{Key: "date", Value: time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)},
			{Key: "duration", Value: 45},
			{Key: "description", Value: "swim"},
		}))

		exercises, err := repo.GetExercises(ctx, "u1", entity.LogFilter{Limit: 2})

		require.NoError(mt, err)
		assert.Equal(mt, []*entity.Exercise{{
			ID:          oid.Hex(),
			UserID:      "u1",
			Date:        time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC),
			Duration:    45,
			Description: "swim",
		}}, exercises)
		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, "u1", cmd.Lookup("filter", "userid").StringValue())
		assert.EqualValues(mt, 2, cmd.Lookup("limit").AsInt64())
	})

	mt.Run("get exercises empty", func(mt *mtest.T) {
		repo := newMockMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.logs", mtest.FirstBatch))

		exercises, err := repo.GetExercises(ctx, "u1", entity.LogFilter{})

		require.NoError(mt, err)
		assert.NotNil(mt, exercises)
		assert.Empty(mt, exercises)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := newMockMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, repo.EnsureIndexes(ctx))
		assert.Equal(mt, "createIndexes", mt.GetStartedEvent().CommandName)
	})

	mt.Run("ensure indexes error", func(mt *mtest.T) {
		repo := newMockMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}))

		assert.Error(mt, repo.EnsureIndexes(ctx))
	})
}
