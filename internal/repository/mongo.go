package repository

import (
	"context"
	"errors"
	"exercise-tracker-service/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"time"
)

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
}

type logDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"userid"`
	Date        time.Time          `bson:"date"`
	Duration    int                `bson:"duration"`
	Description string             `bson:"description"`
}

type MongoRepository struct {
	client *mongo.Client
	users  *mongo.Collection
	logs   *mongo.Collection
}

// ConnectMongo opens a client and pings the deployment.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client, nil
}

func NewMongoRepository(client *mongo.Client, database string) *MongoRepository {
	db := client.Database(database)
	return &MongoRepository{
		client: client,
		users:  db.Collection("users"),
		logs:   db.Collection("logs"),
	}
}

// EnsureIndexes creates the log lookup index if it is missing.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userid", Value: 1}, {Key: "date", Value: 1}},
	})
	return err
}

func (r *MongoRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	res, err := r.users.InsertOne(ctx, userDocument{Username: user.Username})
	if err != nil {
		return nil, err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.New("unexpected inserted id type")
	}

	return &entity.User{ID: oid.Hex(), Username: user.Username}, nil
}

func (r *MongoRepository) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// an id that cannot be an ObjectID cannot name a stored user
		return nil, ErrNotFound
	}

	var doc userDocument
	err = r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return doc.toEntity(), nil
}

func (r *MongoRepository) GetUsers(ctx context.Context) ([]*entity.User, error) {
	cursor, err := r.users.Find(ctx, bson.D{}, options.Find().SetProjection(bson.M{"username": 1}))
	if err != nil {
		return nil, err
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toEntity())
	}
	return users, nil
}

// CreateExercise does not re-check the user; callers look it up first.
func (r *MongoRepository) CreateExercise(ctx context.Context, exercise *entity.Exercise) (*entity.Exercise, error) {
	res, err := r.logs.InsertOne(ctx, logDocument{
		UserID:      exercise.UserID,
		Date:        exercise.Date,
		Duration:    exercise.Duration,
		Description: exercise.Description,
	})
	if err != nil {
		return nil, err
	}

	created := *exercise
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoRepository) GetExercises(ctx context.Context, userID string, filter entity.LogFilter) ([]*entity.Exercise, error) {
	query, opts := logQuery(userID, filter)

	cursor, err := r.logs.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var docs []logDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	exercises := make([]*entity.Exercise, 0, len(docs))
	for i := range docs {
		exercises = append(exercises, docs[i].toEntity())
	}
	return exercises, nil
}

func logQuery(userID string, filter entity.LogFilter) (bson.M, *options.FindOptions) {
	query := bson.M{"userid": userID}

	dateRange := bson.M{}
	if filter.From != nil {
		dateRange["$gte"] = *filter.From
	}
	if filter.To != nil {
		dateRange["$lte"] = *filter.To
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	return query, opts
}

func (r *MongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{ID: d.ID.Hex(), Username: d.Username}
}

func (d *logDocument) toEntity() *entity.Exercise {
	return &entity.Exercise{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		Date:        entity.CalendarDate(d.Date),
		Duration:    d.Duration,
		Description: d.Description,
	}
}
