// Package adapters provides the repository implementations for the
// accounts feature.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blog_backend/internal/feature/accounts/domain"
	"blog_backend/internal/feature/accounts/domain/entity"
	"blog_backend/internal/feature/accounts/usecase"
	contentusecase "blog_backend/internal/feature/content/usecase"
)

// usersCollection is the name of the users collection.
const usersCollection = "users"

// userMongo is the MongoDB implementation of the user repositories.
type userMongo struct {
	coll *mongo.Collection
}

// userMongo serves both the accounts usecase and the content usecase's
// user directory.
var (
	_ usecase.UserRepository       = (*userMongo)(nil)
	_ contentusecase.UserDirectory = (*userMongo)(nil)
)

// NewUserMongo creates a new userMongo instance on the given database.
func NewUserMongo(database *mongo.Database) *userMongo {
	return &userMongo{coll: database.Collection(usersCollection)}
}

// EnsureIndexes creates the unique index on email. Called once at
// startup; it backs the register path's check-then-write.
func (r *userMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

// Create inserts the user and fills in its generated id. A duplicate
// email reports domain.ErrUserAlreadyExists.
func (r *userMongo) Create(ctx context.Context, user *entity.User) error {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// FindByEmail returns the user with the given email, or
// domain.ErrUserNotFound.
func (r *userMongo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with the given id, or domain.ErrUserNotFound.
func (r *userMongo) FindByID(ctx context.Context, id bson.ObjectID) (*entity.User, error) {
	var user entity.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByIDs returns the users matching the given ids, keyed by id.
// Missing ids are simply absent from the result.
func (r *userMongo) FindByIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]*entity.User, error) {
	users := make(map[bson.ObjectID]*entity.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var results []entity.User
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	for i := range results {
		users[results[i].ID] = &results[i]
	}
	return users, nil
}

// AppendPost appends a post reference to the user's post collection.
func (r *userMongo) AppendPost(ctx context.Context, userID, postID bson.ObjectID) error {
	res, err := r.coll.UpdateByID(ctx, userID, bson.M{
		"$push": bson.M{"posts": postID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
