// Package adapters provides the repository implementations for the
// content feature.
package adapters

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blog_backend/internal/feature/content/domain/entity"
	"blog_backend/internal/feature/content/usecase"
)

// postsCollection is the name of the posts collection.
const postsCollection = "posts"

// postMongo is the MongoDB implementation of the PostRepository interface.
type postMongo struct {
	coll *mongo.Collection
}

var _ usecase.PostRepository = (*postMongo)(nil)

// NewPostMongo creates a new postMongo instance on the given database.
func NewPostMongo(database *mongo.Database) *postMongo {
	return &postMongo{coll: database.Collection(postsCollection)}
}

// Create inserts the post and fills in its generated id.
func (r *postMongo) Create(ctx context.Context, post *entity.Post) error {
	res, err := r.coll.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		post.ID = id
	}
	return nil
}

// FindPage returns posts ordered by creation time descending, applying
// the given skip and limit.
func (r *postMongo) FindPage(ctx context.Context, skip, limit int64) ([]entity.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	var posts []entity.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByIDs returns the posts matching the given ids, newest first.
func (r *postMongo) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]entity.Post, error) {
	if len(ids) == 0 {
		return []entity.Post{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}

	var posts []entity.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the total number of posts in the store.
func (r *postMongo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}
