// Package entity defines the domain entities for the content feature.
package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Post represents a published blog post. Posts are immutable after
// creation.
type Post struct {
	// ID is the unique identifier for the post.
	ID bson.ObjectID `bson:"_id,omitempty"`

	// Title is the post's headline.
	Title string `bson:"title"`

	// Content is the post's body.
	Content string `bson:"content"`

	// ImageURL is an optional reference to the post's image.
	ImageURL string `bson:"imageUrl,omitempty"`

	// Creator references the user who submitted the post.
	Creator bson.ObjectID `bson:"creator"`

	// CreatedAt is the timestamp when the post was created.
	CreatedAt time.Time `bson:"createdAt"`

	// UpdatedAt is the timestamp when the post was last updated.
	UpdatedAt time.Time `bson:"updatedAt"`
}
