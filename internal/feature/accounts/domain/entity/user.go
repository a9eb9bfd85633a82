// Package entity defines the domain entities for the accounts feature.
package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID bson.ObjectID `bson:"_id,omitempty"`

	// Email is the user's address used as the login key.
	// It is unique across the users collection.
	Email string `bson:"email"`

	// Name is the user's display name.
	Name string `bson:"name"`

	// Password is the bcrypt digest of the user's password.
	// Plaintext is never persisted, and the digest never leaves the
	// service boundary.
	Password string `bson:"password"`

	// Posts holds references to the user's posts, in creation order.
	Posts []bson.ObjectID `bson:"posts"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `bson:"createdAt"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `bson:"updatedAt"`
}
