// Package db bootstraps the MongoDB connection the repositories share.
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"blog_backend/internal/platform/config"
)

// pingTimeout bounds the startup reachability check.
const pingTimeout = 10 * time.Second

// Open connects to the document store and verifies it is reachable.
// Pool sizing, timeouts, and retries beyond this point are the
// driver's responsibility.
func Open(ctx context.Context, cfg config.Config) (*mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongodb is unreachable: %w", err)
	}

	return client.Database(cfg.MongoDatabase), nil
}
