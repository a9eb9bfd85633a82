// Package config loads process configuration from environment variables.
// The result is read once at startup and passed by value into the
// components that need it; nothing reads the environment afterwards.
package config

import (
	"os"
	"time"
)

const (
	// EnvKeyJWTSecret names the environment variable holding the token
	// signing secret.
	EnvKeyJWTSecret = "JWT_SECRET"

	// defaultTokenTTL is the token lifetime used unless JWT_TTL overrides it.
	defaultTokenTTL = time.Hour
)

// Config holds everything the server needs to start.
type Config struct {
	Addr          string        // listen address (e.g. ":8080")
	MongoURI      string        // document store connection string
	MongoDatabase string        // database name
	JWTSecret     string        // token signing secret
	TokenTTL      time.Duration // token lifetime
}

// Load reads the configuration from the environment, falling back to
// development defaults for everything except the signing secret.
func Load() Config {
	cfg := Config{
		Addr:          ":8080",
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "blog",
		JWTSecret:     os.Getenv(EnvKeyJWTSecret),
		TokenTTL:      defaultTokenTTL,
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		cfg.MongoURI = v
	}
	if v := os.Getenv("MONGODB_DATABASE"); v != "" {
		cfg.MongoDatabase = v
	}
	if v := os.Getenv("JWT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TokenTTL = d
		}
	}
	return cfg
}
