package jwtmw

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// Auth is the per-request authentication result. It is computed once at
// request entry and never mutated afterwards; resolvers decide what an
// anonymous request may do.
type Auth struct {
	Authenticated bool
	UserID        string
	Email         string
}

type authKey struct{}

// WithAuth returns a context carrying the given authentication result.
func WithAuth(ctx context.Context, auth Auth) context.Context {
	return context.WithValue(ctx, authKey{}, auth)
}

// FromContext returns the request's authentication result. A context
// without one reads as anonymous.
func FromContext(ctx context.Context) Auth {
	auth, _ := ctx.Value(authKey{}).(Auth)
	return auth
}

// TokenVerifier validates an identity assertion. The interface is
// defined here, on the consumer side, so tests can substitute the
// Manager.
type TokenVerifier interface {
	// Verify parses and validates a token and returns its identity.
	Verify(token string) (*Identity, error)
}

// Identify returns a Gin middleware that resolves the request's bearer
// token into an Auth value on the request context. It never aborts: a
// missing, malformed, expired, or forged token leaves the request
// anonymous and lets each resolver enforce authorization itself.
func Identify(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var auth Auth

		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, bearerPrefix) {
			tokenStr := strings.TrimPrefix(header, bearerPrefix)
			if id, err := verifier.Verify(tokenStr); err == nil {
				auth = Auth{Authenticated: true, UserID: id.UserID, Email: id.Email}
			} else {
				// Anonymous, not rejected
				slog.Debug("token verification failed", "error", err, "remote_addr", c.ClientIP())
			}
		}

		c.Request = c.Request.WithContext(WithAuth(c.Request.Context(), auth))
		c.Next()
	}
}
