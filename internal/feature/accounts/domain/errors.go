// Package domain defines domain-level errors for the accounts feature.
package domain

import "errors"

// Domain errors for account operations. Adapters translate storage
// errors into these; usecases translate them into API errors.
var (
	// ErrUserAlreadyExists indicates that a user with the given email already exists.
	ErrUserAlreadyExists = errors.New("user with this email already exists")

	// ErrUserNotFound indicates that no user matched the given criteria.
	ErrUserNotFound = errors.New("user not found")
)
