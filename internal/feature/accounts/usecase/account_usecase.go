// Package usecase implements the business logic of the accounts feature.
package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"blog_backend/internal/apperr"
	"blog_backend/internal/feature/accounts/domain"
	"blog_backend/internal/feature/accounts/domain/entity"
	"blog_backend/internal/validation"
)

// hashCost is the bcrypt work factor used for new password digests.
// 12 resists brute force while staying within interactive latency.
const hashCost = 12

// dummyDigest keeps the login path's bcrypt comparison running even
// when no user matched, so response timing does not reveal whether an
// email is registered.
const dummyDigest = "$2a$12$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and fills in its id. It returns
	// domain.ErrUserAlreadyExists when the email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns the user with the given email, or
	// domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// TokenIssuer creates signed identity assertions for logged-in users.
type TokenIssuer interface {
	// Issue creates a signed token embedding the user's id and email.
	Issue(userID, email string) (string, error)
}

// AuthResult is what a successful login returns to the client.
type AuthResult struct {
	Token  string
	UserID string
}

// accountUsecase implements registration and login.
type accountUsecase struct {
	users  UserRepository
	tokens TokenIssuer
}

// NewAccountUsecase creates a new accountUsecase instance.
func NewAccountUsecase(users UserRepository, tokens TokenIssuer) *accountUsecase {
	return &accountUsecase{users: users, tokens: tokens}
}

// Register validates the input, checks email uniqueness, and persists a
// new user with a hashed password. The returned entity still carries
// the digest; the transport layer must project it out.
func (u *accountUsecase) Register(ctx context.Context, email, password, name string) (*entity.User, error) {
	if violations := validation.Signup(email, password); len(violations) > 0 {
		return nil, apperr.Validation("Invalid input", violations)
	}

	// Check-then-write; the unique index on email catches the race.
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("User exists already!")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, apperr.Internal("Fetching user failed", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, apperr.Internal("Hashing password failed", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		Email:     email,
		Name:      name,
		Password:  string(hashed),
		Posts:     []bson.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, apperr.Conflict("User exists already!")
		}
		return nil, apperr.Internal("Creating user failed", err)
	}

	return user, nil
}

// Login authenticates a user and issues a token on success. Unknown
// email and wrong password report the same error so neither factor
// leaks, and the bcrypt comparison always runs to keep timing uniform.
func (u *accountUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, apperr.Internal("Fetching user failed", err)
	}

	digest := dummyDigest
	if err == nil {
		digest = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err != nil || compareErr != nil {
		return nil, apperr.Authentication("Invalid email or password.")
	}

	token, err := u.tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, apperr.Internal("Issuing token failed", err)
	}

	return &AuthResult{Token: token, UserID: user.ID.Hex()}, nil
}
