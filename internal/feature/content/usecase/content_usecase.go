// Package usecase implements the business logic of the content feature.
package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"blog_backend/internal/apperr"
	accountsdomain "blog_backend/internal/feature/accounts/domain"
	userentity "blog_backend/internal/feature/accounts/domain/entity"
	"blog_backend/internal/feature/content/domain/entity"
	"blog_backend/internal/validation"
)

// PageSize is the fixed number of posts per listing page.
const PageSize = 2

// PostRepository abstracts the persistence layer for post entities.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type PostRepository interface {
	// Create persists a new post and fills in its id.
	Create(ctx context.Context, post *entity.Post) error

	// FindPage returns posts ordered by creation time descending,
	// skipping skip documents and returning at most limit.
	FindPage(ctx context.Context, skip, limit int64) ([]entity.Post, error)

	// FindByIDs returns the posts matching the given ids, newest first.
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]entity.Post, error)

	// Count returns the total number of posts in the store.
	Count(ctx context.Context) (int64, error)
}

// UserDirectory is the slice of the user store the content feature
// needs: resolving creators and recording post ownership.
type UserDirectory interface {
	// FindByID returns the user with the given id.
	FindByID(ctx context.Context, id bson.ObjectID) (*userentity.User, error)

	// FindByIDs returns the users matching the given ids, keyed by id.
	FindByIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]*userentity.User, error)

	// AppendPost appends a post reference to the user's post collection.
	AppendPost(ctx context.Context, userID, postID bson.ObjectID) error
}

// PostWithCreator pairs a post with its populated creator.
type PostWithCreator struct {
	Post    entity.Post
	Creator userentity.User
}

// contentUsecase implements post creation and listing.
type contentUsecase struct {
	posts PostRepository
	users UserDirectory
}

// NewContentUsecase creates a new contentUsecase instance.
func NewContentUsecase(posts PostRepository, users UserDirectory) *contentUsecase {
	return &contentUsecase{posts: posts, users: users}
}

// CreatePost validates the input, persists a post for the given
// creator, and appends the post reference to the creator's collection.
// The creator must still exist; a stale session's user id fails the
// same way a missing session does.
func (u *contentUsecase) CreatePost(ctx context.Context, creatorID bson.ObjectID, title, content, imageURL string) (*PostWithCreator, error) {
	if violations := validation.Post(title, content); len(violations) > 0 {
		return nil, apperr.Validation("Invalid input", violations)
	}

	creator, err := u.users.FindByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, accountsdomain.ErrUserNotFound) {
			return nil, apperr.NotFound("Invalid user.")
		}
		return nil, apperr.Internal("Fetching user failed", err)
	}

	now := time.Now().UTC()
	post := &entity.Post{
		Title:     title,
		Content:   content,
		ImageURL:  imageURL,
		Creator:   creator.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, apperr.Internal("Creating post failed", err)
	}
	if err := u.users.AppendPost(ctx, creator.ID, post.ID); err != nil {
		return nil, apperr.Internal("Updating user failed", err)
	}
	creator.Posts = append(creator.Posts, post.ID)

	return &PostWithCreator{Post: *post, Creator: *creator}, nil
}

// ListPosts returns one page of posts, newest first, with creators
// populated, plus the total post count. Pages below 1 read as page 1.
func (u *contentUsecase) ListPosts(ctx context.Context, page int32) ([]PostWithCreator, int64, error) {
	if page < 1 {
		page = 1
	}

	total, err := u.posts.Count(ctx)
	if err != nil {
		return nil, 0, apperr.Internal("Counting posts failed", err)
	}

	posts, err := u.posts.FindPage(ctx, int64(page-1)*PageSize, PageSize)
	if err != nil {
		return nil, 0, apperr.Internal("Fetching posts failed", err)
	}

	items, err := u.populateCreators(ctx, posts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// PostsByIDs returns the given posts, newest first, with creators
// populated. It backs the user's post collection field.
func (u *contentUsecase) PostsByIDs(ctx context.Context, ids []bson.ObjectID) ([]PostWithCreator, error) {
	posts, err := u.posts.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("Fetching posts failed", err)
	}
	return u.populateCreators(ctx, posts)
}

// populateCreators resolves each post's creator. A post referencing a
// missing user is a broken invariant and surfaces as an internal error.
func (u *contentUsecase) populateCreators(ctx context.Context, posts []entity.Post) ([]PostWithCreator, error) {
	ids := make([]bson.ObjectID, 0, len(posts))
	seen := make(map[bson.ObjectID]bool, len(posts))
	for _, p := range posts {
		if !seen[p.Creator] {
			seen[p.Creator] = true
			ids = append(ids, p.Creator)
		}
	}

	creators, err := u.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("Fetching users failed", err)
	}

	items := make([]PostWithCreator, 0, len(posts))
	for _, p := range posts {
		creator, ok := creators[p.Creator]
		if !ok {
			return nil, apperr.Internal("Fetching users failed", accountsdomain.ErrUserNotFound)
		}
		items = append(items, PostWithCreator{Post: p, Creator: *creator})
	}
	return items, nil
}
