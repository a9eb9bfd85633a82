// Package graph implements the resolvers behind the GraphQL schema.
// Resolvers consult the request's authentication result, delegate to
// the feature usecases, and project entities into response shapes.
package graph

import (
	"context"
	"errors"
	"log/slog"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blog_backend/internal/apperr"
	userentity "blog_backend/internal/feature/accounts/domain/entity"
	accountsusecase "blog_backend/internal/feature/accounts/usecase"
	contentusecase "blog_backend/internal/feature/content/usecase"
	jwtmw "blog_backend/internal/platform/jwt"
)

// AccountUsecase is the account service surface the resolvers consume.
type AccountUsecase interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, email, password, name string) (*userentity.User, error)
	// Login authenticates a user and issues a token.
	Login(ctx context.Context, email, password string) (*accountsusecase.AuthResult, error)
}

// ContentUsecase is the content service surface the resolvers consume.
type ContentUsecase interface {
	// CreatePost persists a post for the given creator.
	CreatePost(ctx context.Context, creatorID bson.ObjectID, title, content, imageURL string) (*contentusecase.PostWithCreator, error)
	// ListPosts returns one page of posts plus the total count.
	ListPosts(ctx context.Context, page int32) ([]contentusecase.PostWithCreator, int64, error)
	// PostsByIDs returns the given posts, newest first.
	PostsByIDs(ctx context.Context, ids []bson.ObjectID) ([]contentusecase.PostWithCreator, error)
}

// Resolver is the root resolver for queries and mutations.
type Resolver struct {
	accounts AccountUsecase
	content  ContentUsecase
}

// NewResolver creates a new root resolver.
func NewResolver(accounts AccountUsecase, content ContentUsecase) *Resolver {
	return &Resolver{accounts: accounts, content: content}
}

// NewSchema parses the schema against the given root resolver.
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(Schema, r, graphql.UseFieldResolvers())
}

// UserInput is the createUser mutation's input object.
type UserInput struct {
	Email    string
	Name     string
	Password string
}

// PostInput is the createPost mutation's input object.
type PostInput struct {
	Title    string
	Content  string
	ImageUrl *string
}

// UserResolver projects a user into its response shape. Password is
// always null: the digest never leaves the service boundary.
type UserResolver struct {
	ID       graphql.ID `graphql:"_id"`
	Name     string
	Email    string
	Password *string

	postIDs []bson.ObjectID
	root    *Resolver
}

// Posts resolves the user's post collection from its stored references.
func (u *UserResolver) Posts(ctx context.Context) ([]*PostResolver, error) {
	items, err := u.root.content.PostsByIDs(ctx, u.postIDs)
	if err != nil {
		return nil, u.root.fail("user.posts", err)
	}

	resolvers := make([]*PostResolver, 0, len(items))
	for _, item := range items {
		resolvers = append(resolvers, u.root.postResolver(item))
	}
	return resolvers, nil
}

// PostResolver projects a post into its response shape, timestamps
// rendered as RFC 3339 strings.
type PostResolver struct {
	ID        graphql.ID `graphql:"_id"`
	Title     string
	Content   string
	ImageUrl  *string
	Creator   *UserResolver
	CreatedAt string
	UpdatedAt string
}

// AuthDataResolver is the login payload.
type AuthDataResolver struct {
	Token  string
	UserID string
}

// PostDataResolver is the posts listing payload.
type PostDataResolver struct {
	Posts      []*PostResolver
	TotalPosts int32
}

// CreateUser registers a new user. Violations aggregate into a single
// 422 error; a taken email reports a conflict.
func (r *Resolver) CreateUser(ctx context.Context, args struct{ UserInput *UserInput }) (*UserResolver, error) {
	var email, password, name string
	if args.UserInput != nil {
		email, password, name = args.UserInput.Email, args.UserInput.Password, args.UserInput.Name
	}

	user, err := r.accounts.Register(ctx, email, password, name)
	if err != nil {
		return nil, r.fail("createUser", err)
	}

	slog.Info("user registered", "userId", user.ID.Hex(), "email", user.Email)
	return r.userResolver(*user), nil
}

// Login authenticates a user and returns a token with its user id.
func (r *Resolver) Login(ctx context.Context, args struct{ Email, Password string }) (*AuthDataResolver, error) {
	result, err := r.accounts.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, r.fail("login", err)
	}

	slog.Info("user login successful", "userId", result.UserID)
	return &AuthDataResolver{Token: result.Token, UserID: result.UserID}, nil
}

// CreatePost persists a post for the authenticated user and appends the
// reference to the user's post collection.
func (r *Resolver) CreatePost(ctx context.Context, args struct{ PostInput *PostInput }) (*PostResolver, error) {
	creatorID, err := r.requireAuth(ctx, "createPost")
	if err != nil {
		return nil, err
	}

	var title, content, imageURL string
	if args.PostInput != nil {
		title, content = args.PostInput.Title, args.PostInput.Content
		if args.PostInput.ImageUrl != nil {
			imageURL = *args.PostInput.ImageUrl
		}
	}

	item, err := r.content.CreatePost(ctx, creatorID, title, content, imageURL)
	if err != nil {
		return nil, r.fail("createPost", err)
	}

	slog.Info("post created", "postId", item.Post.ID.Hex(), "userId", item.Creator.ID.Hex())
	return r.postResolver(*item), nil
}

// Posts returns one page of posts, newest first, for the authenticated
// user. Page defaults to 1 when absent or below 1.
func (r *Resolver) Posts(ctx context.Context, args struct{ Page *int32 }) (*PostDataResolver, error) {
	if _, err := r.requireAuth(ctx, "posts"); err != nil {
		return nil, err
	}

	page := int32(1)
	if args.Page != nil && *args.Page > 0 {
		page = *args.Page
	}

	items, total, err := r.content.ListPosts(ctx, page)
	if err != nil {
		return nil, r.fail("posts", err)
	}

	posts := make([]*PostResolver, 0, len(items))
	for _, item := range items {
		posts = append(posts, r.postResolver(item))
	}
	return &PostDataResolver{Posts: posts, TotalPosts: int32(total)}, nil
}

// requireAuth returns the authenticated user's id or a 401 error. The
// middleware never rejects requests, so this is where anonymous
// requests stop.
func (r *Resolver) requireAuth(ctx context.Context, op string) (bson.ObjectID, error) {
	auth := jwtmw.FromContext(ctx)
	if !auth.Authenticated {
		return bson.ObjectID{}, r.fail(op, apperr.Authorization("Not authenticated!"))
	}
	id, err := bson.ObjectIDFromHex(auth.UserID)
	if err != nil {
		return bson.ObjectID{}, r.fail(op, apperr.Authorization("Not authenticated!"))
	}
	return id, nil
}

// fail logs the failure and guarantees the returned error carries
// extensions, wrapping anything unexpected as a 500.
func (r *Resolver) fail(op string, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal("Internal server error", err)
	}
	if appErr.Kind == apperr.KindInternal {
		slog.Error("operation failed", "op", op, "error", appErr)
		// The cause stays in the log; clients see only the message
		return &apperr.Error{Kind: apperr.KindInternal, Message: appErr.Message}
	}
	slog.Warn("operation rejected", "op", op, "reason", appErr.Message, "code", appErr.Kind.Code())
	return appErr
}

func (r *Resolver) userResolver(user userentity.User) *UserResolver {
	return &UserResolver{
		ID:      graphql.ID(user.ID.Hex()),
		Name:    user.Name,
		Email:   user.Email,
		postIDs: user.Posts,
		root:    r,
	}
}

func (r *Resolver) postResolver(item contentusecase.PostWithCreator) *PostResolver {
	post := item.Post
	resolver := &PostResolver{
		ID:        graphql.ID(post.ID.Hex()),
		Title:     post.Title,
		Content:   post.Content,
		Creator:   r.userResolver(item.Creator),
		CreatedAt: post.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: post.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if post.ImageURL != "" {
		resolver.ImageUrl = &post.ImageURL
	}
	return resolver
}
