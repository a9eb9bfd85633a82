package graph

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blog_backend/internal/apperr"
	userentity "blog_backend/internal/feature/accounts/domain/entity"
	accountsusecase "blog_backend/internal/feature/accounts/usecase"
	contententity "blog_backend/internal/feature/content/domain/entity"
	contentusecase "blog_backend/internal/feature/content/usecase"
	jwtmw "blog_backend/internal/platform/jwt"
)

// mockAccounts is a mock implementation of the AccountUsecase interface.
type mockAccounts struct {
	RegisterFunc func(ctx context.Context, email, password, name string) (*userentity.User, error)
	LoginFunc    func(ctx context.Context, email, password string) (*accountsusecase.AuthResult, error)
}

func (m *mockAccounts) Register(ctx context.Context, email, password, name string) (*userentity.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password, name)
	}
	return nil, apperr.Internal("not implemented", nil)
}

func (m *mockAccounts) Login(ctx context.Context, email, password string) (*accountsusecase.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, apperr.Authentication("Invalid email or password.")
}

// mockContent is a mock implementation of the ContentUsecase interface.
type mockContent struct {
	CreatePostFunc func(ctx context.Context, creatorID bson.ObjectID, title, content, imageURL string) (*contentusecase.PostWithCreator, error)
	ListPostsFunc  func(ctx context.Context, page int32) ([]contentusecase.PostWithCreator, int64, error)
	PostsByIDsFunc func(ctx context.Context, ids []bson.ObjectID) ([]contentusecase.PostWithCreator, error)
}

func (m *mockContent) CreatePost(ctx context.Context, creatorID bson.ObjectID, title, content, imageURL string) (*contentusecase.PostWithCreator, error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, creatorID, title, content, imageURL)
	}
	return nil, apperr.Internal("not implemented", nil)
}

func (m *mockContent) ListPosts(ctx context.Context, page int32) ([]contentusecase.PostWithCreator, int64, error) {
	if m.ListPostsFunc != nil {
		return m.ListPostsFunc(ctx, page)
	}
	return nil, 0, nil
}

func (m *mockContent) PostsByIDs(ctx context.Context, ids []bson.ObjectID) ([]contentusecase.PostWithCreator, error) {
	if m.PostsByIDsFunc != nil {
		return m.PostsByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func execSchema(t *testing.T, ctx context.Context, accounts AccountUsecase, content ContentUsecase, query string) (map[string]interface{}, []map[string]interface{}) {
	t.Helper()

	schema, err := NewSchema(NewResolver(accounts, content))
	require.NoError(t, err)

	resp := schema.Exec(ctx, query, "", nil)

	var data map[string]interface{}
	if len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, &data))
	}

	var errs []map[string]interface{}
	for _, qe := range resp.Errors {
		errs = append(errs, map[string]interface{}{
			"message":    qe.Message,
			"extensions": qe.Extensions,
		})
	}
	return data, errs
}

func authedContext(userID bson.ObjectID) context.Context {
	return jwtmw.WithAuth(context.Background(), jwtmw.Auth{
		Authenticated: true,
		UserID:        userID.Hex(),
		Email:         "test@example.com",
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("success never exposes the password", func(t *testing.T) {
		userID := bson.NewObjectID()
		accounts := &mockAccounts{
			RegisterFunc: func(ctx context.Context, email, password, name string) (*userentity.User, error) {
				assert.Equal(t, "test@example.com", email)
				assert.Equal(t, "password123", password)
				assert.Equal(t, "Tester", name)
				return &userentity.User{
					ID:       userID,
					Email:    email,
					Name:     name,
					Password: "$2a$12$somedigest",
					Posts:    []bson.ObjectID{},
				}, nil
			},
		}

		query := `mutation {
			createUser(userInput: {email: "test@example.com", name: "Tester", password: "password123"}) {
				_id name email password posts { _id }
			}
		}`
		data, errs := execSchema(t, context.Background(), accounts, &mockContent{}, query)

		require.Empty(t, errs)
		created := data["createUser"].(map[string]interface{})
		assert.Equal(t, userID.Hex(), created["_id"])
		assert.Equal(t, "Tester", created["name"])
		assert.Equal(t, "test@example.com", created["email"])
		assert.Nil(t, created["password"])
		assert.Empty(t, created["posts"])
	})

	t.Run("validation failure carries code and violations", func(t *testing.T) {
		accounts := &mockAccounts{
			RegisterFunc: func(ctx context.Context, email, password, name string) (*userentity.User, error) {
				return nil, apperr.Validation("Invalid input", []apperr.Violation{{Message: "E-mail is invalid"}})
			},
		}

		query := `mutation {
			createUser(userInput: {email: "nope", name: "Tester", password: "password123"}) { _id }
		}`
		_, errs := execSchema(t, context.Background(), accounts, &mockContent{}, query)

		require.Len(t, errs, 1)
		assert.Equal(t, "Invalid input", errs[0]["message"])
		ext := errs[0]["extensions"].(map[string]interface{})
		assert.Equal(t, 422, ext["code"])
		assert.Equal(t, []apperr.Violation{{Message: "E-mail is invalid"}}, ext["data"])
	})

	t.Run("conflict surfaces with its code", func(t *testing.T) {
		accounts := &mockAccounts{
			RegisterFunc: func(ctx context.Context, email, password, name string) (*userentity.User, error) {
				return nil, apperr.Conflict("User exists already!")
			},
		}

		query := `mutation {
			createUser(userInput: {email: "taken@example.com", name: "Tester", password: "password123"}) { _id }
		}`
		_, errs := execSchema(t, context.Background(), accounts, &mockContent{}, query)

		require.Len(t, errs, 1)
		assert.Equal(t, "User exists already!", errs[0]["message"])
		ext := errs[0]["extensions"].(map[string]interface{})
		assert.Equal(t, 409, ext["code"])
	})
}

func TestLogin(t *testing.T) {
	t.Run("success returns token and user id", func(t *testing.T) {
		userID := bson.NewObjectID()
		accounts := &mockAccounts{
			LoginFunc: func(ctx context.Context, email, password string) (*accountsusecase.AuthResult, error) {
				return &accountsusecase.AuthResult{Token: "signed-token", UserID: userID.Hex()}, nil
			},
		}

		query := `{ login(email: "test@example.com", password: "password123") { token userId } }`
		data, errs := execSchema(t, context.Background(), accounts, &mockContent{}, query)

		require.Empty(t, errs)
		login := data["login"].(map[string]interface{})
		assert.Equal(t, "signed-token", login["token"])
		assert.Equal(t, userID.Hex(), login["userId"])
	})

	t.Run("bad credentials yield a 401", func(t *testing.T) {
		query := `{ login(email: "test@example.com", password: "wrong") { token userId } }`
		_, errs := execSchema(t, context.Background(), &mockAccounts{}, &mockContent{}, query)

		require.Len(t, errs, 1)
		ext := errs[0]["extensions"].(map[string]interface{})
		assert.Equal(t, 401, ext["code"])
	})
}

func TestCreatePost(t *testing.T) {
	creatorID := bson.NewObjectID()

	newItem := func(title, content, imageURL string) *contentusecase.PostWithCreator {
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		return &contentusecase.PostWithCreator{
			Post: contententity.Post{
				ID:        bson.NewObjectID(),
				Title:     title,
				Content:   content,
				ImageURL:  imageURL,
				Creator:   creatorID,
				CreatedAt: now,
				UpdatedAt: now,
			},
			Creator: userentity.User{ID: creatorID, Name: "Tester", Email: "test@example.com"},
		}
	}

	t.Run("authenticated request creates the post", func(t *testing.T) {
		content := &mockContent{
			CreatePostFunc: func(ctx context.Context, gotCreator bson.ObjectID, title, body, imageURL string) (*contentusecase.PostWithCreator, error) {
				assert.Equal(t, creatorID, gotCreator)
				return newItem(title, body, imageURL), nil
			},
		}

		query := `mutation {
			createPost(postInput: {title: "A first post", content: "Hello from the blog"}) {
				_id title content imageUrl createdAt creator { _id name password }
			}
		}`
		data, errs := execSchema(t, authedContext(creatorID), &mockAccounts{}, content, query)

		require.Empty(t, errs)
		post := data["createPost"].(map[string]interface{})
		assert.Equal(t, "A first post", post["title"])
		assert.Equal(t, "Hello from the blog", post["content"])
		assert.Nil(t, post["imageUrl"])
		assert.Equal(t, "2024-05-01T12:00:00Z", post["createdAt"])
		creator := post["creator"].(map[string]interface{})
		assert.Equal(t, creatorID.Hex(), creator["_id"])
		assert.Nil(t, creator["password"])
	})

	t.Run("missing token yields a 401 without reaching the usecase", func(t *testing.T) {
		called := false
		content := &mockContent{
			CreatePostFunc: func(ctx context.Context, creatorID bson.ObjectID, title, body, imageURL string) (*contentusecase.PostWithCreator, error) {
				called = true
				return nil, nil
			},
		}

		query := `mutation {
			createPost(postInput: {title: "A first post", content: "Hello from the blog"}) { _id }
		}`
		_, errs := execSchema(t, context.Background(), &mockAccounts{}, content, query)

		require.Len(t, errs, 1)
		assert.Equal(t, "Not authenticated!", errs[0]["message"])
		ext := errs[0]["extensions"].(map[string]interface{})
		assert.Equal(t, 401, ext["code"])
		assert.False(t, called)
	})

	t.Run("garbled user id in the session yields a 401", func(t *testing.T) {
		ctx := jwtmw.WithAuth(context.Background(), jwtmw.Auth{Authenticated: true, UserID: "not-an-object-id"})

		query := `mutation {
			createPost(postInput: {title: "A first post", content: "Hello from the blog"}) { _id }
		}`
		_, errs := execSchema(t, ctx, &mockAccounts{}, &mockContent{}, query)

		require.Len(t, errs, 1)
		ext := errs[0]["extensions"].(map[string]interface{})
		assert.Equal(t, 401, ext["code"])
	})
}

func TestPosts(t *testing.T) {
	creatorID := bson.NewObjectID()
	creator := userentity.User{ID: creatorID, Name: "Tester", Email: "test@example.com"}

	listing := func(gotPage *int32) *mockContent {
		return &mockContent{
			ListPostsFunc: func(ctx context.Context, page int32) ([]contentusecase.PostWithCreator, int64, error) {
				if gotPage != nil {
					*gotPage = page
				}
				items := []contentusecase.PostWithCreator{
					{Post: contententity.Post{ID: bson.NewObjectID(), Title: "Newest", Content: "Post content", Creator: creatorID}, Creator: creator},
					{Post: contententity.Post{ID: bson.NewObjectID(), Title: "Older", Content: "Post content", Creator: creatorID}, Creator: creator},
				}
				return items, 5, nil
			},
		}
	}

	t.Run("returns the page and the total", func(t *testing.T) {
		query := `{ posts { posts { _id title creator { name } } totalPosts } }`
		data, errs := execSchema(t, authedContext(creatorID), &mockAccounts{}, listing(nil), query)

		require.Empty(t, errs)
		payload := data["posts"].(map[string]interface{})
		assert.EqualValues(t, 5, payload["totalPosts"])
		posts := payload["posts"].([]interface{})
		require.Len(t, posts, 2)
		first := posts[0].(map[string]interface{})
		assert.Equal(t, "Newest", first["title"])
		assert.Equal(t, "Tester", first["creator"].(map[string]interface{})["name"])
	})

	t.Run("page defaults to 1 when omitted", func(t *testing.T) {
		var gotPage int32
		query := `{ posts { totalPosts } }`
		_, errs := execSchema(t, authedContext(creatorID), &mockAccounts{}, listing(&gotPage), query)

		require.Empty(t, errs)
		assert.EqualValues(t, 1, gotPage)
	})

	t.Run("explicit page is passed through", func(t *testing.T) {
		var gotPage int32
		query := `{ posts(page: 3) { totalPosts } }`
		_, errs := execSchema(t, authedContext(creatorID), &mockAccounts{}, listing(&gotPage), query)

		require.Empty(t, errs)
		assert.EqualValues(t, 3, gotPage)
	})

	t.Run("missing token yields a 401", func(t *testing.T) {
		query := `{ posts { totalPosts } }`
		_, errs := execSchema(t, context.Background(), &mockAccounts{}, listing(nil), query)

		require.Len(t, errs, 1)
		assert.Equal(t, "Not authenticated!", errs[0]["message"])
		ext := errs[0]["extensions"].(map[string]interface{})
		assert.Equal(t, 401, ext["code"])
	})
}

func TestUserPosts(t *testing.T) {
	// createUser's response resolves the user's post references lazily,
	// so a client re-fetching the user sees appended posts.
	userID := bson.NewObjectID()
	postID := bson.NewObjectID()

	accounts := &mockAccounts{
		RegisterFunc: func(ctx context.Context, email, password, name string) (*userentity.User, error) {
			return &userentity.User{ID: userID, Email: email, Name: name, Posts: []bson.ObjectID{postID}}, nil
		},
	}
	content := &mockContent{
		PostsByIDsFunc: func(ctx context.Context, ids []bson.ObjectID) ([]contentusecase.PostWithCreator, error) {
			assert.Equal(t, []bson.ObjectID{postID}, ids)
			return []contentusecase.PostWithCreator{{
				Post:    contententity.Post{ID: postID, Title: "A post title", Content: "Post content", Creator: userID},
				Creator: userentity.User{ID: userID, Name: "Tester"},
			}}, nil
		},
	}

	query := `mutation {
		createUser(userInput: {email: "test@example.com", name: "Tester", password: "password123"}) {
			posts { _id title }
		}
	}`
	data, errs := execSchema(t, context.Background(), accounts, content, query)

	require.Empty(t, errs)
	posts := data["createUser"].(map[string]interface{})["posts"].([]interface{})
	require.Len(t, posts, 1)
	assert.Equal(t, postID.Hex(), posts[0].(map[string]interface{})["_id"])
}
