package router

import (
	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the Gin engine. The identity middleware runs before
// the GraphQL handler so every resolver sees an authentication result;
// it never rejects a request itself.
func NewRouter(identify gin.HandlerFunc, schema *graphqlgo.Schema) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", health)

	api := r.Group("/")
	api.Use(identify)
	{
		api.POST("/graphql", gin.WrapH(&relay.Handler{Schema: schema}))
	}

	return r
}

func health(c *gin.Context) {
	// キャッシュされないように明示
	c.Header("Cache-Control", "no-store")
	c.JSON(200, gin.H{"status": "ok"})
}
