package main

import (
	"context"
	"log"

	"blog_backend/internal/app/router"
	accountsadapters "blog_backend/internal/feature/accounts/adapters"
	accountsusecase "blog_backend/internal/feature/accounts/usecase"
	contentadapters "blog_backend/internal/feature/content/adapters"
	contentusecase "blog_backend/internal/feature/content/usecase"
	"blog_backend/internal/graph"
	"blog_backend/internal/platform/config"
	"blog_backend/internal/platform/db"
	jwtmw "blog_backend/internal/platform/jwt"
)

func main() {
	cfg := config.Load()

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	ctx := context.Background()

	// db
	database, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Repository
	userRepo := accountsadapters.NewUserMongo(database)
	postRepo := contentadapters.NewPostMongo(database)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}

	// Tokens
	tokens := jwtmw.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	// Usecase
	accountsUC := accountsusecase.NewAccountUsecase(userRepo, tokens)
	contentUC := contentusecase.NewContentUsecase(postRepo, userRepo)

	// Resolver + schema
	resolver := graph.NewResolver(accountsUC, contentUC)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatal(err)
	}

	// ルータ生成
	r := router.NewRouter(jwtmw.Identify(tokens), schema)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
