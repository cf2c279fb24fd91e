package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"draft_backend/internal/app/router"
	authhandler "draft_backend/internal/feature/auth/transport/handler"
	authusecase "draft_backend/internal/feature/auth/usecase"
	draftadapters "draft_backend/internal/feature/draft/adapters"
	drafthandler "draft_backend/internal/feature/draft/transport/handler"
	draftusecase "draft_backend/internal/feature/draft/usecase"
	useradapters "draft_backend/internal/feature/users/adapters"
	userhandler "draft_backend/internal/feature/users/transport/handler"
	userusecase "draft_backend/internal/feature/users/usecase"
	"draft_backend/internal/platform/config"
	"draft_backend/internal/platform/db"
	jwtmw "draft_backend/internal/platform/jwt"
	platformredis "draft_backend/internal/platform/redis"
	"draft_backend/internal/platform/seed"
	"draft_backend/internal/platform/session"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		slog.Warn("jwt.secret is not set, set a strong secret in production")
	}

	gormDB, err := db.Open(cfg.DB)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	if cfg.DB.Seed {
		if err := seed.Run(context.Background(), gormDB); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Sessions live in Redis; auth cannot run without it.
	rdb, err := platformredis.NewClient(cfg.Redis)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			slog.Error("failed to close redis client", "error", err)
		}
	}()

	// Repositories
	userRepo := useradapters.NewUserPostgres(gormDB)
	draftRepo := draftadapters.NewDraftPostgres(gormDB)
	sessionRepo := session.NewSessionRedis(rdb, "session")

	// Usecases
	jwtGen := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.Expiration)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen, cfg.JWT.RefreshTTL)
	userUC := userusecase.NewUserUsecase(userRepo)
	draftUC := draftusecase.NewDraftUsecase(draftRepo, userRepo)

	// Handlers
	authH := authhandler.NewAuthHandler(authUC)
	userH := userhandler.NewUserHandler(userUC)
	draftH := drafthandler.NewDraftHandler(draftUC)

	r := router.New(cfg.JWT.Secret, authH, draftH, userH)

	slog.Info("server starting", "port", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
