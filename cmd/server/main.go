package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"authbase/internal/auth"
	"authbase/internal/cache"
	"authbase/internal/config"
	"authbase/internal/db"
	"authbase/internal/handler"
	"authbase/internal/logger"
	"authbase/internal/mail"
	"authbase/internal/ratelimit"
	"authbase/internal/repository"
	"authbase/internal/router"
	"authbase/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURI)
	if err != nil {
		zapLogger.Fatal("database init", zap.Error(err))
	}
	if err := db.EnsureIndexes(ctx, database); err != nil {
		zapLogger.Fatal("ensure indexes", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(database)
	refreshRepo := repository.NewRefreshTokenRepository(database)

	// Auth components
	jwtService := auth.NewJWTService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Outbound notification port
	notifier := mail.NewResendNotifier(cfg.EmailAPIKey, cfg.EmailFrom)

	// Rate limiter over the document store
	limiter := ratelimit.New(ratelimit.NewMongoStore(database), cfg.RateLimitPoints, cfg.RateLimitDuration)

	// Services and handlers
	authService := service.NewAuthService(userRepo, refreshRepo, jwtService, tokenStore, notifier, cfg, zapLogger)
	authHandler := handler.NewAuthHandler(authService, cfg)
	healthHandler := handler.NewHealthHandler(cfg)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, zapLogger, jwtService, userRepo, tokenStore, limiter, authHandler, healthHandler)

	zapLogger.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.String("database", db.DatabaseName(cfg.DatabaseURI)),
	)

	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		zapLogger.Fatal("server start", zap.Error(err))
	}
}
