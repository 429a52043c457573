// @title                      CineMyst Onboarding API
// @version                    1.0
// @description                Sign-up, onboarding wizard and profile submission for CineMyst.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/cinemyst/onboarding-service/docs"
	"github.com/cinemyst/onboarding-service/internal/api"
	"github.com/cinemyst/onboarding-service/internal/api/handler"
	"github.com/cinemyst/onboarding-service/internal/core/service"
	mongostore "github.com/cinemyst/onboarding-service/internal/infrastructure/db/mongo"
	redisstore "github.com/cinemyst/onboarding-service/internal/infrastructure/db/redis"
	"github.com/cinemyst/onboarding-service/internal/pkg/config"
	"github.com/cinemyst/onboarding-service/pkg/logger"
)

const (
	serviceName     = "cinemyst-onboarding"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.MustLoad()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Pretty(),
		Service: serviceName,
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	authRepo := mongostore.NewAuthRepository(db)
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("auth index creation failed")
	}

	authService := service.NewAuthService(authRepo, redisstore.NewRevocations(rdb), service.AuthOptions{
		JWTSecret:                cfg.Auth.JWTSecret,
		TokenTTL:                 cfg.Auth.TokenTTL,
		RequireEmailConfirmation: cfg.Auth.EmailConfirmationRequired,
	}, logger.Component("auth"))

	storage := mongostore.NewObjectStorage(db, cfg.PublicBaseURL, cfg.Onboarding.PictureCacheControl)
	profileService := service.NewProfileService(
		authService,
		storage,
		mongostore.NewTableStore(db),
		service.NewJPEGEncoder(cfg.Onboarding.PictureQuality, cfg.Onboarding.PictureMaxDimension),
		logger.Component("profile"),
	)
	onboardingService := service.NewOnboardingService(
		redisstore.NewOnboardingStore(rdb, cfg.Onboarding.DraftTTL),
		profileService,
		cfg.Onboarding.MaxPictureBytes,
		logger.Component("onboarding"),
	)

	e := api.NewRouter(api.Services{
		Auth:            authService,
		Onboarding:      onboardingService,
		Profile:         profileService,
		Storage:         storage,
		MaxPictureBytes: cfg.Onboarding.MaxPictureBytes,
		Checks: map[string]handler.DependencyCheck{
			"mongo": handler.MongoCheck(db),
			"redis": handler.RedisCheck(rdb),
		},
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	log.Info().Msg("http server stopped")
}
