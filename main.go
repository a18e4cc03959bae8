package main

import (
	"context"

	"catalog/admin"
	"catalog/config"
	"catalog/db"
	"catalog/handlers"
	"catalog/metrics"
	"catalog/pkg/logger"
	"catalog/repository"
	"catalog/storage"
	"catalog/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(logger.Options{Production: cfg.Environment.IsProduction()})
	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database, err := db.Connect(cfg.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	repos := repository.New(database)

	created, err := admin.EnsureSuperuser(context.Background(), repos.Users, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create admin user")
	}
	if created {
		logger.Info().Str("email", cfg.Admin.Email).Msg("admin user created")
	}

	images, err := storage.New(cfg.S3)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure image storage")
	}
	if !cfg.S3.Enabled() {
		logger.Warn().Msg("S3 is not configured, image uploads are disabled")
	}

	r, err := handlers.NewRouter(handlers.Deps{
		Repos:   repos,
		Images:  images,
		Tokens:  utils.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL),
		Metrics: metrics.New(),
		Site:    admin.DefaultSite(),
		Cookie: handlers.CookieConfig{
			Domain: cfg.Server.CookieDomain,
			Secure: cfg.Server.CookieSecure,
		},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build router")
	}

	logger.Info().Str("port", cfg.Server.Port).Str("env", string(cfg.Environment)).Msg("server starting")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
