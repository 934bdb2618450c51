package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/config"
	"github.com/taskhive-dev/taskhive/internal/handlers"
	"github.com/taskhive-dev/taskhive/internal/logger"
	"github.com/taskhive-dev/taskhive/internal/router"
	"github.com/taskhive-dev/taskhive/internal/services"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	if err := auth.Init(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration); err != nil {
		logger.Log.Fatal("failed to initialize auth", zap.Error(err))
	}

	if err := db.ConnectDatabase(cfg.Database.DSN); err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.MigrateDatabase(); err != nil {
		logger.Log.Fatal("failed to migrate database", zap.Error(err))
	}

	handlers.SiteTitle = cfg.Site.Title

	if err := bootstrapSuperuser(cfg); err != nil {
		logger.Log.Fatal("failed to bootstrap superuser", zap.Error(err))
	}

	r := router.NewRouter(cfg.Server.AllowedOrigins)

	logger.Log.Info("starting server", zap.String("port", cfg.Server.Port))

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Log.Fatal("failed to start server", zap.Error(err))
	}
}

// bootstrapSuperuser creates the configured admin account on first start.
// A configuration error here aborts startup: an inconsistent superuser must
// never be persisted.
func bootstrapSuperuser(cfg *config.Config) error {
	if cfg.Admin.Email == "" {
		return nil
	}

	_, err := services.CreateSuperuser(db.DB, services.SuperuserParams{
		CreateUserParams: services.CreateUserParams{
			Email:    cfg.Admin.Email,
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
		},
	})

	if err == services.ErrEmailTaken || err == services.ErrUsernameTaken {
		// Already bootstrapped on a previous start.
		return nil
	}

	if err == nil {
		logger.Log.Info("superuser bootstrapped", zap.String("email", cfg.Admin.Email))
	}

	return err
}
