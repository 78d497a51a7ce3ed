package main

import (
	"context"
	"fmt"
	"log"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/config"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/constants"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/handlers"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/inits"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/jwt"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/middlewares"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/models"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/storage"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/users"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	l.Debug("logger initialized")

	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	j, err := jwt.New(cfg.Security.SignatureSecretKey)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	dir := users.NewGorm(db, cfg.Security.HashCost)
	factory := storage.NewFactory(dir, storageBuilder(cfg))

	handlerApp := handlers.NewApp(l, dir, factory, j)

	e := echo.New()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())

	registerRoutes(e, handlerApp, j, rdb, l)

	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}

func registerRoutes(e *echo.Echo, h *handlers.App, j *jwt.Service, rdb *redis.Client, l *zap.Logger) {
	e.GET("/healthz", h.HealthCheck)

	// public, throttled
	auth := e.Group("/auth",
		middlewares.RateLimit(rdb, l, constants.RateLimitMax, constants.RateLimitWindow))
	auth.POST("/register", h.AuthRegister)
	auth.POST("/login", h.AuthLogin)

	// everything below requires a verified token
	guard := middlewares.Auth(j, l)

	userGroup := e.Group("/users", guard)
	userGroup.GET("/:id", h.UserInfoGet)
	userGroup.PATCH("/:id", h.UserUpdate)

	storageGroup := e.Group("/storage", guard)
	storageGroup.GET("/get-folders", h.StorageGetFolders)
	storageGroup.GET("/get-folder", h.StorageGetFolder)
	storageGroup.GET("/get-url", h.StorageGetURL)
	storageGroup.GET("/download-file", h.StorageDownloadFile)
	storageGroup.POST("/create-folder", h.StorageCreateFolder)
	storageGroup.POST("/upload-file", h.StorageUploadFile)
}

// storageBuilder picks the provider backend once at startup. Every per-user
// client is then built from that one backend's constructor.
func storageBuilder(cfg *config.Config) storage.BuildFunc {
	switch cfg.Storage.Provider {
	case "s3":
		return func(ctx context.Context, creds *models.StorageAuth) (storage.Client, error) {
			return storage.NewS3(ctx, creds, cfg.Storage.S3Endpoint, cfg.Storage.S3Region, cfg.Storage.S3Bucket)
		}
	default:
		return func(ctx context.Context, creds *models.StorageAuth) (storage.Client, error) {
			return storage.NewDropbox(ctx, creds, cfg.Storage.DropboxAPIURL, cfg.Storage.DropboxContentURL), nil
		}
	}
}
