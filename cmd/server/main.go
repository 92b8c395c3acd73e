package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Hamzahxou/api-x/internal/cache"
	"github.com/Hamzahxou/api-x/internal/config"
	"github.com/Hamzahxou/api-x/internal/domain"
	"github.com/Hamzahxou/api-x/internal/events"
	"github.com/Hamzahxou/api-x/internal/handler"
	"github.com/Hamzahxou/api-x/internal/media"
	"github.com/Hamzahxou/api-x/internal/repository"
	"github.com/Hamzahxou/api-x/internal/service"
	"github.com/Hamzahxou/api-x/pkg/database"
	"github.com/Hamzahxou/api-x/pkg/log"
	"github.com/Hamzahxou/api-x/pkg/middleware"
	"github.com/Hamzahxou/api-x/pkg/response"
	"github.com/Hamzahxou/api-x/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.Log)
	logger := log.L()

	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.AutoMigrate(db,
		&domain.UserModel{},
		&domain.FollowModel{},
		&domain.PostModel{},
		&domain.PostLikeModel{},
		&domain.CommentModel{},
		&domain.NotificationModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	store, err := newStorage(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	images := media.NewProcessor(store, media.Config{
		MaxWidth:    cfg.Media.MaxWidth,
		MaxHeight:   cfg.Media.MaxHeight,
		JPEGQuality: cfg.Media.JPEGQuality,
		KeyPrefix:   cfg.Media.KeyPrefix,
		URLTTL:      cfg.Media.URLTTL,
	})

	var profiles cache.ProfileCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisProfileCache(cfg.Redis, cfg.Cache.Prefix)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisCache.Close()
		profiles = redisCache
		logger.Info().Str("address", cfg.Redis.Address).Msg("profile cache enabled")
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create kafka publisher")
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info().Str("topic", cfg.Events.Topic).Msg("engagement events enabled")
	}

	userRepo := repository.NewGormUserRepository(db)
	followRepo := repository.NewGormFollowRepository(db)
	postRepo := repository.NewGormPostRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)

	userService := service.NewUserService(userRepo, followRepo, notificationRepo, publisher, profiles, cfg.Cache.TTL)
	postService := service.NewPostService(postRepo, userRepo, notificationRepo, publisher, images)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, notificationRepo, publisher)
	notificationService := service.NewNotificationService(notificationRepo, userRepo)

	verifier, err := middleware.NewTokenVerifier(cfg.Identity)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create token verifier")
	}
	auth := middleware.NewAuthMiddleware(verifier)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(log.GinMiddleware(logger))
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})

	handler.RegisterRoutes(r, auth,
		handler.NewUserHandler(userService),
		handler.NewPostHandler(postService),
		handler.NewCommentHandler(commentService),
		handler.NewNotificationHandler(notificationService),
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info().Str("address", addr).Msg("starting server")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

// newStorage selects the media storage backend from config.
func newStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case "s3":
		// Image URLs are stored on posts permanently, so the bucket must
		// expose a stable public URL. Presigned URLs expire within days
		// and would leave old posts with dead links.
		if cfg.Storage.S3.PublicURL == "" {
			return nil, fmt.Errorf("storage.s3.public_url is required for the s3 driver")
		}
		return storage.NewS3Storage(context.Background(), cfg.Storage.S3)
	case "local":
		return storage.NewLocalStorage(cfg.Storage.Local)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}
