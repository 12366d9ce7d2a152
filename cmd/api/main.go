// Package main is the entry point for the quickfit API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/begengineer/quickfit/internal/app/service"
	"github.com/begengineer/quickfit/internal/config"
	"github.com/begengineer/quickfit/internal/domain"
	"github.com/begengineer/quickfit/internal/infra/postgres"
	"github.com/begengineer/quickfit/internal/infra/postgres/migrations"
	rediscache "github.com/begengineer/quickfit/internal/infra/redis"
	"github.com/begengineer/quickfit/internal/infra/youtube"
	"github.com/begengineer/quickfit/internal/job"
	"github.com/begengineer/quickfit/internal/logger"
	"github.com/begengineer/quickfit/internal/transport/httpserver"
	"github.com/begengineer/quickfit/internal/validator"
	"github.com/begengineer/quickfit/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting quickfit",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	// Run migrations
	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	// Create repository
	repo := postgres.NewRepository(db)

	// Create video source client
	source := youtube.New(
		youtube.ClientConfig{
			BaseURL:  cfg.YouTube.BaseURL,
			APIKey:   cfg.YouTube.APIKey,
			Region:   cfg.YouTube.Region,
			Language: cfg.YouTube.Language,
			Timeout:  cfg.YouTube.Timeout,
			Retry: youtube.RetryConfig{
				MaxAttempts: cfg.YouTube.Retry.MaxAttempts,
				WaitTime:    cfg.YouTube.Retry.WaitTime,
				MaxWaitTime: cfg.YouTube.Retry.MaxWaitTime,
			},
			CB: youtube.CBConfig{
				MaxRequests:  cfg.YouTube.CB.MaxRequests,
				Interval:     cfg.YouTube.CB.Interval,
				Timeout:      cfg.YouTube.CB.Timeout,
				FailureRatio: cfg.YouTube.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Create cache implementation (optional, based on config)
	var cache domain.Cache
	if cfg.Cache.Enabled {
		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("cache enabled",
			zap.Duration("videos_ttl", cfg.Cache.VideosTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("cache disabled")
	}

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create services
	videoSvc := service.NewVideoService(repo, cache, cfg.Cache.VideosTTL, log.Logger)
	curationSvc := service.NewCurationService(
		repo,
		source,
		cache,
		distLocker,
		service.CurationConfig{
			SearchQuery:       cfg.Curation.SearchQuery,
			SearchMaxResults:  cfg.Curation.SearchMaxResults,
			MaxVideosPerLevel: cfg.Curation.MaxVideosPerLevel,
			Filter: domain.FilterConfig{
				MinDurationSec: cfg.Curation.MinDurationSec,
				MaxDurationSec: cfg.Curation.MaxDurationSec,
				Rules:          domain.DefaultLevelRules(),
			},
			Score: domain.ScoreConfig{
				ViewWeight:     cfg.Scoring.ViewWeight,
				AgeWeight:      cfg.Scoring.AgeWeight,
				AgeDecayPerDay: cfg.Scoring.AgeDecayPerDay,
			},
			LockTTL: cfg.Curation.LockTTL,
		},
		log.Logger,
	)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:       cfg.App.Port,
			BodyLimit:  1024 * 1024, // 1MB
			CronSecret: cfg.Cron.Secret,
		},
		videoSvc,
		curationSvc,
		db,
		v,
		log.Logger,
	)

	// Start background refresh scheduler
	scheduler := job.NewRefreshScheduler(
		curationSvc,
		job.RefreshConfig{
			Interval:  cfg.Refresh.Interval,
			Timeout:   cfg.Refresh.Timeout,
			OnStartup: cfg.Refresh.OnStartup,
		},
		log.Logger,
	)
	scheduler.Start(cfg.Refresh.OnStartup)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		scheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
