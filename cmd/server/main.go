package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/inventra/internal/api"
	"github.com/lalith-99/inventra/internal/cache"
	"github.com/lalith-99/inventra/internal/config"
	"github.com/lalith-99/inventra/internal/db"
	"github.com/lalith-99/inventra/internal/observ"
	"github.com/lalith-99/inventra/internal/realtime"
	"github.com/lalith-99/inventra/internal/repository/postgres"
	"github.com/lalith-99/inventra/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// ---------------------------------------------------------------
	// 1. Config and logger
	// ---------------------------------------------------------------
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------------------------------------------------------------
	// 2. Postgres: connect, then bring the schema up to date
	// ---------------------------------------------------------------
	database, err := db.New(ctx, cfg.DatabaseURL, db.PoolOptions{
		MaxConns: int32(cfg.DBMaxConns),
		MinConns: int32(cfg.DBMinConns),
	}, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	// ---------------------------------------------------------------
	// 3. Redis name cache (optional)
	//
	// The directory treats a nil cache as "always miss", so an empty
	// REDIS_URL or a zero NAME_CACHE_TTL just means every chat post
	// looks the author up in Postgres.
	// ---------------------------------------------------------------
	var names service.NameCache
	if cfg.RedisURL != "" && cfg.NameCacheTTL > 0 {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		names = cache.NewNameCache(rdb, cfg.NameCacheTTL)
		logger.Info("redis name cache enabled", zap.Duration("ttl", cfg.NameCacheTTL))
	}

	// ---------------------------------------------------------------
	// 4. Stores and services
	// ---------------------------------------------------------------
	pool := database.Pool()
	userRepo := postgres.NewUserStore(pool)
	inventoryRepo := postgres.NewInventoryStore(pool)
	itemRepo := postgres.NewItemStore(pool)

	metrics := observ.NewMetrics()

	accessSvc := service.NewAccessService(inventoryRepo, userRepo, postgres.NewAccessStore(pool), metrics)
	directory := service.NewDirectory(userRepo, names, logger)
	discussionSvc := service.NewDiscussionService(inventoryRepo, postgres.NewDiscussionStore(pool), directory)
	statsSvc := service.NewStatsService(postgres.NewStatsStore(pool))
	inventorySvc := service.NewInventoryService(inventoryRepo, itemRepo, accessSvc, discussionSvc, statsSvc)
	itemSvc := service.NewItemService(inventoryRepo, itemRepo, accessSvc)
	likeSvc := service.NewLikeService(itemRepo, postgres.NewLikeStore(pool), metrics)
	searchSvc := service.NewSearchService(postgres.NewSearchStore(pool), metrics)

	hub := realtime.NewHub(discussionSvc, realtime.HubConfig{
		SendRatePerSec: cfg.ChatRatePerSec,
		SendBurst:      cfg.ChatBurst,
	}, logger, metrics)

	// ---------------------------------------------------------------
	// 5. HTTP
	// ---------------------------------------------------------------
	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Metrics:     metrics,
		JWTSecret:   cfg.JWTSecret,
		Health:      database,
		Auth:        api.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.TokenTTL, logger),
		Users:       api.NewUserHandler(userRepo, logger),
		Inventories: api.NewInventoryHandler(inventorySvc, logger),
		Access:      api.NewAccessHandler(inventorySvc, accessSvc, logger),
		Items:       api.NewItemHandler(itemSvc, likeSvc, logger),
		Search:      api.NewSearchHandler(searchSvc, cfg.SearchPageSize, logger),
		Discussion:  api.NewDiscussionHandler(discussionSvc, logger),
		WebSocket:   hub.ServeWS,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting inventra",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		// Shutdown does not touch hijacked websocket connections, so the
		// hub closes those itself.
		hub.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
