package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"spin-history-dashboard/internal/config"
	"spin-history-dashboard/internal/handlers"
	"spin-history-dashboard/internal/logger"
	"spin-history-dashboard/internal/middleware"
	"spin-history-dashboard/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger := logger.New(cfg.Env)
	defer func() {
		_ = zapLogger.Sync()
	}()

	ctx := context.Background()
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var store services.IdentityStore
	if cfg.RedisEnabled() {
		redisService, err := services.NewRedisService(ctx, cfg)
		if err != nil {
			zapLogger.Warn("Redis unavailable, identity cache runs in memory only", zap.Error(err))
		} else {
			defer redisService.Close()
			store = redisService
		}
	}

	identities := services.NewIdentityCache(
		services.NewENSClient(httpClient, cfg.ENSURL),
		store,
		cfg.ENSFailurePolicy,
		zapLogger,
	)
	identities.SetLoadTimeout(2 * cfg.HTTPTimeout)
	aggregator := services.NewAggregator(cfg.BetPolicy)
	renderer := services.NewRenderer(identities, aggregator, cfg.ResolveWorkers, cfg.Location)
	dashboard := services.NewDashboardService(
		services.NewHistoryClient(httpClient, cfg.HistoryURL),
		aggregator,
		renderer,
		zapLogger,
	)

	dashboardHandler := handlers.NewDashboardHandler(dashboard)
	wsHandler := handlers.NewWebSocketHandler(dashboard, zapLogger)

	go func() {
		dashboard.Refresh(ctx)

		if cfg.RefreshInterval <= 0 {
			return
		}
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()

		for range ticker.C {
			dashboard.Refresh(ctx)
		}
	}()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), logger.GinLogger(zapLogger), middleware.CORS())
	handlers.RegisterRoutes(router, dashboardHandler, wsHandler)

	zapLogger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("history_url", cfg.HistoryURL),
		zap.Bool("redis", store != nil),
	)
	if err := router.Run(":" + cfg.Port); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
