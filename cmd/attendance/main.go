package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Santa0027/fleetops/internal/attendance"
	"github.com/Santa0027/fleetops/internal/geofence"
	"github.com/Santa0027/fleetops/pkg/cache"
	"github.com/Santa0027/fleetops/pkg/common"
	"github.com/Santa0027/fleetops/pkg/config"
	"github.com/Santa0027/fleetops/pkg/database"
	"github.com/Santa0027/fleetops/pkg/errors"
	"github.com/Santa0027/fleetops/pkg/logger"
	"github.com/Santa0027/fleetops/pkg/middleware"
	redisclient "github.com/Santa0027/fleetops/pkg/redis"
)

const (
	serviceName = "attendance-service"
	version     = "1.0.0"
)

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting attendance service",
		zap.String("service", serviceName),
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
	)

	// Initialize Sentry for error tracking
	sentryConfig := errors.DefaultSentryConfig()
	sentryConfig.ServerName = serviceName
	sentryConfig.Release = version
	if enabled, err := errors.InitSentry(sentryConfig); err != nil {
		logger.Warn("Failed to initialize Sentry, continuing without error tracking", zap.Error(err))
	} else if enabled {
		defer errors.Flush(2 * time.Second)
		logger.Info("Sentry error tracking initialized")
	}

	db, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Connected to database")

	var cacheManager *cache.Manager
	redisClient, err := redisclient.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Warn("Failed to connect to redis, summaries will not be cached", zap.Error(err))
	} else {
		cacheManager = cache.NewManager(redisClient)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("Failed to close redis client", zap.Error(err))
			}
		}()
		logger.Info("Connected to redis")
	}

	strategy, err := geofence.ParseStrategy(cfg.Attendance.MatchStrategy)
	if err != nil {
		logger.Fatal("Invalid geofence match strategy", zap.Error(err))
	}

	fenceRepo := geofence.NewRepository(db)
	fenceHandler := geofence.NewHandler(fenceRepo)

	repo := attendance.NewRepository(db)
	service := attendance.NewService(repo, fenceRepo, geofence.NewMatcher(strategy), cacheManager, attendance.Policy{
		Grace:                time.Duration(cfg.Attendance.GraceMinutes) * time.Minute,
		RequireGeofenceMatch: cfg.Attendance.RequireGeofenceMatch,
		SummaryCacheTTL:      time.Duration(cfg.Attendance.SummaryCacheTTLSeconds) * time.Second,
	})
	handler := attendance.NewHandler(service)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger(serviceName))
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	router.GET("/health", common.HealthCheck(serviceName, version))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		api.POST("/attendance/check-in", handler.CheckIn)
		api.POST("/attendance/check-out", handler.CheckOut)
		api.GET("/attendance/summary/:driver_id",
			middleware.RequireRole(middleware.RoleAdmin, middleware.RoleManager, middleware.RoleDriver),
			handler.MonthlySummary)
		api.GET("/geofences/:driver_id",
			middleware.RequireRole(middleware.RoleAdmin, middleware.RoleManager),
			fenceHandler.ListForDriver)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}
