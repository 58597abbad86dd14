package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/attendance-insights-api/api/swagger"
	"github.com/noah-isme/attendance-insights-api/internal/handler"
	"github.com/noah-isme/attendance-insights-api/internal/middleware"
	"github.com/noah-isme/attendance-insights-api/internal/repository"
	"github.com/noah-isme/attendance-insights-api/internal/service"
	"github.com/noah-isme/attendance-insights-api/pkg/cache"
	"github.com/noah-isme/attendance-insights-api/pkg/config"
	"github.com/noah-isme/attendance-insights-api/pkg/database"
	"github.com/noah-isme/attendance-insights-api/pkg/export"
	"github.com/noah-isme/attendance-insights-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/attendance-insights-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/attendance-insights-api/pkg/middleware/requestid"
)

// @title Attendance Insights API
// @version 0.1.0
// @description Attendance analytics engine: snapshots, series, patterns, streaks and session state
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Analytics.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, analytics cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close()
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, true)
		}
	}

	recordRepo := repository.NewRecordRepository(db, metricsSvc)

	analyticsSvc := service.NewAnalyticsService(service.AnalyticsServiceParams{
		Records: recordRepo,
		Cache:   cacheSvc,
		Metrics: metricsSvc,
		Logger:  logr,
		Config: service.AnalyticsServiceConfig{
			CacheTTL:        cfg.Analytics.CacheTTL,
			StreakThreshold: cfg.Analytics.StreakThreshold,
		},
	})
	sessionSvc := service.NewSessionService(cfg.Analytics.SessionTTL, logr)
	exportSvc := service.NewExportService(analyticsSvc, service.ExportConfig{
		Enabled: cfg.Exports.Enabled,
		MaxRows: cfg.Exports.MaxRows,
	}, logr, export.NewCSVExporter(), export.NewPDFExporter())

	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/analytics/snapshot", analyticsHandler.Snapshot)
		api.GET("/analytics/series", analyticsHandler.Series)
		api.GET("/analytics/patterns", analyticsHandler.Patterns)
		api.GET("/analytics/streaks", analyticsHandler.Streaks)
		api.GET("/analytics/departments", analyticsHandler.Departments)
		api.DELETE("/analytics/cache", analyticsHandler.FlushCache)

		api.POST("/sessions", sessionHandler.Create)
		api.GET("/sessions/:id", sessionHandler.Get)
		api.POST("/sessions/:id/filters", sessionHandler.ApplyFilters)
		api.POST("/sessions/:id/filter-changes", sessionHandler.ChangeFilter)
		api.DELETE("/sessions/:id/filters/:key", sessionHandler.ClearFilter)
		api.POST("/sessions/:id/reset", sessionHandler.Reset)
		api.POST("/sessions/:id/drilldown", sessionHandler.DrillDown)
		api.POST("/sessions/:id/navigate", sessionHandler.Navigate)

		api.GET("/exports/snapshot", exportHandler.Snapshot)
		api.GET("/exports/series", exportHandler.Series)

		api.GET("/system/metrics", metricsHandler.System)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
