package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/redis/go-redis/v9"

	_ "github.com/psb-properties/property-report-api/api/swagger"
	"github.com/psb-properties/property-report-api/internal/ai"
	"github.com/psb-properties/property-report-api/internal/dto"
	"github.com/psb-properties/property-report-api/internal/handler"
	"github.com/psb-properties/property-report-api/internal/middleware"
	"github.com/psb-properties/property-report-api/internal/repository"
	"github.com/psb-properties/property-report-api/internal/service"
	"github.com/psb-properties/property-report-api/pkg/cache"
	"github.com/psb-properties/property-report-api/pkg/config"
	"github.com/psb-properties/property-report-api/pkg/database"
	"github.com/psb-properties/property-report-api/pkg/logger"
	"github.com/psb-properties/property-report-api/pkg/mailer"
	corsmiddleware "github.com/psb-properties/property-report-api/pkg/middleware/cors"
	reqidmiddleware "github.com/psb-properties/property-report-api/pkg/middleware/requestid"
	"github.com/psb-properties/property-report-api/pkg/render"
	"github.com/psb-properties/property-report-api/pkg/storage"
)

// @title Property Report API
// @version 1.0.0
// @description Weekly and monthly property portfolio reporting pipeline
// @BasePath /api/v1
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

	if err := dto.RegisterValidations(); err != nil {
		logr.Sugar().Fatalw("failed to register validations", "error", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		logr.Sugar().Fatalw("failed to ensure database schema", "error", err)
	}

	documents, err := storage.NewDocumentStore(cfg.Documents.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare document storage", "error", err)
	}

	var generator ai.Generator
	if cfg.Narrative.APIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), cfg.Narrative)
		if err != nil {
			logr.Sugar().Warnw("gemini client unavailable, narratives fall back to deterministic text", "error", err)
		} else {
			generator = gemini
		}
	} else {
		logr.Sugar().Warnw("no gemini API key configured, narratives fall back to deterministic text")
	}

	var sender mailer.Sender
	if cfg.SMTP.Username != "" && cfg.SMTP.OwnerEmail != "" {
		sender = mailer.NewSMTPSender(cfg.SMTP)
	} else {
		logr.Sugar().Warnw("email delivery not configured, report digests will not be sent")
	}

	metricsSvc := service.NewMetricsService()

	reportRepo := repository.NewReportRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// A nil redis client degrades the cache repository to a permanent miss,
	// so the dashboard works with or without a cache backend.
	var redisClient *redis.Client
	if cfg.Dashboard.CacheEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		} else {
			defer client.Close()
			redisClient = client
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	narrativeSvc := service.NewNarrativeService(generator, logr, metricsSvc, service.NarrativeServiceConfig{
		Timeout:     cfg.Narrative.Timeout,
		MaxAttempts: cfg.Narrative.MaxAttempts,
	})
	notifierSvc := service.NewNotifierService(sender, cfg.SMTP.OwnerEmail, metricsSvc, logr)
	reportSvc := service.NewReportService(reportRepo, narrativeSvc, render.NewRenderer(), documents, notifierSvc, metricsSvc, logr)

	dashboardSvc := service.NewDashboardService(dashboardRepo, cacheRepo, metricsSvc, logr, service.DashboardServiceConfig{
		CacheTTL: cfg.Dashboard.CacheTTL,
	})

	reportHandler := handler.NewReportHandler(reportSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	directoryHandler := handler.NewDirectoryHandler()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/reports", reportHandler.Submit)
		api.GET("/reports", reportHandler.List)
		api.GET("/reports/previous-goals", reportHandler.PreviousGoals)
		api.GET("/reports/:id", reportHandler.Get)
		api.GET("/reports/:id/document", reportHandler.Document)
		api.POST("/reports/:id/narrative", reportHandler.RegenerateNarrative)
		api.GET("/dashboard", dashboardHandler.Summary)
		api.GET("/directory/properties", directoryHandler.Properties)
		api.GET("/directory/team", directoryHandler.Team)
		api.GET("/periods/current", reportHandler.CurrentPeriod)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
