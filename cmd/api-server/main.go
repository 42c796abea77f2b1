package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/vocatech/room-allocation-api/api/swagger"
	"github.com/vocatech/room-allocation-api/internal/handler"
	"github.com/vocatech/room-allocation-api/internal/middleware"
	"github.com/vocatech/room-allocation-api/internal/repository"
	"github.com/vocatech/room-allocation-api/internal/service"
	"github.com/vocatech/room-allocation-api/pkg/cache"
	"github.com/vocatech/room-allocation-api/pkg/config"
	"github.com/vocatech/room-allocation-api/pkg/database"
	"github.com/vocatech/room-allocation-api/pkg/export"
	"github.com/vocatech/room-allocation-api/pkg/jobs"
	"github.com/vocatech/room-allocation-api/pkg/logger"
	corsmiddleware "github.com/vocatech/room-allocation-api/pkg/middleware/cors"
	reqidmiddleware "github.com/vocatech/room-allocation-api/pkg/middleware/requestid"
	"github.com/vocatech/room-allocation-api/pkg/storage"
)

// @title Room Allocation API
// @version 1.0.0
// @description Classroom and room allocation service with conflict detection, pre-emptive reservations and occupancy reporting
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	snapshots := repository.NewSnapshotRepository(db)
	if err := snapshots.EnsureSchema(ctx); err != nil {
		logr.Sugar().Fatalw("failed to ensure schema", "error", err)
	}

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	var cacheRepo *repository.CacheRepository
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
	} else {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, true)
		defer cacheRepo.Close() //nolint:errcheck
	}

	roomSvc := service.NewRoomService(snapshots, cacheSvc, nil, logr)
	classSvc := service.NewClassroomService(snapshots, cacheSvc, metrics, nil, logr)
	reservationSvc := service.NewReservationService(snapshots, cacheSvc, metrics, nil, logr)
	dashboardSvc := service.NewDashboardService(snapshots, cacheSvc, cfg.Dashboard.CacheTTL, logr)

	if cfg.Seed.Enabled {
		if err := roomSvc.EnsureSeeded(ctx); err != nil {
			logr.Sugar().Warnw("failed to seed default rooms", "error", err)
		}
	}

	roomHandler := handler.NewRoomHandler(roomSvc, reservationSvc)
	classHandler := handler.NewClassHandler(classSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	var reportHandler *handler.ReportHandler
	var reportQueue *jobs.Queue
	if cfg.Reports.Enabled {
		files, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init report storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
		exportSvc := service.NewExportService(snapshots, files, signer, service.ExportConfig{
			APIPrefix: cfg.APIPrefix,
			ResultTTL: cfg.Reports.SignedURLTTL,
		}, logr, export.NewCSVExporter(), export.NewPDFExporter())

		reportRepo := repository.NewReportRepository(db)
		worker := service.NewReportWorker(reportRepo, exportSvc, cfg.Reports.WorkerRetries, logr)
		reportQueue = jobs.NewQueue("reports", worker.Handle, jobs.QueueConfig{
			Workers:    cfg.Reports.WorkerConcurrency,
			MaxRetries: cfg.Reports.WorkerRetries,
			Logger:     logr,
		})
		reportQueue.Start(ctx)

		reportSvc := service.NewReportService(reportRepo, reportQueue, exportSvc, logr, service.ReportServiceConfig{
			ResultTTL:       cfg.Reports.SignedURLTTL,
			CleanupInterval: cfg.Reports.CleanupInterval,
			MaxRetries:      cfg.Reports.WorkerRetries,
		})
		reportSvc.RecoverPendingJobs(ctx)
		reportSvc.StartCleanup(ctx)
		reportHandler = handler.NewReportHandler(reportSvc)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/rooms", roomHandler.List)
		api.POST("/rooms", roomHandler.Create)
		api.GET("/rooms/search", roomHandler.Search)
		api.POST("/rooms/reserve", roomHandler.Reserve)
		api.PATCH("/rooms/:id", roomHandler.Update)

		api.GET("/classes", classHandler.List)
		api.POST("/classes", classHandler.Create)
		api.PATCH("/classes/:id", classHandler.Update)
		api.POST("/classes/:id/release", classHandler.Release)

		if cfg.Dashboard.Enabled {
			api.GET("/dashboard", dashboardHandler.Overview)
		}
		api.GET("/metrics/summary", metricsHandler.Snapshot)

		if reportHandler != nil {
			api.POST("/reports", reportHandler.Create)
			api.GET("/reports/download/:token", reportHandler.Download)
			api.GET("/reports/:id", reportHandler.Status)
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Warnw("graceful shutdown failed", "error", err)
	}
	if reportQueue != nil {
		reportQueue.Stop()
	}
}
