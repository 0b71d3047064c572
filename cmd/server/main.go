// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yuchialin/pharmapos-backend/internal/api"
	"github.com/yuchialin/pharmapos-backend/internal/cache"
	"github.com/yuchialin/pharmapos-backend/internal/config"
	"github.com/yuchialin/pharmapos-backend/internal/ingest"
	"github.com/yuchialin/pharmapos-backend/internal/repository/postgres"
	"github.com/yuchialin/pharmapos-backend/internal/service"
	"github.com/yuchialin/pharmapos-backend/internal/storage"
	"github.com/yuchialin/pharmapos-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("report cache unavailable, falling back to no-op")
		reportCache = cache.NewNoopReportCache()
	}

	var objectStore storage.ObjectStorage
	if cfg.Storage.Enabled {
		store, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("object storage unavailable, export archiving disabled")
		} else {
			objectStore = store
		}
	}

	movementRepo := postgres.NewMovementRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	services := &api.Services{
		ReportService: service.NewReportService(movementRepo, reportCache),
		OrderService:  service.NewOrderService(orderRepo),
		IngestService: ingest.NewService(movementRepo, reportCache, objectStore),
		UploadDir:     cfg.App.UploadDir,
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
