// cmd/importer/main.go
//
// The importer is the operational sidecar: it pulls POS export files from
// the shared Google Drive folder and loads them into the database. It is
// driven by HTTP triggers so an external scheduler can own the cadence.
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/yuchialin/pharmapos-backend/internal/cache"
	"github.com/yuchialin/pharmapos-backend/internal/config"
	"github.com/yuchialin/pharmapos-backend/internal/drive"
	"github.com/yuchialin/pharmapos-backend/internal/ingest"
	"github.com/yuchialin/pharmapos-backend/internal/repository/postgres"
	"github.com/yuchialin/pharmapos-backend/internal/storage"
	"github.com/yuchialin/pharmapos-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
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
	ingestService := ingest.NewService(movementRepo, reportCache, objectStore)

	var downloader *drive.Downloader
	if cfg.Drive.CredentialsJSON != "" {
		driveService, err := drive.NewService(cfg.Drive.CredentialsJSON)
		if err != nil {
			log.Fatalf("Failed to initialize Google Drive service: %v", err)
		}
		downloader = drive.NewDownloader(driveService)
	} else {
		logger.Log.Warn().Msg("no drive credentials configured, /pull disabled")
	}

	h := newHandler(downloader, ingestService, cfg.Drive)

	r := mux.NewRouter()
	r.HandleFunc("/pull", h.pullAndIngest).Methods("POST")
	r.HandleFunc("/ingest", h.ingestLocal).Methods("POST")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Importer starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
