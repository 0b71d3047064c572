// cmd/importer/handler.go
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yuchialin/pharmapos-backend/internal/config"
	"github.com/yuchialin/pharmapos-backend/internal/drive"
	"github.com/yuchialin/pharmapos-backend/internal/ingest"
)

type handler struct {
	downloader *drive.Downloader
	ingest     *ingest.Service
	driveCfg   config.DriveConfig
}

func newHandler(downloader *drive.Downloader, ingestService *ingest.Service, driveCfg config.DriveConfig) *handler {
	return &handler{
		downloader: downloader,
		ingest:     ingestService,
		driveCfg:   driveCfg,
	}
}

// pullAndIngest downloads every export in the configured Drive folder and
// loads them. The optional folder_id query overrides the configured folder.
func (h *handler) pullAndIngest(w http.ResponseWriter, r *http.Request) {
	if h.downloader == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "drive is not configured"})
		return
	}

	folderID := r.URL.Query().Get("folder_id")
	if folderID == "" {
		folderID = h.driveCfg.FolderID
	}

	paths, err := h.downloader.DownloadExports(r.Context(), drive.DownloadOptions{
		FolderID:    folderID,
		DownloadDir: h.driveCfg.DownloadDir,
	})
	if err != nil {
		log.Error().Err(err).Msg("drive pull failed")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	if len(paths) == 0 {
		writeJSON(w, http.StatusOK, map[string]string{"message": "no export files found"})
		return
	}

	run := h.ingest.IngestFiles(r.Context(), paths)
	writeJSON(w, http.StatusOK, run)
}

// ingestLocal loads CSV files already present in the download directory.
// Useful when files were copied in by hand.
func (h *handler) ingestLocal(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(h.driveCfg.DownloadDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}
		paths = append(paths, filepath.Join(h.driveCfg.DownloadDir, entry.Name()))
	}

	if len(paths) == 0 {
		writeJSON(w, http.StatusOK, map[string]string{"message": "no csv files in download dir"})
		return
	}

	run := h.ingest.IngestFiles(r.Context(), paths)
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
