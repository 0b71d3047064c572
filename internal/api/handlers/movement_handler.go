// internal/api/handlers/movement_handler.go
package handlers

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/yuchialin/pharmapos-backend/internal/ingest"
)

type MovementHandler struct {
	ingestService *ingest.Service
	uploadDir     string
}

func NewMovementHandler(ingestService *ingest.Service, uploadDir string) *MovementHandler {
	return &MovementHandler{ingestService: ingestService, uploadDir: uploadDir}
}

// UploadMovements accepts POS export files and loads them in the background.
func (h *MovementHandler) UploadMovements(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	var paths []string
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if ext != ".csv" {
			log.Warn().Str("filename", file.Filename).Msg("skipping non-csv upload")
			continue
		}

		path := filepath.Join(h.uploadDir, filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, path); err != nil {
			log.Error().Err(err).Str("filename", file.Filename).Msg("failed to save uploaded file")
			continue
		}
		paths = append(paths, path)
	}

	if len(paths) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid files to process"})
		return
	}

	// The request context dies with the response; ingest in the background
	// with a fresh one.
	go func() {
		run := h.ingestService.IngestFiles(context.Background(), paths)
		log.Info().Int("rows", run.TotalRows).Int("files", len(run.Files)).Msg("upload ingest finished")
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"message": "files are being processed",
		"count":   len(paths),
	})
}
