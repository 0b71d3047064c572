// internal/ingest/service.go
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/yuchialin/pharmapos-backend/internal/cache"
	"github.com/yuchialin/pharmapos-backend/internal/repository"
	"github.com/yuchialin/pharmapos-backend/internal/storage"
)

const maxConcurrentFiles = 4

// FileResult records the outcome for one export file within a run.
type FileResult struct {
	File     string        `json:"file"`
	Rows     int           `json:"rows"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// RunResult summarizes one ingest run over a batch of export files.
type RunResult struct {
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	TotalRows  int          `json:"total_rows"`
	Files      []FileResult `json:"files"`
}

// Service loads parsed POS exports into the database, archives the source
// files to object storage and invalidates the report cache afterwards.
// Storage is optional; archiving is skipped when it is nil.
type Service struct {
	repo  repository.MovementRepository
	cache cache.ReportCache
	store storage.ObjectStorage
}

func NewService(repo repository.MovementRepository, reportCache cache.ReportCache, store storage.ObjectStorage) *Service {
	return &Service{
		repo:  repo,
		cache: reportCache,
		store: store,
	}
}

// IngestFile parses and stores a single export file. The whole file commits
// or fails as one batch.
func (s *Service) IngestFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open export %s: %w", path, err)
	}
	defer f.Close()

	movements, err := ParseMovements(f)
	if err != nil {
		return 0, fmt.Errorf("failed to parse export %s: %w", path, err)
	}

	source := filepath.Base(path)
	inserted, err := s.repo.InsertMovements(ctx, source, movements)
	if err != nil {
		return 0, fmt.Errorf("failed to store export %s: %w", path, err)
	}

	s.archive(ctx, path, source)

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate report cache after ingest")
	}

	return inserted, nil
}

// IngestFiles processes a batch of export files concurrently. Individual
// file failures are recorded per file, not fatal for the run; the cache is
// invalidated once at the end when anything was loaded.
func (s *Service) IngestFiles(ctx context.Context, paths []string) *RunResult {
	run := &RunResult{
		StartedAt: time.Now(),
		Files:     make([]FileResult, len(paths)),
	}

	var g errgroup.Group
	g.SetLimit(maxConcurrentFiles)

	var mu sync.Mutex
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			start := time.Now()
			result := FileResult{File: filepath.Base(path)}

			rows, err := s.ingestOne(ctx, path)
			result.Rows = rows
			result.Duration = time.Since(start)
			if err != nil {
				result.Error = err.Error()
				log.Error().Err(err).Str("file", path).Msg("export ingest failed")
			}

			mu.Lock()
			run.Files[i] = result
			run.TotalRows += rows
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if run.TotalRows > 0 {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate report cache after ingest run")
		}
	}

	run.FinishedAt = time.Now()
	return run
}

// ingestOne is IngestFile without the per-file cache invalidation; batch
// runs invalidate once at the end.
func (s *Service) ingestOne(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open export %s: %w", path, err)
	}
	defer f.Close()

	movements, err := ParseMovements(f)
	if err != nil {
		return 0, fmt.Errorf("failed to parse export %s: %w", path, err)
	}

	source := filepath.Base(path)
	inserted, err := s.repo.InsertMovements(ctx, source, movements)
	if err != nil {
		return 0, fmt.Errorf("failed to store export %s: %w", path, err)
	}

	s.archive(ctx, path, source)
	return inserted, nil
}

func (s *Service) archive(ctx context.Context, path, source string) {
	if s.store == nil {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("failed to read export for archiving")
		return
	}

	key := fmt.Sprintf("processed/%s/%s", time.Now().Format("2006-01-02"), source)
	if err := s.store.UploadObject(ctx, key, data); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to archive export")
		return
	}
	log.Info().Str("key", key).Msg("archived export")
}
