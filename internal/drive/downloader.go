package drive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// DownloadOptions controls how export files are pulled from Google Drive.
type DownloadOptions struct {
	FolderID    string
	DownloadDir string
}

// Downloader wraps Service to pull POS export files from a folder.
type Downloader struct {
	service *Service
}

func NewDownloader(s *Service) *Downloader {
	return &Downloader{service: s}
}

// DownloadExports downloads all CSV and XLSX exports from the given Drive
// folder into DownloadDir and returns the local CSV paths. XLSX files are
// converted to CSV from their first sheet; the intermediate .xlsx is removed.
func (d *Downloader) DownloadExports(ctx context.Context, opts DownloadOptions) ([]string, error) {
	if opts.DownloadDir == "" {
		return nil, fmt.Errorf("download dir is required")
	}
	if err := os.MkdirAll(opts.DownloadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	files, err := d.service.ListFiles(opts.FolderID)
	if err != nil {
		return nil, err
	}

	var localPaths []string
	for _, f := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		ext := strings.ToLower(filepath.Ext(f.Name))
		switch ext {
		case ".csv":
			localPath := filepath.Join(opts.DownloadDir, f.Name)
			if err := d.fetch(f, localPath); err != nil {
				return nil, err
			}
			localPaths = append(localPaths, localPath)

		case ".xlsx":
			xlsxPath := filepath.Join(opts.DownloadDir, f.Name)
			if err := d.fetch(f, xlsxPath); err != nil {
				return nil, err
			}

			csvPath := strings.TrimSuffix(xlsxPath, ".xlsx") + ".csv"
			if err := convertXLSXToCSV(xlsxPath, csvPath); err != nil {
				return nil, err
			}
			if err := os.Remove(xlsxPath); err != nil {
				log.Warn().Err(err).Str("path", xlsxPath).Msg("failed to remove intermediate xlsx")
			}
			localPaths = append(localPaths, csvPath)

		default:
			log.Debug().Str("file", f.Name).Msg("skipping non-export file")
		}
	}

	return localPaths, nil
}

func (d *Downloader) fetch(f *File, localPath string) error {
	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create local file %s: %w", localPath, err)
	}
	defer out.Close()

	if err := d.service.DownloadFile(f.ID, out); err != nil {
		return fmt.Errorf("failed to download %s: %w", f.Name, err)
	}
	return nil
}
