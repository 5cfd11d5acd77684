// Package fetch downloads binary assets to disk.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/flywheel-labs/paperscout/internal/core/ports/driven"
	"github.com/flywheel-labs/paperscout/internal/logger"
)

// Ensure Downloader implements the interface.
var _ driven.AssetFetcher = (*Downloader)(nil)

// copyChunkSize bounds peak memory while streaming the body to disk.
const copyChunkSize = 8192

// Downloader streams HTTP response bodies to disk.
type Downloader struct {
	client    *http.Client
	userAgent string
}

// NewDownloader creates an asset downloader.
func NewDownloader(userAgent string, timeout time.Duration) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Fetch downloads url to dest. The body is streamed in fixed-size chunks
// into a temp file next to dest, which is renamed into place only on
// success, so a failed download never leaves a truncated dest behind.
func (d *Downloader) Fetch(ctx context.Context, url, dest string) error {
	logger.Info("downloading %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: status %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp := dest + ".tmp-" + uuid.New().String()
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	buf := make([]byte, copyChunkSize)
	if _, err := io.CopyBuffer(out, resp.Body, buf); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("stream %s: %w", url, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("move into place: %w", err)
	}

	logger.Info("saved %s", dest)
	return nil
}
