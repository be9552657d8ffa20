// pkg/download/download.go
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// Downloader fetches single files over HTTP with a progress bar.
type Downloader struct {
	Client *http.Client
	Logger *zap.SugaredLogger
}

// New creates a Downloader with a five minute request timeout.
func New(logger *zap.SugaredLogger) *Downloader {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Downloader{
		Client: &http.Client{Timeout: 5 * time.Minute},
		Logger: logger,
	}
}

// File downloads url into dest, writing through a temporary file so a failed
// download never leaves a truncated dest behind.
func (d *Downloader) File(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: bad status %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}

	bar := progressbar.DefaultBytes(resp.ContentLength, "downloading "+filepath.Base(dest))
	_, err = io.Copy(io.MultiWriter(out, bar), resp.Body)
	closeErr := out.Close()
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if closeErr != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, closeErr)
	}

	if err := os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("finalizing %s: %w", dest, err)
	}

	d.Logger.Debugf("downloaded %s -> %s", url, dest)
	return nil
}
