// pkg/gitfetch/gitfetch.go
package gitfetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"go.uber.org/zap"

	"github.com/postcumer/personal-scripts/pkg/prompt"
)

const (
	DefaultMaxAttempts = 4
	DefaultBackoff     = 2 * time.Second
)

// ErrExhausted indicates every clone attempt failed. The target directory
// may or may not exist afterwards; callers must treat the fetch as failed.
var ErrExhausted = errors.New("clone attempts exhausted")

// Request describes one repository fetch.
type Request struct {
	URL         string
	Dir         string
	MaxAttempts int           // < 1 means DefaultMaxAttempts
	Backoff     time.Duration // <= 0 means DefaultBackoff
}

// Fetcher clones repositories with bounded retries and a fixed backoff
// between attempts. Clone and Sleep are swappable for tests.
type Fetcher struct {
	Gate   *prompt.Gate
	Logger *zap.SugaredLogger
	Clone  func(ctx context.Context, dir, url string) error
	Sleep  func(d time.Duration)
}

// New creates a Fetcher using a shallow go-git clone.
func New(gate *prompt.Gate, logger *zap.SugaredLogger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Fetcher{
		Gate:   gate,
		Logger: logger,
		Clone:  shallowClone,
		Sleep:  time.Sleep,
	}
}

func shallowClone(ctx context.Context, dir, url string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
		Progress:     os.Stdout,
	})
	return err
}

// Fetch clones req.URL into req.Dir. On each attempt a pre-existing target
// directory triggers a removal prompt; a refusal lets the clone proceed
// against the existing directory, whatever the clone tool makes of that.
// Failed attempts are logged with their ordinal, then the fetcher sleeps the
// fixed backoff. Sleeps happen only between attempts, never after the last.
func (f *Fetcher) Fetch(ctx context.Context, req Request) error {
	max := req.MaxAttempts
	if max < 1 {
		max = DefaultMaxAttempts
	}
	backoff := req.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}

	for attempt := 1; attempt <= max; attempt++ {
		if _, err := os.Stat(req.Dir); err == nil {
			if f.Gate != nil && f.Gate.Confirm(fmt.Sprintf("%s already exists, remove it?", req.Dir)) {
				if err := os.RemoveAll(req.Dir); err != nil {
					f.Logger.Warnf("removing %s: %v", req.Dir, err)
				}
			}
		}

		err := f.Clone(ctx, req.Dir, req.URL)
		if err == nil {
			f.Logger.Infof("cloned %s (attempt %d/%d)", req.URL, attempt, max)
			return nil
		}

		f.Logger.Warnf("clone attempt %d/%d for %s failed: %v", attempt, max, req.URL, err)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt < max {
			f.Sleep(backoff)
		}
	}

	return fmt.Errorf("%w: %s after %d attempts", ErrExhausted, req.URL, max)
}
