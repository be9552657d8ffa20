// pkg/themes/themes.go
package themes

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"go.uber.org/zap"

	"github.com/postcumer/personal-scripts/pkg/core"
	"github.com/postcumer/personal-scripts/pkg/execx"
	"github.com/postcumer/personal-scripts/pkg/prompt"
)

// Step installs theme packs from source repositories. Clones are overwritten
// on every run, clone failures are ignored, and the clone directory is
// removed afterwards no matter what happened.
type Step struct {
	Runner  execx.Runner
	Gate    *prompt.Gate
	WorkDir string
	Logger  *zap.SugaredLogger
	Clone   func(ctx context.Context, dir, url string) error
}

// New creates a theme Step using a direct (non-retrying) shallow clone.
func New(runner execx.Runner, gate *prompt.Gate, workDir string, logger *zap.SugaredLogger) *Step {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Step{
		Runner:  runner,
		Gate:    gate,
		WorkDir: workDir,
		Logger:  logger,
		Clone:   directClone,
	}
}

func directClone(ctx context.Context, dir, url string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
	})
	return err
}

// InstallAll clones each theme repository, asks for consent, runs the
// bundled installer with its fixed flags, and cleans up the clone.
func (s *Step) InstallAll(ctx context.Context, specs []core.ThemeSpec) {
	for _, spec := range specs {
		s.installOne(ctx, spec)
	}
}

func (s *Step) installOne(ctx context.Context, spec core.ThemeSpec) {
	dir := filepath.Join(s.WorkDir, path.Base(spec.RepoURL))
	defer os.RemoveAll(dir)

	// Overwrite any leftover clone from a previous run.
	os.RemoveAll(dir)

	if err := s.Clone(ctx, dir, spec.RepoURL); err != nil {
		// Best-effort: report and fall through, the installer run below
		// will fail visibly if the clone is unusable.
		s.Logger.Warnf("cloning %s: %v", spec.RepoURL, err)
	}

	if !s.Gate.Confirm(fmt.Sprintf("install %s?", spec.Name)) {
		return
	}

	args := append([]string{spec.Script}, spec.Args...)
	res, err := s.Runner.Run(ctx, dir, "bash", args...)
	if err != nil {
		s.Logger.Warnf("running %s installer: %v", spec.Name, err)
		return
	}
	if !res.Ok() {
		s.Logger.Warnf("%s installer exited with status %d", spec.Name, res.ExitCode)
	}
}
