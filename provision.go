// provision.go
package provision

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/postcumer/personal-scripts/pkg/apps"
	"github.com/postcumer/personal-scripts/pkg/core"
	"github.com/postcumer/personal-scripts/pkg/deskflow"
	"github.com/postcumer/personal-scripts/pkg/distro"
	"github.com/postcumer/personal-scripts/pkg/download"
	"github.com/postcumer/personal-scripts/pkg/execx"
	"github.com/postcumer/personal-scripts/pkg/gitfetch"
	"github.com/postcumer/personal-scripts/pkg/install"
	"github.com/postcumer/personal-scripts/pkg/pkgmgr"
	"github.com/postcumer/personal-scripts/pkg/prompt"
	"github.com/postcumer/personal-scripts/pkg/themes"
)

// Provisioner runs the whole provisioning sequence. The classified
// distribution tag is decided once per run and threaded through every
// dispatch decision; it is never stored globally.
type Provisioner struct {
	cfg        *core.Config
	gate       *prompt.Gate
	runner     execx.Runner
	classifier *distro.Classifier
	fetcher    *gitfetch.Fetcher
	downloader apps.FileDownloader
	logger     *zap.SugaredLogger
}

// New creates a Provisioner wired to the real host: interactive prompts on
// stdin/stdout, subprocesses via os/exec, shallow go-git clones.
func New(cfg *core.Config, logger *zap.SugaredLogger) *Provisioner {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	gate := prompt.New(os.Stdin, os.Stdout)
	gate.AssumeYes = cfg.AssumeYes
	runner := execx.NewSystem(logger)

	return &Provisioner{
		cfg:        cfg,
		gate:       gate,
		runner:     runner,
		classifier: distro.New(runner, logger),
		fetcher:    gitfetch.New(gate, logger),
		downloader: download.New(logger),
		logger:     logger,
	}
}

// Run executes the provisioning sequence: global confirmation, distribution
// classification, curated packages, optional desktop apps, theme packs, and
// the Deskflow source build. Steps after classification are best-effort;
// only a declined confirmation, an unsupported distribution, or Deskflow
// fetch exhaustion produce a non-nil error.
func (p *Provisioner) Run(ctx context.Context) error {
	if !p.gate.Confirm("This will install packages and modify this system. Continue?") {
		return ErrDeclined
	}

	tag := p.classifier.Classify(ctx)
	p.logger.Infof("detected distribution: %s", tag)

	mgr, err := pkgmgr.New(tag, p.runner, p.logger)
	if err != nil {
		return fmt.Errorf("classifying host: %w", err)
	}

	if err := os.MkdirAll(p.cfg.WorkDir, 0o755); err != nil {
		return &Error{Step: "preparing work directory", Err: err}
	}

	p.installPackages(ctx, tag, mgr)
	p.installApps(ctx, tag, mgr)
	p.installThemes(ctx)

	if err := p.buildDeskflow(ctx, mgr); err != nil {
		return &Error{Step: "deskflow", Err: err}
	}

	return nil
}

// installPackages pushes the curated per-distro package list through the
// idempotent installer.
func (p *Provisioner) installPackages(ctx context.Context, tag distro.Tag, mgr pkgmgr.Manager) {
	pkgs := p.cfg.Packages[string(tag)]
	if len(pkgs) == 0 {
		p.logger.Infof("no packages configured for %s", tag)
		return
	}

	if err := mgr.Refresh(ctx); err != nil {
		p.logger.Warnf("refreshing package metadata: %v", err)
	}

	inst := install.New(mgr, p.gate, p.logger)
	for _, pkg := range pkgs {
		inst.InstallIfNeeded(ctx, pkg)
	}
}

func (p *Provisioner) installApps(ctx context.Context, tag distro.Tag, mgr pkgmgr.Manager) {
	if len(p.cfg.Apps) == 0 {
		return
	}
	step := &apps.Step{
		Distro:     tag,
		Manager:    mgr,
		Gate:       p.gate,
		Downloader: p.downloader,
		WorkDir:    p.cfg.WorkDir,
		Logger:     p.logger,
	}
	step.InstallAll(ctx, p.cfg.Apps)
}

func (p *Provisioner) installThemes(ctx context.Context) {
	if len(p.cfg.Themes) == 0 {
		return
	}
	step := themes.New(p.runner, p.gate, p.cfg.WorkDir, p.logger)
	step.InstallAll(ctx, p.cfg.Themes)
}

func (p *Provisioner) buildDeskflow(ctx context.Context, mgr pkgmgr.Manager) error {
	pipe := &deskflow.Pipeline{
		Config:  p.cfg.Deskflow,
		Manager: mgr,
		Fetcher: p.fetcher,
		Runner:  p.runner,
		WorkDir: p.cfg.WorkDir,
		Logger:  p.logger,
	}
	return pipe.Run(ctx)
}
