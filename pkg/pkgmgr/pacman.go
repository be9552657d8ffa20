// pkg/pkgmgr/pacman.go
package pkgmgr

import (
	"context"

	"go.uber.org/zap"

	"github.com/postcumer/personal-scripts/pkg/execx"
)

// Pacman drives pacman on Arch-family hosts.
type Pacman struct {
	runner execx.Runner
	logger *zap.SugaredLogger
}

func (p *Pacman) Name() string { return "pacman" }

func (p *Pacman) IsInstalled(ctx context.Context, pkg string) bool {
	res, err := p.runner.Run(ctx, "", "pacman", "-Qi", pkg)
	if err != nil {
		return false
	}
	return res.Ok()
}

func (p *Pacman) Install(ctx context.Context, pkg string) error {
	p.logger.Infof("pacman: installing %s", pkg)
	return runChecked(ctx, p.runner, "sudo", "pacman", "-S", "--noconfirm", "--needed", pkg)
}

func (p *Pacman) InstallFile(ctx context.Context, path string) error {
	p.logger.Infof("pacman: installing package file %s", path)
	return runChecked(ctx, p.runner, "sudo", "pacman", "-U", "--noconfirm", path)
}

func (p *Pacman) Refresh(ctx context.Context) error {
	return runChecked(ctx, p.runner, "sudo", "pacman", "-Sy")
}
