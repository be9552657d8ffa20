// pkg/pkgmgr/dnf.go
package pkgmgr

import (
	"context"

	"go.uber.org/zap"

	"github.com/postcumer/personal-scripts/pkg/execx"
)

// Dnf drives dnf/rpm on Fedora and RHEL-family hosts.
type Dnf struct {
	runner execx.Runner
	logger *zap.SugaredLogger
}

func (d *Dnf) Name() string { return "dnf" }

func (d *Dnf) IsInstalled(ctx context.Context, pkg string) bool {
	res, err := d.runner.Run(ctx, "", "rpm", "-q", pkg)
	if err != nil {
		return false
	}
	return res.Ok()
}

func (d *Dnf) Install(ctx context.Context, pkg string) error {
	d.logger.Infof("dnf: installing %s", pkg)
	return runChecked(ctx, d.runner, "sudo", "dnf", "install", "-y", pkg)
}

func (d *Dnf) InstallFile(ctx context.Context, path string) error {
	d.logger.Infof("dnf: installing package file %s", path)
	return runChecked(ctx, d.runner, "sudo", "dnf", "install", "-y", path)
}

func (d *Dnf) Refresh(ctx context.Context) error {
	return runChecked(ctx, d.runner, "sudo", "dnf", "makecache")
}
