// pkg/pkgmgr/apt.go
package pkgmgr

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/postcumer/personal-scripts/pkg/execx"
)

// Apt drives apt-get/dpkg on Debian and Ubuntu hosts.
type Apt struct {
	runner execx.Runner
	logger *zap.SugaredLogger
}

func (a *Apt) Name() string { return "apt" }

func (a *Apt) IsInstalled(ctx context.Context, pkg string) bool {
	res, err := a.runner.Run(ctx, "", "dpkg", "-s", pkg)
	if err != nil {
		return false
	}
	// dpkg -s exits zero for removed-but-configured packages too; require
	// an installed status line.
	return res.Ok() && strings.Contains(res.Output, "Status: install ok installed")
}

func (a *Apt) Install(ctx context.Context, pkg string) error {
	a.logger.Infof("apt: installing %s", pkg)
	return runChecked(ctx, a.runner, "sudo", "apt-get", "install", "-y", pkg)
}

func (a *Apt) InstallFile(ctx context.Context, path string) error {
	a.logger.Infof("apt: installing package file %s", path)
	return runChecked(ctx, a.runner, "sudo", "apt-get", "install", "-y", path)
}

func (a *Apt) Refresh(ctx context.Context) error {
	return runChecked(ctx, a.runner, "sudo", "apt-get", "update")
}
