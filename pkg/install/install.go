// pkg/install/install.go
package install

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/postcumer/personal-scripts/pkg/pkgmgr"
	"github.com/postcumer/personal-scripts/pkg/prompt"
)

// Installer performs idempotent package installs: present packages are only
// reinstalled with consent, absent packages install without a prompt.
type Installer struct {
	Manager pkgmgr.Manager
	Gate    *prompt.Gate
	Logger  *zap.SugaredLogger
}

// New creates an Installer. A nil logger is replaced with a no-op one.
func New(mgr pkgmgr.Manager, gate *prompt.Gate, logger *zap.SugaredLogger) *Installer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Installer{Manager: mgr, Gate: gate, Logger: logger}
}

// InstallIfNeeded installs pkg unless it is already present and the operator
// declines a reinstall. Install failures are logged, not returned: the
// provisioning run is best-effort per package.
func (i *Installer) InstallIfNeeded(ctx context.Context, pkg string) {
	if i.Manager.IsInstalled(ctx, pkg) {
		if !i.Gate.Confirm(fmt.Sprintf("%s is already installed, reinstall?", pkg)) {
			i.Logger.Infof("keeping existing %s", pkg)
			return
		}
	}

	if err := i.Manager.Install(ctx, pkg); err != nil {
		i.Logger.Warnf("installing %s: %v", pkg, err)
	}
}
