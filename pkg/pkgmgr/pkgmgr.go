// pkg/pkgmgr/pkgmgr.go
package pkgmgr

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/postcumer/personal-scripts/pkg/distro"
	"github.com/postcumer/personal-scripts/pkg/execx"
)

// ErrUnsupported indicates no package manager is known for the distribution.
var ErrUnsupported = errors.New("unsupported distribution")

// Manager is the native package manager for one distribution family. All
// mutating operations run with sudo through the injected runner.
type Manager interface {
	// Name returns the manager name (e.g. "apt", "dnf", "pacman").
	Name() string

	// IsInstalled queries the package database read-only. Query failure
	// means "not installed".
	IsInstalled(ctx context.Context, pkg string) bool

	// Install installs a package from the configured repositories.
	Install(ctx context.Context, pkg string) error

	// InstallFile installs a local package file (.deb, .rpm, .pkg.tar.*).
	InstallFile(ctx context.Context, path string) error

	// Refresh updates the package metadata cache.
	Refresh(ctx context.Context) error
}

// New returns the Manager for the given distribution tag. Unknown and
// unsupported tags yield ErrUnsupported; callers must treat that as a hard
// stop, not a fallback.
func New(tag distro.Tag, runner execx.Runner, logger *zap.SugaredLogger) (Manager, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	switch tag {
	case distro.Debian, distro.Ubuntu:
		return &Apt{runner: runner, logger: logger}, nil
	case distro.Fedora, distro.RHEL:
		return &Dnf{runner: runner, logger: logger}, nil
	case distro.Arch:
		return &Pacman{runner: runner, logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, tag)
	}
}

// Installed is the standalone installed-state probe. It never fails: an
// unrecognized distribution or a failed query both report "not installed".
func Installed(ctx context.Context, tag distro.Tag, runner execx.Runner, pkg string) bool {
	mgr, err := New(tag, runner, nil)
	if err != nil {
		return false
	}
	return mgr.IsInstalled(ctx, pkg)
}

// runChecked executes a command and turns a non-zero exit into an error.
func runChecked(ctx context.Context, r execx.Runner, name string, args ...string) error {
	res, err := r.Run(ctx, "", name, args...)
	if err != nil {
		return err
	}
	if !res.Ok() {
		return fmt.Errorf("%s exited with status %d", name, res.ExitCode)
	}
	return nil
}
