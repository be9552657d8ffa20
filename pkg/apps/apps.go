// pkg/apps/apps.go
package apps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/postcumer/personal-scripts/pkg/core"
	"github.com/postcumer/personal-scripts/pkg/distro"
	"github.com/postcumer/personal-scripts/pkg/pkgmgr"
	"github.com/postcumer/personal-scripts/pkg/prompt"
)

// FileDownloader fetches a URL into a local file.
type FileDownloader interface {
	File(ctx context.Context, url, dest string) error
}

// Step installs optional desktop applications from downloaded installer
// packages. Every failure is logged and skipped; the run continues.
type Step struct {
	Distro     distro.Tag
	Manager    pkgmgr.Manager
	Gate       *prompt.Gate
	Downloader FileDownloader
	WorkDir    string
	Logger     *zap.SugaredLogger
}

// packageKindFor maps a distribution family to the installer package kind
// its native manager consumes.
func packageKindFor(tag distro.Tag) (kind, ext string, ok bool) {
	switch tag {
	case distro.Debian, distro.Ubuntu:
		return "deb", "deb", true
	case distro.Fedora, distro.RHEL:
		return "rpm", "rpm", true
	case distro.Arch:
		return "archpkg", "pkg.tar.zst", true
	default:
		return "", "", false
	}
}

// InstallAll walks the configured apps: absent ones are confirmed,
// downloaded and installed; the downloaded file is always removed afterwards
// whether or not the install succeeded.
func (s *Step) InstallAll(ctx context.Context, specs []core.AppSpec) {
	kind, ext, ok := packageKindFor(s.Distro)
	if !ok {
		s.Logger.Warnf("no installer package kind for distribution %s, skipping apps", s.Distro)
		return
	}

	for _, spec := range specs {
		if s.Manager.IsInstalled(ctx, spec.Package) {
			s.Logger.Infof("%s (%s) already installed", spec.Name, spec.Package)
			continue
		}

		url, ok := spec.URLs[kind]
		if !ok {
			s.Logger.Infof("%s has no %s package, skipping", spec.Name, kind)
			continue
		}

		if !s.Gate.Confirm(fmt.Sprintf("install %s (%s)?", spec.Name, spec.Package)) {
			continue
		}

		dest := filepath.Join(s.WorkDir, fmt.Sprintf("%s.%s", spec.Package, ext))
		if err := s.Downloader.File(ctx, url, dest); err != nil {
			s.Logger.Warnf("downloading %s: %v", spec.Name, err)
			os.Remove(dest)
			continue
		}

		if err := s.Manager.InstallFile(ctx, dest); err != nil {
			s.Logger.Warnf("installing %s: %v", spec.Name, err)
		}
		os.Remove(dest)
	}
}
