// pkg/deskflow/deskflow.go
package deskflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/postcumer/personal-scripts/pkg/artifact"
	"github.com/postcumer/personal-scripts/pkg/core"
	"github.com/postcumer/personal-scripts/pkg/execx"
	"github.com/postcumer/personal-scripts/pkg/gitfetch"
	"github.com/postcumer/personal-scripts/pkg/pkgmgr"
)

// Pipeline clones, builds, tests, packages and installs Deskflow from
// source. Only the repository fetch is fatal; every later stage is
// best-effort and logged.
type Pipeline struct {
	Config  core.DeskflowConfig
	Manager pkgmgr.Manager
	Fetcher *gitfetch.Fetcher
	Runner  execx.Runner
	WorkDir string
	Logger  *zap.SugaredLogger
}

// Run executes the whole pipeline. The returned error is non-nil only when
// the source fetch exhausted its retries or the checkout is unusable.
func (p *Pipeline) Run(ctx context.Context) error {
	dir := filepath.Join(p.WorkDir, "deskflow")

	err := p.Fetcher.Fetch(ctx, gitfetch.Request{
		URL:         p.Config.RepoURL,
		Dir:         dir,
		MaxAttempts: p.Config.MaxAttempts,
		Backoff:     p.Config.Backoff(),
	})
	if err != nil {
		return fmt.Errorf("fetching deskflow: %w", err)
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("entering deskflow checkout: %w", err)
	}

	p.patchBuildConfig(dir)
	p.runStage(ctx, dir, "installing build dependencies", p.Config.DepsScript)
	p.runStage(ctx, dir, "configuring", "cmake", "-B", p.Config.BuildDir, "-DCMAKE_BUILD_TYPE=Release")
	p.runStage(ctx, dir, "building", "cmake", "--build", p.Config.BuildDir)

	for _, bin := range p.Config.TestBinaries {
		p.runStage(ctx, dir, "running "+filepath.Base(bin), bin)
	}

	p.runStage(ctx, dir, "packaging", p.Config.PackageScript)

	p.installArtifact(ctx, filepath.Join(dir, p.Config.DistDir))
	return nil
}

// patchBuildConfig rewrites the build config YAML by literal, case-sensitive
// global substitution. The file is deliberately not parsed as YAML: the
// original workaround is a plain token swap and structured patching would
// change which occurrences are touched.
func (p *Pipeline) patchBuildConfig(dir string) {
	if p.Config.ReplaceFrom == "" || p.Config.ReplaceFrom == p.Config.ReplaceTo {
		return
	}

	path := filepath.Join(dir, p.Config.ConfigFile)
	if err := PatchFile(path, p.Config.ReplaceFrom, p.Config.ReplaceTo); err != nil {
		p.Logger.Warnf("patching %s: %v", p.Config.ConfigFile, err)
		return
	}
	p.Logger.Debugf("patched %s: %q -> %q", p.Config.ConfigFile, p.Config.ReplaceFrom, p.Config.ReplaceTo)
}

// PatchFile replaces every literal occurrence of from with to in the file,
// preserving its mode.
func PatchFile(path, from, to string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	patched := strings.ReplaceAll(string(data), from, to)
	return os.WriteFile(path, []byte(patched), info.Mode())
}

// runStage runs one external command, logging the outcome without failing
// the pipeline.
func (p *Pipeline) runStage(ctx context.Context, dir, what string, name string, args ...string) {
	p.Logger.Infof("deskflow: %s", what)
	res, err := p.Runner.Run(ctx, dir, name, args...)
	if err != nil {
		p.Logger.Warnf("deskflow: %s failed: %v", what, err)
		return
	}
	if !res.Ok() {
		p.Logger.Warnf("deskflow: %s exited with status %d", what, res.ExitCode)
	}
}

// installArtifact locates the newest built package and dispatches it to the
// native installer by its extension. An unrecognized extension is reported
// and nothing is installed.
func (p *Pipeline) installArtifact(ctx context.Context, distDir string) {
	path, err := newestArtifact(distDir)
	if err != nil {
		p.Logger.Warnf("deskflow: no installable package found in %s: %v", distDir, err)
		return
	}

	if kind := artifact.KindForPath(path); kind == artifact.KindUnknown {
		p.Logger.Warnf("deskflow: unknown package type: %s", filepath.Base(path))
		return
	}

	if info, err := artifact.Inspect(path); err == nil {
		p.Logger.Infof("deskflow: built %s %s (%s)", info.Name, info.Version, info.Kind)
	}

	if err := p.Manager.InstallFile(ctx, path); err != nil {
		p.Logger.Warnf("deskflow: installing %s: %v", filepath.Base(path), err)
		return
	}
	p.Logger.Infof("deskflow: installed %s", filepath.Base(path))
}

// newestArtifact returns the most recently modified regular file in dir.
func newestArtifact(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var newest string
	var newestMod int64
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().UnixNano() > newestMod {
			newest = filepath.Join(dir, e.Name())
			newestMod = info.ModTime().UnixNano()
		}
	}

	if newest == "" {
		return "", fmt.Errorf("no files in %s", dir)
	}
	return newest, nil
}
