package pkgmgr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postcumer/personal-scripts/pkg/distro"
	"github.com/postcumer/personal-scripts/pkg/execx"
)

// fakeRunner records commands and replies from a canned table keyed on the
// joined command line.
type fakeRunner struct {
	calls   []string
	results map[string]*execx.Result
	err     error
}

func (f *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) (*execx.Result, error) {
	cmd := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmd)
	if f.err != nil {
		return &execx.Result{ExitCode: -1}, f.err
	}
	if res, ok := f.results[cmd]; ok {
		return res, nil
	}
	return &execx.Result{}, nil
}

func TestNewDispatch(t *testing.T) {
	cases := []struct {
		tag  distro.Tag
		want string
	}{
		{distro.Debian, "apt"},
		{distro.Ubuntu, "apt"},
		{distro.Fedora, "dnf"},
		{distro.RHEL, "dnf"},
		{distro.Arch, "pacman"},
	}
	for _, tc := range cases {
		mgr, err := New(tc.tag, &fakeRunner{}, nil)
		require.NoError(t, err, string(tc.tag))
		assert.Equal(t, tc.want, mgr.Name())
	}
}

func TestNewUnsupported(t *testing.T) {
	_, err := New(distro.Unknown, &fakeRunner{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = New(distro.Tag("slackware"), &fakeRunner{}, nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestInstalledNeverFails(t *testing.T) {
	// Unrecognized tag: no dispatch target, report not installed.
	assert.False(t, Installed(context.Background(), distro.Unknown, &fakeRunner{}, "git"))

	// Failed query: report not installed.
	r := &fakeRunner{err: errors.New("exec failed")}
	assert.False(t, Installed(context.Background(), distro.Ubuntu, r, "git"))
}

func TestAptIsInstalledRequiresStatusLine(t *testing.T) {
	r := &fakeRunner{results: map[string]*execx.Result{
		"dpkg -s git": {ExitCode: 0, Output: "Status: install ok installed\nVersion: 2.43"},
		"dpkg -s vim": {ExitCode: 0, Output: "Status: deinstall ok config-files"},
		"dpkg -s nop": {ExitCode: 1, Output: "package 'nop' is not installed"},
	}}
	mgr, err := New(distro.Ubuntu, r, nil)
	require.NoError(t, err)

	assert.True(t, mgr.IsInstalled(context.Background(), "git"))
	assert.False(t, mgr.IsInstalled(context.Background(), "vim"))
	assert.False(t, mgr.IsInstalled(context.Background(), "nop"))
}

func TestAptInstallCommandLine(t *testing.T) {
	r := &fakeRunner{}
	mgr, err := New(distro.Debian, r, nil)
	require.NoError(t, err)

	require.NoError(t, mgr.Install(context.Background(), "curl"))
	assert.Equal(t, []string{"sudo apt-get install -y curl"}, r.calls)
}

func TestDnfProbeAndInstall(t *testing.T) {
	r := &fakeRunner{results: map[string]*execx.Result{
		"rpm -q git": {ExitCode: 0, Output: "git-2.45.1-1.fc40.x86_64"},
	}}
	mgr, err := New(distro.Fedora, r, nil)
	require.NoError(t, err)

	assert.True(t, mgr.IsInstalled(context.Background(), "git"))
	require.NoError(t, mgr.InstallFile(context.Background(), "/tmp/deskflow.rpm"))
	assert.Contains(t, r.calls, "sudo dnf install -y /tmp/deskflow.rpm")
}

func TestPacmanInstallFile(t *testing.T) {
	r := &fakeRunner{}
	mgr, err := New(distro.Arch, r, nil)
	require.NoError(t, err)

	require.NoError(t, mgr.InstallFile(context.Background(), "/tmp/deskflow.pkg.tar.zst"))
	assert.Equal(t, []string{"sudo pacman -U --noconfirm /tmp/deskflow.pkg.tar.zst"}, r.calls)
}

func TestInstallReportsNonZeroExit(t *testing.T) {
	r := &fakeRunner{results: map[string]*execx.Result{
		"sudo apt-get install -y ghost": {ExitCode: 100, Output: "E: Unable to locate package ghost"},
	}}
	mgr, err := New(distro.Ubuntu, r, nil)
	require.NoError(t, err)

	err = mgr.Install(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 100")
}
