package install

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/postcumer/personal-scripts/pkg/prompt"
)

type fakeManager struct {
	installed    bool
	installCalls int
}

func (f *fakeManager) Name() string                                  { return "fake" }
func (f *fakeManager) IsInstalled(ctx context.Context, pkg string) bool { return f.installed }
func (f *fakeManager) Install(ctx context.Context, pkg string) error {
	f.installCalls++
	return nil
}
func (f *fakeManager) InstallFile(ctx context.Context, path string) error { return nil }
func (f *fakeManager) Refresh(ctx context.Context) error                  { return nil }

func TestFreshInstallRunsOnceWithoutPrompt(t *testing.T) {
	mgr := &fakeManager{installed: false}
	var out bytes.Buffer
	gate := prompt.New(strings.NewReader(""), &out)

	New(mgr, gate, nil).InstallIfNeeded(context.Background(), "git")

	assert.Equal(t, 1, mgr.installCalls)
	assert.Empty(t, out.String(), "fresh install must not prompt")
}

func TestReinstallDeclinedDoesNotRun(t *testing.T) {
	mgr := &fakeManager{installed: true}
	gate := prompt.New(strings.NewReader("n\n"), &bytes.Buffer{})

	New(mgr, gate, nil).InstallIfNeeded(context.Background(), "git")

	assert.Equal(t, 0, mgr.installCalls)
}

func TestReinstallApprovedRunsOnce(t *testing.T) {
	mgr := &fakeManager{installed: true}
	gate := prompt.New(strings.NewReader("yes\n"), &bytes.Buffer{})

	New(mgr, gate, nil).InstallIfNeeded(context.Background(), "git")

	assert.Equal(t, 1, mgr.installCalls)
}
