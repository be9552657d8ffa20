package distro

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T) (*Classifier, string) {
	t.Helper()
	dir := t.TempDir()
	c := New(nil, nil)
	c.ReleaseFile = filepath.Join(dir, "os-release")
	c.EtcDir = dir
	c.HasCommand = func(string) bool { return false }
	return c, dir
}

func writeRelease(t *testing.T, c *Classifier, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(c.ReleaseFile, []byte(content), 0o644))
}

func TestClassifyFromOSRelease(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    Tag
	}{
		{"ubuntu", "NAME=\"Ubuntu\"\nID=ubuntu\n", Ubuntu},
		{"debian", "ID=debian\nVERSION_ID=\"12\"\n", Debian},
		{"fedora", "ID=fedora\n", Fedora},
		{"arch", "ID=arch\n", Arch},
		{"rhel quoted", "ID=\"rhel\"\n", RHEL},
		{"manjaro folds to arch", "ID=manjaro\nID_LIKE=arch\n", Arch},
		{"endeavouros folds to arch", "ID=endeavouros\n", Arch},
		{"mint folds to ubuntu", "ID=linuxmint\n", Ubuntu},
		{"rocky folds to rhel", "ID=rocky\n", RHEL},
		{"unrecognized id", "ID=gentoo\n", Unknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClassifier(t)
			writeRelease(t, c, tc.content)
			assert.Equal(t, tc.want, c.Classify(context.Background()))
		})
	}
}

func TestClassifyMarkerFallback(t *testing.T) {
	cases := []struct {
		marker string
		want   Tag
	}{
		{"debian_version", Debian},
		{"fedora-release", Fedora},
		{"arch-release", Arch},
	}

	for _, tc := range cases {
		t.Run(tc.marker, func(t *testing.T) {
			c, dir := newTestClassifier(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, tc.marker), nil, 0o644))
			assert.Equal(t, tc.want, c.Classify(context.Background()))
		})
	}
}

func TestClassifyMarkerPriorityDebianFirst(t *testing.T) {
	c, dir := newTestClassifier(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arch-release"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "debian_version"), nil, 0o644))
	assert.Equal(t, Debian, c.Classify(context.Background()))
}

func TestClassifyNothingDetected(t *testing.T) {
	c, _ := newTestClassifier(t)
	assert.Equal(t, Unknown, c.Classify(context.Background()))
}

func TestCanonicalize(t *testing.T) {
	assert.Equal(t, Arch, Canonicalize("Manjaro"))
	assert.Equal(t, Ubuntu, Canonicalize(" ubuntu "))
	assert.Equal(t, Unknown, Canonicalize(""))
	assert.Equal(t, Unknown, Canonicalize("slackware"))
}

func TestSupported(t *testing.T) {
	for _, tag := range []Tag{Debian, Ubuntu, Arch, Fedora, RHEL} {
		assert.True(t, Supported(tag), string(tag))
	}
	assert.False(t, Supported(Unknown))
}
