// pkg/distro/distro.go
package distro

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/postcumer/personal-scripts/pkg/execx"
)

// Tag identifies a distribution family. Derivatives are folded into their
// base family so dispatch only ever sees the bases below.
type Tag string

const (
	Debian  Tag = "debian"
	Ubuntu  Tag = "ubuntu"
	Arch    Tag = "arch"
	Fedora  Tag = "fedora"
	RHEL    Tag = "rhel"
	Unknown Tag = "unknown"
)

// derivatives maps known derivative identifiers to their base family.
// Adding a new derivative is a table entry, never a dispatch change.
var derivatives = map[string]Tag{
	"manjaro":     Arch,
	"endeavouros": Arch,
	"garuda":      Arch,
	"artix":       Arch,
	"arcolinux":   Arch,
	"raspbian":    Debian,
	"pop":         Ubuntu,
	"linuxmint":   Ubuntu,
	"elementary":  Ubuntu,
	"neon":        Ubuntu,
	"zorin":       Ubuntu,
	"centos":      RHEL,
	"rocky":       RHEL,
	"almalinux":   RHEL,
}

// Classifier detects the host distribution. The zero value is not usable;
// call New and override fields in tests as needed.
type Classifier struct {
	ReleaseFile string       // default /etc/os-release
	EtcDir      string       // root for marker files, default /etc
	Runner      execx.Runner // used for the lsb_release fallback
	HasCommand  func(string) bool
	Logger      *zap.SugaredLogger
}

// New creates a Classifier wired to the real host.
func New(runner execx.Runner, logger *zap.SugaredLogger) *Classifier {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Classifier{
		ReleaseFile: "/etc/os-release",
		EtcDir:      "/etc",
		Runner:      runner,
		HasCommand:  execx.CommandExists,
		Logger:      logger,
	}
}

// Classify determines the distribution tag. It never fails: when no probe
// recognizes the host it returns Unknown.
func (c *Classifier) Classify(ctx context.Context) Tag {
	if id, ok := c.osReleaseID(); ok {
		tag := Canonicalize(id)
		c.Logger.Debugf("os-release id %q -> %s", id, tag)
		return tag
	}

	if c.HasCommand != nil && c.Runner != nil && c.HasCommand("lsb_release") {
		if res, err := c.Runner.Run(ctx, "", "lsb_release", "-si"); err == nil && res.Ok() {
			id := strings.ToLower(strings.TrimSpace(res.Output))
			if id != "" {
				tag := Canonicalize(id)
				c.Logger.Debugf("lsb_release %q -> %s", id, tag)
				return tag
			}
		}
	}

	// Marker files, fixed priority.
	markers := []struct {
		file string
		tag  Tag
	}{
		{"debian_version", Debian},
		{"fedora-release", Fedora},
		{"arch-release", Arch},
	}
	for _, m := range markers {
		if _, err := os.Stat(filepath.Join(c.EtcDir, m.file)); err == nil {
			return m.tag
		}
	}

	return Unknown
}

// osReleaseID extracts the ID field from the os-release file. The second
// return is false when the file is missing or carries no ID.
func (c *Classifier) osReleaseID() (string, bool) {
	data, err := os.ReadFile(c.ReleaseFile)
	if err != nil {
		return "", false
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "ID=") {
			continue
		}
		id := strings.TrimPrefix(line, "ID=")
		id = strings.Trim(id, `"'`)
		id = strings.ToLower(strings.TrimSpace(id))
		if id != "" {
			return id, true
		}
	}
	return "", false
}

// Canonicalize maps a raw distribution identifier to its base family tag.
func Canonicalize(id string) Tag {
	id = strings.ToLower(strings.TrimSpace(id))
	switch Tag(id) {
	case Debian, Ubuntu, Arch, Fedora, RHEL:
		return Tag(id)
	}
	if base, ok := derivatives[id]; ok {
		return base
	}
	return Unknown
}

// Supported reports whether the tag maps to a known package manager family.
func Supported(t Tag) bool {
	switch t {
	case Debian, Ubuntu, Arch, Fedora, RHEL:
		return true
	}
	return false
}
