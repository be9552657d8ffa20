// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// AppSpec describes an optional desktop application installed from a
// downloaded package file rather than the distro repositories.
type AppSpec struct {
	Name    string            `yaml:"name"`
	Package string            `yaml:"package"` // name probed in the package database
	URLs    map[string]string `yaml:"urls"`    // keyed by package kind: deb, rpm, archpkg
}

// ThemeSpec describes a theme repository with a bundled installer script.
type ThemeSpec struct {
	Name    string   `yaml:"name"`
	RepoURL string   `yaml:"repo_url"`
	Script  string   `yaml:"script"` // relative to the clone
	Args    []string `yaml:"args"`
}

// DeskflowConfig tunes the Deskflow source build pipeline.
type DeskflowConfig struct {
	RepoURL        string   `yaml:"repo_url"`
	MaxAttempts    int      `yaml:"max_attempts"`
	BackoffSeconds int      `yaml:"backoff_seconds"`
	ConfigFile     string   `yaml:"config_file"` // patched YAML, relative to the clone
	ReplaceFrom    string   `yaml:"replace_from"`
	ReplaceTo      string   `yaml:"replace_to"`
	DepsScript     string   `yaml:"deps_script"`
	PackageScript  string   `yaml:"package_script"`
	BuildDir       string   `yaml:"build_dir"`
	DistDir        string   `yaml:"dist_dir"`
	TestBinaries   []string `yaml:"test_binaries"`
}

// Backoff returns the configured retry backoff as a duration.
func (d DeskflowConfig) Backoff() time.Duration {
	return time.Duration(d.BackoffSeconds) * time.Second
}

// Config holds the whole provisioning run description.
type Config struct {
	LogLevel  string              `yaml:"log_level"`
	AssumeYes bool                `yaml:"assume_yes"`
	WorkDir   string              `yaml:"work_dir"` // clones and downloads land here
	Packages  map[string][]string `yaml:"packages"` // keyed by distribution tag
	Apps      []AppSpec           `yaml:"apps"`
	Themes    []ThemeSpec         `yaml:"themes"`
	Deskflow  DeskflowConfig      `yaml:"deskflow"`
}

// DefaultConfig returns the built-in run description, matching what a
// configless invocation provisions.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		WorkDir:  defaultWorkDir(),
		Packages: map[string][]string{
			"debian": {"git", "curl", "wget", "vim", "tmux", "htop", "build-essential", "cmake"},
			"ubuntu": {"git", "curl", "wget", "vim", "tmux", "htop", "build-essential", "cmake"},
			"fedora": {"git", "curl", "wget", "vim", "tmux", "htop", "gcc-c++", "cmake"},
			"rhel":   {"git", "curl", "wget", "vim", "tmux", "htop", "gcc-c++", "cmake"},
			"arch":   {"git", "curl", "wget", "vim", "tmux", "htop", "base-devel", "cmake"},
		},
		Apps: []AppSpec{
			{
				Name:    "browser",
				Package: "google-chrome-stable",
				URLs: map[string]string{
					"deb": "https://dl.google.com/linux/direct/google-chrome-stable_current_amd64.deb",
					"rpm": "https://dl.google.com/linux/direct/google-chrome-stable_current_x86_64.rpm",
				},
			},
			{
				Name:    "editor",
				Package: "code",
				URLs: map[string]string{
					"deb": "https://update.code.visualstudio.com/latest/linux-deb-x64/stable",
					"rpm": "https://update.code.visualstudio.com/latest/linux-rpm-x64/stable",
				},
			},
			{
				Name:    "chat",
				Package: "discord",
				URLs: map[string]string{
					"deb": "https://discord.com/api/download?platform=linux&format=deb",
				},
			},
		},
		Themes: []ThemeSpec{
			{
				Name:    "WhiteSur GTK theme",
				RepoURL: "https://github.com/vinceliuice/WhiteSur-gtk-theme",
				Script:  "install.sh",
				Args:    []string{"-l"},
			},
			{
				Name:    "WhiteSur icon theme",
				RepoURL: "https://github.com/vinceliuice/WhiteSur-icon-theme",
				Script:  "install.sh",
				Args:    []string{"-a"},
			},
		},
		Deskflow: DeskflowConfig{
			RepoURL:        "https://github.com/deskflow/deskflow",
			MaxAttempts:    4,
			BackoffSeconds: 2,
			ConfigFile:     "deps.yml",
			ReplaceFrom:    "manjaro",
			ReplaceTo:      "arch",
			DepsScript:     "./scripts/install_deps.sh",
			PackageScript:  "./scripts/package.py",
			BuildDir:       "build",
			DistDir:        "dist",
			TestBinaries:   []string{"./build/bin/unittests", "./build/bin/integtests"},
		},
	}
}

// LoadConfig loads configuration from path, falling back to the default
// location and filling unset sections with defaults. A missing file is not
// an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".config", "provision", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills any section the file left unset.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.WorkDir == "" {
		c.WorkDir = def.WorkDir
	}
	if len(c.Packages) == 0 {
		c.Packages = def.Packages
	}
	if len(c.Apps) == 0 {
		c.Apps = def.Apps
	}
	if len(c.Themes) == 0 {
		c.Themes = def.Themes
	}
	d := &c.Deskflow
	dd := def.Deskflow
	if d.RepoURL == "" {
		d.RepoURL = dd.RepoURL
	}
	if d.MaxAttempts < 1 {
		d.MaxAttempts = dd.MaxAttempts
	}
	if d.BackoffSeconds <= 0 {
		d.BackoffSeconds = dd.BackoffSeconds
	}
	if d.ConfigFile == "" {
		d.ConfigFile = dd.ConfigFile
	}
	if d.ReplaceFrom == "" {
		d.ReplaceFrom = dd.ReplaceFrom
	}
	if d.ReplaceTo == "" {
		d.ReplaceTo = dd.ReplaceTo
	}
	if d.DepsScript == "" {
		d.DepsScript = dd.DepsScript
	}
	if d.PackageScript == "" {
		d.PackageScript = dd.PackageScript
	}
	if d.BuildDir == "" {
		d.BuildDir = dd.BuildDir
	}
	if d.DistDir == "" {
		d.DistDir = dd.DistDir
	}
	if len(d.TestBinaries) == 0 {
		d.TestBinaries = dd.TestBinaries
	}
}

func defaultWorkDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "provision")
	}
	return filepath.Join(home, ".cache", "provision")
}
