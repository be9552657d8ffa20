// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/postcumer/personal-scripts/pkg/core"
)

var (
	cfgFile   string
	logLevel  string
	assumeYes bool
	config    *core.Config
)

// rootCmd represents the base command. Invoked bare it runs the full
// provisioning sequence.
var rootCmd = &cobra.Command{
	Use:   "provision",
	Short: "Workstation provisioner",
	Long: `provision - workstation provisioner

Classifies the host distribution, installs a curated package list through
the native package manager, optionally installs desktop applications and
theme packs, and builds and installs Deskflow from source.`,
	Version: "0.1.0",
	RunE:    runProvision,
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/provision/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to every confirmation prompt")

	// Add commands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if logLevel != "" {
		config.LogLevel = logLevel
	}
	if assumeYes {
		config.AssumeYes = true
	}
}
