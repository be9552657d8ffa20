// internal/cli/run.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	provision "github.com/postcumer/personal-scripts"
	"github.com/postcumer/personal-scripts/pkg/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full provisioning sequence",
	Long: `Run the full provisioning sequence: classify the host distribution,
install packages, applications and themes, then build and install Deskflow.`,
	RunE: runProvision,
}

func runProvision(cmd *cobra.Command, args []string) error {
	if err := logging.Init(config.LogLevel); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logging.Sync()

	return provision.New(config, logging.Logger()).Run(cmd.Context())
}
