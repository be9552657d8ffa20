// internal/cli/detect.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/postcumer/personal-scripts/pkg/distro"
	"github.com/postcumer/personal-scripts/pkg/execx"
	"github.com/postcumer/personal-scripts/pkg/logging"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the host distribution",
	Long:  `Detect the host distribution and print its canonical family tag.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(config.LogLevel); err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer logging.Sync()

		c := distro.New(execx.NewSystem(logging.Logger()), logging.Logger())
		tag := c.Classify(cmd.Context())
		fmt.Println(tag)
		if !distro.Supported(tag) {
			return fmt.Errorf("distribution %q is not supported", tag)
		}
		return nil
	},
}
