/* cmd/root.go */

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/CodeMonkeyCybersecurity/scout/pkg/discovery"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_cli"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_err"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_io"
)

// RootCmd is the base command for scout. A bare invocation runs the full
// discovery sequence; there are no flags to pass.
var RootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Scout enumerates host identity, users, network, and shares",
	Long: `Scout is a host-reconnaissance utility. It walks a fixed sequence of
discovery steps (system info, users, local accounts, network configuration,
remote systems, password policy, network shares), resolving the best available
tool for each and installing missing ones where the platform's package
manager allows. Results are reported as a color-coded transcript on stdout.`,

	RunE: scout_cli.Wrap(func(rc *scout_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return discovery.Run(rc)
	}),
}

// Execute runs the CLI. The process exit code is always zero: scout reports
// problems inline in the transcript, not through exit status.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		scout_err.PrintError("scout run ended with an error", err)
	}
	os.Exit(0)
}
