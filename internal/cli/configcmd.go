package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kantord/enwiro/internal/output"
)

// newConfigCmd creates the config subcommand: a dump of the effective
// (defaults-merged) configuration, mirroring what every other command
// actually reads.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigDump(cmd)
		},
	}
	return cmd
}

func runConfigDump(cmd *cobra.Command) error {
	w := output.NewWriter(cmd)
	cfg := loadConfigWarnOnError(w)

	out := w.Stdout()
	fmt.Fprintf(out, "workspaces_directory = %q\n", cfg.WorkspacesDirectory)
	fmt.Fprintf(out, "adapter = %q\n", cfg.Adapter)
	fmt.Fprintf(out, "refresh_interval_seconds = %d\n", cfg.RefreshIntervalSeconds)
	fmt.Fprintf(out, "daemon_idle_timeout_seconds = %d\n", cfg.DaemonIdleTimeoutSeconds)
	return nil
}
