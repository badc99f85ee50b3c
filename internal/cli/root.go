// Package cli defines enwiro's command surface: wrap, activate,
// show-path, list-environments, list-all, the hidden daemon subcommand,
// and the supplemental doctor/config/completion commands.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// exitError wraps an exit code so Execute can propagate it without
// cobra printing a redundant error line.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// NewRootCmd creates the root command for enwiro.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "enwiro",
		Short: "Bind window-manager workspaces to project environments",
		Long: `enwiro binds window-manager workspaces to project "environments"
through pluggable out-of-process cookbook, adapter, and bridge plugins,
with a background cache daemon keeping the aggregated listing fast.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress informational output (errors only)")
	rootCmd.PersistentFlags().Bool("verbose", false, "show additional detail")
	rootCmd.PersistentFlags().Bool("debug", false, "show debug information")
	rootCmd.MarkFlagsMutuallyExclusive("quiet", "verbose", "debug")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colorized output")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newWrapCmd())
	rootCmd.AddCommand(newActivateCmd())
	rootCmd.AddCommand(newShowPathCmd())
	rootCmd.AddCommand(newListEnvironmentsCmd())
	rootCmd.AddCommand(newListAllCmd())
	rootCmd.AddCommand(newDaemonCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of enwiro",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "enwiro %s\n", version)
		},
	}
}

// Execute runs the root command, translating an *exitError into the
// matching process exit code.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		os.Exit(1)
	}
}
