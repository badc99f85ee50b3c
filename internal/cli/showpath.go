package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kantord/enwiro/internal/envstore"
	"github.com/kantord/enwiro/internal/listing"
	"github.com/kantord/enwiro/internal/output"
)

// newShowPathCmd creates the show-path subcommand.
func newShowPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-path [NAME]",
		Short: "Print the resolved working directory for an environment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShowPath(cmd, args)
		},
	}
	return cmd
}

func runShowPath(cmd *cobra.Command, args []string) error {
	w := output.NewWriter(cmd)
	cfg := loadConfigWarnOnError(w)
	store := envstore.New(cfg.WorkspacesDirectory)
	pipeline := listing.New(store, w)

	explicit := ""
	if len(args) > 0 {
		explicit = args[0]
	}

	name := resolveActiveName(explicit, cfg, w)
	if name == "" {
		w.Error("no environment resolved\n")
		return &exitError{code: 1}
	}

	dir, ok, err := resolveOrCook(name, store, pipeline)
	if err != nil {
		return err
	}
	if !ok {
		reportNotFound(w, name, pipeline)
		return &exitError{code: 1}
	}

	fmt.Fprintln(w.Stdout(), dir)
	return nil
}
