package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kantord/enwiro/internal/envstore"
	"github.com/kantord/enwiro/internal/listing"
	"github.com/kantord/enwiro/internal/output"
)

// newListEnvironmentsCmd creates the list-environments subcommand.
func newListEnvironmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-environments",
		Short: "Print existing environments, most frecent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListEnvironments(cmd)
		},
	}
	return cmd
}

func runListEnvironments(cmd *cobra.Command) error {
	w := output.NewWriter(cmd)
	cfg := loadConfigWarnOnError(w)
	store := envstore.New(cfg.WorkspacesDirectory)
	pipeline := listing.New(store, w)

	envs, err := pipeline.ListEnvironments()
	if err != nil {
		return err
	}
	for _, e := range envs {
		fmt.Fprintln(w.Stdout(), e.Name)
	}
	return nil
}
