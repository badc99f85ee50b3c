package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kantord/enwiro/internal/daemon"
	"github.com/kantord/enwiro/internal/envstore"
	"github.com/kantord/enwiro/internal/listing"
	"github.com/kantord/enwiro/internal/output"
)

// newListAllCmd creates the list-all subcommand.
func newListAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-all",
		Short: "Print environments followed by every cookbook's offered recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListAll(cmd)
		},
	}
	return cmd
}

func runListAll(cmd *cobra.Command) error {
	w := output.NewWriter(cmd)
	cfg := loadConfigWarnOnError(w)
	store := envstore.New(cfg.WorkspacesDirectory)
	pipeline := listing.New(store, w)

	client := daemon.NewClient(daemon.DefaultPaths(), pipeline, newNotifier(w), w)
	items, err := client.ListAll()
	if err != nil {
		return err
	}

	for _, item := range items {
		if !item.IsEnvironment && item.Description != nil && w.IsVerbose() {
			fmt.Fprintf(w.Stdout(), "%s\t%s\n", item.Name, *item.Description)
			continue
		}
		fmt.Fprintln(w.Stdout(), item.Name)
	}
	return nil
}
