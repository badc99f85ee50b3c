package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kantord/enwiro/internal/envstore"
	"github.com/kantord/enwiro/internal/listing"
	"github.com/kantord/enwiro/internal/output"
)

// newActivateCmd creates the activate subcommand.
func newActivateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activate <name>",
		Short: "Switch the window manager to an environment, cooking it first if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActivate(cmd, args[0])
		},
	}
	return cmd
}

func runActivate(cmd *cobra.Command, name string) error {
	w := output.NewWriter(cmd)
	cfg := loadConfigWarnOnError(w)
	store := envstore.New(cfg.WorkspacesDirectory)
	pipeline := listing.New(store, w)
	notifier := newNotifier(w)

	dir, ok, err := resolveOrCook(name, store, pipeline)
	if err != nil {
		notifier.NotifyError("Enwiro", fmt.Sprintf("activate %s failed: %v", name, err))
		return err
	}
	if !ok {
		reportNotFound(w, name, pipeline)
		notifier.NotifyError("Enwiro", fmt.Sprintf("no environment or recipe named %q", name))
		return &exitError{code: 1}
	}
	_ = dir // the adapter switches by name; the directory is already materialized

	adapterClient, err := findAdapter(cfg)
	if err != nil {
		notifier.NotifyError("Enwiro", err.Error())
		return err
	}

	if err := adapterClient.Activate(name); err != nil {
		notifier.NotifyError("Enwiro", fmt.Sprintf("activate %s failed: %v", name, err))
		return err
	}

	if err := store.RecordActivation(name); err != nil {
		w.Warn("could not record activation for %s: %v\n", name, err)
	}

	notifier.NotifySuccess("Enwiro", fmt.Sprintf("activated %s", name))
	w.Success("activated %s\n", name)
	return nil
}
