package cli

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kantord/enwiro/internal/daemon"
	"github.com/kantord/enwiro/internal/enwiroerr"
	"github.com/kantord/enwiro/internal/envstore"
	"github.com/kantord/enwiro/internal/listing"
	"github.com/kantord/enwiro/internal/output"
)

// newDaemonCmd creates the hidden daemon subcommand. It is never
// invoked directly by users — the cache client spawns it as a detached
// process when recipes.cache is missing or stale.
func newDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "daemon",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd)
		},
	}
	return cmd
}

func runDaemon(cmd *cobra.Command) error {
	w := output.NewWriter(cmd)
	cfg := loadConfigWarnOnError(w)
	store := envstore.New(cfg.WorkspacesDirectory)
	pipeline := listing.New(store, w)

	d := &daemon.Daemon{
		Paths:           daemon.DefaultPaths(),
		Pipeline:        pipeline,
		Logger:          w,
		RefreshInterval: time.Duration(cfg.RefreshIntervalSeconds) * time.Second,
		IdleTimeout:     time.Duration(cfg.DaemonIdleTimeoutSeconds) * time.Second,
		Watch: func() (<-chan struct{}, func(), error) {
			return daemon.WatchDirs(pluginSearchDirs())
		},
	}

	if err := d.Run(); err != nil {
		var singleton *enwiroerr.DaemonSingletonError
		if errors.As(err, &singleton) {
			// Another live daemon already owns the pidfile: normal, exit 0.
			return nil
		}
		return err
	}
	return nil
}

// pluginSearchDirs returns the directories the daemon watches for
// plugin additions/removals: every entry on $PATH.
func pluginSearchDirs() []string {
	return filepath.SplitList(os.Getenv("PATH"))
}
