package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kantord/enwiro/internal/config"
	"github.com/kantord/enwiro/internal/daemon"
	"github.com/kantord/enwiro/internal/output"
	"github.com/kantord/enwiro/internal/plugin"
)

// newDoctorCmd creates the doctor subcommand: a diagnostic dump of
// discovered plugins, effective config, and daemon liveness.
func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Report discovered plugins, effective config, and daemon state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd)
		},
	}
	return cmd
}

func runDoctor(cmd *cobra.Command) error {
	w := output.NewWriter(cmd)
	out := w.Stdout()

	cfg, err := config.Load()
	fmt.Fprintf(out, "config file: %s\n", config.Path())
	if err != nil {
		fmt.Fprintf(out, "  %v (using defaults)\n", err)
	}
	fmt.Fprintf(out, "workspaces_directory: %s (%s)\n", cfg.WorkspacesDirectory, workspacesWritability(cfg.WorkspacesDirectory))
	fmt.Fprintf(out, "adapter: %s\n", orNone(cfg.Adapter))
	fmt.Fprintf(out, "refresh_interval_seconds: %d\n", cfg.RefreshIntervalSeconds)
	fmt.Fprintf(out, "daemon_idle_timeout_seconds: %d\n", cfg.DaemonIdleTimeoutSeconds)

	descs, err := plugin.Discover()
	if err != nil {
		fmt.Fprintf(out, "plugin discovery failed: %v\n", err)
	} else {
		byRole := plugin.ByRole(descs)
		for _, role := range []plugin.Role{plugin.RoleCookbook, plugin.RoleAdapter, plugin.RoleBridge} {
			fmt.Fprintf(out, "%s plugins:\n", role)
			names := byRole[role]
			if len(names) == 0 {
				fmt.Fprintf(out, "  (none discovered)\n")
				continue
			}
			for name, path := range names {
				fmt.Fprintf(out, "  %s -> %s\n", name, path)
			}
		}
	}

	paths := daemon.DefaultPaths()
	fmt.Fprintf(out, "runtime directory: %s\n", paths.Dir)
	if pid, alive := daemonLiveness(paths); alive {
		fmt.Fprintf(out, "daemon: running (pid %d)\n", pid)
	} else {
		fmt.Fprintf(out, "daemon: not running\n")
	}

	return nil
}

// workspacesWritability reports whether dir exists and, if so, is
// writable — probed by creating and removing a throwaway file rather
// than inspecting permission bits, since the effective answer depends
// on ownership and ACLs too. Never creates dir itself: that is
// envstore's job at Create time, not doctor's.
func workspacesWritability(dir string) string {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return "does not exist yet"
		}
		return fmt.Sprintf("not accessible: %v", err)
	}
	probe := filepath.Join(dir, ".enwiro-doctor-probe")
	f, err := os.OpenFile(probe, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Sprintf("not writable: %v", err)
	}
	f.Close()
	os.Remove(probe)
	return "writable"
}

// daemonLiveness reads the daemon pidfile and probes it with signal 0.
func daemonLiveness(paths daemon.Paths) (pid int, alive bool) {
	data, err := os.ReadFile(paths.PIDFile())
	if err != nil {
		return 0, false
	}
	pid, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return pid, false
	}
	return pid, proc.Signal(syscall.Signal(0)) == nil
}
