package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kantord/enwiro/internal/envstore"
	"github.com/kantord/enwiro/internal/listing"
	"github.com/kantord/enwiro/internal/output"
	"github.com/kantord/enwiro/internal/plugin"
)

// newWrapCmd creates the wrap subcommand.
func newWrapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wrap <cmd> [-- <args>...]",
		Short: "Run a command inside the current environment's directory",
		Long: `Resolve the current environment (the active workspace's adapter-reported
name), switch to its directory — cooking a matching recipe first if the
environment doesn't exist yet — and execute <cmd> there with ENWIRO_ENV
set to the resolved name.

Examples:
  enwiro wrap -- code .
  enwiro wrap -- git status`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrap(cmd, args)
		},
	}
	return cmd
}

func runWrap(cmd *cobra.Command, cmdArgs []string) error {
	w := output.NewWriter(cmd)
	cfg := loadConfigWarnOnError(w)
	store := envstore.New(cfg.WorkspacesDirectory)
	pipeline := listing.New(store, w)

	name := resolveActiveName("", cfg, w)

	workDir := os.Getenv("HOME")
	resolvedName := ""
	if name != "" {
		dir, ok, err := resolveOrCook(name, store, pipeline)
		if err != nil {
			w.Warn("could not resolve environment %q: %v\n", name, err)
		} else if ok {
			workDir = dir
			resolvedName = name
		}
	}

	binary, err := exec.LookPath(cmdArgs[0])
	if err != nil {
		return fmt.Errorf("command not found: %s", cmdArgs[0])
	}

	child := exec.Command(binary, cmdArgs[1:]...)
	child.Dir = workDir
	child.Env = append(plugin.StripEnwiroEnv(os.Environ()), "ENWIRO_ENV="+resolvedName)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for sig := range sigCh {
			if child.Process != nil {
				_ = child.Process.Signal(sig)
			}
		}
	}()
	defer signal.Stop(sigCh)

	if err := child.Run(); err != nil {
		var execExitErr *exec.ExitError
		if errors.As(err, &execExitErr) {
			return &exitError{code: execExitErr.ExitCode()}
		}
		return fmt.Errorf("running %s: %w", cmdArgs[0], err)
	}
	return nil
}
