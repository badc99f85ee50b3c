package cli

import (
	"fmt"

	"github.com/kantord/enwiro/internal/adapter"
	"github.com/kantord/enwiro/internal/config"
	"github.com/kantord/enwiro/internal/notify"
	"github.com/kantord/enwiro/internal/output"
	"github.com/kantord/enwiro/internal/plugin"
)

// loadConfigWarnOnError loads the config, falling back to defaults and
// logging a warning if the file exists but could not be parsed. A
// missing config file is not warned about — it is the expected steady
// state for a user who hasn't written one yet.
func loadConfigWarnOnError(w *output.Writer) config.Config {
	cfg, err := config.Load()
	if err != nil {
		w.Warn("%v; using defaults\n", err)
	}
	return cfg
}

// newNotifier builds the desktop notifier used by activate and the
// cache client's first-spawn announcement.
func newNotifier(w *output.Writer) notify.Notifier {
	return notify.NewDBusNotifier(w.Stderr())
}

// findAdapter locates the adapter plugin named by cfg.Adapter among
// discovered plugins.
func findAdapter(cfg config.Config) (*adapter.Client, error) {
	if cfg.Adapter == "" {
		return nil, fmt.Errorf("no adapter configured (set \"adapter\" in %s)", config.Path())
	}

	descs, err := plugin.Discover()
	if err != nil {
		return nil, err
	}
	for _, d := range descs {
		if d.Role == plugin.RoleAdapter && d.ShortName == cfg.Adapter {
			return adapter.New(d.ShortName, d.Path), nil
		}
	}
	return nil, fmt.Errorf("adapter %q not found on PATH (expected enwiro-adapter-%s)", cfg.Adapter, cfg.Adapter)
}

// resolveActiveName determines the current environment name: an
// explicit override (a name typed by the user) beats asking the
// configured adapter for the active workspace. Either source failing
// or being absent resolves to "".
func resolveActiveName(explicit string, cfg config.Config, w *output.Writer) string {
	if explicit != "" {
		return explicit
	}

	client, err := findAdapter(cfg)
	if err != nil {
		return ""
	}
	name, err := client.ActiveEnvironmentName()
	if err != nil {
		w.Verbose("adapter get-active failed: %v\n", err)
		return ""
	}
	return name
}

// orNone renders an empty string as "(none)" for human-readable dumps.
func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
