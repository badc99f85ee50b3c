// Package daemon implements the background recipe-cache daemon and the
// client logic that talks to it: PID-file singleton election, periodic
// refresh, heartbeat-driven idle shutdown, atomic cache writes, and a
// staleness-bounded fast read path with synchronous fallback.
package daemon

import (
	"os"
	"path/filepath"
)

const (
	pidFileName       = "daemon.pid"
	cacheFileName     = "recipes.cache"
	heartbeatFileName = "heartbeat"
	sentinelFileName  = "daemon-started-notified"
)

// RuntimeDir returns the directory enwiro's runtime files live in:
// $XDG_RUNTIME_DIR/enwiro if set, else $XDG_CACHE_HOME/enwiro/run, else
// $HOME/.cache/enwiro/run.
func RuntimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "enwiro")
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "enwiro", "run")
	}
	return filepath.Join(os.Getenv("HOME"), ".cache", "enwiro", "run")
}

// Paths bundles the runtime file locations so they can be overridden in
// tests without touching environment variables process-wide.
type Paths struct {
	Dir string
}

// DefaultPaths returns Paths rooted at RuntimeDir().
func DefaultPaths() Paths {
	return Paths{Dir: RuntimeDir()}
}

func (p Paths) PIDFile() string       { return filepath.Join(p.Dir, pidFileName) }
func (p Paths) CacheFile() string     { return filepath.Join(p.Dir, cacheFileName) }
func (p Paths) HeartbeatFile() string { return filepath.Join(p.Dir, heartbeatFileName) }
func (p Paths) SentinelFile() string  { return filepath.Join(p.Dir, sentinelFileName) }

func (p Paths) ensureDir() error {
	return os.MkdirAll(p.Dir, 0o755)
}
