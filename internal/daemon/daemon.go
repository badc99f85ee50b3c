package daemon

import (
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/kantord/enwiro/internal/listing"
)

const (
	tickInterval        = 60 * time.Second
	refreshInterval     = 5 * time.Minute
	idleShutdownTimeout = 1 * time.Hour
)

// Logger receives the daemon's operational log lines.
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// Daemon runs the main loop: it owns the pidfile, refreshes
// recipes.cache on a timer, and shuts down cleanly either on signal or
// after the heartbeat goes stale for over an hour.
type Daemon struct {
	Paths    Paths
	Pipeline *listing.Pipeline
	Logger   Logger

	// RefreshInterval and IdleTimeout override the defaults above; both
	// fall back to the constants when zero, letting the configured
	// refresh_interval_seconds/daemon_idle_timeout_seconds values flow
	// through without the daemon itself depending on the config package.
	RefreshInterval time.Duration
	IdleTimeout     time.Duration

	// Watch, when non-nil, is invoked once at startup to install a
	// reactive refresh trigger (see watch.go). It returns a channel that
	// fires whenever an immediate refresh should run, and a stop function
	// that tears watching down (the channel itself is never closed). A
	// nil Watch degrades silently to tick-only refresh; a failing one
	// logs a warning and does the same.
	Watch func() (<-chan struct{}, func(), error)

	now func() time.Time
}

// Run performs the full startup protocol and then blocks in the main
// loop until shutdown is triggered by signal or by heartbeat staleness.
// Once it holds the pidfile, it unlinks it before returning, on every
// exit path; a run that fails to acquire it leaves the file untouched.
func (d *Daemon) Run() error {
	if d.now == nil {
		d.now = time.Now
	}
	refreshEvery := d.RefreshInterval
	if refreshEvery <= 0 {
		refreshEvery = refreshInterval
	}
	idleAfter := d.IdleTimeout
	if idleAfter <= 0 {
		idleAfter = idleShutdownTimeout
	}

	if err := d.Paths.ensureDir(); err != nil {
		return err
	}
	if err := AcquirePIDFile(d.Paths.PIDFile()); err != nil {
		// A live sibling daemon (or an unrecognized failure) both exit
		// without touching the pidfile we didn't create.
		return err
	}
	defer ReleasePIDFile(d.Paths.PIDFile())

	// A fresh heartbeat at startup means a daemon that never receives a
	// single list-all call still lives out its full idle timeout instead
	// of exiting immediately on the first tick.
	_ = touchHeartbeat(d.Paths.HeartbeatFile())

	sigCh := make(chan os.Signal, 1)
	installSignalHandlers(sigCh)

	var reactive <-chan struct{}
	var stopWatch func()
	if d.Watch != nil {
		ch, stop, err := d.Watch()
		if err != nil {
			d.Logger.Warn("daemon: watch setup failed, degrading to tick-only refresh: %v\n", err)
		} else {
			reactive = ch
			stopWatch = stop
		}
	}
	if stopWatch != nil {
		defer stopWatch()
	}

	d.refresh()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	lastRefresh := d.now()

	for {
		select {
		case <-sigCh:
			d.Logger.Info("daemon: signal received, shutting down\n")
			return nil

		case <-reactive:
			d.Logger.Info("daemon: plugin directory changed, refreshing\n")
			d.refresh()
			lastRefresh = d.now()

		case <-ticker.C:
			now := d.now()
			if now.Sub(d.lastHeartbeat()) > idleAfter {
				d.Logger.Info("daemon: idle timeout reached, shutting down\n")
				return nil
			}
			if now.Sub(lastRefresh) >= refreshEvery {
				d.refresh()
				lastRefresh = now
			}
		}
	}
}

// lastHeartbeat reports when the heartbeat file was last touched.
func (d *Daemon) lastHeartbeat() time.Time {
	info, err := os.Stat(d.Paths.HeartbeatFile())
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// refresh collects fresh recipes from every cookbook and atomically
// rewrites recipes.cache. A failed refresh leaves the existing cache
// file untouched.
func (d *Daemon) refresh() {
	groups, err := d.Pipeline.CollectCookbookRecipes()
	if err != nil {
		d.Logger.Warn("daemon: refresh failed: %v\n", err)
		return
	}
	record := CacheRecord{WrittenAt: d.now(), Cookbooks: groups}
	if err := writeCache(d.Paths.CacheFile(), record); err != nil {
		d.Logger.Warn("daemon: cache write failed: %v\n", err)
	}
}

// SpawnDetached starts the current executable with the hidden "daemon"
// subcommand as a detached background process: new session, stdio
// redirected away from the caller's terminal. A failure here is never
// fatal to the caller — list-all simply falls back to a synchronous
// collection.
func SpawnDetached() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	cmd := exec.Command(exe, "daemon")
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
