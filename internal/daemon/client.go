package daemon

import (
	"os"
	"time"

	"github.com/kantord/enwiro/internal/listing"
)

// Notifier is the subset of internal/notify's interface the cache
// client needs for the one-time "daemon started" announcement.
type Notifier interface {
	NotifySuccess(title, body string)
}

// Client implements list_all_fast_path: a cache read gated by
// freshness, an attempt to ensure a daemon is running, and a
// synchronous fallback when the cache cannot be trusted.
type Client struct {
	Paths    Paths
	Pipeline *listing.Pipeline
	Notifier Notifier
	Logger   Logger

	now   func() time.Time
	spawn func() error
}

// NewClient builds a Client for the given runtime paths and listing
// pipeline.
func NewClient(paths Paths, pipeline *listing.Pipeline, notifier Notifier, logger Logger) *Client {
	return &Client{Paths: paths, Pipeline: pipeline, Notifier: notifier, Logger: logger, now: time.Now, spawn: SpawnDetached}
}

// ListAll performs the fast path: read the cache if fresh, otherwise
// ensure a daemon is spawned for next time and fall back to a
// synchronous listing-pipeline collection for this call.
func (c *Client) ListAll() ([]listing.Item, error) {
	if c.now == nil {
		c.now = time.Now
	}

	_ = touchHeartbeat(c.Paths.HeartbeatFile())
	record, err := readCache(c.Paths.CacheFile())
	_ = touchHeartbeat(c.Paths.HeartbeatFile())

	envSummaries, envErr := c.Pipeline.ListEnvironments()
	if envErr != nil {
		return nil, envErr
	}

	if err == nil && record.Fresh(c.now()) {
		return listing.BuildItems(envSummaries, record.Cookbooks), nil
	}

	c.ensureDaemonRunning()

	groups, err := c.Pipeline.CollectCookbookRecipes()
	if err != nil {
		return nil, err
	}
	return listing.BuildItems(envSummaries, groups), nil
}

// ensureDaemonRunning spawns a detached daemon if one does not already
// appear to own the pidfile. A spawn failure is logged and otherwise
// ignored — the caller has already fallen back to synchronous
// collection for this invocation.
func (c *Client) ensureDaemonRunning() {
	if _, err := os.Stat(c.Paths.PIDFile()); err == nil {
		return
	}
	if c.spawn == nil {
		c.spawn = SpawnDetached
	}

	if err := c.spawn(); err != nil {
		c.Logger.Warn("could not start cache daemon: %v\n", err)
		return
	}

	c.maybeNotifyFirstSpawn()
}

// maybeNotifyFirstSpawn sends the "Enwiro daemon started" notification
// exactly once per user account, gated by a sentinel file in the
// runtime directory.
func (c *Client) maybeNotifyFirstSpawn() {
	sentinel := c.Paths.SentinelFile()
	if _, err := os.Stat(sentinel); err == nil {
		return
	}

	if c.Notifier != nil {
		c.Notifier.NotifySuccess("Enwiro", "Enwiro daemon started")
	}

	f, err := os.OpenFile(sentinel, os.O_CREATE|os.O_WRONLY, 0o644)
	if err == nil {
		f.Close()
	}
}
