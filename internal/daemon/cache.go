package daemon

import (
	"encoding/json"
	"os"
	"time"

	"github.com/kantord/enwiro/internal/atomicfile"
	"github.com/kantord/enwiro/internal/enwiroerr"
	"github.com/kantord/enwiro/internal/listing"
)

// freshnessWindow is how long a cache record is trusted before a reader
// treats it as stale and falls back to synchronous collection.
const freshnessWindow = 5*time.Minute + 30*time.Second

// CacheRecord is the serialized contents of recipes.cache: the instant
// it was written, and every cookbook's ordered recipe list alongside
// the priority it was collected under.
type CacheRecord struct {
	WrittenAt time.Time                `json:"written_at"`
	Cookbooks []listing.CookbookRecipes `json:"cookbooks"`
}

// Fresh reports whether this record is still within the freshness
// window relative to now.
func (c CacheRecord) Fresh(now time.Time) bool {
	return now.Sub(c.WrittenAt) < freshnessWindow
}

// writeCache serializes record to a temp file beside path and
// atomically renames it into place.
func writeCache(path string, record CacheRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return atomicfile.Write(path, data, 0o644)
}

// readCache reads and parses the cache file at path. A missing file or
// malformed contents is surfaced as an error; callers treat that the
// same as "no usable cache" and fall back to synchronous collection.
func readCache(path string) (CacheRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CacheRecord{}, enwiroerr.NewEnvIOError("read-cache", path, err)
	}
	var record CacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return CacheRecord{}, enwiroerr.NewMetadataParseError(path, err)
	}
	return record, nil
}

// touchHeartbeat creates or updates the mtime of the heartbeat file.
// Errors are intentionally ignored by callers: a failed touch must
// never fail a list-all invocation.
func touchHeartbeat(path string) error {
	now := time.Now()
	if err := os.Chtimes(path, now, now); err == nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// heartbeatAge returns how long ago the heartbeat file was last
// touched. A missing heartbeat file is reported as an effectively
// infinite age so the daemon shuts down rather than spin forever
// waiting for a heartbeat that will never come.
func heartbeatAge(path string, now time.Time) time.Duration {
	info, err := os.Stat(path)
	if err != nil {
		return time.Duration(1<<63 - 1)
	}
	return now.Sub(info.ModTime())
}
