package envstore

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/kantord/enwiro/internal/atomicfile"
)

// metaFileName is the per-environment metadata file, colocated with the
// environment's inner symlink.
const metaFileName = "meta.json"

// legacyStatsFileName holds pre-migration per-environment statistics for
// every environment, keyed by name.
const legacyStatsFileName = "usage-stats.json"

// halfLife is the frecency decay half-life.
const halfLife = 30 * 24 * time.Hour

// Stats is the per-environment metadata record.
type Stats struct {
	ActivationCount int        `json:"activation_count"`
	LastActivatedAt *time.Time `json:"last_activated_at"`
	Cookbook        *string    `json:"cookbook"`
	Description     *string    `json:"description"`
}

// statsJSON is the on-disk shape: last_activated_at is stored as seconds
// since the Unix epoch (or null).
type statsJSON struct {
	ActivationCount int     `json:"activation_count"`
	LastActivatedAt *int64  `json:"last_activated_at"`
	Cookbook        *string `json:"cookbook"`
	Description     *string `json:"description"`
}

func (s Stats) toJSON() statsJSON {
	out := statsJSON{
		ActivationCount: s.ActivationCount,
		Cookbook:        s.Cookbook,
		Description:     s.Description,
	}
	if s.LastActivatedAt != nil {
		ts := s.LastActivatedAt.Unix()
		out.LastActivatedAt = &ts
	}
	return out
}

func (j statsJSON) toStats() Stats {
	out := Stats{
		ActivationCount: j.ActivationCount,
		Cookbook:        j.Cookbook,
		Description:     j.Description,
	}
	if j.LastActivatedAt != nil {
		t := time.Unix(*j.LastActivatedAt, 0).UTC()
		out.LastActivatedAt = &t
	}
	return out
}

// metaPath returns the path to workspaces_directory/<name>/meta.json.
func (s *Store) metaPath(name string) string {
	return filepath.Join(s.Dir, name, metaFileName)
}

// Load reads per-environment statistics. If meta.json is absent, it falls
// back to the legacy centralized usage-stats.json. If that too has no
// entry, zero-value Stats are returned. Malformed JSON is treated as
// absent (never fails the caller); this includes malformed legacy
// entries.
func (s *Store) Load(name string) Stats {
	path := s.metaPath(name)
	data, err := os.ReadFile(path)
	if err == nil {
		var j statsJSON
		if jsonErr := json.Unmarshal(data, &j); jsonErr == nil {
			return j.toStats()
		}
		// Malformed meta.json: treat as absent.
		return Stats{}
	}

	return s.loadLegacy(name)
}

// loadLegacy reads name's entry from the centralized legacy stats file.
// Returns zero-value Stats if the file, or the entry within it, is
// missing or malformed.
func (s *Store) loadLegacy(name string) Stats {
	data, err := os.ReadFile(filepath.Join(s.Dir, legacyStatsFileName))
	if err != nil {
		return Stats{}
	}

	var all map[string]statsJSON
	if err := json.Unmarshal(data, &all); err != nil {
		return Stats{}
	}

	j, ok := all[name]
	if !ok {
		return Stats{}
	}
	return j.toStats()
}

// save writes stats for name atomically, migrating a legacy bare symlink
// to the directory form first if needed.
func (s *Store) save(name string, stats Stats) error {
	if err := s.ensureDirForm(name); err != nil {
		return err
	}

	data, err := json.MarshalIndent(stats.toJSON(), "", "  ")
	if err != nil {
		return err
	}
	return atomicfile.Write(s.metaPath(name), data, 0o644)
}

// ensureDirForm migrates a legacy bare symlink to the directory form so
// meta.json has somewhere to live. It is a no-op if the entry is already
// in directory form, and an error if the environment does not exist.
func (s *Store) ensureDirForm(name string) error {
	path := filepath.Join(s.Dir, name)
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return s.migrateLegacy(name, "")
	}
	return nil
}

// RecordActivation increments activation_count and sets last_activated_at
// to now, writing the result atomically. Write failures are the caller's
// business to treat as non-fatal (the activation itself has already
// happened via the adapter).
func (s *Store) RecordActivation(name string) error {
	stats := s.Load(name)
	stats.ActivationCount++
	now := time.Now().UTC()
	stats.LastActivatedAt = &now
	return s.save(name, stats)
}

// RecordCookMetadata merges cookbook and description into the existing
// record, never overwriting a non-empty description with nil, and writes
// the result atomically.
func (s *Store) RecordCookMetadata(name, cookbook string, description *string) error {
	stats := s.Load(name)
	if cookbook != "" {
		stats.Cookbook = &cookbook
	}
	if description != nil && *description != "" {
		stats.Description = description
	}
	return s.save(name, stats)
}

// FrecencyScore computes activation_count * decay(now - last_activated_at),
// where decay(Δt) = 2^(-Δt/halfLife). Environments with no
// last_activated_at score 0.
func FrecencyScore(stats Stats, now time.Time) float64 {
	if stats.LastActivatedAt == nil {
		return 0
	}
	delta := now.Sub(*stats.LastActivatedAt)
	if delta < 0 {
		delta = 0
	}
	decay := math.Pow(2, -delta.Hours()/halfLife.Hours())
	return float64(stats.ActivationCount) * decay
}
