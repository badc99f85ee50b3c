// Package envstore manages the on-disk representation of environments: a
// workspaces directory containing, per environment, either the modern
// directory form (a directory holding a name-matched symlink plus
// meta.json) or the legacy bare-symlink form. It also manages
// per-environment metadata (activation count, last-activated instant,
// origin cookbook, description) and the frecency score used to order
// environments for listing.
package envstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kantord/enwiro/internal/enwiroerr"
)

// Store manages the environment directory layout rooted at Dir.
type Store struct {
	Dir string // workspaces_directory
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Entry describes one discovered environment.
type Entry struct {
	Name   string
	Target string // absolute path the environment's symlink resolves to
}

// ValidName reports whether name is usable as an environment name: it
// must be non-empty, contain no path separators, and not be "." or "..".
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return name == filepath.Base(name)
}

// List iterates the workspaces directory and returns every entry that
// resolves to a valid environment, in the order returned by the
// filesystem (callers needing frecency order use the listing pipeline).
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, enwiroerr.NewEnvIOError("list", "", err)
	}

	var out []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if !ValidName(name) {
			continue
		}
		target, ok, err := s.resolveEntry(name, de)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, Entry{Name: name, Target: target})
		}
	}
	return out, nil
}

// Resolve returns the working-directory target for name, if it exists as
// an environment (directory or legacy form).
func (s *Store) Resolve(name string) (target string, ok bool, err error) {
	if !ValidName(name) {
		return "", false, nil
	}
	path := filepath.Join(s.Dir, name)
	info, statErr := os.Lstat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return "", false, nil
		}
		return "", false, enwiroerr.NewEnvIOError("stat", name, statErr)
	}
	de := fileInfoDirEntry{info}
	return s.resolveEntry(name, de)
}

// Exists reports whether name names an existing environment.
func (s *Store) Exists(name string) bool {
	_, ok, _ := s.Resolve(name)
	return ok
}

// resolveEntry inspects workspaces_directory/<name> and determines
// whether it is a directory-form environment (a directory containing an
// inner symlink named <name>) or a legacy bare symlink. Anything else is
// not an environment.
func (s *Store) resolveEntry(name string, de dirEntryLike) (target string, ok bool, err error) {
	path := filepath.Join(s.Dir, name)

	if de.Type()&os.ModeSymlink != 0 {
		// Legacy form: workspaces_directory/<name> is itself a symlink.
		t, err := os.Readlink(path)
		if err != nil {
			return "", false, enwiroerr.NewEnvIOError("readlink", name, err)
		}
		return t, true, nil
	}

	if de.IsDir() {
		inner := filepath.Join(path, name)
		info, err := os.Lstat(inner)
		if err != nil {
			if os.IsNotExist(err) {
				return "", false, nil
			}
			return "", false, enwiroerr.NewEnvIOError("stat", name, err)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return "", false, nil
		}
		t, err := os.Readlink(inner)
		if err != nil {
			return "", false, enwiroerr.NewEnvIOError("readlink", name, err)
		}
		return t, true, nil
	}

	return "", false, nil
}

// dirEntryLike is the subset of os.DirEntry's behavior resolveEntry
// needs, so it can be driven either by os.ReadDir results or by a
// synthetic entry built from os.Lstat (see fileInfoDirEntry).
type dirEntryLike interface {
	IsDir() bool
	Type() os.FileMode
}

// fileInfoDirEntry adapts os.FileInfo (from os.Lstat) to dirEntryLike.
type fileInfoDirEntry struct{ os.FileInfo }

func (f fileInfoDirEntry) Type() os.FileMode { return f.Mode().Type() }

// Create materializes an environment named name pointing at target,
// optionally recording the origin cookbook in its metadata. It is
// idempotent: calling it again with the same (name, target) is a no-op
// after the first; calling it with a different target overwrites the
// inner symlink. A pre-existing legacy bare symlink is migrated to the
// directory form in place, preserving its target unless target differs.
func (s *Store) Create(name, target string, cookbook *string) error {
	if !ValidName(name) {
		return enwiroerr.NewEnvIOError("create", name, fmt.Errorf("invalid environment name"))
	}

	path := filepath.Join(s.Dir, name)

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return enwiroerr.NewEnvIOError("create", name, err)
	}

	info, statErr := os.Lstat(path)
	switch {
	case statErr == nil && info.Mode()&os.ModeSymlink != 0:
		// Legacy bare symlink: migrate to directory form, same target
		// unless the caller is overwriting it.
		if err := s.migrateLegacy(name, target); err != nil {
			return err
		}
	case statErr == nil && info.IsDir():
		if err := s.writeInnerSymlink(name, target); err != nil {
			return err
		}
	case statErr != nil && os.IsNotExist(statErr):
		if err := os.Mkdir(path, 0o755); err != nil {
			return enwiroerr.NewEnvIOError("create", name, err)
		}
		if err := s.writeInnerSymlink(name, target); err != nil {
			return err
		}
	case statErr != nil:
		return enwiroerr.NewEnvIOError("create", name, statErr)
	default:
		return enwiroerr.NewEnvIOError("create", name, fmt.Errorf("unexpected entry type at %s", path))
	}

	if cookbook != nil {
		// Metadata write failures are non-fatal: the environment itself
		// has already been created successfully.
		_ = s.RecordCookMetadata(name, *cookbook, nil)
	}

	return nil
}

// migrateLegacy converts a legacy bare symlink at workspaces_directory/<name>
// into the directory form, preserving the symlink's target unless the
// caller passed a different one.
func (s *Store) migrateLegacy(name, target string) error {
	path := filepath.Join(s.Dir, name)
	existingTarget, err := os.Readlink(path)
	if err != nil {
		return enwiroerr.NewEnvIOError("migrate", name, err)
	}

	finalTarget := existingTarget
	if target != "" {
		finalTarget = target
	}

	tmpDir := path + ".enwiro-migrate-tmp"
	os.RemoveAll(tmpDir)
	if err := os.Mkdir(tmpDir, 0o755); err != nil {
		return enwiroerr.NewEnvIOError("migrate", name, err)
	}
	if err := os.Symlink(finalTarget, filepath.Join(tmpDir, name)); err != nil {
		os.RemoveAll(tmpDir)
		return enwiroerr.NewEnvIOError("migrate", name, err)
	}

	if err := os.Remove(path); err != nil {
		os.RemoveAll(tmpDir)
		return enwiroerr.NewEnvIOError("migrate", name, err)
	}
	if err := os.Rename(tmpDir, path); err != nil {
		return enwiroerr.NewEnvIOError("migrate", name, err)
	}

	return nil
}

// writeInnerSymlink (re)creates workspaces_directory/<name>/<name>
// pointing at target. It is a no-op if the symlink already points there.
func (s *Store) writeInnerSymlink(name, target string) error {
	inner := filepath.Join(s.Dir, name, name)

	if existing, err := os.Readlink(inner); err == nil {
		if existing == target || target == "" {
			return nil
		}
	}

	if target == "" {
		return nil
	}

	tmp := inner + ".enwiro-tmp"
	os.Remove(tmp)
	if err := os.Symlink(target, tmp); err != nil {
		return enwiroerr.NewEnvIOError("create", name, err)
	}
	if err := os.Rename(tmp, inner); err != nil {
		os.Remove(tmp)
		return enwiroerr.NewEnvIOError("create", name, err)
	}
	return nil
}
