// Package plugin implements discovery and invocation of enwiro's
// out-of-process helper programs: cookbooks, adapters, and bridges.
//
// # Discovery
//
// Plugins are found by filename convention on the executable search path
// (plus the invoker's own directory): "enwiro-cookbook-<name>",
// "enwiro-adapter-<name>", "enwiro-bridge-<name>". The remainder of the
// filename after the role prefix is the plugin's short name.
//
// # Protocol
//
// Every plugin invocation is a blocking subprocess call: a subcommand and
// arguments in, UTF-8 stdout/stderr out, exit code checked. No stdin is
// ever provided. See Run for details.
package plugin

import (
	"os"
	"path/filepath"
	"strings"
)

// Role identifies which family of plugin is being discovered or invoked.
type Role string

const (
	RoleCookbook Role = "cookbook"
	RoleAdapter  Role = "adapter"
	RoleBridge   Role = "bridge"
)

// prefix returns the filename prefix for the given role.
func (r Role) prefix() string {
	return "enwiro-" + string(r) + "-"
}

// Descriptor identifies one discovered plugin executable.
type Descriptor struct {
	Role      Role
	ShortName string
	Path      string // absolute path to the executable
}

// Discover scans the executable search path ($PATH) plus the directory
// containing the current executable for files matching any of the three
// role prefixes. It returns only regular files (following symlinks) that
// are executable by the current user.
//
// Candidate directories are deduplicated, preserving the order of first
// occurrence. Within a directory, a prefixed file becomes a Descriptor
// keyed by (role, short name); if the same short name is found in more
// than one directory, the earlier directory wins.
//
// Non-directories and permission errors on intermediate paths are never
// fatal: they are silently skipped so a single broken PATH entry cannot
// prevent discovery of plugins elsewhere.
func Discover() ([]Descriptor, error) {
	dirs := candidateDirs()

	// seen tracks (role, shortName) -> true once a winning directory has
	// been recorded, so earlier directories take priority.
	seen := make(map[Role]map[string]bool)
	for _, r := range []Role{RoleCookbook, RoleAdapter, RoleBridge} {
		seen[r] = make(map[string]bool)
	}

	var out []Descriptor
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			// Missing directory or permission error: skip, never fail.
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			for _, r := range []Role{RoleCookbook, RoleAdapter, RoleBridge} {
				pfx := r.prefix()
				if !strings.HasPrefix(name, pfx) {
					continue
				}
				shortName := strings.TrimPrefix(name, pfx)
				if shortName == "" || seen[r][shortName] {
					continue
				}
				full := filepath.Join(dir, name)
				if !isExecutableRegularFile(full) {
					continue
				}
				seen[r][shortName] = true
				out = append(out, Descriptor{Role: r, ShortName: shortName, Path: full})
			}
		}
	}
	return out, nil
}

// ByRole groups Discover's result by role, keyed by short name.
func ByRole(descs []Descriptor) map[Role]map[string]string {
	out := map[Role]map[string]string{
		RoleCookbook: {},
		RoleAdapter:  {},
		RoleBridge:   {},
	}
	for _, d := range descs {
		out[d.Role][d.ShortName] = d.Path
	}
	return out
}

// candidateDirs returns every element of $PATH plus the directory
// containing the current executable, deduplicated, preserving order of
// first occurrence.
func candidateDirs() []string {
	var dirs []string
	seen := make(map[string]bool)

	add := func(d string) {
		if d == "" || seen[d] {
			return
		}
		seen[d] = true
		dirs = append(dirs, d)
	}

	for _, d := range filepath.SplitList(os.Getenv("PATH")) {
		add(d)
	}

	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			add(filepath.Dir(resolved))
		} else {
			add(filepath.Dir(exe))
		}
	}

	return dirs
}

// isExecutableRegularFile reports whether path is a regular file
// (symlinks followed) executable by the current user.
func isExecutableRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !info.Mode().IsRegular() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
