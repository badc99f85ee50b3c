package envstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidName(t *testing.T) {
	require.True(t, ValidName("myproject"))
	require.False(t, ValidName(""))
	require.False(t, ValidName("."))
	require.False(t, ValidName(".."))
	require.False(t, ValidName("a/b"))
}

func TestCreate_ThenResolve(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "workspaces"))

	require.NoError(t, s.Create("alpha", "/tmp/alpha-target", nil))

	target, ok, err := s.Resolve("alpha")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "/tmp/alpha-target", target)

	// Directory form: inner symlink basename equals the environment name.
	info, err := os.Lstat(filepath.Join(s.Dir, "alpha", "alpha"))
	require.NoError(t, err)
	require.True(t, info.Mode()&os.ModeSymlink != 0)
}

func TestCreate_Idempotent(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "workspaces"))

	require.NoError(t, s.Create("alpha", "/tmp/alpha-target", nil))
	require.NoError(t, s.Create("alpha", "/tmp/alpha-target", nil))

	target, ok, err := s.Resolve("alpha")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "/tmp/alpha-target", target)
}

func TestCreate_DifferentTargetOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "workspaces"))

	require.NoError(t, s.Create("alpha", "/tmp/first", nil))
	require.NoError(t, s.Create("alpha", "/tmp/second", nil))

	target, ok, err := s.Resolve("alpha")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "/tmp/second", target)
}

func TestCreate_WithCookbookRecordsMetadata(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "workspaces"))

	cookbook := "git"
	require.NoError(t, s.Create("alpha", "/tmp/alpha", &cookbook))

	stats := s.Load("alpha")
	require.NotNil(t, stats.Cookbook)
	require.Equal(t, "git", *stats.Cookbook)
}

func TestMigrationPreservesTarget(t *testing.T) {
	dir := t.TempDir()
	workspaces := filepath.Join(dir, "workspaces")
	require.NoError(t, os.MkdirAll(workspaces, 0o755))

	// Seed a legacy bare symlink.
	require.NoError(t, os.Symlink("/tmp/legacy-target", filepath.Join(workspaces, "alpha")))

	s := New(workspaces)
	require.True(t, s.Exists("alpha"))
	target, ok, err := s.Resolve("alpha")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "/tmp/legacy-target", target)

	// A metadata write should migrate to directory form, preserving target.
	require.NoError(t, s.RecordActivation("alpha"))

	info, err := os.Lstat(filepath.Join(workspaces, "alpha"))
	require.NoError(t, err)
	require.True(t, info.IsDir())

	innerTarget, err := os.Readlink(filepath.Join(workspaces, "alpha", "alpha"))
	require.NoError(t, err)
	require.Equal(t, "/tmp/legacy-target", innerTarget)
}

func TestList_SkipsUnrelatedEntries(t *testing.T) {
	dir := t.TempDir()
	workspaces := filepath.Join(dir, "workspaces")
	s := New(workspaces)
	require.NoError(t, s.Create("alpha", "/tmp/alpha", nil))
	require.NoError(t, os.MkdirAll(workspaces, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(workspaces, "not-an-env"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(workspaces, "empty-dir"), 0o755))

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "alpha", entries[0].Name)
}

func TestList_MissingWorkspacesDirYieldsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist"))
	entries, err := s.List()
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestExists_FalseForUnknownName(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "workspaces"))
	require.False(t, s.Exists("nope"))
}
