package daemon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func withEnv(t *testing.T, key, value string) {
	old, had := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, value))
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func clearEnv(t *testing.T, key string) {
	old, had := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		}
	})
}

func TestRuntimeDir_PrefersXDGRuntimeDir(t *testing.T) {
	withEnv(t, "XDG_RUNTIME_DIR", "/run/user/1000")
	require.Equal(t, filepath.Join("/run/user/1000", "enwiro"), RuntimeDir())
}

func TestRuntimeDir_FallsBackToXDGCacheHome(t *testing.T) {
	clearEnv(t, "XDG_RUNTIME_DIR")
	withEnv(t, "XDG_CACHE_HOME", "/home/u/.cache")
	require.Equal(t, filepath.Join("/home/u/.cache", "enwiro", "run"), RuntimeDir())
}

func TestRuntimeDir_FallsBackToHome(t *testing.T) {
	clearEnv(t, "XDG_RUNTIME_DIR")
	clearEnv(t, "XDG_CACHE_HOME")
	withEnv(t, "HOME", "/home/u")
	require.Equal(t, filepath.Join("/home/u", ".cache", "enwiro", "run"), RuntimeDir())
}

func TestPaths_FileLocations(t *testing.T) {
	p := Paths{Dir: "/tmp/enwiro"}
	require.Equal(t, "/tmp/enwiro/daemon.pid", p.PIDFile())
	require.Equal(t, "/tmp/enwiro/recipes.cache", p.CacheFile())
	require.Equal(t, "/tmp/enwiro/heartbeat", p.HeartbeatFile())
}
