package daemon

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/kantord/enwiro/internal/enwiroerr"
	"github.com/stretchr/testify/require"
)

func TestAcquirePIDFile_FreshCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, AcquirePIDFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	pid, err := strconv.Atoi(string(data))
	require.NoError(t, err)
	require.Equal(t, os.Getpid(), pid)
}

func TestAcquirePIDFile_AliveOwnerIsSingleton(t *testing.T) {
	// The owner is a live process whose argv carries the daemon marker:
	// sh's trailing argument becomes its $0, and the compound command
	// keeps sh itself running instead of exec'ing sleep.
	owner := exec.Command("sh", "-c", "sleep 30; exit 0", daemonArgvMarker)
	require.NoError(t, owner.Start())
	t.Cleanup(func() {
		_ = owner.Process.Kill()
		_ = owner.Wait()
	})
	ownerPID := owner.Process.Pid

	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(ownerPID)), 0o644))

	err := AcquirePIDFile(path)
	var singleton *enwiroerr.DaemonSingletonError
	require.True(t, errors.As(err, &singleton))
	require.Equal(t, ownerPID, singleton.PID)

	// The losing caller must not have touched the winner's pidfile.
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	require.Equal(t, strconv.Itoa(ownerPID), string(data))
}

func TestAcquirePIDFile_DeadOwnerIsReclaimed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	// PID 999999 is assumed not to belong to any live process.
	require.NoError(t, os.WriteFile(path, []byte("999999"), 0o644))

	err := AcquirePIDFile(path)
	require.NoError(t, err)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	require.Equal(t, strconv.Itoa(os.Getpid()), string(data))
}

func TestReleasePIDFile_RemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, AcquirePIDFile(path))
	ReleasePIDFile(path)

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestReleasePIDFile_MissingFileIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	ReleasePIDFile(path)
}
