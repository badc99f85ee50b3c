package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDBusNotifier_FallsBackToStderrWhenBusUnavailable(t *testing.T) {
	var buf bytes.Buffer
	n := NewDBusNotifier(&buf)

	// In a headless test environment there is no session bus, so this
	// must fall back to stderr rather than panic or block.
	n.NotifySuccess("Enwiro", "daemon started")

	require.Contains(t, buf.String(), "Enwiro")
	require.Contains(t, buf.String(), "daemon started")
}

func TestRecordingNotifier_CapturesCalls(t *testing.T) {
	n := &RecordingNotifier{}
	n.NotifySuccess("ok", "activated alpha")
	n.NotifyError("failed", "cook failed")

	require.Len(t, n.Successes, 1)
	require.Equal(t, "alpha", n.Successes[0].Body[len(n.Successes[0].Body)-5:])
	require.Len(t, n.Errors, 1)
	require.Equal(t, "failed", n.Errors[0].Title)
}
