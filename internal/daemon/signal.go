package daemon

import (
	"os"
	"os/signal"
	"syscall"
)

// installSignalHandlers arranges for interrupt, terminate, and hangup to
// be delivered on ch, triggering the daemon's clean shutdown path.
func installSignalHandlers(ch chan os.Signal) {
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
}
