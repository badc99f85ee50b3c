package plugin

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/kantord/enwiro/internal/enwiroerr"
)

// Result holds the outcome of a successful plugin invocation: its
// stdout, decoded as a UTF-8 string.
type Result struct {
	Stdout string
}

// Run invokes the plugin executable at path with the given subcommand and
// arguments, waits for it to exit, and returns its decoded stdout.
//
// No stdin is provided. The child inherits the invoker's environment,
// except that ENWIRO_ENV is always stripped so a plugin never observes
// the resolved environment of whatever wrapped it.
//
// A non-zero exit code fails the call, surfacing stderr (trimmed) as the
// error message. Invalid UTF-8 on stdout also fails the call. No timeout
// is imposed here; callers that need one wrap Run in their own context.
func Run(role Role, shortName, path, subcommand string, args ...string) (*Result, error) {
	cmdArgs := append([]string{subcommand}, args...)
	cmd := exec.Command(path, cmdArgs...) //nolint:gosec // path comes from filesystem-verified plugin discovery

	cmd.Env = StripEnwiroEnv(os.Environ())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, enwiroerr.NewPluginInvocationError(string(role), shortName, fmt.Errorf("%s", msg))
	}

	out := stdout.Bytes()
	if !utf8.Valid(out) {
		return nil, enwiroerr.NewPluginProtocolError(string(role), shortName, "stdout is not valid UTF-8")
	}

	return &Result{Stdout: string(out)}, nil
}

// StripEnwiroEnv returns a copy of environ with any ENWIRO_ENV entry
// removed, so a subprocess never inherits a stale or outer value —
// used both for plugin invocations and for the command launched by wrap.
func StripEnwiroEnv(environ []string) []string {
	out := make([]string, 0, len(environ))
	for _, kv := range environ {
		if strings.HasPrefix(kv, "ENWIRO_ENV=") {
			continue
		}
		out = append(out, kv)
	}
	return out
}
