// Package enwiroerr defines the typed error kinds shared across enwiro's
// subsystems. Each kind carries enough context (role and plugin name,
// operation, path, or PID) to produce a useful message; the kinds that
// wrap an underlying cause expose it through Unwrap().
package enwiroerr

import "fmt"

// PluginInvocationError indicates a plugin subprocess failed to spawn or
// exited with a non-zero status.
type PluginInvocationError struct {
	Role   string // "cookbook", "adapter", or "bridge"
	Plugin string
	Err    error
}

func (e *PluginInvocationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Role, e.Plugin, e.Err)
}

func (e *PluginInvocationError) Unwrap() error { return e.Err }

// NewPluginInvocationError builds a PluginInvocationError.
func NewPluginInvocationError(role, plugin string, err error) *PluginInvocationError {
	return &PluginInvocationError{Role: role, Plugin: plugin, Err: err}
}

// PluginProtocolError indicates a plugin's output violated the expected
// protocol: invalid JSON, invalid UTF-8, an empty cook path, or a
// relative cook path.
type PluginProtocolError struct {
	Role   string
	Plugin string
	Reason string
}

func (e *PluginProtocolError) Error() string {
	return fmt.Sprintf("%s %q: protocol violation: %s", e.Role, e.Plugin, e.Reason)
}

// NewPluginProtocolError builds a PluginProtocolError.
func NewPluginProtocolError(role, plugin, reason string) *PluginProtocolError {
	return &PluginProtocolError{Role: role, Plugin: plugin, Reason: reason}
}

// EnvIOError indicates a filesystem operation failed. From the
// environment store these are fatal to the invoking command; the cache
// client also returns one for an unreadable recipes.cache, which its
// caller treats as "no usable cache".
type EnvIOError struct {
	Op   string
	Name string
	Err  error
}

func (e *EnvIOError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("environment store: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("environment store: %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *EnvIOError) Unwrap() error { return e.Err }

// NewEnvIOError builds an EnvIOError.
func NewEnvIOError(op, name string, err error) *EnvIOError {
	return &EnvIOError{Op: op, Name: name, Err: err}
}

// MetadataParseError indicates a JSON file enwiro manages was malformed.
// The cache client returns it for a malformed recipes.cache, which its
// caller treats as "no usable cache"; it never fails the invoking
// command. (The environment store treats malformed meta.json or
// usage-stats.json as absent without producing this error.)
type MetadataParseError struct {
	Path string
	Err  error
}

func (e *MetadataParseError) Error() string {
	return fmt.Sprintf("metadata %q: parse: %v", e.Path, e.Err)
}

func (e *MetadataParseError) Unwrap() error { return e.Err }

// NewMetadataParseError builds a MetadataParseError.
func NewMetadataParseError(path string, err error) *MetadataParseError {
	return &MetadataParseError{Path: path, Err: err}
}

// ConfigReadError indicates the config file exists but could not be read
// or parsed (a missing file is not an error). Callers fall back to
// defaults; this is never surfaced as a fatal error.
type ConfigReadError struct {
	Path string
	Err  error
}

func (e *ConfigReadError) Error() string {
	return fmt.Sprintf("config %q: %v", e.Path, e.Err)
}

func (e *ConfigReadError) Unwrap() error { return e.Err }

// NewConfigReadError builds a ConfigReadError.
func NewConfigReadError(path string, err error) *ConfigReadError {
	return &ConfigReadError{Path: path, Err: err}
}

// DaemonSingletonError indicates another live daemon already holds the
// pidfile. Observing this is normal (exit 0), not a failure.
type DaemonSingletonError struct {
	PID int
}

func (e *DaemonSingletonError) Error() string {
	return fmt.Sprintf("daemon already running (pid %d)", e.PID)
}

// NewDaemonSingletonError builds a DaemonSingletonError.
func NewDaemonSingletonError(pid int) *DaemonSingletonError {
	return &DaemonSingletonError{PID: pid}
}

// DaemonStaleError indicates the pidfile pointed at a process that is no
// longer alive, or at a live process not recognized as an enwiro daemon.
// Callers reclaim the pidfile and continue.
type DaemonStaleError struct {
	PID int
}

func (e *DaemonStaleError) Error() string {
	return fmt.Sprintf("pidfile pid %d is not a live enwiro daemon", e.PID)
}

// NewDaemonStaleError builds a DaemonStaleError.
func NewDaemonStaleError(pid int) *DaemonStaleError {
	return &DaemonStaleError{PID: pid}
}

// NotifierUnavailableError indicates the desktop notification bus could
// not be reached. Callers fall back to stderr.
type NotifierUnavailableError struct {
	Err error
}

func (e *NotifierUnavailableError) Error() string {
	return fmt.Sprintf("notifier unavailable: %v", e.Err)
}

func (e *NotifierUnavailableError) Unwrap() error { return e.Err }

// NewNotifierUnavailableError builds a NotifierUnavailableError.
func NewNotifierUnavailableError(err error) *NotifierUnavailableError {
	return &NotifierUnavailableError{Err: err}
}
