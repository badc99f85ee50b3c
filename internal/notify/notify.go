// Package notify sends desktop notifications for successful and failed
// operations, falling back to standard error whenever the notification
// bus cannot be reached.
package notify

import (
	"fmt"
	"io"

	"github.com/godbus/dbus/v5"
	"github.com/kantord/enwiro/internal/enwiroerr"
)

// appName identifies enwiro to the notification server.
const appName = "enwiro"

// iconSuccess and iconError are freedesktop icon theme names; servers
// that don't recognize them simply show no icon.
const (
	iconSuccess = "dialog-information"
	iconError   = "dialog-error"
)

// Notifier sends user-facing success/error notifications.
type Notifier interface {
	NotifySuccess(title, body string)
	NotifyError(title, body string)
}

// DBusNotifier sends notifications over the session bus to
// org.freedesktop.Notifications. On any send failure it writes the
// message to Stderr instead and continues — a missing notification
// daemon must never fail the calling command.
type DBusNotifier struct {
	Stderr io.Writer
}

// NewDBusNotifier creates a DBusNotifier that falls back to stderr.
func NewDBusNotifier(stderr io.Writer) *DBusNotifier {
	return &DBusNotifier{Stderr: stderr}
}

func (n *DBusNotifier) NotifySuccess(title, body string) {
	n.send(title, body, iconSuccess)
}

func (n *DBusNotifier) NotifyError(title, body string) {
	n.send(title, body, iconError)
}

func (n *DBusNotifier) send(title, body, icon string) {
	if err := n.sendViaBus(title, body, icon); err != nil {
		fmt.Fprintf(n.Stderr, "%s: %s\n", title, body)
	}
}

func (n *DBusNotifier) sendViaBus(title, body, icon string) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return enwiroerr.NewNotifierUnavailableError(err)
	}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		appName,          // app_name
		uint32(0),        // replaces_id
		icon,             // app_icon
		title,            // summary
		body,             // body
		[]string{},       // actions
		map[string]dbus.Variant{}, // hints
		int32(5000),      // expire_timeout (ms)
	)
	if call.Err != nil {
		return enwiroerr.NewNotifierUnavailableError(call.Err)
	}
	return nil
}

// RecordingNotifier is an in-memory Notifier double for tests.
type RecordingNotifier struct {
	Successes []Notification
	Errors    []Notification
}

// Notification is one captured notify call.
type Notification struct {
	Title string
	Body  string
}

func (n *RecordingNotifier) NotifySuccess(title, body string) {
	n.Successes = append(n.Successes, Notification{Title: title, Body: body})
}

func (n *RecordingNotifier) NotifyError(title, body string) {
	n.Errors = append(n.Errors, Notification{Title: title, Body: body})
}
