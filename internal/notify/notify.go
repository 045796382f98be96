// Package notify provides cross-platform desktop notifications via beeep.
// Notifications are fire-and-forget: grove's commands keep working when the
// platform notification system is unavailable.
package notify

import (
	"github.com/gen2brain/beeep"

	"github.com/zhubert/grove/internal/logger"
)

// notifierFunc matches beeep.Notify so tests can swap in a recorder.
type notifierFunc func(title, message string, icon any) error

var notifier notifierFunc = beeep.Notify

// SetNotifier replaces the notification backend. For testing.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores the beeep backend.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send delivers a desktop notification. Failures are logged and returned;
// callers on best-effort paths may ignore the error.
func Send(title, message string) error {
	logger.Debug("Notify: sending title=%q message=%q", title, message)
	err := notifier(title, message, "")
	if err != nil {
		logger.Warn("Notify: failed to send notification: %v", err)
	}
	return err
}

// SessionEnded announces that a worktree session finished.
func SessionEnded(label string) error {
	return Send("Grove", "Session "+label+" ended")
}
