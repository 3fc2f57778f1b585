// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package timectrl

import "log/slog"

// Notifier receives user-facing state change notices. The core calls
// it synchronously from entry points; implementations render overlays,
// chat messages, or log lines and must not call back into the
// controller.
//
// origin is the participant whose action caused the change, or empty
// for local/context-driven changes.
type Notifier interface {
	// SpeedChanged fires when the tick interval setting changes.
	SpeedChanged(newInterval int, origin ParticipantID)

	// FreezeToggled fires when the effective freeze decision changes
	// because of a toggle. message is a short human-readable summary.
	FreezeToggled(frozen bool, origin ParticipantID, message string)

	// AccessDenied fires on the requester when a remote request is
	// rejected or the authority lacks the required capability.
	AccessDenied(reason string)

	// LocationChanged fires after a zone change has been applied,
	// with the resulting freeze decision, interval, and auto reason.
	LocationChanged(frozen bool, interval int, reason AutoFreezeReason)

	// ConfigReloaded fires after a policy reload has been applied.
	ConfigReloaded()
}

// NopNotifier discards all notices.
type NopNotifier struct{}

func (NopNotifier) SpeedChanged(int, ParticipantID)                {}
func (NopNotifier) FreezeToggled(bool, ParticipantID, string)      {}
func (NopNotifier) AccessDenied(string)                            {}
func (NopNotifier) LocationChanged(bool, int, AutoFreezeReason)    {}
func (NopNotifier) ConfigReloaded()                                {}

// SlogNotifier renders every notice as a structured log line. The
// demo binary uses it in place of a real overlay.
type SlogNotifier struct {
	// Logger receives the notices. If nil, slog.Default() is used.
	Logger *slog.Logger
}

func (n SlogNotifier) logger() *slog.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return slog.Default()
}

func (n SlogNotifier) SpeedChanged(newInterval int, origin ParticipantID) {
	n.logger().Info("speed changed", "interval_ms", newInterval, "origin", string(origin))
}

func (n SlogNotifier) FreezeToggled(frozen bool, origin ParticipantID, message string) {
	n.logger().Info("freeze toggled", "frozen", frozen, "origin", string(origin), "message", message)
}

func (n SlogNotifier) AccessDenied(reason string) {
	n.logger().Warn("access denied", "reason", reason)
}

func (n SlogNotifier) LocationChanged(frozen bool, interval int, reason AutoFreezeReason) {
	n.logger().Info("location changed", "frozen", frozen, "interval_ms", interval, "auto_reason", reason.String())
}

func (n SlogNotifier) ConfigReloaded() {
	n.logger().Info("configuration reloaded")
}
