// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package timectrl

import (
	"log/slog"
	"testing"
)

// testPolicy implements Policy with overridable function fields. The
// zero value freezes nothing, overrides nothing, scales nowhere.
type testPolicy struct {
	freezeAtZone        func(ZoneID) bool
	freezeAtTime        func(int) bool
	freezeBeforePassOut func(int) bool
	millisecondsPerUnit func(ZoneID) int
	scaleOnDate         func(Season, int) bool
}

func (p *testPolicy) FreezeAtZone(zone ZoneID) bool {
	if p.freezeAtZone == nil {
		return false
	}
	return p.freezeAtZone(zone)
}

func (p *testPolicy) FreezeAtTime(timeOfDay int) bool {
	if p.freezeAtTime == nil {
		return false
	}
	return p.freezeAtTime(timeOfDay)
}

func (p *testPolicy) FreezeBeforePassOut(timeOfDay int) bool {
	if p.freezeBeforePassOut == nil {
		return false
	}
	return p.freezeBeforePassOut(timeOfDay)
}

func (p *testPolicy) MillisecondsPerUnit(zone ZoneID) int {
	if p.millisecondsPerUnit == nil {
		return 0
	}
	return p.millisecondsPerUnit(zone)
}

func (p *testPolicy) ScaleOnDate(season Season, dayOfMonth int) bool {
	if p.scaleOnDate == nil {
		return false
	}
	return p.scaleOnDate(season, dayOfMonth)
}

// fakeHost records clock writes.
type fakeHost struct {
	timeOfDay   int
	rawInterval int

	timeWrites     int
	intervalWrites int
}

func (h *fakeHost) SetTimeOfDay(value int) {
	h.timeOfDay = value
	h.timeWrites++
}

func (h *fakeHost) SetRawInterval(value int) {
	h.rawInterval = value
	h.intervalWrites++
}

// recordedNotice is one Notifier callback with its arguments.
type recordedNotice struct {
	kind     string
	frozen   bool
	interval int
	origin   ParticipantID
	reason   AutoFreezeReason
	text     string
}

// recorderNotifier captures notices for assertions.
type recorderNotifier struct {
	notices []recordedNotice
}

func (n *recorderNotifier) SpeedChanged(newInterval int, origin ParticipantID) {
	n.notices = append(n.notices, recordedNotice{kind: "speed", interval: newInterval, origin: origin})
}

func (n *recorderNotifier) FreezeToggled(frozen bool, origin ParticipantID, message string) {
	n.notices = append(n.notices, recordedNotice{kind: "freeze", frozen: frozen, origin: origin, text: message})
}

func (n *recorderNotifier) AccessDenied(reason string) {
	n.notices = append(n.notices, recordedNotice{kind: "denied", text: reason})
}

func (n *recorderNotifier) LocationChanged(frozen bool, interval int, reason AutoFreezeReason) {
	n.notices = append(n.notices, recordedNotice{kind: "location", frozen: frozen, interval: interval, reason: reason})
}

func (n *recorderNotifier) ConfigReloaded() {
	n.notices = append(n.notices, recordedNotice{kind: "reloaded"})
}

// byKind returns the recorded notices of one kind.
func (n *recorderNotifier) byKind(kind string) []recordedNotice {
	var out []recordedNotice
	for _, notice := range n.notices {
		if notice.kind == kind {
			out = append(out, notice)
		}
	}
	return out
}

// newTestController wires a Controller to a fakeHost and recorder.
func newTestController(t *testing.T, policy Policy) (*Controller, *fakeHost, *recorderNotifier) {
	t.Helper()
	if policy == nil {
		policy = &testPolicy{}
	}
	host := &fakeHost{}
	notifier := &recorderNotifier{}
	controller := New(Options{
		Policy:   policy,
		Host:     host,
		Notifier: notifier,
		Logger:   slog.New(slog.DiscardHandler),
	})
	return controller, host, notifier
}

// baseContext returns a quiet daytime context in the given zone.
func baseContext(tick uint64) ClockContext {
	return ClockContext{
		TimeOfDay:  900,
		Zone:       "farm",
		Season:     "spring",
		DayOfMonth: 3,
		Day:        3,
		Tick:       tick,
	}
}

// runTick drives one full pre/post tick pair with no host update in
// between, for tests that only exercise controller state.
func runTick(c *Controller, ctx ClockContext) {
	c.OnPreUpdate(ctx)
	c.OnPostUpdate(ctx)
}
