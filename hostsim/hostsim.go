// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package hostsim

import "github.com/timeflow-foundation/timeflow/timectrl"

// DayStartTime is the clock value a simulated day begins at.
const DayStartTime = 600

// DayEndTime is the clock value at which the host starts its
// end-of-day sequence.
const DayEndTime = 2600

// Host is a minimal but faithful stand-in for the host simulation's
// clock bookkeeping: it accumulates elapsed real milliseconds in
// RawInterval and advances the displayed time by one ten-minute unit
// each time the counter crosses the native threshold. Tests and the
// demo binary drive a timectrl.Controller against it.
//
// Host is not safe for concurrent use; like the real host, everything
// happens on the tick loop.
type Host struct {
	TimeOfDay   int
	Day         int
	Season      timectrl.Season
	DayOfMonth  int
	Zone        timectrl.ZoneID
	RawInterval int
	Tick        uint64

	// Signals mirror the host flags the cutscene detector reads.
	// Tests set them directly.
	FestivalActive bool
	EventOverlayUp bool
	EventActive    bool
	MinigameActive bool
	FadeOutActive  bool
	FadeToBlack    bool
	InTheater      bool
	ActiveMenu     timectrl.MenuKind

	// elapsedThisSecond tracks the one-second boundary flag.
	elapsedThisSecond int
	secondBoundary    bool
}

// New returns a Host at 6:00 on day 1 of spring in the given zone.
func New(zone timectrl.ZoneID) *Host {
	return &Host{
		TimeOfDay:  DayStartTime,
		Day:        1,
		Season:     "spring",
		DayOfMonth: 1,
		Zone:       zone,
	}
}

// Context builds the per-tick context for the upcoming update with
// elapsedMS real milliseconds since the previous tick.
func (h *Host) Context(elapsedMS int) timectrl.ClockContext {
	return timectrl.ClockContext{
		TimeOfDay:         h.TimeOfDay,
		Zone:              h.Zone,
		Season:            h.Season,
		DayOfMonth:        h.DayOfMonth,
		Day:               h.Day,
		RawInterval:       h.RawInterval,
		ElapsedMS:         elapsedMS,
		EndOfDaySequence:  h.TimeOfDay >= DayEndTime,
		Tick:              h.Tick,
		OneSecondBoundary: h.secondBoundary,
		FestivalActive:    h.FestivalActive,
		EventOverlayUp:    h.EventOverlayUp,
		EventActive:       h.EventActive,
		MinigameActive:    h.MinigameActive,
		FadeOutActive:     h.FadeOutActive,
		FadeToBlack:       h.FadeToBlack,
		InTheater:         h.InTheater,
		ActiveMenu:        h.ActiveMenu,
	}
}

// Update applies the host's own clock rule for one tick: accumulate
// elapsed milliseconds and advance the displayed time across the
// native threshold. The controller's suppressor or scaler may
// overwrite RawInterval afterwards; Update never knows.
func (h *Host) Update(elapsedMS int) {
	h.Tick++
	h.elapsedThisSecond += elapsedMS
	h.secondBoundary = h.elapsedThisSecond >= 1000
	if h.secondBoundary {
		h.elapsedThisSecond %= 1000
	}

	if h.TimeOfDay >= DayEndTime {
		return
	}

	h.RawInterval += elapsedMS
	for h.RawInterval >= timectrl.DefaultIntervalMS {
		h.RawInterval -= timectrl.DefaultIntervalMS
		h.advanceTenMinutes()
	}
}

// advanceTenMinutes moves the displayed clock one unit, carrying into
// the next hour at :60.
func (h *Host) advanceTenMinutes() {
	h.TimeOfDay += 10
	if h.TimeOfDay%100 == 60 {
		h.TimeOfDay = h.TimeOfDay - 60 + 100
	}
}

// StartNextDay resets the clock to the next morning.
func (h *Host) StartNextDay() {
	h.Day++
	h.DayOfMonth++
	if h.DayOfMonth > 28 {
		h.DayOfMonth = 1
	}
	h.TimeOfDay = DayStartTime
	h.RawInterval = 0
}

// SetTimeOfDay implements timectrl.HostClock.
func (h *Host) SetTimeOfDay(value int) { h.TimeOfDay = value }

// SetRawInterval implements timectrl.HostClock.
func (h *Host) SetRawInterval(value int) { h.RawInterval = value }
