// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package timectrl

// DefaultIntervalMS is the host's native advance threshold: the number
// of real milliseconds after which the host increments the world clock
// by one ten-minute unit. It is also the default tick interval setting
// (a configured interval equal to it means unscaled time).
const DefaultIntervalMS = 7000

// suppressClampMS is the ceiling for the saved interval counter while
// freeze is active. It must sit well below DefaultIntervalMS so that
// one host update on top of the saved value can never cross the
// advance threshold.
const suppressClampMS = 100

// PostCutsceneDelayTicks is how many ticks after a real event ends the
// clock restore is deferred, so the event's closing fade-in reveals a
// static clock. At ~60 ticks per second this is roughly one second.
const PostCutsceneDelayTicks = 60

// ParticipantID identifies one session participant. The zero value
// means "local, unattributed" in notices.
type ParticipantID string

// ZoneID identifies the zone (location) the player currently occupies.
type ZoneID string

// Season identifies the simulated season, used by the scaling policy.
type Season string

// MenuKind classifies the active menu. Classification is supplied by
// the host-integration layer; the core never inspects menu type names.
type MenuKind int

const (
	// MenuNone means no menu is open.
	MenuNone MenuKind = iota
	// MenuEvent is a menu that is part of a scripted event.
	MenuEvent
	// MenuMoviePlayback is the movie playback menu.
	MenuMoviePlayback
	// MenuOther is any menu with no event significance.
	MenuOther
)

// AutoFreezeReason is a context-derived cause for freezing time,
// distinct from a manual player toggle. At most one reason is active
// at a time; when several conditions match, priority is location >
// before-pass-out > fixed-time.
type AutoFreezeReason int

const (
	// FreezeNone means no automatic freeze condition applies.
	FreezeNone AutoFreezeReason = iota
	// FrozenForLocation means the current zone's policy freezes time.
	FrozenForLocation
	// FrozenBeforePassOut means the clock is inside the pre-pass-out
	// window at the end of the day.
	FrozenBeforePassOut
	// FrozenAtTime means the clock sits at a configured freeze time.
	FrozenAtTime
)

// String returns a short diagnostic name for the reason.
func (r AutoFreezeReason) String() string {
	switch r {
	case FreezeNone:
		return "none"
	case FrozenForLocation:
		return "location"
	case FrozenBeforePassOut:
		return "before-pass-out"
	case FrozenAtTime:
		return "fixed-time"
	default:
		return "unknown"
	}
}

// ClockContext is the per-tick view of host state. The host adapter
// builds one fresh value for every entry-point call; the core holds
// no ambient references into the host.
type ClockContext struct {
	// TimeOfDay is the displayed clock value, e.g. 630 for 6:30 and
	// 1300 for 13:00. Units advance in tens of minutes.
	TimeOfDay int

	// Zone is the player's current zone.
	Zone ZoneID

	// Season and DayOfMonth feed the scaling policy.
	Season     Season
	DayOfMonth int

	// Day is an absolute day counter, used to detect day changes.
	Day int

	// RawInterval is the host's accumulated milliseconds toward the
	// next ten-minute advance.
	RawInterval int

	// ElapsedMS is real elapsed milliseconds since the previous tick.
	ElapsedMS int

	// EndOfDaySequence is true while the host shows its end-of-day
	// sequence (pass-out, save screen).
	EndOfDaySequence bool

	// Tick is the monotonically increasing tick counter.
	Tick uint64

	// OneSecondBoundary is true on the first tick of a new elapsed
	// real second.
	OneSecondBoundary bool

	// Cutscene detection signals, in the order the detector consults
	// them. FestivalActive short-circuits the rest: festivals raise
	// the same low-level flags as cutscenes but permit free movement.
	FestivalActive bool
	EventOverlayUp bool
	EventActive    bool
	MinigameActive bool
	FadeOutActive  bool
	FadeToBlack    bool
	InTheater      bool
	ActiveMenu     MenuKind
}

// FreezeState holds the freeze decision inputs. AutoFreeze always
// reports the currently matching reason even when that reason is
// suspended, so diagnostics can show it; only the effective decision
// treats suspended reasons as inert.
type FreezeState struct {
	ManualFreeze bool
	AutoFreeze   AutoFreezeReason
	Suspended    map[AutoFreezeReason]bool
}

// effective reports the freeze decision ignoring the cutscene-unfreeze
// window, which the controller layers on top.
func (s *FreezeState) effective() bool {
	if s.ManualFreeze {
		return true
	}
	return s.AutoFreeze != FreezeNone && !s.Suspended[s.AutoFreeze]
}

// CutsceneSnapshot is the clock state captured at the first entry of a
// cutscene chain, restored when the chain fully ends.
type CutsceneSnapshot struct {
	WasFrozenBefore      bool
	TimeOfDayAtEntry     int
	ClockIntervalAtEntry int
}

// Policy is the configuration collaborator consulted by the freeze
// engine and scaler. Implementations must be cheap: every method may
// be called on every tick.
type Policy interface {
	// FreezeAtZone reports whether time freezes in the given zone.
	FreezeAtZone(zone ZoneID) bool

	// FreezeAtTime reports whether the clock freezes at the given
	// time of day.
	FreezeAtTime(timeOfDay int) bool

	// FreezeBeforePassOut reports whether the given time of day is
	// inside the pre-pass-out freeze window.
	FreezeBeforePassOut(timeOfDay int) bool

	// MillisecondsPerUnit returns the configured milliseconds per
	// ten-minute unit for the zone, or 0 for "no zone override".
	MillisecondsPerUnit(zone ZoneID) int

	// ScaleOnDate reports whether interval scaling is enabled for the
	// given date.
	ScaleOnDate(season Season, dayOfMonth int) bool
}

// HostClock is the write surface back into the host's clock
// bookkeeping. The suppressor and the cutscene restore are the only
// writers.
type HostClock interface {
	// SetTimeOfDay overwrites the displayed clock value.
	SetTimeOfDay(value int)

	// SetRawInterval overwrites the accumulated-milliseconds counter.
	SetRawInterval(value int)
}
