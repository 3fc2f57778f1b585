// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package timectrl

// IsCutscenePlaying reports whether the context describes a
// non-interactive sequence. The festival check must run first:
// festivals raise the same low-level flags as cutscenes but the
// player can move freely, so nothing else may be consulted.
func IsCutscenePlaying(ctx ClockContext) bool {
	if ctx.FestivalActive {
		return false
	}
	if ctx.EventOverlayUp || ctx.EventActive || ctx.MinigameActive {
		return true
	}
	if ctx.FadeOutActive || ctx.FadeToBlack {
		return true
	}
	if ctx.ActiveMenu == MenuMoviePlayback && ctx.InTheater {
		return true
	}
	return ctx.ActiveMenu == MenuEvent
}

// realEventSignal reports a genuine event or minigame, as opposed to
// a bare screen fade (a zone warp fades without any event). Fades and
// menu state do not count.
func realEventSignal(ctx ClockContext) bool {
	if ctx.FestivalActive {
		return false
	}
	return ctx.EventOverlayUp || ctx.EventActive || ctx.MinigameActive
}

// cutsceneTracker tracks non-interactive sequences. While its
// unfreeze window is open, the effective freeze decision is forced
// false so cutscenes and their closing transitions never play against
// a frozen clock.
type cutsceneTracker struct {
	// window is the cutscene-unfreeze window. It opens at the first
	// entry of a chain and closes on restore.
	window bool

	// wasIn is last tick's detection result, for edge detection.
	wasIn bool

	// hadRealEvent records whether the current chain link contained a
	// real event (not just a fade). Decides whether the restore is
	// delayed on exit.
	hadRealEvent bool

	// snapshot is the pre-chain clock state. Non-nil exactly while
	// the window is open.
	snapshot *CutsceneSnapshot

	// delayEndedAt is the tick the last real-event cutscene ended at.
	// Valid only when delayPending.
	delayEndedAt uint64
	delayPending bool
}

// reset abandons any in-flight chain or delay. Called when a new
// session begins; the pending snapshot belongs to a world that no
// longer exists and must not be restored into the new one.
func (tr *cutsceneTracker) reset() {
	*tr = cutsceneTracker{}
}

// tickCutscenes drives the tracker state machine once per tick. A
// chain-opening snapshot captures the effective freeze decision as it
// stands before this tick's transition is applied.
func (c *Controller) tickCutscenes(ctx ClockContext) {
	tr := &c.tracker
	isIn := IsCutscenePlaying(ctx)

	switch {
	case isIn && !tr.wasIn:
		// Entering. Snapshot only at the first entry of a chain: if
		// the window is already open this is a chained cutscene, and
		// re-snapshotting would overwrite the pre-chain values with
		// mid-chain ones.
		if !tr.window {
			tr.snapshot = &CutsceneSnapshot{
				WasFrozenBefore:      c.effectiveFreezeLocked(),
				TimeOfDayAtEntry:     ctx.TimeOfDay,
				ClockIntervalAtEntry: ctx.RawInterval,
			}
			tr.window = true
			c.logger.Debug("cutscene chain started",
				"tick", ctx.Tick,
				"frozen_before", tr.snapshot.WasFrozenBefore,
				"time_at_entry", tr.snapshot.TimeOfDayAtEntry)
		}
		tr.delayPending = false
		tr.hadRealEvent = false

	case !isIn && tr.wasIn:
		// Exiting. A real event needs the clock visibly static through
		// its closing fade-in, so the restore waits; a bare fade warp
		// restores immediately.
		if tr.hadRealEvent {
			tr.delayPending = true
			tr.delayEndedAt = ctx.Tick
			c.logger.Debug("cutscene ended, delaying restore",
				"tick", ctx.Tick, "delay_ticks", uint64(PostCutsceneDelayTicks))
		} else {
			c.restoreCutsceneSnapshot(ctx)
		}
	}

	if tr.window && !tr.hadRealEvent && realEventSignal(ctx) {
		tr.hadRealEvent = true
	}

	if tr.delayPending && ctx.Tick-tr.delayEndedAt >= PostCutsceneDelayTicks {
		tr.delayPending = false
		c.restoreCutsceneSnapshot(ctx)
	}

	tr.wasIn = isIn
}

// restoreCutsceneSnapshot closes the unfreeze window and, if time was
// frozen when the chain began, writes the captured clock values back
// so the sequence consumed no world time. If time had been flowing,
// no correction is needed.
func (c *Controller) restoreCutsceneSnapshot(ctx ClockContext) {
	tr := &c.tracker
	if tr.snapshot == nil {
		tr.window = false
		return
	}
	if tr.snapshot.WasFrozenBefore {
		c.host.SetTimeOfDay(tr.snapshot.TimeOfDayAtEntry)
		c.host.SetRawInterval(tr.snapshot.ClockIntervalAtEntry)
		c.restoredRaw = tr.snapshot.ClockIntervalAtEntry
		c.restoredThisTick = true
		c.logger.Debug("clock restored after cutscene",
			"tick", ctx.Tick,
			"time_of_day", tr.snapshot.TimeOfDayAtEntry,
			"interval", tr.snapshot.ClockIntervalAtEntry)
	}
	tr.snapshot = nil
	tr.window = false
}
