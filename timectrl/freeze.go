// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package timectrl

// computeAutoFreeze evaluates the freeze policies in priority order
// and returns the first match. The order (location, before-pass-out,
// fixed-time) is load-bearing: a suspension recorded for the reported
// reason must keep matching the reported reason while the same
// conditions hold, so the evaluation order may not change between
// ticks.
func (c *Controller) computeAutoFreeze(ctx ClockContext) AutoFreezeReason {
	if c.policy.FreezeAtZone(ctx.Zone) {
		return FrozenForLocation
	}
	if c.policy.FreezeBeforePassOut(ctx.TimeOfDay) {
		return FrozenBeforePassOut
	}
	if c.policy.FreezeAtTime(ctx.TimeOfDay) {
		return FrozenAtTime
	}
	return FreezeNone
}

// updateFreeze recomputes the freeze state. manualOverride, when
// non-nil, sets ManualFreeze. clearSuspensions forces the suspension
// set empty; it also empties whenever no auto reason applies any more.
//
// The manualOverride == false case carries the resume semantics: the
// player explicitly chose to let time flow while an automatic
// condition still applies, so that condition is suspended. The
// suspension persists until the day changes, the zone changes, or the
// reason stops applying — not merely until the next tick.
func (c *Controller) updateFreeze(ctx ClockContext, manualOverride *bool, clearSuspensions bool) {
	c.freeze.AutoFreeze = c.computeAutoFreeze(ctx)

	if manualOverride != nil {
		c.freeze.ManualFreeze = *manualOverride
	}

	if clearSuspensions || c.freeze.AutoFreeze == FreezeNone {
		clear(c.freeze.Suspended)
	}

	if manualOverride != nil && !*manualOverride && c.freeze.AutoFreeze != FreezeNone {
		c.freeze.Suspended[c.freeze.AutoFreeze] = true
	}
}

// toggleFreezeLocked flips the freeze decision as local input would.
// Flipping while an unsuspended auto reason holds (and no manual
// freeze) suspends that reason so time resumes; flipping while
// nothing freezes time sets the manual freeze. Returns the new
// effective decision, ignoring the cutscene-unfreeze window.
func (c *Controller) toggleFreezeLocked(ctx ClockContext) bool {
	override := !c.freeze.effective()
	c.updateFreeze(ctx, &override, false)
	return c.freeze.effective()
}

// EffectiveFreeze reports the single effective freeze decision for
// this tick: false inside a cutscene-unfreeze window, otherwise the
// manual flag or an unsuspended auto reason.
func (c *Controller) EffectiveFreeze() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.effectiveFreezeLocked()
}

func (c *Controller) effectiveFreezeLocked() bool {
	if c.tracker.window {
		return false
	}
	return c.freeze.effective()
}

// FreezeSnapshot returns a copy of the current freeze state for
// diagnostics. The suspended set is copied; mutating the result does
// not affect the controller.
func (c *Controller) FreezeSnapshot() FreezeState {
	c.mu.Lock()
	defer c.mu.Unlock()

	suspended := make(map[AutoFreezeReason]bool, len(c.freeze.Suspended))
	for reason := range c.freeze.Suspended {
		suspended[reason] = true
	}
	return FreezeState{
		ManualFreeze: c.freeze.ManualFreeze,
		AutoFreeze:   c.freeze.AutoFreeze,
		Suspended:    suspended,
	}
}
