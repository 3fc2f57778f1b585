// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package timectrl

import (
	"log/slog"
	"sync"
)

// Options configures a Controller.
type Options struct {
	// Policy supplies the freeze and scaling configuration. Required.
	Policy Policy

	// Host is the write surface into the host clock. Required.
	Host HostClock

	// Notifier receives user-facing notices. If nil, notices are
	// discarded.
	Notifier Notifier

	// InitialInterval is the tick interval setting at session start,
	// in milliseconds per ten simulated minutes. If 0, the host's
	// native rate (DefaultIntervalMS) is used.
	InitialInterval int

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Controller owns all clock-flow state for one participant: the
// freeze decision, the cutscene tracker, the advance suppressor, the
// interval scaler, and the tick interval setting. The host adapter
// calls OnPreUpdate and OnPostUpdate around the host's own clock
// update every tick; input and protocol handlers call the mutating
// methods between ticks.
//
// All entry points serialize on one mutex, so a protocol message
// arriving between two ticks can never observe or leave behind a
// half-updated state across a pre-update/post-update pair.
type Controller struct {
	mu sync.Mutex

	policy   Policy
	host     HostClock
	notifier Notifier
	logger   *slog.Logger

	freeze     FreezeState
	tracker    cutsceneTracker
	suppressor advanceSuppressor
	scaler     intervalScaler

	// interval is the tick interval setting: milliseconds per ten
	// simulated minutes. Authority-owned; on non-authority
	// participants it is a read-only mirror driven by notices.
	interval int

	// lastZone and lastDay detect context changes that clear
	// suspensions. started guards the first tick, which must seed
	// them instead of reporting a change.
	lastZone ZoneID
	lastDay  int
	started  bool

	// restoredRaw carries a same-tick cutscene restore's counter
	// value to the suppressor, which would otherwise re-clamp from
	// the context's stale pre-restore value.
	restoredRaw      int
	restoredThisTick bool
}

// New returns a Controller. The tick interval starts at
// Options.InitialInterval, or the host's native rate when unset.
func New(opts Options) *Controller {
	if opts.Policy == nil {
		panic("timectrl: Options.Policy is required")
	}
	if opts.Host == nil {
		panic("timectrl: Options.Host is required")
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := opts.InitialInterval
	if interval <= 0 {
		interval = DefaultIntervalMS
	}
	return &Controller{
		policy:   opts.Policy,
		host:     opts.Host,
		notifier: notifier,
		logger:   logger,
		freeze:   FreezeState{Suspended: make(map[AutoFreezeReason]bool)},
		interval: interval,
	}
}

// OnPreUpdate runs once per tick, before the host applies its own
// clock update. It drives context-change handling, the cutscene
// tracker, the freeze recomputation, and the suppressor's pre-update
// capture.
func (c *Controller) OnPreUpdate(ctx ClockContext) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.observeContextLocked(ctx)
	c.tickCutscenes(ctx)
	c.updateFreeze(ctx, nil, false)

	// A restore earlier in this tick already rewrote the counter; the
	// context still carries the pre-restore value.
	raw := ctx.RawInterval
	if c.restoredThisTick {
		raw = c.restoredRaw
		c.restoredThisTick = false
	}
	c.suppressor.preUpdate(raw, c.shouldSuppressAdvanceLocked(ctx))
}

// OnPostUpdate runs once per tick, after the host applied its update.
// It finalizes the suppression overwrite, or, when time flows and
// scaling is enabled for the date, rescales the host counter.
func (c *Controller) OnPostUpdate(ctx ClockContext) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.suppressor.pending {
		c.suppressor.postUpdate(c.host)
		c.scaler.reset()
		return
	}

	// The host stops its own bookkeeping during the end-of-day
	// sequence; rescaling a static counter would write garbage.
	if ctx.EndOfDaySequence {
		c.scaler.reset()
		return
	}

	if !c.policy.ScaleOnDate(ctx.Season, ctx.DayOfMonth) {
		c.scaler.reset()
		return
	}
	if c.interval == 0 {
		// An unset interval under scaling is a configuration gap, not
		// an error: correct it in place.
		c.interval = DefaultIntervalMS
		c.logger.Warn("tick interval was 0 with scaling enabled, reset to default",
			"interval_ms", DefaultIntervalMS)
	}
	c.scaler.tick(ctx, c.interval, c.host)
}

// shouldSuppressAdvanceLocked decides whether this tick's host update
// must be overwritten. Cutscenes, the post-cutscene delay, and the
// end-of-day sequence all force time to flow regardless of the freeze
// state; the unfreeze window already makes EffectiveFreeze false in
// the first two cases, and the end-of-day check covers the host's own
// non-interactive wrap-up.
func (c *Controller) shouldSuppressAdvanceLocked(ctx ClockContext) bool {
	if ctx.EndOfDaySequence {
		return false
	}
	if c.tracker.window || c.tracker.delayPending {
		return false
	}
	return c.freeze.effective()
}

// observeContextLocked clears suspensions when the day or zone
// changes, and announces zone changes with the resulting state.
func (c *Controller) observeContextLocked(ctx ClockContext) {
	if !c.started {
		c.started = true
		c.lastZone = ctx.Zone
		c.lastDay = ctx.Day
		c.applyZoneIntervalLocked(ctx.Zone)
		return
	}

	dayChanged := ctx.Day != c.lastDay
	zoneChanged := ctx.Zone != c.lastZone
	if !dayChanged && !zoneChanged {
		return
	}
	c.lastDay = ctx.Day
	c.lastZone = ctx.Zone

	c.updateFreeze(ctx, nil, true)

	if zoneChanged {
		c.applyZoneIntervalLocked(ctx.Zone)
		c.notifier.LocationChanged(c.effectiveFreezeLocked(), c.interval, c.freeze.AutoFreeze)
	}
}

// applyZoneIntervalLocked adopts a per-zone interval override, if the
// policy has one for the zone.
func (c *Controller) applyZoneIntervalLocked(zone ZoneID) {
	if override := c.policy.MillisecondsPerUnit(zone); override > 0 && override != c.interval {
		c.interval = override
		c.logger.Debug("zone interval override applied", "zone", string(zone), "interval_ms", override)
	}
}

// ToggleFreeze handles a local freeze toggle. origin attributes the
// change in notices; the authority passes the requester's identity
// when applying an accepted remote request.
func (c *Controller) ToggleFreeze(ctx ClockContext, origin ParticipantID) bool {
	c.mu.Lock()
	frozen := c.toggleFreezeLocked(ctx)
	state := c.freeze
	c.mu.Unlock()

	message := "time resumed"
	if frozen {
		message = "time is frozen"
	} else if state.AutoFreeze != FreezeNone {
		message = "time resumed (automatic freeze suspended)"
	}
	c.notifier.FreezeToggled(frozen, origin, message)
	c.logger.Info("freeze toggled", "frozen", frozen, "origin", string(origin),
		"auto_reason", state.AutoFreeze.String())
	return frozen
}

// ChangeInterval adjusts the tick interval setting by delta
// milliseconds. Decreasing clamps at zero: the actual decrement is
// min(current, delta), never producing a negative interval.
// Increasing has no upper bound. Returns the new interval.
func (c *Controller) ChangeInterval(delta int, increase bool, origin ParticipantID) int {
	if delta < 0 {
		delta = -delta
	}

	c.mu.Lock()
	if increase {
		c.interval += delta
	} else {
		decrement := delta
		if decrement > c.interval {
			decrement = c.interval
		}
		c.interval -= decrement
	}
	interval := c.interval
	c.mu.Unlock()

	c.notifier.SpeedChanged(interval, origin)
	c.logger.Info("interval changed", "interval_ms", interval, "origin", string(origin))
	return interval
}

// Interval returns the current tick interval setting.
func (c *Controller) Interval() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// ApplyIntervalNotice updates the local read-only mirror from an
// IntervalChangedNotice broadcast by the authority.
func (c *Controller) ApplyIntervalNotice(newInterval int, origin ParticipantID) {
	c.mu.Lock()
	c.interval = newInterval
	c.mu.Unlock()
	c.notifier.SpeedChanged(newInterval, origin)
}

// ApplyFreezeNotice updates the local read-only mirror from a
// FreezeChangedNotice broadcast by the authority.
func (c *Controller) ApplyFreezeNotice(frozen bool, origin ParticipantID) {
	c.mu.Lock()
	c.freeze.ManualFreeze = frozen
	clear(c.freeze.Suspended)
	c.mu.Unlock()

	message := "time resumed"
	if frozen {
		message = "time is frozen"
	}
	c.notifier.FreezeToggled(frozen, origin, message)
}

// ReloadPolicy swaps the policy atomically and announces the reload.
// The next tick re-evaluates auto-freeze under the new policy.
func (c *Controller) ReloadPolicy(policy Policy) {
	c.mu.Lock()
	c.policy = policy
	c.mu.Unlock()
	c.notifier.ConfigReloaded()
	c.logger.Info("policy reloaded")
}

// OnSessionStart abandons all transient state: an in-flight cutscene
// chain or restore delay belongs to the previous session and must
// not leak into the new one.
func (c *Controller) OnSessionStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracker.reset()
	c.scaler.reset()
	c.suppressor = advanceSuppressor{}
	c.restoredThisTick = false
	c.freeze.ManualFreeze = false
	c.freeze.AutoFreeze = FreezeNone
	clear(c.freeze.Suspended)
	c.started = false
	c.logger.Debug("session state reset")
}
