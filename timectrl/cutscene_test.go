// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package timectrl

import "testing"

func TestIsCutscenePlayingFestivalShortCircuits(t *testing.T) {
	t.Parallel()

	ctx := baseContext(1)
	ctx.FestivalActive = true
	ctx.EventOverlayUp = true
	ctx.FadeOutActive = true
	ctx.FadeToBlack = true
	if IsCutscenePlaying(ctx) {
		t.Error("festival did not short-circuit cutscene detection")
	}
}

func TestIsCutscenePlayingSignals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*ClockContext)
		want   bool
	}{
		{"quiet", func(*ClockContext) {}, false},
		{"event overlay", func(ctx *ClockContext) { ctx.EventOverlayUp = true }, true},
		{"current event", func(ctx *ClockContext) { ctx.EventActive = true }, true},
		{"minigame", func(ctx *ClockContext) { ctx.MinigameActive = true }, true},
		{"fade out", func(ctx *ClockContext) { ctx.FadeOutActive = true }, true},
		{"fade to black", func(ctx *ClockContext) { ctx.FadeToBlack = true }, true},
		{"movie menu outside theater", func(ctx *ClockContext) { ctx.ActiveMenu = MenuMoviePlayback }, false},
		{"movie menu in theater", func(ctx *ClockContext) {
			ctx.ActiveMenu = MenuMoviePlayback
			ctx.InTheater = true
		}, true},
		{"event menu", func(ctx *ClockContext) { ctx.ActiveMenu = MenuEvent }, true},
		{"other menu", func(ctx *ClockContext) { ctx.ActiveMenu = MenuOther }, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			ctx := baseContext(1)
			test.modify(&ctx)
			if got := IsCutscenePlaying(ctx); got != test.want {
				t.Errorf("IsCutscenePlaying: got %v, want %v", got, test.want)
			}
		})
	}
}

// frozenZoneController returns a controller whose context zone
// freezes time, so cutscene snapshots capture a frozen clock.
func frozenZoneController(t *testing.T) (*Controller, *fakeHost) {
	t.Helper()
	policy := &testPolicy{
		freezeAtZone: func(zone ZoneID) bool { return zone == "spa" },
	}
	controller, host, _ := newTestController(t, policy)
	return controller, host
}

func TestPureFadeRestoresImmediately(t *testing.T) {
	t.Parallel()

	controller, host := frozenZoneController(t)

	ctx := baseContextInZone(1, "spa")
	ctx.TimeOfDay = 1000
	ctx.RawInterval = 42
	runTick(controller, ctx)
	if !controller.EffectiveFreeze() {
		t.Fatal("expected frozen clock before fade")
	}

	// A zone warp: fade only, no event.
	fade := ctx
	fade.Tick = 2
	fade.FadeToBlack = true
	runTick(controller, fade)
	if controller.EffectiveFreeze() {
		t.Error("unfreeze window not open during fade")
	}

	// Fade ends. No real event was seen, so the restore happens on
	// this very tick with zero delay.
	after := ctx
	after.Tick = 3
	after.TimeOfDay = 1010
	after.RawInterval = 480
	runTick(controller, after)

	if host.timeOfDay != 1000 {
		t.Errorf("restored time of day: got %d, want 1000", host.timeOfDay)
	}
	if host.rawInterval != 42 {
		t.Errorf("restored interval: got %d, want 42", host.rawInterval)
	}
	if !controller.EffectiveFreeze() {
		t.Error("unfreeze window still open after immediate restore")
	}
}

func TestRealEventDelaysRestoreSixtyTicks(t *testing.T) {
	t.Parallel()

	controller, host := frozenZoneController(t)

	ctx := baseContextInZone(1, "spa")
	ctx.TimeOfDay = 1200
	ctx.RawInterval = 77
	runTick(controller, ctx)

	event := ctx
	event.Tick = 2
	event.EventActive = true
	runTick(controller, event)

	// Event over at tick 3. The restore must wait 60 ticks so the
	// closing fade-in reveals a static clock.
	exitTick := uint64(3)
	quiet := ctx
	host.timeWrites = 0
	for tick := exitTick; tick < exitTick+PostCutsceneDelayTicks; tick++ {
		quiet.Tick = tick
		runTick(controller, quiet)
		if host.timeWrites != 0 {
			t.Fatalf("restore happened early at tick %d", tick)
		}
		if controller.EffectiveFreeze() {
			t.Fatalf("clock frozen during post-cutscene delay at tick %d", tick)
		}
	}

	quiet.Tick = exitTick + PostCutsceneDelayTicks
	runTick(controller, quiet)
	if host.timeWrites == 0 {
		t.Fatal("restore did not happen after the delay elapsed")
	}
	if host.timeOfDay != 1200 || host.rawInterval != 77 {
		t.Errorf("restored clock: got (%d, %d), want (1200, 77)", host.timeOfDay, host.rawInterval)
	}
}

func TestChainedCutscenesRestoreFirstSnapshot(t *testing.T) {
	t.Parallel()

	controller, host := frozenZoneController(t)

	ctx := baseContextInZone(1, "spa")
	ctx.TimeOfDay = 900
	ctx.RawInterval = 5
	runTick(controller, ctx)

	// First cutscene of the chain: a real event.
	first := ctx
	first.Tick = 2
	first.EventActive = true
	runTick(controller, first)

	// One interactive tick between chain links, clock mid-drift.
	gap := ctx
	gap.Tick = 3
	gap.TimeOfDay = 910
	gap.RawInterval = 3000
	runTick(controller, gap)

	// Second cutscene. Entry must NOT re-snapshot: the correct
	// restore target is still (900, 5), not the mid-chain (910, 3000).
	second := gap
	second.Tick = 4
	second.EventActive = true
	runTick(controller, second)

	// Chain fully ends; run out the delay.
	quiet := gap
	for tick := uint64(5); tick < 5+PostCutsceneDelayTicks+1; tick++ {
		quiet.Tick = tick
		runTick(controller, quiet)
	}

	if host.timeOfDay != 900 {
		t.Errorf("restored time of day: got %d, want 900 (first entry of chain)", host.timeOfDay)
	}
	if host.rawInterval != 5 {
		t.Errorf("restored interval: got %d, want 5 (first entry of chain)", host.rawInterval)
	}
}

func TestCutsceneWhileUnfrozenRestoresNothing(t *testing.T) {
	t.Parallel()

	controller, host, _ := newTestController(t, nil)

	ctx := baseContext(1)
	runTick(controller, ctx)

	event := ctx
	event.Tick = 2
	event.EventActive = true
	runTick(controller, event)

	quiet := ctx
	for tick := uint64(3); tick < 3+PostCutsceneDelayTicks+1; tick++ {
		quiet.Tick = tick
		runTick(controller, quiet)
	}

	// Time was flowing before the cutscene; writing the entry values
	// back would rewind the clock.
	if host.timeWrites != 0 {
		t.Errorf("clock written %d times, want 0 (time was not frozen before)", host.timeWrites)
	}
}

func TestNewCutsceneDuringDelayContinuesChain(t *testing.T) {
	t.Parallel()

	controller, host := frozenZoneController(t)

	ctx := baseContextInZone(1, "spa")
	ctx.TimeOfDay = 1100
	ctx.RawInterval = 9
	runTick(controller, ctx)

	event := ctx
	event.Tick = 2
	event.EventActive = true
	runTick(controller, event)

	// Delay starts at tick 3; a new cutscene begins at tick 10,
	// which must cancel the pending restore and keep the original
	// snapshot for the extended chain.
	quiet := ctx
	for tick := uint64(3); tick < 10; tick++ {
		quiet.Tick = tick
		runTick(controller, quiet)
	}
	next := quiet
	next.Tick = 10
	next.EventActive = true
	runTick(controller, next)

	// Run far past the original delay deadline while still in the
	// cutscene; nothing may restore.
	during := next
	for tick := uint64(11); tick < 100; tick++ {
		during.Tick = tick
		runTick(controller, during)
	}
	if host.timeWrites != 0 {
		t.Fatal("restore fired while a chained cutscene was still playing")
	}

	// Chain ends; delay runs out; the original snapshot restores.
	quiet.Tick = 100
	runTick(controller, quiet)
	for tick := uint64(101); tick < 101+PostCutsceneDelayTicks; tick++ {
		quiet.Tick = tick
		runTick(controller, quiet)
	}
	if host.timeOfDay != 1100 || host.rawInterval != 9 {
		t.Errorf("restored clock: got (%d, %d), want (1100, 9)", host.timeOfDay, host.rawInterval)
	}
}

func TestSessionStartAbandonsChain(t *testing.T) {
	t.Parallel()

	controller, host := frozenZoneController(t)

	ctx := baseContextInZone(1, "spa")
	runTick(controller, ctx)
	event := ctx
	event.Tick = 2
	event.EventActive = true
	runTick(controller, event)

	controller.OnSessionStart()

	// The old chain's snapshot must not restore into the new session.
	quiet := baseContextInZone(3, "farm")
	for tick := uint64(3); tick < 3+PostCutsceneDelayTicks+1; tick++ {
		quiet.Tick = tick
		runTick(controller, quiet)
	}
	if host.timeWrites != 0 {
		t.Error("stale snapshot restored after session reset")
	}
}
