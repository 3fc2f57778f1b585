// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package timectrl

// ScaleProgress converts a raw progress delta (host milliseconds
// toward the next ten-minute unit) into scaled progress under the
// configured interval. A configured interval above the default slows
// time (smaller scaled delta); below the default speeds it up.
func ScaleProgress(rawDelta float64, configuredMS int) float64 {
	return rawDelta * float64(DefaultIntervalMS) / float64(configuredMS)
}

// intervalScaler rewrites the host's raw interval counter so the
// clock advances at the configured rate instead of the host's native
// one. It tracks the value it last wrote so each tick can scale only
// the host's own freshly added delta.
type intervalScaler struct {
	// lastTimeOfDay detects the absolute "time unit changed" edge.
	lastTimeOfDay int

	// lastWritten is the counter value this scaler wrote last tick.
	// The host's additions since then are the raw delta to scale.
	lastWritten float64

	// scaled is the accumulated scaled progress.
	scaled float64

	// engaged is false until the first scaled tick, which must seed
	// the baseline rather than scale a bogus delta.
	engaged bool
}

// reset disengages the scaler, forcing the next scaled tick to
// re-seed from host state. Called when scaling turns off or a new
// session begins.
func (s *intervalScaler) reset() {
	*s = intervalScaler{}
}

// tick runs after the host update on a tick where scaling applies.
// Two paths: on a time-unit-changed edge the host has already folded
// the threshold out of the counter, so progress is recomputed from
// the remainder; otherwise only the delta since the last written
// value is scaled and accumulated.
func (s *intervalScaler) tick(ctx ClockContext, configuredMS int, host HostClock) {
	raw := float64(ctx.RawInterval)
	switch {
	case !s.engaged:
		s.engaged = true
		s.scaled = raw
	case ctx.TimeOfDay != s.lastTimeOfDay:
		s.scaled = ScaleProgress(raw, configuredMS)
	default:
		s.scaled += ScaleProgress(raw-s.lastWritten, configuredMS)
	}

	if s.scaled < 0 {
		s.scaled = 0
	}
	s.lastTimeOfDay = ctx.TimeOfDay
	written := int(s.scaled)
	// The host holds an int; remember the truncated value so next
	// tick's delta against the host counter is exact.
	s.lastWritten = float64(written)
	host.SetRawInterval(written)
}
