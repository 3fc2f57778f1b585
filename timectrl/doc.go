// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

// Package timectrl decides, every tick, whether the simulated world
// clock advances normally, at a scaled rate, or not at all.
//
// A [Controller] owns all state for one participant. The host adapter
// calls [Controller.OnPreUpdate] before the host applies its own
// clock update and [Controller.OnPostUpdate] after; every other
// mutation (local input, protocol messages, config reloads) enters
// through the Controller's methods between ticks. All host state the
// core reads arrives in a [ClockContext] value built fresh each tick,
// so the decision logic is pure with respect to the host.
//
// Four mechanisms cooperate:
//
//   - The freeze decision engine combines a manual toggle, a
//     prioritized automatic reason (location, before-pass-out, fixed
//     time), and per-reason suspensions into one effective decision.
//   - The cutscene tracker detects non-interactive sequences,
//     snapshots the clock at the start of a chain, keeps time flowing
//     throughout (freezing mid-cutscene would soft-lock scripted
//     sequences), and restores the snapshot afterwards — delayed by
//     PostCutsceneDelayTicks when a real event played, so the closing
//     fade-in reveals a static clock.
//   - The advance suppressor pins the host's raw interval counter
//     below the ten-minute threshold while freeze is effective,
//     without zeroing it, so other observers of the counter still see
//     a live simulation.
//   - The interval scaler rewrites the counter so time passes at the
//     configured milliseconds-per-ten-minutes rate.
//
// Collaborators are injected interfaces: [Policy] for configuration,
// [HostClock] for the write surface, [Notifier] for user-facing
// notices.
package timectrl
