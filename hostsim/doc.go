// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

// Package hostsim simulates the host's clock bookkeeping: an elapsed
// milliseconds counter that advances the displayed time by ten
// minutes per native threshold crossing.
//
// In a real deployment the host adapter reads these values out of the
// host process instead. hostsim exists so the suppressor's overwrite,
// the scaler's rewrite, and the cutscene restore can be exercised
// end-to-end against genuine advance semantics in tests and in
// cmd/timeflow-sim, without a host.
//
// Driver owns the tick loop around a Host: paced by an injectable
// clock for live runs, unpaced for whole-day simulations, driven by
// a fake clock in tests.
package hostsim
