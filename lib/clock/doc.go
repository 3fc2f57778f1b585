// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for the host
// loop driver.
//
// The world clock governed by timectrl is simulation time and never
// touches this package; Clock exists for the one place real time
// enters the system, the ~60 Hz loop that calls OnPreUpdate and
// OnPostUpdate. In production, Real() provides standard library
// behavior. In tests, Fake() advances only when Advance is called, so
// a loop test covering thousands of ticks runs in microseconds:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	driver := hostsim.NewDriver(hostsim.DriverOptions{Clock: c, Paced: true /* ... */})
//	go driver.Run(ctx, 0)
//	c.WaitForTimers(1)                  // loop registered its ticker
//	c.Advance(17 * time.Millisecond)    // fire one frame
//
// WaitForTimers eliminates the race between a goroutine registering a
// ticker and the test advancing the clock.
package clock
