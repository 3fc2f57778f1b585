// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package hostsim

import (
	"context"
	"time"

	"github.com/timeflow-foundation/timeflow/lib/clock"
	"github.com/timeflow-foundation/timeflow/timectrl"
)

// DefaultFrameDuration approximates one frame of the host's ~60 Hz
// loop.
const DefaultFrameDuration = 17 * time.Millisecond

// DriverOptions configures a Driver.
type DriverOptions struct {
	// Host is the simulated host clock the loop drives. Required.
	Host *Host

	// Controller supervises every host update. Required.
	Controller *timectrl.Controller

	// Clock paces the loop when Paced is set. If nil, clock.Real()
	// is used.
	Clock clock.Clock

	// FrameDuration is the simulated length of one tick. If 0,
	// DefaultFrameDuration is used.
	FrameDuration time.Duration

	// Paced waits one FrameDuration of Clock time between ticks.
	// Unpaced runs flat out, for whole-day simulations.
	Paced bool

	// OnTick, if non-nil, runs after each completed tick with the
	// tick index. Returning false stops the loop. Message pumping,
	// scripted input, and day rollover all live here; the driver
	// itself only turns the clock.
	OnTick func(tick int) bool
}

// Driver owns the tick loop: each iteration brackets one host clock
// update with the controller's pre- and post-update entry points.
// Everything on the loop runs on the Run goroutine, matching the
// host's single-threaded update model.
type Driver struct {
	host       *Host
	controller *timectrl.Controller
	clock      clock.Clock
	frame      time.Duration
	paced      bool
	onTick     func(tick int) bool
}

// NewDriver returns a Driver.
func NewDriver(opts DriverOptions) *Driver {
	if opts.Host == nil {
		panic("hostsim: DriverOptions.Host is required")
	}
	if opts.Controller == nil {
		panic("hostsim: DriverOptions.Controller is required")
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real()
	}
	frame := opts.FrameDuration
	if frame == 0 {
		frame = DefaultFrameDuration
	}
	return &Driver{
		host:       opts.Host,
		controller: opts.Controller,
		clock:      clk,
		frame:      frame,
		paced:      opts.Paced,
		onTick:     opts.OnTick,
	}
}

// Run resets session state and turns the loop until ctx is canceled,
// maxTicks ticks have run (0 means unlimited), or the OnTick hook
// returns false. Cancellation surfaces as ctx.Err().
func (d *Driver) Run(ctx context.Context, maxTicks int) error {
	var ticker *clock.Ticker
	if d.paced {
		ticker = d.clock.NewTicker(d.frame)
		defer ticker.Stop()
	}

	d.controller.OnSessionStart()
	frameMS := int(d.frame / time.Millisecond)

	for tick := 0; maxTicks == 0 || tick < maxTicks; tick++ {
		if d.paced {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		d.controller.OnPreUpdate(d.host.Context(frameMS))
		d.host.Update(frameMS)
		d.controller.OnPostUpdate(d.host.Context(frameMS))

		if d.onTick != nil && !d.onTick(tick) {
			return nil
		}
	}
	return nil
}
