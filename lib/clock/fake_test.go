// Copyright 2026 The Timeflow Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeNowAdvances(t *testing.T) {
	t.Parallel()
	c := Fake(epoch)

	if got := c.Now(); !got.Equal(epoch) {
		t.Errorf("Now before Advance: got %v, want %v", got, epoch)
	}
	c.Advance(3 * time.Second)
	if got, want := c.Now(), epoch.Add(3*time.Second); !got.Equal(want) {
		t.Errorf("Now after Advance: got %v, want %v", got, want)
	}
}

func TestFakeAfterFiresAtDeadline(t *testing.T) {
	t.Parallel()
	c := Fake(epoch)

	ch := c.After(time.Second)
	select {
	case v := <-ch:
		t.Fatalf("After fired before Advance: %v", v)
	default:
	}

	c.Advance(time.Second)
	select {
	case <-ch:
	default:
		t.Fatal("After did not fire after Advance past deadline")
	}
}

func TestFakeAfterNonPositiveFiresImmediately(t *testing.T) {
	t.Parallel()
	c := Fake(epoch)

	select {
	case <-c.After(0):
	default:
		t.Fatal("After(0) did not fire immediately")
	}
}

func TestFakeTickerFiresPerInterval(t *testing.T) {
	t.Parallel()
	c := Fake(epoch)

	ticker := c.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; i < 5; i++ {
		c.Advance(10 * time.Millisecond)
		select {
		case <-ticker.C:
		default:
			t.Fatalf("tick %d missing after Advance", i)
		}
	}
}

func TestFakeTickerDropsWhenConsumerBehind(t *testing.T) {
	t.Parallel()
	c := Fake(epoch)

	ticker := c.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	// Advance across many intervals without reading. The channel has
	// capacity 1, so at most one tick is buffered.
	c.Advance(time.Second)

	received := 0
	for {
		select {
		case <-ticker.C:
			received++
			continue
		default:
		}
		break
	}
	if received != 1 {
		t.Errorf("buffered ticks: got %d, want 1", received)
	}
}

func TestFakeTickerStop(t *testing.T) {
	t.Parallel()
	c := Fake(epoch)

	ticker := c.NewTicker(10 * time.Millisecond)
	ticker.Stop()
	c.Advance(time.Second)

	select {
	case <-ticker.C:
		t.Error("stopped ticker delivered a tick")
	default:
	}
	if got := c.PendingCount(); got != 0 {
		t.Errorf("PendingCount after Stop: got %d, want 0", got)
	}
}

func TestFakeWaitForTimers(t *testing.T) {
	t.Parallel()
	c := Fake(epoch)

	done := make(chan struct{})
	go func() {
		c.Sleep(time.Second)
		close(done)
	}()

	c.WaitForTimers(1)
	c.Advance(time.Second)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Sleep goroutine did not wake after Advance")
	}
}
