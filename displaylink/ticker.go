// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package displaylink

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRefreshRate is the tick rate used when NewTicker is given a
// non-positive rate.
const DefaultRefreshRate = 60.0

// Ticker is a timer-driven Source for hosts without a vsync callback.
//
// Ticks that arrive while a step is still running are dropped by the
// underlying time.Ticker, so a slow step lowers the frame rate rather than
// queueing frames.
//
// Functions handed to Post run on the ticking goroutine right before the
// next step. This is how other goroutines mutate state owned by the step,
// e.g. request a redraw.
type Ticker struct {
	interval time.Duration
	attached atomic.Bool

	mu     sync.Mutex
	posted []func()
}

// NewTicker creates a Ticker firing hz times per second.
func NewTicker(hz float64) *Ticker {
	if hz <= 0 {
		hz = DefaultRefreshRate
	}
	return &Ticker{
		interval: time.Duration(float64(time.Second) / hz),
	}
}

// Interval returns the time between ticks.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Post schedules fn to run on the ticking goroutine before the next step.
// Post is safe for concurrent use. Functions posted while the ticker is not
// running stay queued until the next Run.
func (t *Ticker) Post(fn func()) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	t.posted = append(t.posted, fn)
	t.mu.Unlock()
}

// Run calls step once per interval until ctx is done.
func (t *Ticker) Run(ctx context.Context, step func()) error {
	if !t.attached.CompareAndSwap(false, true) {
		return ErrAttached
	}
	defer t.attached.Store(false)

	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tk.C:
			// A cancelled context wins over a tick that raced with it.
			if ctx.Err() != nil {
				return nil
			}
			t.drain()
			step()
		}
	}
}

// drain runs posted functions in submission order.
func (t *Ticker) drain() {
	t.mu.Lock()
	fns := t.posted
	t.posted = nil
	t.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

var _ Source = (*Ticker)(nil)
