// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package displaylink

import (
	"context"
	"sync"
	"sync/atomic"
)

// Manual is a host-pumped Source. The host calls Pump from its own frame
// callback (a windowing toolkit's paint event, a test, ...) and each Pump
// delivers exactly one tick.
//
//	link := &displaylink.Manual{}
//	detach, _ := link.Attach(view.Tick)
//	defer detach()
//
//	link.Pump() // one frame
type Manual struct {
	mu   sync.Mutex
	step func()

	// pumping guards against overlapping steps: a Pump issued while
	// another is in progress is dropped.
	pumping atomic.Bool
}

// Attach installs step and returns a function that detaches it.
func (m *Manual) Attach(step func()) (detach func(), err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.step != nil {
		return nil, ErrAttached
	}
	m.step = step

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.step = nil
			m.mu.Unlock()
		})
	}, nil
}

// Run attaches step and blocks until ctx is done.
func (m *Manual) Run(ctx context.Context, step func()) error {
	detach, err := m.Attach(step)
	if err != nil {
		return err
	}
	defer detach()

	<-ctx.Done()
	return nil
}

// Attached reports whether a step is installed.
func (m *Manual) Attached() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step != nil
}

// Pump delivers one tick. It reports false when no step is attached or
// when another tick is still in progress.
func (m *Manual) Pump() bool {
	m.mu.Lock()
	step := m.step
	m.mu.Unlock()

	if step == nil {
		return false
	}
	if !m.pumping.CompareAndSwap(false, true) {
		return false
	}
	defer m.pumping.Store(false)

	step()
	return true
}

var _ Source = (*Manual)(nil)
