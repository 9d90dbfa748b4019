// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package displaylink provides tick sources that stand in for a display
// refresh callback.
//
// A Source calls one step function per refresh. Steps are strictly
// sequential: a source never starts a step while the previous one is still
// running, and a slow step delays later ticks instead of overlapping them.
// Detaching a source is done by cancelling the context passed to Run.
//
//	link := displaylink.NewTicker(displaylink.DefaultRefreshRate)
//	go func() {
//	    _ = link.Run(ctx, view.Tick)
//	}()
//
//	// From any goroutine:
//	link.Post(view.RequestRedraw)
package displaylink

import (
	"context"
	"errors"
)

// Source delivers ticks to a step function.
type Source interface {
	// Run calls step once per tick until ctx is done.
	// It returns nil when ctx is cancelled, or an error if the source
	// could not be attached.
	Run(ctx context.Context, step func()) error
}

// ErrAttached is returned by Run when the source already drives a step.
var ErrAttached = errors.New("displaylink: source already attached")
