// Package renderview provides a render-loop controller for hosts that have
// no native GPU view.
//
// # Overview
//
// A View owns a drawable surface (a surface.Provider), watches its logical
// size and scale factor, and asks a Delegate for a frame whenever a redraw
// is pending. Ticks are delivered by an external display link; the view
// never starts goroutines of its own.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/renderview"
//	    "github.com/gogpu/renderview/displaylink"
//	    "github.com/gogpu/renderview/surface"
//	)
//
//	provider, _ := surface.NewProvider(surface.DefaultOptions(0, 0))
//	v, _ := renderview.New(renderview.Size{Width: 800, Height: 600}, provider,
//	    renderview.WithDelegate(myRenderer),
//	    renderview.WithScaleFactor(2))
//
//	// Blocks until ctx is cancelled.
//	_ = v.Run(ctx, displaylink.NewTicker(displaylink.DefaultRefreshRate))
//
// # Frame Lifecycle
//
// Each tick runs two steps, in order:
//
//  1. Size check. The logical frame size multiplied by the scale factor is
//     compared with the last drawable size. On any difference the delegate's
//     DrawableSizeWillChange is called, the provider is resized and a redraw
//     is requested. Zero dimensions are passed through.
//  2. Draw. If a redraw is pending the delegate's Draw is called. The
//     delegate acquires a drawable with CurrentDrawable or
//     CurrentRenderPassDescriptor, renders and presents it.
//
// Before setup completes (see WithDeferredSetup) ticks do nothing. A redraw
// requested while Draw is running is served on the next tick.
//
// # Threading
//
// View is driven from a single goroutine, the one that calls Tick.
// Requests from other goroutines must be marshaled onto it:
//
//	link := displaylink.NewTicker(60)
//	go func() { _ = v.Run(ctx, link) }()
//
//	// elsewhere
//	link.Post(v.RequestRedraw)
//
// # Delegates
//
// The view does not own its delegate. When the delegate owns the view, wrap
// it with Weak so the pair can be collected; a collected delegate turns both
// callbacks into no-ops.
//
// # Logging
//
// renderview is silent by default. Use SetLogger for a package-wide logger
// or WithLogger for a single view.
package renderview
