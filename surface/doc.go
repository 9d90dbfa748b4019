// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the drawable-producing layer behind a render view.
//
// A Provider is the persistent object that owns the pixel format, the
// target drawable size and the GPU device. Each frame, the renderer pulls a
// Drawable from it, renders into the drawable's Texture and presents it.
// Drawables are ephemeral: they are never cached across frames, and a size
// change invalidates every drawable acquired before it.
//
// # Providers
//
//   - ImageProvider: CPU-backed drawables (*image.RGBA) with a bounded pool
//   - wgpusurface.Provider: swapchain drawables from a *wgpu.Surface
//   - Third-party backends via the registry
//
// # Absence is not an error
//
// NextDrawable returns nil when no drawable can be produced right now
// (pool exhausted, zero-sized target, surface reconfiguring). Callers skip
// the frame and try again on the next tick.
//
// # Registry
//
// Backends register a factory, a priority and an Accepts check:
//
//	surface.Register(surface.Backend{Name: "wgpu", Priority: 100, Accepts: accepts, New: factory})
//
//	// Later:
//	p, err := surface.NewProviderByName("wgpu", opts)
//	// or the highest-priority backend that accepts opts:
//	p, err := surface.NewProvider(opts)
//
// When no backend succeeds, NewProvider returns a *SelectionError holding
// one *BackendError per backend.
//
// # Usage
//
//	p := surface.NewImageProvider(surface.DefaultOptions(800, 600))
//
//	d := p.NextDrawable()
//	if d == nil {
//	    return // try again next frame
//	}
//	img := d.(*surface.ImageDrawable).Image()
//	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
//	if err := d.Present(); err != nil {
//	    log.Printf("present: %v", err)
//	}
package surface
