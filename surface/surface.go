// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Provider is the persistent object behind a sequence of drawables.
//
// A Provider owns the pixel format, the target drawable size and the
// (optional) GPU device. It hands out one Drawable per request; drawables
// are never cached by the provider on the caller's behalf.
//
// Providers are NOT thread-safe. They are driven from the render loop's
// goroutine, or external synchronization must be used.
//
// Example:
//
//	p := surface.NewImageProvider(surface.DefaultOptions(800, 600))
//	if d := p.NextDrawable(); d != nil {
//	    // render into d.Texture()
//	    _ = d.Present()
//	}
type Provider interface {
	// NextDrawable returns a drawable to render into for this frame.
	// Returns nil if the provider cannot produce one right now (all
	// drawables in flight, zero-sized target, not configured). It never
	// blocks beyond the backend's own acquisition timeout.
	NextDrawable() Drawable

	// SetDrawableSize sets the backing store's pixel dimensions.
	// Calling it with the current size is a no-op. Drawables acquired
	// before a size change become stale.
	SetDrawableSize(size Size)

	// DrawableSize returns the current target size in pixels.
	DrawableSize() Size

	// SetDevice attaches the GPU device. It may be called once;
	// later calls return ErrAlreadyConfigured. A nil provider means
	// the surface runs without a device.
	SetDevice(device gpucontext.DeviceProvider) error

	// Device returns the attached device, or nil.
	Device() gpucontext.DeviceProvider

	// SetPixelFormat sets the drawable texture format. It may be called
	// once; later calls return ErrAlreadyConfigured.
	SetPixelFormat(format gputypes.TextureFormat) error

	// PixelFormat returns the drawable texture format.
	PixelFormat() gputypes.TextureFormat
}

// Drawable is an ephemeral per-frame handle to a presentable render target.
//
// A drawable is valid until it is presented or discarded, or until the
// provider's drawable size changes, whichever comes first.
type Drawable interface {
	// Texture returns the texture to render into.
	Texture() Texture

	// Present queues the drawable for display and returns its buffer to
	// the provider. Presenting a stale drawable returns ErrStaleDrawable.
	Present() error

	// Discard returns the drawable to the provider without presenting.
	// Discard after Present is a no-op.
	Discard()
}

// Texture is the render target of a drawable.
type Texture interface {
	gpucontext.Texture

	// Format returns the texture pixel format.
	Format() gputypes.TextureFormat
}

// Errors returned by providers and drawables.
var (
	// ErrAlreadyConfigured is returned when the device or pixel format is
	// set a second time.
	ErrAlreadyConfigured = errors.New("surface: already configured")

	// ErrStaleDrawable is returned when a drawable acquired before a size
	// change is presented.
	ErrStaleDrawable = errors.New("surface: stale drawable")

	// ErrDrawableReleased is returned when a drawable is presented twice or
	// presented after Discard.
	ErrDrawableReleased = errors.New("surface: drawable already released")

	// ErrUnsupportedFormat is returned for pixel formats a provider cannot
	// back.
	ErrUnsupportedFormat = errors.New("surface: unsupported pixel format")
)
