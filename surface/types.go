// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Size is a drawable size in physical pixels.
type Size struct {
	Width  int
	Height int
}

// IsEmpty reports whether either dimension is zero or negative.
// An empty target produces no drawables.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// String returns the size as "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// DefaultMaxDrawables is the number of drawables a provider keeps in
// flight when Options.MaxDrawables is zero (triple buffering).
const DefaultMaxDrawables = 3

// Options configures provider creation.
type Options struct {
	// Width is the initial drawable width in pixels.
	Width int

	// Height is the initial drawable height in pixels.
	Height int

	// Format is the drawable pixel format.
	// Default: gputypes.TextureFormatRGBA8Unorm
	Format gputypes.TextureFormat

	// Device is the GPU device. Software providers accept nil.
	Device gpucontext.DeviceProvider

	// MaxDrawables caps the number of drawables in flight.
	// Default: DefaultMaxDrawables
	MaxDrawables int

	// Native is a backend-specific handle, e.g. *wgpu.Surface for the
	// "wgpu" backend.
	Native any
}

// DefaultOptions returns Options with default values.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:        width,
		Height:       height,
		Format:       gputypes.TextureFormatRGBA8Unorm,
		MaxDrawables: DefaultMaxDrawables,
	}
}

// WithDefaults returns a copy of o with unset fields filled in.
func (o Options) WithDefaults() Options {
	if o.Format == gputypes.TextureFormatUndefined {
		o.Format = gputypes.TextureFormatRGBA8Unorm
	}
	if o.MaxDrawables <= 0 {
		o.MaxDrawables = DefaultMaxDrawables
	}
	return o
}
