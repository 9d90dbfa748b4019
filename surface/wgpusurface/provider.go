// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpusurface implements surface.Provider on top of a gogpu/wgpu
// surface.
//
// The provider configures the wgpu surface whenever the device, pixel format
// or drawable size changes, and hands out one drawable per acquired surface
// texture. Importing the package registers the "wgpu" backend:
//
//	import _ "github.com/gogpu/renderview/surface/wgpusurface"
//
//	opts := surface.DefaultOptions(w, h)
//	opts.Native = wgpuSurface
//	opts.Device = app.GPUContextProvider()
//	provider, err := surface.NewProvider(opts)
package wgpusurface

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/renderview"
	"github.com/gogpu/renderview/surface"
)

// Errors returned by the wgpu provider.
var (
	// ErrNilSurface is returned by New when no wgpu surface is given.
	ErrNilSurface = errors.New("wgpusurface: nil surface")

	// ErrNotWGPUSurface is returned by the registry factory when
	// surface.Options.Native does not hold a *wgpu.Surface.
	ErrNotWGPUSurface = errors.New("wgpusurface: native handle is not a *wgpu.Surface")

	// ErrNotWGPUDevice is returned by SetDevice when the provider's device
	// is not a *wgpu.Device.
	ErrNotWGPUDevice = errors.New("wgpusurface: device is not a *wgpu.Device")
)

// Provider is a surface.Provider backed by a *wgpu.Surface.
//
// A wgpu surface has at most one texture acquired at a time. Acquiring a new
// drawable while the previous one is outstanding discards the previous one,
// which then fails to present with surface.ErrDrawableReleased.
//
// Provider is NOT thread-safe.
type Provider struct {
	surface *wgpu.Surface

	deviceProvider gpucontext.DeviceProvider
	device         *wgpu.Device
	deviceSet      bool

	format    gputypes.TextureFormat
	formatSet bool

	presentMode gputypes.PresentMode
	alphaMode   gputypes.CompositeAlphaMode

	size       surface.Size
	configured bool

	// generation increments on every size change; drawables from an
	// older generation are stale.
	generation uint64
	current    *Drawable
}

// New creates a provider for s. The surface is configured as soon as a
// device is attached and the drawable size is non-empty.
func New(s *wgpu.Surface, opts surface.Options) (*Provider, error) {
	if s == nil {
		return nil, ErrNilSurface
	}
	opts = opts.WithDefaults()

	p := &Provider{
		surface:     s,
		format:      opts.Format,
		presentMode: gputypes.PresentModeFifo,
		alphaMode:   gputypes.CompositeAlphaModeOpaque,
		size:        surface.Size{Width: max(opts.Width, 0), Height: max(opts.Height, 0)},
	}
	if opts.Device != nil {
		if err := p.SetDevice(opts.Device); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// NextDrawable acquires the surface's current texture. It returns nil when
// the surface is not configured or the texture cannot be acquired, e.g.
// while the window is being resized.
func (p *Provider) NextDrawable() surface.Drawable {
	if !p.configured {
		return nil
	}
	if p.current != nil {
		p.current.Discard()
	}

	st, suboptimal, err := p.surface.GetCurrentTexture()
	if err != nil {
		renderview.Logger().Warn("wgpusurface: acquire texture failed", "err", err)
		return nil
	}
	if suboptimal {
		renderview.Logger().Debug("wgpusurface: suboptimal surface texture", "size", p.size)
	}

	view, err := st.CreateView(nil)
	if err != nil {
		p.surface.DiscardTexture()
		renderview.Logger().Warn("wgpusurface: create texture view failed", "err", err)
		return nil
	}

	d := &Drawable{
		provider:   p,
		surfaceTex: st,
		texture: &Texture{
			view:   view,
			width:  p.size.Width,
			height: p.size.Height,
			format: p.format,
		},
		generation: p.generation,
	}
	p.current = d
	return d
}

// SetDrawableSize reconfigures the surface for size. A zero dimension
// unconfigures it; no drawables are produced until the size is non-empty.
func (p *Provider) SetDrawableSize(size surface.Size) {
	if size == p.size {
		return
	}
	p.size = size
	p.generation++
	if p.current != nil {
		// The outstanding drawable stays stale; presenting it reports
		// surface.ErrStaleDrawable.
		p.surface.DiscardTexture()
		p.current = nil
	}
	p.configure()
}

// DrawableSize returns the configured size in pixels.
func (p *Provider) DrawableSize() surface.Size {
	return p.size
}

// SetDevice attaches the device whose queue presents the surface. The
// provider's Device must be a *wgpu.Device. It may be called once.
func (p *Provider) SetDevice(device gpucontext.DeviceProvider) error {
	if p.deviceSet {
		return surface.ErrAlreadyConfigured
	}
	if device != nil {
		dev, ok := device.Device().(*wgpu.Device)
		if !ok || dev == nil {
			return fmt.Errorf("%w: got %T", ErrNotWGPUDevice, device.Device())
		}
		p.device = dev
	}
	p.deviceProvider = device
	p.deviceSet = true
	p.configure()
	return nil
}

// Device returns the attached device, or nil.
func (p *Provider) Device() gpucontext.DeviceProvider {
	return p.deviceProvider
}

// SetPixelFormat sets the surface texture format. It may be called once.
func (p *Provider) SetPixelFormat(format gputypes.TextureFormat) error {
	if p.formatSet {
		return surface.ErrAlreadyConfigured
	}
	if format == gputypes.TextureFormatUndefined {
		return surface.ErrUnsupportedFormat
	}
	p.format = format
	p.formatSet = true
	p.configure()
	return nil
}

// PixelFormat returns the surface texture format.
func (p *Provider) PixelFormat() gputypes.TextureFormat {
	return p.format
}

// Configured reports whether the wgpu surface is currently configured.
func (p *Provider) Configured() bool {
	return p.configured
}

// Config returns the configuration applied to the wgpu surface for the
// current state.
func (p *Provider) Config() wgpu.SurfaceConfiguration {
	return wgpu.SurfaceConfiguration{
		Width:       uint32(p.size.Width),
		Height:      uint32(p.size.Height),
		Format:      p.format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: p.presentMode,
		AlphaMode:   p.alphaMode,
	}
}

// Release unconfigures the surface and drops the outstanding drawable.
// The wgpu surface itself belongs to the caller.
func (p *Provider) Release() {
	if p.current != nil {
		p.current.Discard()
	}
	if p.configured {
		p.surface.Unconfigure()
		p.configured = false
	}
}

// configure applies Config to the surface, or unconfigures it when the
// size is empty. Failures leave the provider unconfigured.
func (p *Provider) configure() {
	if p.device == nil {
		return
	}
	if p.size.IsEmpty() {
		if p.configured {
			p.surface.Unconfigure()
			p.configured = false
		}
		return
	}

	cfg := p.Config()
	if err := p.surface.Configure(p.device, &cfg); err != nil {
		p.configured = false
		renderview.Logger().Warn("wgpusurface: configure failed",
			"size", p.size, "format", p.format, "err", err)
		return
	}
	p.configured = true
	renderview.Logger().Debug("wgpusurface: configured", "size", p.size, "format", p.format)
}

var _ surface.Provider = (*Provider)(nil)

func init() {
	surface.Register(surface.Backend{
		Name:     "wgpu",
		Priority: 100,
		Accepts: func(opts surface.Options) bool {
			s, ok := opts.Native.(*wgpu.Surface)
			return ok && s != nil && opts.Format != gputypes.TextureFormatUndefined
		},
		New: func(opts surface.Options) (surface.Provider, error) {
			s, ok := opts.Native.(*wgpu.Surface)
			if !ok {
				return nil, fmt.Errorf("%w: got %T", ErrNotWGPUSurface, opts.Native)
			}
			return New(s, opts)
		},
	})
}
