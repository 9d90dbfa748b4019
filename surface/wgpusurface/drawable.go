// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpusurface

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/renderview/surface"
)

// Drawable is one acquired wgpu surface texture.
type Drawable struct {
	provider   *Provider
	surfaceTex *wgpu.SurfaceTexture
	texture    *Texture
	generation uint64
	released   bool
}

// Texture returns the drawable's texture.
func (d *Drawable) Texture() surface.Texture {
	return d.texture
}

// View returns the texture view to use as a render-pass color attachment.
func (d *Drawable) View() *wgpu.TextureView {
	return d.texture.view
}

// Present presents the surface texture.
func (d *Drawable) Present() error {
	if d.released {
		return surface.ErrDrawableReleased
	}
	if d.generation != d.provider.generation {
		d.release()
		return surface.ErrStaleDrawable
	}

	err := d.provider.surface.Present(d.surfaceTex)
	d.release()
	if err != nil {
		return fmt.Errorf("wgpusurface: present: %w", err)
	}
	return nil
}

// Discard gives the surface texture back without presenting it.
func (d *Drawable) Discard() {
	if d.released {
		return
	}
	if d.provider.current == d {
		d.provider.surface.DiscardTexture()
	}
	d.release()
}

func (d *Drawable) release() {
	d.released = true
	if d.texture.view != nil {
		d.texture.view.Release()
		d.texture.view = nil
	}
	if d.provider.current == d {
		d.provider.current = nil
	}
}

// Texture describes a surface texture.
type Texture struct {
	view   *wgpu.TextureView
	width  int
	height int
	format gputypes.TextureFormat
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Format returns the texture format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// View returns the texture view, or nil once the drawable is released.
func (t *Texture) View() *wgpu.TextureView { return t.view }

var (
	_ surface.Drawable = (*Drawable)(nil)
	_ surface.Texture  = (*Texture)(nil)
)
