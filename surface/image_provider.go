// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/draw"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// ImageProvider is a CPU-backed Provider whose drawables are *image.RGBA
// buffers.
//
// Buffers are pooled: at most Options.MaxDrawables drawables are in flight
// at once, and NextDrawable returns nil when the pool is exhausted. Present
// copies the drawable into a front buffer that stands in for the display.
//
// Example:
//
//	p := surface.NewImageProvider(surface.DefaultOptions(800, 600))
//	d := p.NextDrawable().(*surface.ImageDrawable)
//	draw.Draw(d.Image(), d.Image().Bounds(), image.White, image.Point{}, draw.Src)
//	_ = d.Present()
//	frame := p.Front()
type ImageProvider struct {
	size      Size
	format    gputypes.TextureFormat
	formatSet bool
	device    gpucontext.DeviceProvider
	deviceSet bool

	maxDrawables int
	inFlight     int
	free         []*image.RGBA

	// generation increments on every size change; drawables from an
	// older generation are stale.
	generation uint64

	front     *image.RGBA
	presented int
}

// NewImageProvider creates a software provider.
// Options.Format is the initial format; SetPixelFormat may still set it once.
func NewImageProvider(opts Options) *ImageProvider {
	opts = opts.WithDefaults()
	return &ImageProvider{
		size:         Size{Width: max(opts.Width, 0), Height: max(opts.Height, 0)},
		format:       opts.Format,
		device:       opts.Device,
		maxDrawables: opts.MaxDrawables,
	}
}

// NextDrawable returns a pooled drawable, or nil if the target is empty or
// every drawable is in flight.
func (p *ImageProvider) NextDrawable() Drawable {
	if p.size.IsEmpty() || p.inFlight >= p.maxDrawables {
		return nil
	}

	var img *image.RGBA
	if n := len(p.free); n > 0 {
		img = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		img = image.NewRGBA(image.Rect(0, 0, p.size.Width, p.size.Height))
	}
	p.inFlight++

	return &ImageDrawable{
		provider:   p,
		texture:    &ImageTexture{img: img, format: p.format},
		generation: p.generation,
	}
}

// SetDrawableSize sets the drawable size. Pooled buffers of the old size are
// dropped and outstanding drawables become stale.
func (p *ImageProvider) SetDrawableSize(size Size) {
	if size == p.size {
		return
	}
	p.size = size
	p.generation++
	p.free = nil
}

// DrawableSize returns the current drawable size.
func (p *ImageProvider) DrawableSize() Size {
	return p.size
}

// SetDevice records the device. The software provider never uses it.
func (p *ImageProvider) SetDevice(device gpucontext.DeviceProvider) error {
	if p.deviceSet {
		return ErrAlreadyConfigured
	}
	p.device = device
	p.deviceSet = true
	return nil
}

// Device returns the attached device, or nil.
func (p *ImageProvider) Device() gpucontext.DeviceProvider {
	return p.device
}

// SetPixelFormat sets the drawable format. Only four-channel 8-bit formats
// can be backed by an *image.RGBA.
func (p *ImageProvider) SetPixelFormat(format gputypes.TextureFormat) error {
	if p.formatSet {
		return ErrAlreadyConfigured
	}
	if !isRGBA8(format) {
		return ErrUnsupportedFormat
	}
	p.format = format
	p.formatSet = true
	return nil
}

// PixelFormat returns the drawable format.
func (p *ImageProvider) PixelFormat() gputypes.TextureFormat {
	return p.format
}

// InFlight returns the number of drawables acquired but not yet presented
// or discarded.
func (p *ImageProvider) InFlight() int {
	return p.inFlight
}

// Presented returns the number of drawables presented so far.
func (p *ImageProvider) Presented() int {
	return p.presented
}

// Front returns a copy of the most recently presented frame, or nil if
// nothing has been presented.
func (p *ImageProvider) Front() *image.RGBA {
	if p.front == nil {
		return nil
	}
	out := image.NewRGBA(p.front.Bounds())
	copy(out.Pix, p.front.Pix)
	return out
}

// release returns a drawable's buffer to the pool.
func (p *ImageProvider) release(d *ImageDrawable) {
	p.inFlight--
	if d.generation == p.generation {
		p.free = append(p.free, d.texture.img)
	}
}

// present copies a drawable into the front buffer.
func (p *ImageProvider) present(img *image.RGBA) {
	if p.front == nil || p.front.Bounds() != img.Bounds() {
		p.front = image.NewRGBA(img.Bounds())
	}
	draw.Draw(p.front, p.front.Bounds(), img, image.Point{}, draw.Src)
	p.presented++
}

func isRGBA8(format gputypes.TextureFormat) bool {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm,
		gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm,
		gputypes.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}

// ImageDrawable is a drawable handed out by ImageProvider.
type ImageDrawable struct {
	provider   *ImageProvider
	texture    *ImageTexture
	generation uint64
	released   bool
}

// Texture returns the drawable's texture.
func (d *ImageDrawable) Texture() Texture {
	return d.texture
}

// Image returns the drawable's pixel buffer.
func (d *ImageDrawable) Image() *image.RGBA {
	return d.texture.img
}

// Present copies the drawable into the provider's front buffer.
func (d *ImageDrawable) Present() error {
	if d.released {
		return ErrDrawableReleased
	}
	d.released = true
	d.provider.release(d)

	if d.generation != d.provider.generation {
		return ErrStaleDrawable
	}
	d.provider.present(d.texture.img)
	return nil
}

// Discard returns the buffer to the pool without presenting.
func (d *ImageDrawable) Discard() {
	if d.released {
		return
	}
	d.released = true
	d.provider.release(d)
}

// ImageTexture is the texture of an ImageDrawable.
type ImageTexture struct {
	img    *image.RGBA
	format gputypes.TextureFormat
}

// Width returns the texture width in pixels.
func (t *ImageTexture) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the texture height in pixels.
func (t *ImageTexture) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the texture pixel format.
func (t *ImageTexture) Format() gputypes.TextureFormat {
	return t.format
}

// RGBA returns the backing image.
func (t *ImageTexture) RGBA() *image.RGBA {
	return t.img
}

var (
	_ Provider = (*ImageProvider)(nil)
	_ Drawable = (*ImageDrawable)(nil)
	_ Texture  = (*ImageTexture)(nil)
)
