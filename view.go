package renderview

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/renderview/displaylink"
	"github.com/gogpu/renderview/surface"
)

// View drives frame production for a drawable surface.
//
// A View owns a surface.Provider, checks the drawable size once per tick
// and asks its Delegate for a frame whenever a redraw is pending. Ticks
// come from a displaylink.Source (see Run) or from the host calling Tick
// directly.
//
// View is NOT thread-safe. Tick, RequestRedraw and the setters must be
// called from the render loop's goroutine; other goroutines marshal their
// calls onto it, e.g. with displaylink.Ticker.Post.
//
// Example:
//
//	provider := surface.NewImageProvider(surface.DefaultOptions(0, 0))
//	v, err := renderview.New(renderview.Size{Width: 400, Height: 300}, provider,
//		renderview.WithDelegate(r))
//	if err != nil {
//		return err
//	}
//	return v.Run(ctx, displaylink.NewTicker(60))
type View struct {
	provider   surface.Provider
	delegate   Delegate
	clearColor gputypes.Color
	log        *slog.Logger

	frame  Size
	scale  float64
	window gpucontext.WindowProvider

	device    gpucontext.DeviceProvider
	deviceSet bool
	format    gputypes.TextureFormat
	formatSet bool

	state            frameState
	lastDrawableSize Size

	// ticking guards Tick against re-entry from a delegate callback.
	ticking bool
	running atomic.Bool

	stats Stats
}

// New creates a view with the given logical frame size on top of provider.
//
// Setup runs immediately unless WithDeferredSetup is given: the device (if
// any) and pixel format are applied to the provider, and the view becomes
// ready with a redraw pending. The first tick then reports the initial
// drawable size to the delegate and draws.
func New(frame Size, provider surface.Provider, opts ...Option) (*View, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	v := &View{
		provider:   provider,
		delegate:   o.delegate,
		clearColor: o.clearColor,
		log:        o.logger,
		frame:      frame,
		scale:      o.scale,
		window:     o.window,
		device:     o.device,
		format:     o.format,
	}

	if !o.deferredSetup {
		if err := v.Setup(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// NewDefault creates a view with a zero frame size. The size is usually
// supplied later with SetFrameSize or by a window given with WithWindow.
func NewDefault(provider surface.Provider, opts ...Option) (*View, error) {
	return New(Size{}, provider, opts...)
}

// Setup wires the device and pixel format onto the provider and marks the
// view ready with a redraw pending. New calls it unless WithDeferredSetup
// was given. Calling it on a ready view returns ErrAlreadySetUp.
//
// A failed Setup leaves the view unready; steps that already succeeded are
// not repeated on the next attempt.
func (v *View) Setup() error {
	if v.state.ready() {
		return ErrAlreadySetUp
	}

	if v.device != nil && !v.deviceSet {
		if err := v.provider.SetDevice(v.device); err != nil {
			return fmt.Errorf("renderview: set device: %w", err)
		}
		v.deviceSet = true
	}
	if !v.formatSet {
		if err := v.provider.SetPixelFormat(v.format); err != nil {
			return fmt.Errorf("renderview: set pixel format %v: %w", v.format, err)
		}
		v.formatSet = true
	}

	v.state = statePending
	v.logger().Info("renderview: view ready",
		"frame", v.frame,
		"format", v.format,
		"device", v.device != nil)
	return nil
}

// SetDevice replaces the device applied during Setup. It is only allowed
// before the view is ready and returns ErrAlreadySetUp afterwards.
func (v *View) SetDevice(device gpucontext.DeviceProvider) error {
	if v.state.ready() || v.deviceSet {
		return ErrAlreadySetUp
	}
	v.device = device
	return nil
}

// SetPixelFormat replaces the pixel format applied during Setup. It is only
// allowed before the view is ready and returns ErrAlreadySetUp afterwards.
func (v *View) SetPixelFormat(format gputypes.TextureFormat) error {
	if v.state.ready() || v.formatSet {
		return ErrAlreadySetUp
	}
	v.format = format
	return nil
}

// Tick runs one step of the render loop.
//
// While the view is unready Tick does nothing. Otherwise it first checks
// the drawable size, notifying the delegate of a change, and then draws if
// a redraw is pending. A Tick called from inside a delegate callback returns
// immediately and is counted in Stats.SkippedTicks.
func (v *View) Tick() {
	if !v.state.ready() {
		return
	}
	if v.ticking {
		v.stats.SkippedTicks++
		return
	}
	v.ticking = true
	defer func() { v.ticking = false }()

	v.stats.Ticks++

	v.UpdateDrawableSizeIfNeeded()

	if v.state.needsRedraw() {
		v.draw()
	}
}

// draw dispatches one frame to the delegate.
func (v *View) draw() {
	v.state = v.state.beginDraw()

	start := time.Now()
	if d := v.Delegate(); d != nil {
		d.Draw(v)
	}
	elapsed := time.Since(start)

	v.stats.FramesDrawn++
	v.stats.LastDrawDuration = elapsed
	v.state = v.state.endDraw()

	v.logger().Debug("renderview: frame drawn",
		"frame", v.stats.FramesDrawn,
		"duration", elapsed,
		"pending", v.state.needsRedraw())
}

// RequestRedraw asks for a frame on the next tick. Repeated requests before
// that tick collapse into one. A request made while the delegate is drawing
// is served on the following tick. Requests on an unready view are ignored:
// Setup always leaves a redraw pending.
//
// If the view has a window, the request is forwarded to it so hosts that
// render on demand schedule a tick.
func (v *View) RequestRedraw() {
	v.state = v.state.requestRedraw()
	if v.window != nil {
		v.window.RequestRedraw()
	}
}

// NeedsRedraw reports whether a redraw is pending.
func (v *View) NeedsRedraw() bool {
	return v.state.needsRedraw()
}

// IsReady reports whether setup has completed.
func (v *View) IsReady() bool {
	return v.state.ready()
}

// UpdateDrawableSizeIfNeeded recomputes the drawable size from the logical
// frame size and scale factor, and calls UpdateDrawableSize if it differs
// from the last known size. It does nothing on an unready view.
func (v *View) UpdateDrawableSizeIfNeeded() {
	if !v.state.ready() {
		return
	}
	logical, scale := v.bounds()
	if size, changed := detectSizeChange(logical, scale, v.lastDrawableSize); changed {
		v.updateDrawableSize(size, scale)
	}
}

// UpdateDrawableSize notifies the delegate of the current drawable size,
// applies it to the provider and records it, whether or not it changed.
// Zero dimensions are passed through unchanged. A size update also marks
// a redraw pending. It does nothing on an unready view.
func (v *View) UpdateDrawableSize() {
	if !v.state.ready() {
		return
	}
	logical, scale := v.bounds()
	v.updateDrawableSize(logical.Scale(scale), scale)
}

func (v *View) updateDrawableSize(size Size, scale float64) {
	v.logger().Debug("renderview: drawable size will change",
		"from", v.lastDrawableSize,
		"to", size,
		"scale", scale)

	if d := v.Delegate(); d != nil {
		d.DrawableSizeWillChange(v, size)
	}
	v.provider.SetDrawableSize(size.Pixels())
	v.lastDrawableSize = size
	v.stats.Resizes++
	v.state = v.state.requestRedraw()
}

// bounds returns the logical size and scale factor for this tick.
func (v *View) bounds() (Size, float64) {
	if v.window == nil {
		return v.frame, v.scale
	}
	w, h := v.window.Size()
	scale := v.window.ScaleFactor()
	if !validScale(scale) {
		scale = 1.0
	}
	return Size{Width: float64(w), Height: float64(h)}, scale
}

// Run attaches the view's Tick to src and blocks until ctx is cancelled.
// Cancelling ctx detaches the view; a tick in progress runs to completion.
// A view can be attached to one source at a time; Run returns ErrRunning
// otherwise.
func (v *View) Run(ctx context.Context, src displaylink.Source) error {
	if src == nil {
		return ErrNilSource
	}
	if !v.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer v.running.Store(false)

	v.logger().Info("renderview: render loop started")
	err := src.Run(ctx, v.Tick)
	v.logger().Info("renderview: render loop stopped", "stats", v.stats.String())
	if err != nil {
		return fmt.Errorf("renderview: run: %w", err)
	}
	return nil
}

// Running reports whether Run is active.
func (v *View) Running() bool {
	return v.running.Load()
}

// Stats returns the render loop counters.
func (v *View) Stats() Stats {
	return v.stats
}

// Delegate returns the delegate, or nil if none is attached or a weak
// delegate has been collected.
func (v *View) Delegate() Delegate {
	if l, ok := v.delegate.(liveness); ok && !l.alive() {
		return nil
	}
	return v.delegate
}

// SetDelegate replaces the delegate. Pass nil to detach it.
func (v *View) SetDelegate(d Delegate) {
	v.delegate = d
}

// ClearColor returns the clear color used by CurrentRenderPassDescriptor.
func (v *View) ClearColor() gputypes.Color {
	return v.clearColor
}

// SetClearColor sets the clear color. It takes effect for the next
// descriptor built.
func (v *View) SetClearColor(c gputypes.Color) {
	v.clearColor = c
}

// CurrentDrawable asks the provider for a drawable. It returns nil when
// none is available, which is normal during a resize or when every
// drawable is in flight.
//
// Each call acquires a new drawable. Call it once per frame and present
// or discard what it returns.
func (v *View) CurrentDrawable() surface.Drawable {
	d := v.provider.NextDrawable()
	if d == nil {
		v.logger().Debug("renderview: no drawable available",
			"size", v.provider.DrawableSize())
	}
	return d
}

// CurrentRenderPassDescriptor acquires a drawable and returns a descriptor
// that clears it to the clear color. It returns nil when no drawable is
// available. The drawable is reachable through the descriptor's Drawable
// field.
func (v *View) CurrentRenderPassDescriptor() *RenderPassDescriptor {
	return BuildRenderPassDescriptor(v.CurrentDrawable(), v.clearColor)
}

// Provider returns the view's surface provider.
func (v *View) Provider() surface.Provider {
	return v.provider
}

// Device returns the device attached to the provider, or nil.
func (v *View) Device() gpucontext.DeviceProvider {
	return v.provider.Device()
}

// PixelFormat returns the provider's pixel format.
func (v *View) PixelFormat() gputypes.TextureFormat {
	return v.provider.PixelFormat()
}

// FrameSize returns the logical frame size set with New or SetFrameSize.
func (v *View) FrameSize() Size {
	return v.frame
}

// SetFrameSize sets the logical frame size. The next tick picks up the
// change. It has no effect on the drawable size while a window is attached.
func (v *View) SetFrameSize(s Size) {
	v.frame = s
}

// ScaleFactor returns the current logical-to-pixel scale factor.
func (v *View) ScaleFactor() float64 {
	_, scale := v.bounds()
	return scale
}

// DrawableSize returns the drawable size recorded at the last size update,
// in pixels. It is zero until the first tick after setup.
func (v *View) DrawableSize() Size {
	return v.lastDrawableSize
}

// logger returns the view's logger, falling back to the package logger.
func (v *View) logger() *slog.Logger {
	if v.log != nil {
		return v.log
	}
	return Logger()
}
