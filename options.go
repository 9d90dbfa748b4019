package renderview

import (
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Option configures a View during creation.
// Use functional options to customize View behavior.
//
// Example:
//
//	// Software drawables, default format, black clear color
//	v, err := renderview.New(renderview.Size{Width: 800, Height: 600}, provider)
//
//	// HiDPI window with a delegate
//	v, err := renderview.New(frame, provider,
//		renderview.WithWindow(app),
//		renderview.WithDelegate(r),
//	)
type Option func(*options)

// options holds optional configuration for View creation.
type options struct {
	device        gpucontext.DeviceProvider
	format        gputypes.TextureFormat
	clearColor    gputypes.Color
	delegate      Delegate
	window        gpucontext.WindowProvider
	scale         float64
	deferredSetup bool
	logger        *slog.Logger
}

// defaultOptions returns the default view options.
func defaultOptions() options {
	return options{
		format:     gputypes.TextureFormatRGBA8Unorm,
		clearColor: gputypes.ColorBlack,
		scale:      1.0,
	}
}

// WithDevice attaches a GPU device to the view's surface during setup.
// Without it the surface keeps whatever device it was created with, which
// may be none.
func WithDevice(device gpucontext.DeviceProvider) Option {
	return func(o *options) {
		o.device = device
	}
}

// WithPixelFormat sets the drawable pixel format.
// Default: gputypes.TextureFormatRGBA8Unorm.
func WithPixelFormat(format gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithClearColor sets the initial clear color used by
// CurrentRenderPassDescriptor. Default: opaque black.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithDelegate sets the initial delegate. The view does not own it.
func WithDelegate(d Delegate) Option {
	return func(o *options) {
		o.delegate = d
	}
}

// WithWindow makes the view read its logical bounds and scale factor from
// w on every tick instead of from SetFrameSize. RequestRedraw is forwarded
// to w so on-demand hosts schedule a frame.
//
// Example:
//
//	wp := gpucontext.NullWindowProvider{W: 800, H: 600, SF: 2.0}
//	v, _ := renderview.NewDefault(provider, renderview.WithWindow(wp))
func WithWindow(w gpucontext.WindowProvider) Option {
	return func(o *options) {
		o.window = w
	}
}

// WithScaleFactor sets the logical-to-pixel scale factor used when no
// window is attached. Values that are not positive and finite are ignored.
// Default: 1.0.
func WithScaleFactor(f float64) Option {
	return func(o *options) {
		if validScale(f) {
			o.scale = f
		}
	}
}

// WithDeferredSetup leaves the view unready after New. Ticks are no-ops
// until Setup is called. Use this when the host attaches the device after
// constructing the view.
func WithDeferredSetup() Option {
	return func(o *options) {
		o.deferredSetup = true
	}
}

// WithLogger sets a logger for this view only. Without it the view logs to
// the package logger (see SetLogger).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
