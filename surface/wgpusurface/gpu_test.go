// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpusurface

import (
	"errors"
	"os"
	"strconv"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/renderview"
	"github.com/gogpu/renderview/surface"
)

// Native window handles for the GPU tests. A surface needs a real window,
// so these tests skip unless the environment provides one.
const (
	envDisplayHandle = "RENDERVIEW_WGPU_DISPLAY"
	envWindowHandle  = "RENDERVIEW_WGPU_WINDOW"
)

// wgpuDevice adapts a *wgpu.Device to gpucontext.DeviceProvider.
type wgpuDevice struct {
	dev    *wgpu.Device
	format gputypes.TextureFormat
}

func (d wgpuDevice) Device() gpucontext.Device             { return d.dev }
func (d wgpuDevice) Queue() gpucontext.Queue               { return d.dev.Queue() }
func (d wgpuDevice) Adapter() gpucontext.Adapter           { return nil }
func (d wgpuDevice) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }
func (d wgpuDevice) SurfaceFormat() gputypes.TextureFormat { return d.format }

type gpuFixture struct {
	surface *wgpu.Surface
	device  wgpuDevice
}

// newGPUFixture creates a device and a surface for the window named by the
// environment, skipping when either is unavailable.
func newGPUFixture(t *testing.T) *gpuFixture {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping GPU test in short mode")
	}
	window, err := parseHandle(os.Getenv(envWindowHandle))
	if err != nil || window == 0 {
		t.Skipf("skipping: %s does not hold a native window handle", envWindowHandle)
	}
	display, err := parseHandle(os.Getenv(envDisplayHandle))
	if err != nil {
		t.Skipf("skipping: bad %s: %v", envDisplayHandle, err)
	}

	inst, err := wgpu.CreateInstance(nil)
	if err != nil {
		t.Skipf("skipping: CreateInstance: %v", err)
	}
	t.Cleanup(inst.Release)

	adapter, err := inst.RequestAdapter(nil)
	if err != nil || adapter == nil {
		t.Skipf("skipping: no GPU adapter: %v", err)
	}
	t.Cleanup(adapter.Release)

	dev, err := adapter.RequestDevice(nil)
	if err != nil || dev == nil {
		t.Skipf("skipping: RequestDevice: %v", err)
	}
	t.Cleanup(dev.Release)
	if dev.Queue() == nil {
		t.Skip("skipping: device has no HAL integration")
	}

	s, err := inst.CreateSurface(display, window)
	if err != nil {
		t.Skipf("skipping: CreateSurface: %v", err)
	}
	t.Cleanup(s.Release)

	format := gputypes.TextureFormatBGRA8Unorm
	if caps := adapter.GetSurfaceCapabilities(s); caps != nil && len(caps.Formats) > 0 {
		format = caps.Formats[0]
	}
	return &gpuFixture{surface: s, device: wgpuDevice{dev: dev, format: format}}
}

func parseHandle(s string) (uintptr, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	return uintptr(v), err
}

func TestGPUProviderDrawables(t *testing.T) {
	fx := newGPUFixture(t)

	opts := surface.DefaultOptions(64, 48)
	opts.Format = fx.device.format
	opts.Device = fx.device
	p, err := New(fx.surface, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(p.Release)

	if !p.Configured() {
		t.Fatal("Configured() = false with a device and a non-empty size")
	}

	d := p.NextDrawable()
	if d == nil {
		t.Fatal("NextDrawable() = nil on a configured surface")
	}
	tex := d.Texture()
	if tex.Width() != 64 || tex.Height() != 48 || tex.Format() != fx.device.format {
		t.Errorf("texture = %dx%d %v, want 64x48 %v", tex.Width(), tex.Height(), tex.Format(), fx.device.format)
	}
	if d.(*Drawable).View() == nil {
		t.Error("View() = nil for a fresh drawable")
	}
	if err := d.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if err := d.Present(); !errors.Is(err, surface.ErrDrawableReleased) {
		t.Errorf("second Present() = %v, want ErrDrawableReleased", err)
	}

	// A newer drawable replaces an outstanding one.
	first := p.NextDrawable()
	second := p.NextDrawable()
	if first == nil || second == nil {
		t.Fatal("NextDrawable() = nil on a configured surface")
	}
	if err := first.Present(); !errors.Is(err, surface.ErrDrawableReleased) {
		t.Errorf("Present() of a replaced drawable = %v, want ErrDrawableReleased", err)
	}

	p.SetDrawableSize(surface.Size{Width: 32, Height: 32})
	if err := second.Present(); !errors.Is(err, surface.ErrStaleDrawable) {
		t.Errorf("Present() after resize = %v, want ErrStaleDrawable", err)
	}
	if !p.Configured() {
		t.Error("Configured() = false after resize")
	}

	p.SetDrawableSize(surface.Size{Width: 32})
	if p.Configured() {
		t.Error("Configured() = true for a zero-height size")
	}
	if d := p.NextDrawable(); d != nil {
		t.Error("NextDrawable() should be nil while unconfigured")
	}
}

func TestGPUClearDelegate(t *testing.T) {
	fx := newGPUFixture(t)

	p, err := New(fx.surface, surface.Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(p.Release)

	var sizes []renderview.Size
	c := &ClearDelegate{
		Device: fx.device.dev,
		OnSizeChange: func(_ *renderview.View, s renderview.Size) {
			sizes = append(sizes, s)
		},
	}
	v, err := renderview.New(renderview.Size{Width: 40, Height: 30}, p,
		renderview.WithDevice(fx.device),
		renderview.WithPixelFormat(fx.device.format),
		renderview.WithScaleFactor(2),
		renderview.WithDelegate(c))
	if err != nil {
		t.Fatalf("renderview.New() error = %v", err)
	}

	for range 3 {
		v.RequestRedraw()
		v.Tick()
	}

	if len(sizes) != 1 || sizes[0] != (renderview.Size{Width: 80, Height: 60}) {
		t.Errorf("size notifications = %v, want [80x60]", sizes)
	}
	if got := p.Config(); got.Width != 80 || got.Height != 60 {
		t.Errorf("Config() = %dx%d, want 80x60", got.Width, got.Height)
	}
	if got := v.Stats().FramesDrawn; got != 3 {
		t.Errorf("FramesDrawn = %d, want 3", got)
	}
	if p.current != nil {
		t.Error("the clear delegate left a drawable outstanding")
	}
}
