// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
)

// imageBackend returns a software backend that records its name in *picked
// when selected.
func imageBackend(name string, priority int, picked *string) Backend {
	return Backend{
		Name:     name,
		Priority: priority,
		New: func(opts Options) (Provider, error) {
			if picked != nil {
				*picked = name
			}
			return NewImageProvider(opts), nil
		},
	}
}

func failingBackend(name string, priority int, err error) Backend {
	return Backend{
		Name:     name,
		Priority: priority,
		New:      func(Options) (Provider, error) { return nil, err },
	}
}

func TestRegistryListOrder(t *testing.T) {
	var r Registry
	r.Register(imageBackend("low", 10, nil))
	r.Register(imageBackend("high", 100, nil))
	r.Register(imageBackend("b-mid", 50, nil))
	r.Register(imageBackend("a-mid", 50, nil))

	want := []string{"high", "a-mid", "b-mid", "low"}
	if got := r.List(); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestRegistryReplaceAndUnregister(t *testing.T) {
	var r Registry
	r.Register(imageBackend("x", 10, nil))
	r.Register(imageBackend("y", 20, nil))
	r.Register(imageBackend("x", 30, nil))

	if got, want := r.List(), []string{"x", "y"}; !slices.Equal(got, want) {
		t.Errorf("List() after replace = %v, want %v", got, want)
	}

	r.Unregister("x")
	r.Unregister("missing")
	if got, want := r.List(), []string{"y"}; !slices.Equal(got, want) {
		t.Errorf("List() after Unregister = %v, want %v", got, want)
	}
}

func TestRegistryNewProvider(t *testing.T) {
	picky := func(picked *string) Backend {
		b := imageBackend("gpu", 100, picked)
		b.Accepts = func(opts Options) bool { return opts.Native != nil }
		return b
	}
	tests := []struct {
		name     string
		backends func(picked *string) []Backend
		want     string
	}{
		{
			name: "highest priority wins",
			backends: func(picked *string) []Backend {
				return []Backend{imageBackend("low", 10, picked), imageBackend("high", 100, picked)}
			},
			want: "high",
		},
		{
			name: "failing backend falls through",
			backends: func(picked *string) []Backend {
				return []Backend{
					failingBackend("gpu", 100, errors.New("no device")),
					imageBackend("software", 10, picked),
				}
			},
			want: "software",
		},
		{
			name: "rejecting backend is skipped",
			backends: func(picked *string) []Backend {
				return []Backend{picky(picked), imageBackend("software", 10, picked)}
			},
			want: "software",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Registry
			var picked string
			for _, b := range tt.backends(&picked) {
				r.Register(b)
			}

			p, err := r.NewProvider(Options{Width: 10, Height: 10})
			if err != nil {
				t.Fatalf("NewProvider() error = %v", err)
			}
			if picked != tt.want {
				t.Errorf("selected %q, want %q", picked, tt.want)
			}
			if got := p.PixelFormat(); got != gputypes.TextureFormatRGBA8Unorm {
				t.Errorf("PixelFormat() = %v, want the RGBA8Unorm default", got)
			}
		})
	}
}

func TestRegistryNewProviderEmpty(t *testing.T) {
	var r Registry
	if _, err := r.NewProvider(Options{}); !errors.Is(err, ErrNoBackend) {
		t.Errorf("NewProvider() on empty registry = %v, want ErrNoBackend", err)
	}
}

func TestRegistrySelectionError(t *testing.T) {
	errNoDevice := errors.New("no device")

	var r Registry
	r.Register(failingBackend("gpu", 100, errNoDevice))
	r.Register(Backend{
		Name:     "picky",
		Priority: 10,
		Accepts:  func(Options) bool { return false },
		New: func(Options) (Provider, error) {
			t.Error("factory of a rejecting backend ran")
			return nil, errors.New("unreachable")
		},
	})

	_, err := r.NewProvider(Options{})
	var sel *SelectionError
	if !errors.As(err, &sel) {
		t.Fatalf("NewProvider() error = %T %v, want *SelectionError", err, err)
	}
	if len(sel.Failures) != 2 {
		t.Fatalf("len(Failures) = %d, want 2", len(sel.Failures))
	}
	if f := sel.Failures[0]; f.Backend != "gpu" || !errors.Is(f, errNoDevice) {
		t.Errorf("Failures[0] = %v, want gpu: no device", f)
	}
	if f := sel.Failures[1]; f.Backend != "picky" || !errors.Is(f, ErrOptionsRejected) {
		t.Errorf("Failures[1] = %v, want picky: ErrOptionsRejected", f)
	}

	if !errors.Is(err, errNoDevice) || !errors.Is(err, ErrOptionsRejected) {
		t.Error("SelectionError should unwrap to each backend failure")
	}
	want := `surface: no backend could serve the options; gpu: no device; picky: surface: backend does not accept the options`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestRegistryNewProviderByName(t *testing.T) {
	errBroken := errors.New("broken")

	var r Registry
	r.Register(imageBackend("software", 10, nil))
	r.Register(failingBackend("broken", 20, errBroken))

	p, err := r.NewProviderByName("software", Options{Width: 50, Height: 40})
	if err != nil {
		t.Fatalf("NewProviderByName(software) error = %v", err)
	}
	if got, want := p.DrawableSize(), (Size{Width: 50, Height: 40}); got != want {
		t.Errorf("DrawableSize() = %v, want %v", got, want)
	}

	if _, err := r.NewProviderByName("vulkan", Options{}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("NewProviderByName(vulkan) = %v, want ErrUnknownBackend", err)
	}

	_, err = r.NewProviderByName("broken", Options{})
	var be *BackendError
	if !errors.As(err, &be) || be.Backend != "broken" || !errors.Is(err, errBroken) {
		t.Errorf("NewProviderByName(broken) = %v, want a BackendError wrapping errBroken", err)
	}
	if got, want := err.Error(), `surface: backend "broken": broken`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestDefaultRegistryImageBackend(t *testing.T) {
	if !slices.Contains(List(), "image") {
		t.Fatalf("List() = %v, want it to contain image", List())
	}

	p, err := NewProviderByName("image", DefaultOptions(100, 80))
	if err != nil {
		t.Fatalf("NewProviderByName(image) error = %v", err)
	}
	if _, ok := p.(*ImageProvider); !ok {
		t.Errorf("provider = %T, want *ImageProvider", p)
	}

	wide := Options{Width: 1, Height: 1, Format: gputypes.TextureFormatRGBA16Float}
	if _, err := NewProviderByName("image", wide); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("image backend with RGBA16Float = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := NewProvider(wide); !errors.Is(err, ErrOptionsRejected) {
		t.Errorf("NewProvider(RGBA16Float) = %v, want ErrOptionsRejected from image", err)
	}

	native := DefaultOptions(1, 1)
	native.Native = struct{}{}
	if _, err := NewProvider(native); !errors.Is(err, ErrOptionsRejected) {
		t.Errorf("NewProvider(foreign native) = %v, want ErrOptionsRejected", err)
	}
}
