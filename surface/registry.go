// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry errors.
var (
	// ErrNoBackend is returned by NewProvider when nothing is registered.
	ErrNoBackend = errors.New("surface: no backend registered")

	// ErrUnknownBackend is returned by NewProviderByName for a name that
	// was never registered.
	ErrUnknownBackend = errors.New("surface: unknown backend")

	// ErrOptionsRejected is recorded for a backend whose Accepts returned
	// false during selection.
	ErrOptionsRejected = errors.New("surface: backend does not accept the options")
)

// Factory creates a provider for opts. opts has defaults applied.
type Factory func(opts Options) (Provider, error)

// Backend describes a provider implementation.
type Backend struct {
	// Name identifies the backend, e.g. "wgpu" or "image".
	Name string

	// Priority orders selection in NewProvider; higher goes first.
	// GPU swapchain backends use 100, software backends 10.
	Priority int

	// Accepts reports whether the backend can serve opts, typically by
	// checking Options.Native and Options.Format. Nil accepts anything.
	Accepts func(opts Options) bool

	// New builds the provider.
	New Factory
}

func (b *Backend) accepts(opts Options) bool {
	return b.Accepts == nil || b.Accepts(opts)
}

// BackendError is one backend's failure to build a provider.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("surface: backend %q: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// SelectionError is returned by NewProvider when no backend produced a
// provider. Failures are in priority order.
type SelectionError struct {
	Failures []*BackendError
}

func (e *SelectionError) Error() string {
	var b strings.Builder
	b.WriteString("surface: no backend could serve the options")
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "; %s: %v", f.Backend, f.Err)
	}
	return b.String()
}

// Unwrap exposes each backend failure to errors.Is and errors.As.
func (e *SelectionError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Registry holds provider backends sorted by priority. The zero value is
// empty and ready to use.
type Registry struct {
	mu       sync.RWMutex
	backends []Backend
}

// Register adds b, replacing any backend with the same name.
func (r *Registry) Register(b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backends = slices.DeleteFunc(r.backends, func(x Backend) bool { return x.Name == b.Name })
	r.backends = append(r.backends, b)
	slices.SortStableFunc(r.backends, func(x, y Backend) int {
		if c := cmp.Compare(y.Priority, x.Priority); c != 0 {
			return c
		}
		return strings.Compare(x.Name, y.Name)
	})
}

// Unregister removes the named backend.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends = slices.DeleteFunc(r.backends, func(x Backend) bool { return x.Name == name })
}

// List returns backend names, highest priority first.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.backends))
	for i, b := range r.backends {
		names[i] = b.Name
	}
	return names
}

// NewProvider builds a provider from the first backend, in priority order,
// that accepts opts and whose factory succeeds. If none does, the error is
// a *SelectionError listing every backend's failure.
func (r *Registry) NewProvider(opts Options) (Provider, error) {
	r.mu.RLock()
	backends := slices.Clone(r.backends)
	r.mu.RUnlock()

	if len(backends) == 0 {
		return nil, ErrNoBackend
	}

	opts = opts.WithDefaults()
	sel := &SelectionError{}
	for _, b := range backends {
		if !b.accepts(opts) {
			sel.Failures = append(sel.Failures, &BackendError{Backend: b.Name, Err: ErrOptionsRejected})
			continue
		}
		p, err := b.New(opts)
		if err == nil {
			return p, nil
		}
		sel.Failures = append(sel.Failures, &BackendError{Backend: b.Name, Err: err})
	}
	return nil, sel
}

// NewProviderByName builds a provider from the named backend. Accepts is
// not consulted; the factory reports why it cannot serve opts.
func (r *Registry) NewProviderByName(name string, opts Options) (Provider, error) {
	r.mu.RLock()
	i := slices.IndexFunc(r.backends, func(b Backend) bool { return b.Name == name })
	var b Backend
	if i >= 0 {
		b = r.backends[i]
	}
	r.mu.RUnlock()

	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	p, err := b.New(opts.WithDefaults())
	if err != nil {
		return nil, &BackendError{Backend: name, Err: err}
	}
	return p, nil
}

var defaultRegistry Registry

// Register adds b to the default registry. Backend packages call it from
// init, so importing them makes the backend selectable.
func Register(b Backend) { defaultRegistry.Register(b) }

// Unregister removes the named backend from the default registry.
func Unregister(name string) { defaultRegistry.Unregister(name) }

// List returns the default registry's backend names, highest priority first.
func List() []string { return defaultRegistry.List() }

// NewProvider builds a provider from the default registry.
func NewProvider(opts Options) (Provider, error) { return defaultRegistry.NewProvider(opts) }

// NewProviderByName builds a provider from the named backend in the
// default registry.
func NewProviderByName(name string, opts Options) (Provider, error) {
	return defaultRegistry.NewProviderByName(name, opts)
}

func init() {
	Register(Backend{
		Name:     "image",
		Priority: 10,
		Accepts: func(opts Options) bool {
			return opts.Native == nil && isRGBA8(opts.Format)
		},
		New: func(opts Options) (Provider, error) {
			if !isRGBA8(opts.Format) {
				return nil, ErrUnsupportedFormat
			}
			return NewImageProvider(opts), nil
		},
	})
}
