package renderview

import "weak"

// Delegate renders into a View and reacts to drawable-size changes.
//
// Both callbacks run synchronously on the render loop's goroutine and
// must not block. The view holds the delegate but never manages its
// lifetime; use Weak when the delegate owns the view.
type Delegate interface {
	// DrawableSizeWillChange is called before the drawable size changes.
	// size is in pixels. Delegates typically recompute projection state
	// or regenerate size-dependent buffers here.
	DrawableSizeWillChange(v *View, size Size)

	// Draw is called when the view wants a frame. The delegate acquires a
	// drawable (v.CurrentDrawable), issues its rendering work and presents
	// the drawable itself.
	Draw(v *View)
}

// DelegateFuncs adapts plain functions to the Delegate interface.
// Nil fields are skipped.
type DelegateFuncs struct {
	OnSizeChange func(v *View, size Size)
	OnDraw       func(v *View)
}

// DrawableSizeWillChange calls OnSizeChange if set.
func (f DelegateFuncs) DrawableSizeWillChange(v *View, size Size) {
	if f.OnSizeChange != nil {
		f.OnSizeChange(v, size)
	}
}

// Draw calls OnDraw if set.
func (f DelegateFuncs) Draw(v *View) {
	if f.OnDraw != nil {
		f.OnDraw(v)
	}
}

// weakDelegate forwards to a delegate that may be garbage collected.
type weakDelegate[T any, P interface {
	*T
	Delegate
}] struct {
	ptr weak.Pointer[T]
}

// Weak returns a non-owning reference to p. Once p is no longer reachable
// from anywhere else and has been collected, both callbacks become no-ops.
//
//	type renderer struct{ view *renderview.View }
//
//	r := &renderer{}
//	r.view, _ = renderview.New(frame, provider, renderview.WithDelegate(renderview.Weak(r)))
func Weak[T any, P interface {
	*T
	Delegate
}](p P) Delegate {
	return weakDelegate[T, P]{ptr: weak.Make((*T)(p))}
}

func (w weakDelegate[T, P]) DrawableSizeWillChange(v *View, size Size) {
	if d := w.ptr.Value(); d != nil {
		P(d).DrawableSizeWillChange(v, size)
	}
}

func (w weakDelegate[T, P]) Draw(v *View) {
	if d := w.ptr.Value(); d != nil {
		P(d).Draw(v)
	}
}

// alive reports whether the referenced delegate still exists.
func (w weakDelegate[T, P]) alive() bool {
	return w.ptr.Value() != nil
}

// liveness is implemented by delegate references that can disappear.
type liveness interface {
	alive() bool
}

var _ Delegate = DelegateFuncs{}
