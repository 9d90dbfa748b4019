package renderview

// frameState is the render loop's state. Readiness and the pending-redraw
// flag live in one value so that combinations such as "redraw pending while
// not ready" cannot be expressed.
type frameState uint8

const (
	// stateUnready: setup has not completed; ticks are no-ops.
	stateUnready frameState = iota

	// stateIdle: ready, no redraw pending.
	stateIdle

	// statePending: ready, a redraw will be dispatched on the next tick.
	statePending

	// stateDrawing: the delegate's Draw is running.
	stateDrawing

	// stateDrawingPending: the delegate's Draw is running and another
	// redraw was requested meanwhile. It is dispatched on the next tick.
	stateDrawingPending
)

// String returns the state name.
func (s frameState) String() string {
	switch s {
	case stateUnready:
		return "Unready"
	case stateIdle:
		return "Idle"
	case statePending:
		return "Pending"
	case stateDrawing:
		return "Drawing"
	case stateDrawingPending:
		return "DrawingPending"
	default:
		return "Unknown"
	}
}

// ready reports whether setup has completed.
func (s frameState) ready() bool {
	return s != stateUnready
}

// needsRedraw reports whether a redraw is pending.
func (s frameState) needsRedraw() bool {
	return s == statePending || s == stateDrawingPending
}

// requestRedraw returns the state after a redraw request. Requests are
// monotonic: repeating one is a no-op, and an unready view ignores them
// because setup always leaves it pending.
func (s frameState) requestRedraw() frameState {
	switch s {
	case stateIdle:
		return statePending
	case stateDrawing:
		return stateDrawingPending
	default:
		return s
	}
}

// beginDraw returns the state while the delegate draws.
func (s frameState) beginDraw() frameState {
	if s == statePending {
		return stateDrawing
	}
	return s
}

// endDraw returns the state after the delegate's Draw returned. A request
// made during the draw survives until the next tick.
func (s frameState) endDraw() frameState {
	switch s {
	case stateDrawing:
		return stateIdle
	case stateDrawingPending:
		return statePending
	default:
		return s
	}
}
