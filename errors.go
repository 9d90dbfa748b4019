package renderview

import "errors"

// Errors returned by View construction and the render loop.
var (
	// ErrNilProvider is returned by New when no surface provider is given.
	ErrNilProvider = errors.New("renderview: nil surface provider")

	// ErrAlreadySetUp is returned by Setup when the view is already ready.
	ErrAlreadySetUp = errors.New("renderview: already set up")

	// ErrRunning is returned by Run when the view is already attached to a
	// display link.
	ErrRunning = errors.New("renderview: render loop already running")

	// ErrNilSource is returned by Run when no display link is given.
	ErrNilSource = errors.New("renderview: nil display link source")
)
