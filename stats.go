package renderview

import (
	"fmt"
	"time"
)

// Stats holds render loop counters.
type Stats struct {
	// Ticks counts ticks handled by a ready view. Ticks on an unready
	// view and re-entrant ticks are not included.
	Ticks uint64

	// SkippedTicks counts ticks dropped because another tick was still
	// running on the same view.
	SkippedTicks uint64

	// FramesDrawn counts Draw dispatches. A dispatch with no delegate
	// attached still counts.
	FramesDrawn uint64

	// Resizes counts drawable-size changes.
	Resizes uint64

	// LastDrawDuration is the time spent in the most recent Draw.
	LastDrawDuration time.Duration
}

// String returns a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("ticks=%d skipped=%d frames=%d resizes=%d last_draw=%s",
		s.Ticks, s.SkippedTicks, s.FramesDrawn, s.Resizes, s.LastDrawDuration)
}
