package renderview

import (
	"fmt"
	"math"

	"github.com/gogpu/renderview/surface"
)

// Size is a two-dimensional size. Frame sizes are in logical points;
// drawable sizes are the same quantity multiplied by the scale factor.
type Size struct {
	Width  float64
	Height float64
}

// Scale returns s multiplied component-wise by f.
func (s Size) Scale(f float64) Size {
	return Size{Width: s.Width * f, Height: s.Height * f}
}

// Pixels rounds s to whole pixels. Negative and non-finite components
// become zero.
func (s Size) Pixels() surface.Size {
	return surface.Size{Width: pixels(s.Width), Height: pixels(s.Height)}
}

func pixels(f float64) int {
	if !(f > 0) || math.IsInf(f, 1) {
		return 0
	}
	return int(math.Round(f))
}

// validScale reports whether f can be used as a scale factor: positive
// and finite.
func validScale(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// String returns the size as "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// detectSizeChange computes the drawable size for a logical size at the
// given scale and reports whether it differs from last. The comparison is
// exact: any change, including one to a zero dimension, counts.
func detectSizeChange(logical Size, scale float64, last Size) (Size, bool) {
	candidate := logical.Scale(scale)
	return candidate, candidate != last
}
