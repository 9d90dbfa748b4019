package renderview

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/renderview/surface"
)

// RenderPassDescriptor describes a render pass that targets a drawable.
//
// It is a backend-neutral convenience: backends translate it into their own
// pass descriptor (see surface/wgpusurface.BeginRenderPass). A delegate is
// free to ignore it and build its own.
type RenderPassDescriptor struct {
	// Drawable is the drawable the pass renders into. The delegate
	// presents it when the frame is done.
	Drawable surface.Drawable

	// ColorAttachments lists the color targets of the pass.
	ColorAttachments []ColorAttachment
}

// ColorAttachment describes one color target of a render pass.
type ColorAttachment struct {
	Texture    surface.Texture
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearValue gputypes.Color
}

// BuildRenderPassDescriptor returns a descriptor with a single color
// attachment that clears d's texture to clearValue and stores the result.
// It returns nil if d is nil.
//
// The descriptor is built fresh on every call; nothing is cached.
func BuildRenderPassDescriptor(d surface.Drawable, clearValue gputypes.Color) *RenderPassDescriptor {
	if d == nil {
		return nil
	}
	return &RenderPassDescriptor{
		Drawable: d,
		ColorAttachments: []ColorAttachment{{
			Texture:    d.Texture(),
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clearValue,
		}},
	}
}
