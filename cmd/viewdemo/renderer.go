package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/renderview"
	"github.com/gogpu/renderview/surface"
)

// renderer is the demo's view delegate. It paints each frame with gg and
// copies the result into the view's software drawable.
type renderer struct {
	dc     *gg.Context
	size   renderview.Size
	frames int

	// onFrame runs after every presented frame.
	onFrame func(v *renderview.View, frame int)
}

func newRenderer(onFrame func(v *renderview.View, frame int)) *renderer {
	return &renderer{onFrame: onFrame}
}

func (r *renderer) DrawableSizeWillChange(_ *renderview.View, size renderview.Size) {
	log.Printf("Drawable size will change: %v -> %v", r.size, size)
	r.size = size

	px := size.Pixels()
	if px.IsEmpty() {
		return
	}
	if r.dc == nil {
		r.dc = gg.NewContext(px.Width, px.Height)
		return
	}
	if err := r.dc.Resize(px.Width, px.Height); err != nil {
		log.Printf("Resize canvas: %v", err)
	}
}

func (r *renderer) Draw(v *renderview.View) {
	rpd := v.CurrentRenderPassDescriptor()
	if rpd == nil {
		return
	}
	d, ok := rpd.Drawable.(*surface.ImageDrawable)
	if !ok || r.dc == nil {
		rpd.Drawable.Discard()
		return
	}

	r.frames++
	r.paint(rpd.ColorAttachments[0].ClearValue)

	dst := d.Image()
	draw.Draw(dst, dst.Bounds(), r.dc.Image(), image.Point{}, draw.Src)
	drawHUD(dst, fmt.Sprintf("frame %d  %dx%d", r.frames, dst.Bounds().Dx(), dst.Bounds().Dy()))

	if err := d.Present(); err != nil {
		log.Printf("Present frame %d: %v", r.frames, err)
	}
	if r.onFrame != nil {
		r.onFrame(v, r.frames)
	}
}

// paint draws the animated scene into the gg canvas.
func (r *renderer) paint(clearValue gputypes.Color) {
	dc := r.dc
	w, h := float64(dc.Width()), float64(dc.Height())
	t := float64(r.frames) / 60

	dc.ClearWithColor(gg.RGBA{R: clearValue.R, G: clearValue.G, B: clearValue.B, A: clearValue.A})

	// Orbiting circles
	cx, cy := w/2, h/2
	radius := math.Min(w, h) / 3
	for i := 0; i < 6; i++ {
		angle := t + float64(i)*math.Pi/3
		dc.SetColor(gg.HSL(float64(i)*60, 0.8, 0.6))
		dc.DrawCircle(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle), radius/5)
		_ = dc.Fill()
	}

	// Spinning square
	dc.Push()
	dc.Translate(cx, cy)
	dc.Rotate(t)
	dc.SetRGBA(1, 0.8, 0, 0.9)
	dc.DrawRoundedRectangle(-radius/3, -radius/3, radius*2/3, radius*2/3, radius/12)
	_ = dc.Fill()
	dc.Pop()

	// Frame border
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(2)
	dc.DrawRectangle(1, 1, w-2, h-2)
	_ = dc.Stroke()
}

// drawHUD writes a status line in the top-left corner.
func drawHUD(dst draw.Image, line string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(8, 8+face.Ascent),
	}
	d.DrawString(line)
}
