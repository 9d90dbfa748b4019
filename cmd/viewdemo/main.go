// Command viewdemo drives a renderview.View headlessly and saves the last
// presented frame.
//
// The demo renders an animated scene with gg into software drawables at the
// requested refresh rate, grows the frame halfway through to exercise the
// resize path, and stops after the requested number of frames.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/renderview"
	"github.com/gogpu/renderview/displaylink"
	"github.com/gogpu/renderview/surface"
	_ "github.com/gogpu/renderview/surface/wgpusurface"
)

func main() {
	var (
		width   = flag.Int("width", 400, "frame width in logical points")
		height  = flag.Int("height", 300, "frame height in logical points")
		scale   = flag.Float64("scale", 1, "logical-to-pixel scale factor")
		fps     = flag.Float64("fps", displaylink.DefaultRefreshRate, "display refresh rate")
		frames  = flag.Int("frames", 60, "number of frames to draw")
		backend = flag.String("backend", "", "surface backend (empty selects the best available)")
		output  = flag.String("output", "viewdemo.png", "output file")
		list    = flag.Bool("list", false, "list surface backends and exit")
		verbose = flag.Bool("v", false, "log per-frame diagnostics")
	)
	flag.Parse()

	if *list {
		for _, name := range surface.List() {
			fmt.Println(name)
		}
		return
	}

	if *verbose {
		renderview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(*width, *height, *scale, *fps, *frames, *backend, *output); err != nil {
		log.Fatalf("viewdemo: %v", err)
	}
}

func run(width, height int, scale, fps float64, frames int, backend, output string) error {
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}

	provider, err := newProvider(backend)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	grown := renderview.Size{Width: float64(width) * 1.5, Height: float64(height) * 1.25}
	r := newRenderer(func(v *renderview.View, n int) {
		switch {
		case n >= frames:
			cancel()
			return
		case n == frames/2:
			v.SetFrameSize(grown)
		}
		v.RequestRedraw()
	})

	v, err := renderview.New(renderview.Size{Width: float64(width), Height: float64(height)}, provider,
		renderview.WithDelegate(r),
		renderview.WithScaleFactor(scale),
		renderview.WithClearColor(gputypes.Color{R: 0.08, G: 0.09, B: 0.12, A: 1}))
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}

	link := displaylink.NewTicker(fps)
	log.Printf("Running %d frames at %.0f Hz (%v, scale %g)", frames, fps, v.FrameSize(), v.ScaleFactor())
	if err := v.Run(ctx, link); err != nil {
		return err
	}
	log.Printf("Stopped: %v", v.Stats())

	return save(provider, output)
}

// newProvider creates a provider from the surface registry.
func newProvider(backend string) (surface.Provider, error) {
	opts := surface.DefaultOptions(0, 0)
	if backend == "" {
		return surface.NewProvider(opts)
	}
	return surface.NewProviderByName(backend, opts)
}

// save writes the last presented frame as PNG. Only software providers keep
// a readable front buffer.
func save(provider surface.Provider, output string) error {
	ip, ok := provider.(*surface.ImageProvider)
	if !ok {
		log.Printf("Backend keeps no front buffer, nothing saved")
		return nil
	}
	front := ip.Front()
	if front == nil {
		return fmt.Errorf("no frame was presented")
	}

	dc := gg.NewContextForImage(front)
	defer func() { _ = dc.Close() }()
	if err := dc.SavePNG(output); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}

	b := front.Bounds()
	log.Printf("Frame %d saved to %s (%dx%d)", ip.Presented(), output, b.Dx(), b.Dy())
	return nil
}
