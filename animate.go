package sapling

import (
	"context"
	"fmt"
	"io"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RenderOptions sizes the output canvas.
type RenderOptions struct {
	// Width, Height are the canvas size in pixels.
	Width, Height int
	// Padding is the margin the auto-fit transform keeps on the
	// constraining axis, in pixels.
	Padding int
}

func (o RenderOptions) validate() error {
	if o.Width < 1 || o.Height < 1 {
		return fmt.Errorf("render options: canvas %dx%d, want positive", o.Width, o.Height)
	}
	if o.Padding < 0 || 2*o.Padding >= o.Width || 2*o.Padding >= o.Height {
		return fmt.Errorf("render options: padding %d does not fit %dx%d", o.Padding, o.Width, o.Height)
	}
	return nil
}

// Plant is one fully built, immutable structure together with its derived
// auto-fit transform and decoded sprites. Everything needed to render it at
// any progress value, in any order: a frame is a pure function of the plant
// and a scalar.
type Plant struct {
	Root      *Branch
	Bounds    Bounds
	Transform Transform

	cfg     SpeciesConfig
	opts    RenderOptions
	sprites []*Sprite
	maxDist float64
}

// Grow builds the plant for a seed: derives the random stream, builds the
// structure, computes bounds and the auto-fit transform, and decodes any
// sprite assets the species references. Any failure abandons the whole
// request; there is no partial output.
func Grow(seed string, cfg SpeciesConfig, opts RenderOptions) (*Plant, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sprites, err := loadSpeciesSprites(&cfg)
	if err != nil {
		return nil, err
	}

	root, err := Build(NewRand(seed), &cfg)
	if err != nil {
		return nil, err
	}
	bounds, err := ComputeBounds(root)
	if err != nil {
		return nil, err
	}
	tf, err := FitTransform(bounds, opts.Width, opts.Height, opts.Padding)
	if err != nil {
		return nil, err
	}

	return &Plant{
		Root:      root,
		Bounds:    bounds,
		Transform: tf,
		cfg:       cfg,
		opts:      opts,
		sprites:   sprites,
		maxDist:   MaxDistance(root),
	}, nil
}

// FullGrowth returns the progress distance at which every branch and entity
// is fully grown.
func (p *Plant) FullGrowth() float64 {
	return p.maxDist
}

// Snapshot projects the plant at one progress distance.
func (p *Plant) Snapshot(progress float64) *Snapshot {
	return Project(p.Root, progress, p.Transform, p.cfg.Stroke, p.cfg.StrokeHighlight)
}

// RenderFrame clears the canvas to transparent and paints the plant at one
// progress distance.
func (p *Plant) RenderFrame(c *Canvas, progress float64) {
	c.Clear(Color{})
	RenderSnapshot(c, p.Snapshot(progress), p.sprites)
}

// Still renders the fully grown plant: progress is driven one unit past
// FullGrowth, so every branch is at full length and every entity at full
// eased size, in a single frame.
func (p *Plant) Still() *Canvas {
	c := NewCanvas(p.opts.Width, p.opts.Height)
	p.RenderFrame(c, p.maxDist+1)
	return c
}

// EncodePNG writes the fully grown plant as a transparent-background PNG.
func (p *Plant) EncodePNG(w io.Writer) error {
	return p.Still().EncodePNG(w)
}

// Animate sweeps progress from zero to full growth across fps*seconds
// frames and writes each raw RGBA frame to the sink in order. The first
// frame is rendered at progress zero and the last lands exactly on full
// growth. The sweep runs under the easing function (nil means
// ease.OutCubic), so growth decelerates as the plant finishes.
//
// Frames are rendered and emitted strictly in order; the sink's blocking
// write is the backpressure. The first sink error aborts the remaining
// loop — there is no point rendering into a dead sink — as does context
// cancellation between frames.
func (p *Plant) Animate(ctx context.Context, sink FrameSink, fps, seconds int, fn ease.TweenFunc) error {
	if fps < 1 || seconds < 1 {
		return fmt.Errorf("animate: %d fps over %d s, want positive", fps, seconds)
	}
	if fn == nil {
		fn = ease.OutCubic
	}

	frames := fps * seconds
	tween := gween.New(0, float32(p.maxDist), float32(seconds), fn)
	dt := 1 / float32(fps)

	c := NewCanvas(p.opts.Width, p.opts.Height)
	var progress float32
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("animate: frame %d/%d: %w", i, frames, err)
		}
		if i == frames-1 {
			// Land exactly on full growth regardless of float accumulation.
			progress = float32(p.maxDist)
		}
		p.RenderFrame(c, float64(progress))
		if err := sink.WriteFrame(c.RGBA()); err != nil {
			return fmt.Errorf("animate: frame %d/%d: %w", i, frames, err)
		}
		progress, _ = tween.Update(dt)
	}
	return nil
}
