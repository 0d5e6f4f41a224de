package sapling

import (
	"fmt"
	"math"
)

// Bounds is an axis-aligned bounding box in logical space, accumulated from
// every branch's three curve points and every entity's extent.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// ComputeBounds folds the whole structure into a bounding box. A NaN or
// infinite coordinate anywhere in the structure is a hard failure of the
// generation request — it must not silently corrupt the canvas.
func ComputeBounds(root *Branch) (Bounds, error) {
	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	foldBounds(&b, root)
	if !isFinite(b.MinX) || !isFinite(b.MinY) || !isFinite(b.MaxX) || !isFinite(b.MaxY) {
		return Bounds{}, fmt.Errorf("compute bounds: degenerate structure (non-finite extent %+v)", b)
	}
	return b, nil
}

func foldBounds(b *Bounds, br *Branch) {
	for _, p := range [3]Vec2{br.Start, br.Control, br.End} {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	for _, e := range br.Entities {
		b.MinX = math.Min(b.MinX, e.Center.X-e.Size)
		b.MinY = math.Min(b.MinY, e.Center.Y-e.Size)
		b.MaxX = math.Max(b.MaxX, e.Center.X+e.Size)
		b.MaxY = math.Max(b.MaxY, e.Center.Y+e.Size)
	}
	for _, c := range br.Children {
		foldBounds(b, c)
	}
}

// Transform maps logical space to canvas pixel space: a single uniform scale
// (no independent x/y scaling, so proportions are preserved) plus an offset.
// Derived once per structure.
type Transform struct {
	Scale, OffsetX, OffsetY float64
}

// Apply maps a logical point to canvas pixels.
func (t Transform) Apply(p Vec2) Vec2 {
	return Vec2{p.X*t.Scale + t.OffsetX, p.Y*t.Scale + t.OffsetY}
}

// FitTransform computes the transform that centers the bounds horizontally
// and anchors its bottom edge (the structure's root) at height-padding, so
// the root never floats. The min() scale choice guarantees the structure
// fits inside the padded canvas on both axes; the non-constraining axis gets
// extra margin, never overflow.
func FitTransform(b Bounds, width, height, padding int) (Transform, error) {
	availW := float64(width - 2*padding)
	availH := float64(height - 2*padding)
	if availW <= 0 || availH <= 0 {
		return Transform{}, fmt.Errorf("fit transform: canvas %dx%d too small for padding %d", width, height, padding)
	}

	// A degenerate axis (single straight vertical stem has zero width) must
	// not force an infinite scale; the other axis constrains alone.
	scale := math.Inf(1)
	if b.Width() > 1e-10 {
		scale = availW / b.Width()
	}
	if b.Height() > 1e-10 {
		scale = math.Min(scale, availH/b.Height())
	}
	if !isFinite(scale) || scale <= 0 {
		return Transform{}, fmt.Errorf("fit transform: degenerate bounds %+v", b)
	}

	t := Transform{
		Scale:   scale,
		OffsetX: float64(width)/2 - scale*(b.MinX+b.Width()/2),
		OffsetY: float64(height-padding) - scale*b.MaxY,
	}
	if !isFinite(t.OffsetX) || !isFinite(t.OffsetY) {
		return Transform{}, fmt.Errorf("fit transform: non-finite offset for bounds %+v", b)
	}
	return t, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
