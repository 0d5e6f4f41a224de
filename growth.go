package sapling

import "math"

// DrawnBranch is one partially revealed branch in canvas pixel space.
type DrawnBranch struct {
	Start, End, Control Vec2
	// Width is the current stroke width in pixels: the full width scaled by
	// the branch's local growth, so young wood starts thin and thickens as
	// it ages.
	Width     float64
	Stroke    Color
	Highlight Color
}

// DrawnEntity is one visible entity in canvas pixel space, its size and
// opacity already eased by its growth progress.
type DrawnEntity struct {
	Kind      EntityKind
	Center    Vec2
	Size      float64
	Alpha     float64
	Base      Color
	Highlight Color
	Sprite    int
}

// Snapshot is the flattened, partially revealed state of a structure at one
// progress value. Transient: recomputed per frame, never persisted, and a
// pure function of (structure, progress, transform) — projecting the same
// arguments twice yields identical snapshots.
type Snapshot struct {
	Branches []DrawnBranch
	Entities []DrawnEntity
}

// Project walks the immutable structure and produces the snapshot for one
// progress distance. A branch is revealed once progress passes its
// DistanceFromRoot; its curve is then cut at the local growth parameter by
// De Casteljau subdivision, which keeps the partial curve's shape consistent
// with the final one (a linear truncation would straighten it). Entities on
// a revealed branch appear once progress passes their own threshold and ease
// in under a smoothstep.
//
// Recursion descends into children unconditionally: reveal is purely
// distance-gated, so an outer branch stays hidden until the growth wave
// reaches it no matter where traversal finds it.
func Project(root *Branch, progress float64, tf Transform, stroke, highlight Color) *Snapshot {
	snap := &Snapshot{}
	projectBranch(snap, root, progress, tf, stroke, highlight)
	return snap
}

func projectBranch(snap *Snapshot, b *Branch, progress float64, tf Transform, stroke, highlight Color) {
	if progress > b.DistanceFromRoot {
		localT := clamp((progress-b.DistanceFromRoot)/b.Length, 0, 1)
		start, control, end := splitQuad(b.Start, b.Control, b.End, localT)
		snap.Branches = append(snap.Branches, DrawnBranch{
			Start:     tf.Apply(start),
			Control:   tf.Apply(control),
			End:       tf.Apply(end),
			Width:     b.StrokeWidth * localT * tf.Scale,
			Stroke:    stroke,
			Highlight: highlight,
		})
		for _, e := range b.Entities {
			if progress <= e.DistanceFromRoot {
				continue
			}
			age := progress - e.DistanceFromRoot
			eased := smoothstep(clamp(age/e.GrowthWindow, 0, 1))
			snap.Entities = append(snap.Entities, DrawnEntity{
				Kind:      e.Kind,
				Center:    tf.Apply(e.Center),
				Size:      e.Size * eased * tf.Scale,
				Alpha:     eased,
				Base:      e.Base,
				Highlight: e.Highlight,
				Sprite:    e.Sprite,
			})
		}
	}
	for _, c := range b.Children {
		projectBranch(snap, c, progress, tf, stroke, highlight)
	}
}

// splitQuad returns the quadratic Bezier covering [0, t] of the curve
// (a, c, b), by De Casteljau subdivision: the sub-curve's control point is
// the first-level interpolant and its end point lies on the original curve.
func splitQuad(a, c, b Vec2, t float64) (Vec2, Vec2, Vec2) {
	ac := lerp(a, c, t)
	cb := lerp(c, b, t)
	return a, ac, lerp(ac, cb, t)
}

// quadPoint evaluates the quadratic Bezier (a, c, b) at t.
func quadPoint(a, c, b Vec2, t float64) Vec2 {
	u := 1 - t
	return Vec2{
		X: u*u*a.X + 2*u*t*c.X + t*t*b.X,
		Y: u*u*a.Y + 2*u*t*c.Y + t*t*b.Y,
	}
}

// smoothstep is the cubic ease t²(3-2t), zero-slope at both ends.
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// MaxDistance returns the progress value at which the whole structure is
// fully grown: the largest branch end distance or entity threshold plus its
// growth window. Sweeping progress to this value (Scenario: one past it)
// yields every branch at full length and every entity at full size.
func MaxDistance(root *Branch) float64 {
	d := root.DistanceFromRoot + root.Length
	for _, e := range root.Entities {
		d = math.Max(d, e.DistanceFromRoot+e.GrowthWindow)
	}
	for _, c := range root.Children {
		d = math.Max(d, MaxDistance(c))
	}
	return d
}
