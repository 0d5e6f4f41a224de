package sapling

import "math"

// Entity is a decorative attachment (leaf, blossom, fruit, sprite) placed on
// a branch with its own growth-reveal threshold.
type Entity struct {
	Kind   EntityKind
	Center Vec2
	// Size is the full-grown radius (or sprite scale) in logical units.
	Size      float64
	Base      Color
	Highlight Color
	// Sprite indexes the plant's decoded sprite table for KindSprite, -1 otherwise.
	Sprite int
	// DistanceFromRoot is the progress distance at which the entity starts
	// growing. Includes any per-kind delay.
	DistanceFromRoot float64
	// GrowthWindow is the progress span over which the entity eases to full size.
	GrowthWindow float64
}

// Branch is the atomic structural unit: a quadratic curve from Start to End
// bowed through Control. A branch exclusively owns its children and
// entities; the structure is a strict tree with no shared or back
// references, immutable once built.
type Branch struct {
	Start, End, Control Vec2
	// StrokeWidth is the full-grown width in logical units.
	StrokeWidth float64
	// Length is the branch's nominal path length in logical units.
	Length float64
	// DistanceFromRoot is the cumulative path length from the structure's
	// root to Start. Strictly greater for a child than for its parent.
	DistanceFromRoot float64
	// Children in generation order. The order carries no meaning beyond
	// reproducing the builder's draw sequence.
	Children []*Branch
	Entities []Entity
}

// Build grows a structure from the random stream. The stream is the only
// source of randomness, and every draw happens in a fixed call order — any
// reordering would change every subsequent value and with it every plant.
//
// The config must have passed Validate.
func Build(rng *Rand, cfg *SpeciesConfig) (*Branch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	trunk := cfg.TrunkLength.Random(rng)
	return grow(rng, cfg, Vec2{}, trunk, -math.Pi/2, cfg.Depth, 0), nil
}

// grow builds one branch and recurses into its children. depth counts down;
// a branch at depth 0 is a bare tip. distSoFar is the cumulative path length
// to start.
//
// Draw order per call: angle perturbation, control-point fraction, entity
// table (site chance, then position and size per hit), then per child the
// length decay and any lateral draws, followed by the child's own calls.
func grow(rng *Rand, cfg *SpeciesConfig, start Vec2, length, angle float64, depth int, distSoFar float64) *Branch {
	angle += rng.FloatRange(-cfg.AngleSpread, cfg.AngleSpread)
	end := polar(start, length, angle)

	// Bow the curve by offsetting the chord midpoint perpendicular to the
	// chord. A degenerate chord gets zero offset rather than NaN.
	control := lerp(start, end, 0.5)
	if end.Sub(start).Len() > 1e-10 {
		px, py := perpendicular(start, end)
		off := length * rng.FloatRange(-0.25, 0.25)
		control.X += px * off
		control.Y += py * off
	} else {
		rng.Float64() // keep the stream position independent of geometry
	}

	b := &Branch{
		Start:            start,
		End:              end,
		Control:          control,
		StrokeWidth:      cfg.Taper(depth, cfg.Depth),
		Length:           length,
		DistanceFromRoot: distSoFar,
	}

	attachEntities(rng, cfg, b, depth)

	if depth <= 0 {
		return b
	}

	// Opt-in clip policy: a branch that left the region terminates here, so
	// no subtree can run off the logical window.
	if cfg.ClipRegion != nil && !cfg.ClipRegion.Contains(end.X, end.Y) {
		return b
	}

	n := childCount(rng, cfg)
	childDist := distSoFar + length
	for i := 0; i < n; i++ {
		childLen := length * cfg.LengthDecay.Random(rng)
		childAngle := angle
		if cfg.LateralChance > 0 && i > 0 && rng.Chance(cfg.LateralChance) {
			// Lateral child: swing near-perpendicular, alternating sides,
			// for the tiered cedar silhouette.
			side := 1.0
			if i%2 == 0 {
				side = -1
			}
			childAngle += side * cfg.LateralAngle.Random(rng)
		} else {
			// Trunk continuation: fan out mildly around the parent heading.
			childAngle += rng.FloatRange(-1, 1) * cfg.AngleSpread * 1.6
		}
		b.Children = append(b.Children, grow(rng, cfg, end, childLen, childAngle, depth-1, childDist))
	}
	return b
}

// childCount draws the number of children for one branch, clamped to 2–4.
func childCount(rng *Rand, cfg *SpeciesConfig) int {
	n := int(math.Round(cfg.BranchCount.Random(rng)))
	if n < 2 {
		n = 2
	}
	if n > 4 {
		n = 4
	}
	return n
}

// attachEntities walks the species entity table in order and places entities
// along the branch curve. Each entity's reveal threshold is the cumulative
// distance to its attachment point plus the table's per-kind delay.
func attachEntities(rng *Rand, cfg *SpeciesConfig, b *Branch, depth int) {
	for i, spec := range cfg.Entities {
		if depth > spec.TipDepth {
			continue
		}
		for site := 0; site < spec.MaxPerBranch; site++ {
			if !rng.Chance(spec.Chance) {
				continue
			}
			t := rng.Float64()
			sprite := -1
			if spec.Kind == KindSprite {
				sprite = i
			}
			b.Entities = append(b.Entities, Entity{
				Kind:             spec.Kind,
				Center:           quadPoint(b.Start, b.Control, b.End, t),
				Size:             spec.Size.Random(rng),
				Base:             spec.Base,
				Highlight:        spec.Highlight,
				Sprite:           sprite,
				DistanceFromRoot: b.DistanceFromRoot + b.Length*t + spec.Delay,
				GrowthWindow:     spec.GrowthWindow,
			})
		}
	}
}
