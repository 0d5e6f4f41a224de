package sapling

import (
	"fmt"
	"io/fs"
	"math"
)

// EntityKind discriminates the decorative attachments a species can carry.
// The kind selects the paint layer: fruit is always painted last regardless
// of position, everything else sorts back-to-front.
type EntityKind uint8

const (
	KindLeaf    EntityKind = iota // filled leaf shape with highlight
	KindBlossom                   // layered petal disc
	KindFruit                     // painted last, on top of foliage
	KindSprite                    // pre-rendered image composited onto the branch
)

// EntitySpec describes one kind of decorative entity a species attaches
// near its branch tips.
type EntitySpec struct {
	// Kind selects the shape and paint layer.
	Kind EntityKind
	// Chance is the per-site attachment probability, drawn once per site.
	Chance float64
	// MaxPerBranch is the number of attachment sites per eligible branch.
	MaxPerBranch int
	// TipDepth marks eligible branches: entities attach where the remaining
	// recursion depth is at most this value.
	TipDepth int
	// Size is the range of entity radii (or sprite scales) in logical units.
	Size Range
	// Base is the fill color. Ignored for KindSprite.
	Base Color
	// Highlight is the accent color painted over Base. Ignored for KindSprite.
	Highlight Color
	// GrowthWindow is the progress-distance span over which a newly revealed
	// entity eases from nothing to full size, in logical units.
	GrowthWindow float64
	// Delay shifts the entity's reveal threshold past its attachment point,
	// so e.g. fruit finishes growing after the leaves on the same branch.
	Delay float64
	// SpriteName is the asset path (within SpeciesConfig.Assets) decoded for
	// KindSprite entities. Empty for vector kinds.
	SpriteName string
}

// SpeciesConfig parameterizes the one shared generation engine. All species
// are data: a preset is just a filled-in config.
type SpeciesConfig struct {
	// Name identifies the species in demos and errors.
	Name string
	// Depth is the recursion depth of the structure; a hard bound.
	Depth int
	// TrunkLength is the range of root segment lengths in logical units.
	TrunkLength Range
	// BranchCount is the range of children per branch (rounded, clamped 2–4).
	BranchCount Range
	// LengthDecay is the range of per-generation length factors.
	LengthDecay Range
	// AngleSpread is the maximum angle perturbation per branch, radians.
	AngleSpread float64
	// LateralChance, when positive, makes some children near-perpendicular
	// instead of continuing the trunk, producing tiered (cedar) silhouettes.
	LateralChance float64
	// LateralAngle is the angle offset range for lateral children, radians.
	LateralAngle Range
	// Taper maps remaining depth to stroke width in logical units. Trunk
	// segments (high depth) taper differently from twigs.
	Taper func(depth, maxDepth int) float64
	// Stroke is the bark/stem color.
	Stroke Color
	// StrokeHighlight is the secondary pass color painted over the stroke.
	StrokeHighlight Color
	// ClipRegion, when set, terminates any branch whose end point leaves the
	// region (its subtree is built with depth 0). Opt-in per species; most
	// species grow unconstrained and rely on the auto-fit transform.
	ClipRegion *Rect
	// Entities is the attachment table. Order is part of the species
	// identity: the builder draws from the random stream in table order.
	Entities []EntitySpec
	// Assets is the filesystem sprite names resolve against. Only consulted
	// when the table contains KindSprite entries.
	Assets fs.FS
}

// Validate reports the first structural problem with the config. A config
// that fails validation fails the whole generation request up front.
func (c *SpeciesConfig) Validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("species %q: depth %d, want >= 1", c.Name, c.Depth)
	}
	if c.TrunkLength.Min <= 0 {
		return fmt.Errorf("species %q: trunk length min %v, want > 0", c.Name, c.TrunkLength.Min)
	}
	if c.LengthDecay.Min <= 0 || c.LengthDecay.Max >= 1 {
		return fmt.Errorf("species %q: length decay %v–%v, want within (0, 1)", c.Name, c.LengthDecay.Min, c.LengthDecay.Max)
	}
	if c.Taper == nil {
		return fmt.Errorf("species %q: nil taper", c.Name)
	}
	for i, e := range c.Entities {
		if e.GrowthWindow <= 0 {
			return fmt.Errorf("species %q: entity %d: growth window %v, want > 0", c.Name, i, e.GrowthWindow)
		}
		if e.Kind == KindSprite {
			if e.SpriteName == "" {
				return fmt.Errorf("species %q: entity %d: sprite kind without sprite name", c.Name, i)
			}
			if c.Assets == nil {
				return fmt.Errorf("species %q: entity %d: sprite %q but no assets filesystem", c.Name, i, e.SpriteName)
			}
		}
	}
	return nil
}

// powerTaper returns a taper where width falls off as base^(maxDepth-depth)
// from a trunk width. Shared by most presets.
func powerTaper(trunk, base float64) func(depth, maxDepth int) float64 {
	return func(depth, maxDepth int) float64 {
		return trunk * math.Pow(base, float64(maxDepth-depth))
	}
}

// --- Presets ---------------------------------------------------------------

// Oak is a broad deciduous tree: heavy trunk, wide crown, dense leaves.
func Oak() SpeciesConfig {
	return SpeciesConfig{
		Name:            "oak",
		Depth:           7,
		TrunkLength:     Range{170, 220},
		BranchCount:     Range{2, 3.4},
		LengthDecay:     Range{0.68, 0.84},
		AngleSpread:     0.45,
		Taper:           powerTaper(26, 0.62),
		Stroke:          Color{0.36, 0.25, 0.16, 1},
		StrokeHighlight: Color{0.48, 0.35, 0.22, 1},
		Entities:        []EntitySpec{
			{
				Kind: KindLeaf, Chance: 0.75, MaxPerBranch: 3, TipDepth: 2,
				Size: Range{9, 16},
				Base: Color{0.22, 0.48, 0.18, 1}, Highlight: Color{0.38, 0.64, 0.26, 1},
				GrowthWindow: 120,
			},
		},
	}
}

// Cherry blossoms after its leaves: pink discs with a delayed reveal.
func Cherry() SpeciesConfig {
	return SpeciesConfig{
		Name:            "cherry",
		Depth:           6,
		TrunkLength:     Range{140, 180},
		BranchCount:     Range{2, 4},
		LengthDecay:     Range{0.7, 0.86},
		AngleSpread:     0.55,
		Taper:           powerTaper(18, 0.65),
		Stroke:          Color{0.3, 0.2, 0.16, 1},
		StrokeHighlight: Color{0.42, 0.3, 0.24, 1},
		Entities:        []EntitySpec{
			{
				Kind: KindLeaf, Chance: 0.5, MaxPerBranch: 2, TipDepth: 2,
				Size: Range{7, 12},
				Base: Color{0.3, 0.52, 0.22, 1}, Highlight: Color{0.44, 0.66, 0.3, 1},
				GrowthWindow: 100,
			},
			{
				Kind: KindBlossom, Chance: 0.65, MaxPerBranch: 3, TipDepth: 1,
				Size: Range{8, 14},
				Base: Color{0.96, 0.75, 0.82, 1}, Highlight: Color{1, 0.9, 0.93, 1},
				GrowthWindow: 150, Delay: 90,
			},
		},
	}
}

// Cedar grows tiered: lateral, near-horizontal fans alternate with
// trunk-continuation children.
func Cedar() SpeciesConfig {
	return SpeciesConfig{
		Name:            "cedar",
		Depth:           8,
		TrunkLength:     Range{200, 240},
		BranchCount:     Range{2.6, 4},
		LengthDecay:     Range{0.65, 0.78},
		AngleSpread:     0.2,
		LateralChance:   0.6,
		LateralAngle:    Range{1.1, 1.5},
		Taper:           powerTaper(22, 0.68),
		Stroke:          Color{0.32, 0.24, 0.18, 1},
		StrokeHighlight: Color{0.26, 0.4, 0.24, 1},
		Entities:        []EntitySpec{
			{
				Kind: KindLeaf, Chance: 0.85, MaxPerBranch: 4, TipDepth: 3,
				Size: Range{6, 10},
				Base: Color{0.13, 0.34, 0.2, 1}, Highlight: Color{0.2, 0.45, 0.27, 1},
				GrowthWindow: 90,
			},
		},
	}
}

// Vine meanders with wide angle swings; it is the one preset that opts into
// a clip region so runaway shoots terminate instead of growing off-canvas.
func Vine() SpeciesConfig {
	return SpeciesConfig{
		Name:            "vine",
		Depth:           9,
		TrunkLength:     Range{90, 130},
		BranchCount:     Range{2, 2.8},
		LengthDecay:     Range{0.78, 0.9},
		AngleSpread:     0.9,
		Taper:           powerTaper(9, 0.78),
		Stroke:          Color{0.24, 0.42, 0.2, 1},
		StrokeHighlight: Color{0.34, 0.54, 0.28, 1},
		ClipRegion:      &Rect{X: -450, Y: -900, Width: 900, Height: 920},
		Entities:        []EntitySpec{
			{
				Kind: KindLeaf, Chance: 0.6, MaxPerBranch: 2, TipDepth: 4,
				Size: Range{8, 13},
				Base: Color{0.28, 0.5, 0.2, 1}, Highlight: Color{0.42, 0.62, 0.28, 1},
				GrowthWindow: 110,
			},
			{
				Kind: KindFruit, Chance: 0.2, MaxPerBranch: 1, TipDepth: 2,
				Size: Range{6, 9},
				Base: Color{0.42, 0.16, 0.38, 1}, Highlight: Color{0.58, 0.28, 0.52, 1},
				GrowthWindow: 160, Delay: 140,
			},
		},
	}
}

// Sunflower is a short stalk with few branches and heavy blossom heads that
// open well after the stem has grown.
func Sunflower() SpeciesConfig {
	return SpeciesConfig{
		Name:            "sunflower",
		Depth:           4,
		TrunkLength:     Range{200, 240},
		BranchCount:     Range{2, 2},
		LengthDecay:     Range{0.72, 0.82},
		AngleSpread:     0.3,
		Taper:           powerTaper(10, 0.72),
		Stroke:          Color{0.26, 0.46, 0.18, 1},
		StrokeHighlight: Color{0.38, 0.58, 0.26, 1},
		Entities:        []EntitySpec{
			{
				Kind: KindLeaf, Chance: 0.55, MaxPerBranch: 2, TipDepth: 2,
				Size: Range{12, 18},
				Base: Color{0.24, 0.46, 0.18, 1}, Highlight: Color{0.36, 0.58, 0.26, 1},
				GrowthWindow: 110,
			},
			{
				Kind: KindBlossom, Chance: 0.9, MaxPerBranch: 1, TipDepth: 0,
				Size: Range{22, 30},
				Base: Color{0.95, 0.76, 0.12, 1}, Highlight: Color{0.45, 0.28, 0.1, 1},
				GrowthWindow: 200, Delay: 120,
			},
		},
	}
}

// Presets maps species names to their preset constructors, for demos and
// anything else selecting a species by name.
var Presets = map[string]func() SpeciesConfig{
	"oak":       Oak,
	"cherry":    Cherry,
	"cedar":     Cedar,
	"vine":      Vine,
	"sunflower": Sunflower,
}
