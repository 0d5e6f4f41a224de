// Package sapling procedurally grows deterministic botanical illustrations
// (trees, flowers, vines) from a seed string and replays their growth as an
// animation.
//
// A generation run flows one direction: the seed string feeds a reproducible
// pseudo-random stream, the stream drives a recursive structure builder that
// produces an immutable branch tree with attached leaves, blossoms, and
// fruit, an auto-fit transform scales that tree into a padded canvas, and a
// growth projector turns any scalar progress value into a flat, partially
// revealed snapshot ready for rasterization.
//
// # Quick start
//
//	plant, err := sapling.Grow("seed #123", sapling.Oak(), sapling.RenderOptions{
//		Width: 512, Height: 512, Padding: 24,
//	})
//	if err != nil {
//		// ...
//	}
//	f, _ := os.Create("oak.png")
//	plant.EncodePNG(f)
//
// The same seed string always grows the same plant, bit for bit, across
// processes and platforms.
//
// # Growth animation
//
// Growth is driven purely by a scalar "progress distance": a branch is
// revealed once the progress value passes its cumulative path distance from
// the root, and its curve is subdivided (De Casteljau) so partially grown
// branches keep their final shape. Because the structure is immutable and a
// snapshot is a pure function of (structure, progress), frames can be
// produced in any order — [Plant.Still] seeks straight to full growth, and
// [Plant.Animate] sweeps progress under an easing curve and streams raw
// frames to a [FrameSink] such as [FFmpegSink].
//
// # Species
//
// All species share one generation engine parameterized by a
// [SpeciesConfig]: branching counts, angle spreads, taper curves, and an
// entity table. Presets: [Oak], [Cherry], [Cedar], [Vine], [Sunflower].
package sapling
