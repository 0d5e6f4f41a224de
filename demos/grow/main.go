// Grow opens a window and shows a plant growing live.
//
// The structure is built once from the seed; every displayed frame is just a
// projection of that immutable structure at the current progress value, so
// replaying (space) costs nothing but redrawing.
//
// Keys: space replays the growth, N grows a new plant from a fresh seed.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/sapling"
)

const (
	screenW = 640
	screenH = 640
	padding = 32

	growSeconds = 5.0
)

type game struct {
	seed    string
	variant int
	species func() sapling.SpeciesConfig

	plant  *sapling.Plant
	canvas *sapling.Canvas
	frame  *ebiten.Image
	tween  *gween.Tween

	progress float64
	dirty    bool
}

func newGame(seed, species string) (*game, error) {
	preset, ok := sapling.Presets[species]
	if !ok {
		return nil, fmt.Errorf("unknown species %q", species)
	}
	g := &game{
		seed:    seed,
		species: preset,
		canvas:  sapling.NewCanvas(screenW, screenH),
		frame:   ebiten.NewImage(screenW, screenH),
	}
	if err := g.replant(); err != nil {
		return nil, err
	}
	return g, nil
}

// replant builds the plant for the current seed variant and restarts growth.
func (g *game) replant() error {
	seed := g.seed
	if g.variant > 0 {
		seed = fmt.Sprintf("%s #%d", g.seed, g.variant)
	}
	plant, err := sapling.Grow(seed, g.species(), sapling.RenderOptions{
		Width: screenW, Height: screenH, Padding: padding,
	})
	if err != nil {
		return err
	}
	g.plant = plant
	g.restart()
	return nil
}

// restart rewinds the growth sweep without rebuilding the structure.
func (g *game) restart() {
	g.tween = gween.New(0, float32(g.plant.FullGrowth()), growSeconds, ease.OutCubic)
	g.progress = 0
	g.dirty = true
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.variant++
		if err := g.replant(); err != nil {
			return err
		}
	}

	progress, finished := g.tween.Update(1.0 / 60)
	p := float64(progress)
	if finished {
		p = g.plant.FullGrowth()
	}
	if p != g.progress {
		g.progress = p
		g.dirty = true
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.dirty {
		g.plant.RenderFrame(g.canvas, g.progress)
		g.frame.WritePixels(g.canvas.Premultiplied())
		g.dirty = false
	}
	screen.Fill(sapling.Color{R: 0.93, G: 0.95, B: 0.9, A: 1}.NRGBA())
	screen.DrawImage(g.frame, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return screenW, screenH
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("[sapling] ")

	seed := flag.String("seed", "seed #1", "seed string")
	species := flag.String("species", "cherry", "species preset")
	flag.Parse()

	g, err := newGame(*seed, *species)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("sapling — " + *species)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
