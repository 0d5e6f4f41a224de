package sapling

import (
	"fmt"
	"image"
	"image/draw"
	"io/fs"

	// Sprite assets are PNGs; species compositing other formats register
	// their decoders the same way.
	_ "image/png"
)

// Sprite is a decoded static asset (e.g. a blossom image) ready for
// compositing onto procedural geometry.
type Sprite struct {
	img *image.NRGBA
}

// LoadSprite decodes an image asset from fsys. A missing or undecodable
// asset fails the whole generation request before any output is produced.
func LoadSprite(fsys fs.FS, name string) (*Sprite, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("load sprite %s: %w", name, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load sprite %s: decode: %w", name, err)
	}
	return NewSprite(src), nil
}

// NewSprite wraps an already decoded image, converting it to the canvas's
// straight-alpha format if needed.
func NewSprite(src image.Image) *Sprite {
	if n, ok := src.(*image.NRGBA); ok {
		return &Sprite{img: n}
	}
	b := src.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Rect, src, b.Min, draw.Src)
	return &Sprite{img: n}
}

// loadSpeciesSprites decodes every sprite the entity table references,
// indexed by entity table position (nil for vector kinds).
func loadSpeciesSprites(cfg *SpeciesConfig) ([]*Sprite, error) {
	var sprites []*Sprite
	for i, e := range cfg.Entities {
		if e.Kind != KindSprite {
			continue
		}
		if sprites == nil {
			sprites = make([]*Sprite, len(cfg.Entities))
		}
		spr, err := LoadSprite(cfg.Assets, e.SpriteName)
		if err != nil {
			return nil, err
		}
		sprites[i] = spr
	}
	return sprites, nil
}
