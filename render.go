package sapling

import (
	"math"
	"sort"
)

// RenderSnapshot paints one growth snapshot onto the canvas in the fixed
// z-order: the bark/stem pass, a secondary highlight pass, then entities
// back-to-front by vertical position — except fruit, which is always painted
// last so it sits on top of the foliage. The snapshot is not modified.
func RenderSnapshot(c *Canvas, snap *Snapshot, sprites []*Sprite) {
	for _, b := range snap.Branches {
		c.StrokeQuad(b.Start, b.Control, b.End, b.Width, b.Width, b.Stroke)
	}
	for _, b := range snap.Branches {
		c.StrokeQuad(b.Start, b.Control, b.End, b.Width*0.4, b.Width*0.4, b.Highlight)
	}

	order := paintOrder(snap.Entities)
	for _, e := range order {
		var spr *Sprite
		if e.Sprite >= 0 && e.Sprite < len(sprites) {
			spr = sprites[e.Sprite]
		}
		drawEntity(c, e, spr)
	}
}

// paintOrder returns the entities sorted for painting: non-fruit first,
// back-to-front by canvas Y, fruit after everything. The sort is stable so
// co-located entities keep their generation order and frames stay
// deterministic.
func paintOrder(entities []DrawnEntity) []DrawnEntity {
	order := make([]DrawnEntity, len(entities))
	copy(order, entities)
	sort.SliceStable(order, func(i, j int) bool {
		fi, fj := order[i].Kind == KindFruit, order[j].Kind == KindFruit
		if fi != fj {
			return fj
		}
		return order[i].Center.Y < order[j].Center.Y
	})
	return order
}

func drawEntity(c *Canvas, e DrawnEntity, spr *Sprite) {
	base := e.Base.WithAlpha(e.Alpha)
	hi := e.Highlight.WithAlpha(e.Alpha)

	switch e.Kind {
	case KindLeaf:
		c.FillEllipse(e.Center, e.Size, e.Size*0.65, base)
		c.FillEllipse(Vec2{e.Center.X, e.Center.Y - e.Size*0.15}, e.Size*0.6, e.Size*0.3, hi)

	case KindBlossom:
		// Five petals around a contrasting center.
		for i := 0; i < 5; i++ {
			a := float64(i) * 2 * math.Pi / 5
			c.FillCircle(polar(e.Center, e.Size*0.55, a), e.Size*0.5, base)
		}
		c.FillCircle(e.Center, e.Size*0.45, hi)

	case KindFruit:
		c.FillCircle(e.Center, e.Size, base)
		c.FillCircle(Vec2{e.Center.X - e.Size*0.3, e.Center.Y - e.Size*0.3}, e.Size*0.3, hi)

	case KindSprite:
		c.DrawSprite(spr, e.Center, e.Size, e.Alpha)
	}
}
