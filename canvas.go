package sapling

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// strokeSegments is the number of chords a branch curve is flattened into
// when extruding its stroke outline.
const strokeSegments = 14

// circleK is the cubic Bezier circle constant (4/3 * tan(π/8)).
const circleK = 0.5522847498

// Canvas is a CPU raster surface with a straight-alpha RGBA backing. All
// drawing is scanline-rasterized through a coverage mask; no GPU context is
// required, so frames can be produced headless and streamed to an encoder.
//
// Not safe for concurrent use; each generation request owns its canvas.
type Canvas struct {
	img  *image.NRGBA
	mask *image.Alpha
	ras  *vector.Rasterizer
}

// NewCanvas creates a transparent canvas of the given pixel size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:  image.NewNRGBA(image.Rect(0, 0, width, height)),
		mask: image.NewAlpha(image.Rect(0, 0, width, height)),
		ras:  vector.NewRasterizer(width, height),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

// Clear fills the whole canvas with col, replacing existing content.
// Clear with a zero-alpha color resets the canvas to fully transparent.
func (c *Canvas) Clear(col Color) {
	u := image.NewUniform(col.NRGBA())
	draw.Draw(c.img, c.img.Rect, u, image.Point{}, draw.Src)
}

// paint rasterizes the pending path into the coverage mask and composites
// col over the canvas through it. The composite is limited to bbox, so small
// shapes stay cheap on large canvases.
func (c *Canvas) paint(bbox image.Rectangle, col Color) {
	bbox = bbox.Intersect(c.img.Rect)
	if bbox.Empty() {
		return
	}
	// The rasterizer aligns its origin with the destination rectangle's Min,
	// and the accumulated path is in absolute canvas coordinates, so the mask
	// must be drawn over the full canvas. Only the composite is bbox-limited.
	c.ras.DrawOp = draw.Src
	c.ras.Draw(c.mask, c.mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(c.img, bbox, image.NewUniform(col.NRGBA()), image.Point{}, c.mask, bbox.Min, draw.Over)
}

// outlineBBox returns the pixel bounding box of a point list, padded by one
// pixel for antialiased edges.
func outlineBBox(pts []Vec2) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return image.Rect(int(minX)-1, int(minY)-1, int(maxX)+2, int(maxY)+2)
}

// fillOutline rasterizes a closed polygon and composites it over the canvas.
func (c *Canvas) fillOutline(pts []Vec2, col Color) {
	if len(pts) < 3 || col.A <= 0 {
		return
	}
	c.ras.Reset(c.Width(), c.Height())
	c.ras.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		c.ras.LineTo(float32(p.X), float32(p.Y))
	}
	c.ras.ClosePath()
	c.paint(outlineBBox(pts), col)
}

// StrokeQuad paints the quadratic curve (a, ctrl, b) as a filled band of
// width w0 at the start tapering to w1 at the end, with round caps. The
// band is built by flattening the curve and extruding each sample along its
// perpendicular — a vector stroke, not a chain of stamped dots, so joints
// stay clean at any scale.
func (c *Canvas) StrokeQuad(a, ctrl, b Vec2, w0, w1 float64, col Color) {
	if col.A <= 0 || (w0 <= 0 && w1 <= 0) {
		return
	}

	var pts [strokeSegments + 1]Vec2
	for i := range pts {
		pts[i] = quadPoint(a, ctrl, b, float64(i)/strokeSegments)
	}

	outline := make([]Vec2, 0, 2*len(pts))
	side := make([]Vec2, len(pts))
	for i, p := range pts {
		// Tangent from the neighboring chord; the last sample reuses the
		// chord behind it.
		var px, py float64
		if i < len(pts)-1 {
			px, py = perpendicular(pts[i], pts[i+1])
		} else {
			px, py = perpendicular(pts[i-1], pts[i])
		}
		h := (w0 + (w1-w0)*float64(i)/strokeSegments) / 2
		outline = append(outline, Vec2{p.X + px*h, p.Y + py*h})
		side[len(pts)-1-i] = Vec2{p.X - px*h, p.Y - py*h}
	}
	outline = append(outline, side...)
	c.fillOutline(outline, col)

	// Round caps.
	c.FillCircle(a, w0/2, col)
	c.FillCircle(b, w1/2, col)
}

// FillCircle paints a filled circle of radius r centered at p.
func (c *Canvas) FillCircle(p Vec2, r float64, col Color) {
	c.FillEllipse(p, r, r, col)
}

// FillEllipse paints a filled axis-aligned ellipse with radii rx, ry
// centered at p, approximated by four cubic Bezier arcs.
func (c *Canvas) FillEllipse(p Vec2, rx, ry float64, col Color) {
	if rx <= 0 || ry <= 0 || col.A <= 0 {
		return
	}
	c.ras.Reset(c.Width(), c.Height())

	x, y := float32(p.X), float32(p.Y)
	dx, dy := float32(rx), float32(ry)
	kx, ky := float32(rx*circleK), float32(ry*circleK)

	c.ras.MoveTo(x+dx, y)
	c.ras.CubeTo(x+dx, y+ky, x+kx, y+dy, x, y+dy)
	c.ras.CubeTo(x-kx, y+dy, x-dx, y+ky, x-dx, y)
	c.ras.CubeTo(x-dx, y-ky, x-kx, y-dy, x, y-dy)
	c.ras.CubeTo(x+kx, y-dy, x+dx, y-ky, x+dx, y)
	c.ras.ClosePath()

	bbox := image.Rect(
		int(p.X-rx)-1, int(p.Y-ry)-1,
		int(p.X+rx)+2, int(p.Y+ry)+2,
	)
	c.paint(bbox, col)
}

// DrawSprite composites a decoded sprite centered at p, scaled so its larger
// dimension spans 2*size pixels, with its alpha multiplied by alpha.
func (c *Canvas) DrawSprite(spr *Sprite, p Vec2, size, alpha float64) {
	if spr == nil || size <= 0 || alpha <= 0 {
		return
	}
	sb := spr.img.Bounds()
	long := float64(max(sb.Dx(), sb.Dy()))
	s := 2 * size / long
	w := float64(sb.Dx()) * s
	h := float64(sb.Dy()) * s
	dr := image.Rect(
		int(p.X-w/2), int(p.Y-h/2),
		int(p.X+w/2), int(p.Y+h/2),
	)
	var opts *xdraw.Options
	if alpha < 1 {
		opts = &xdraw.Options{
			SrcMask: image.NewUniform(color.Alpha{A: clamp8(alpha)}),
		}
	}
	xdraw.ApproxBiLinear.Scale(c.img, dr, spr.img, sb, xdraw.Over, opts)
}

// Image returns the straight-alpha backing image. The canvas retains
// ownership; the image is valid until the next draw call mutates it.
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// RGBA returns the raw straight-alpha RGBA pixels, row-major, 4 bytes per
// pixel — the frame format the encoder sink consumes. The slice aliases the
// canvas backing store and is overwritten by subsequent draws.
func (c *Canvas) RGBA() []byte {
	return c.img.Pix
}

// Premultiplied returns a premultiplied-alpha copy of the pixels, the format
// GPU surfaces (e.g. Ebitengine's WritePixels) expect.
func (c *Canvas) Premultiplied() []byte {
	src := c.img.Pix
	out := make([]byte, len(src))
	for i := 0; i < len(src); i += 4 {
		a := uint32(src[i+3])
		out[i] = uint8(uint32(src[i]) * a / 255)
		out[i+1] = uint8(uint32(src[i+1]) * a / 255)
		out[i+2] = uint8(uint32(src[i+2]) * a / 255)
		out[i+3] = uint8(a)
	}
	return out
}

// EncodePNG writes the canvas as a PNG (RGBA, transparency preserved).
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}
