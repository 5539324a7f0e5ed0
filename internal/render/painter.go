//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// FieldPainter uploads a palette-indexed cell buffer into a single image and
// draws it scaled up to the screen.
type FieldPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewFieldPainter allocates a painter for a visible grid of size w*h.
func NewFieldPainter(w, h int) *FieldPainter {
	fp := &FieldPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	fp.img = ebiten.NewImage(w, h)
	return fp
}

// Size returns the dimensions of the underlying image.
func (fp *FieldPainter) Size() (int, int) { return fp.w, fp.h }

// Blit uploads the provided cells and draws the field at the given scale.
func (fp *FieldPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != fp.w*fp.h {
		return
	}
	FillPaletteRGBA(fp.buf, cells, palette)
	fp.img.WritePixels(fp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(fp.img, op)
}

// DrawDot paints one tracer particle as a small glowing disc. alpha fades
// with particle age.
func DrawDot(dst *ebiten.Image, x, y, radius float32, alpha float64) {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	a := uint8(alpha * 255)
	halo := color.RGBA{R: 255, G: 255, B: 255, A: a / 4}
	dot := color.RGBA{R: 255, G: 255, B: 255, A: a}
	vector.DrawFilledCircle(dst, x, y, radius*2, halo, true)
	vector.DrawFilledCircle(dst, x, y, radius, dot, true)
}

// DrawArrow strokes a velocity arrow from (x, y) along (dx, dy).
func DrawArrow(dst *ebiten.Image, x, y, dx, dy float32, col color.Color) {
	tipX := x + dx
	tipY := y + dy
	vector.StrokeLine(dst, x, y, tipX, tipY, 1, col, true)
	// Short barbs at roughly 150° off the shaft.
	bx := -0.25*dx + 0.15*dy
	by := -0.25*dy - 0.15*dx
	vector.StrokeLine(dst, tipX, tipY, tipX+bx, tipY+by, 1, col, true)
	bx = -0.25*dx - 0.15*dy
	by = -0.25*dy + 0.15*dx
	vector.StrokeLine(dst, tipX, tipY, tipX+bx, tipY+by, 1, col, true)
}
