//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Nodal-Works/interactive-map-sub001/internal/core"
	"github.com/Nodal-Works/interactive-map-sub001/internal/render"
)

type velocityProvider interface {
	VelocityAt(x, y float64) (float64, float64)
	SmoothedMaxSpeed() float64
}

// Overlay draws optional velocity vector arrows on top of the speed field.
// Toggled with the V key.
type Overlay struct {
	sim        core.Sim
	scale      int
	showArrows bool

	// arrowSpacing is the sample stride in cells.
	arrowSpacing int
}

// NewOverlay constructs an overlay for the provided simulation.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale < 1 {
		scale = 1
	}
	return &Overlay{sim: sim, scale: scale, arrowSpacing: 8}
}

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		o.showArrows = !o.showArrows
	}
}

// Draw paints the vector arrows when enabled. Arrow length is normalized by
// the adaptive maximum so the longest arrow spans roughly one sample cell.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showArrows {
		return
	}
	vp, ok := o.sim.(velocityProvider)
	if !ok {
		return
	}
	norm := vp.SmoothedMaxSpeed()
	if norm <= 0 {
		return
	}
	size := o.sim.Size()
	span := float64(o.arrowSpacing * o.scale)
	col := color.RGBA{R: 240, G: 240, B: 245, A: 170}
	for cy := o.arrowSpacing / 2; cy < size.H; cy += o.arrowSpacing {
		for cx := o.arrowSpacing / 2; cx < size.W; cx += o.arrowSpacing {
			vx, vy := vp.VelocityAt(float64(cx)+0.5, float64(cy)+0.5)
			mag := math.Sqrt(vx*vx + vy*vy)
			if mag < norm*0.02 {
				continue
			}
			f := span / norm
			px := float32((float64(cx) + 0.5) * float64(o.scale))
			py := float32((float64(cy) + 0.5) * float64(o.scale))
			render.DrawArrow(screen, px, py, float32(vx*f), float32(vy*f), col)
		}
	}
}
