//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/Nodal-Works/interactive-map-sub001/internal/core"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type legendProvider interface {
	SmoothedMaxSpeed() float64
	DisplaySpeedMS(lattice float64) float64
	Palette() []color.RGBA
}

const (
	controlRowHeight = 22
	controlTopMargin = 34
	buttonSize       = 14
	legendHeight     = 70
)

// HUD renders the parameter panel and wind-speed legend to the right of the
// table view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int

	controls    []hudControl
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter

	panelOffsetX int
	pixel        *ebiten.Image
}

type hudControl struct {
	control core.ParameterControl
	value   string
	minus   image.Rectangle
	plus    image.Rectangle
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		h.controls = make([]hudControl, len(controls))
		for i, ctrl := range controls {
			y := controlTopMargin + i*controlRowHeight
			h.controls[i] = hudControl{
				control: ctrl,
				value:   "--",
				minus:   image.Rect(width-2*buttonSize-12, y, width-buttonSize-12, y+buttonSize),
				plus:    image.Rect(width-buttonSize-8, y, width-8, y+buttonSize),
			}
		}
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.floatSetter = setter
	}
	return h
}

// Update refreshes cached parameter values and handles clicks on the +/-
// buttons.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	h.panelOffsetX = panelOffsetX
	if provider, ok := h.sim.(parameterProvider); ok {
		values := map[string]string{}
		for _, group := range provider.Parameters().Groups {
			for _, p := range group.Params {
				values[p.Key] = p.Value
			}
		}
		for i := range h.controls {
			if v, ok := values[h.controls[i].control.Key]; ok {
				h.controls[i].value = v
			}
		}
	}
	h.handleClicks()
}

func (h *HUD) handleClicks() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	mx -= h.panelOffsetX
	pt := image.Pt(mx, my)
	for i := range h.controls {
		c := &h.controls[i]
		if pt.In(c.minus) {
			h.adjust(c, -1)
			return
		}
		if pt.In(c.plus) {
			h.adjust(c, +1)
			return
		}
	}
}

// adjust bumps a control one step in the given direction. Choice controls
// cycle through their allowed values instead of stepping.
func (h *HUD) adjust(c *hudControl, dir int) {
	cur, err := strconv.ParseFloat(c.value, 64)
	if err != nil {
		return
	}
	ctrl := c.control
	switch ctrl.Type {
	case core.ParamTypeChoice:
		if len(ctrl.Choices) == 0 || h.intSetter == nil {
			return
		}
		idx := 0
		for i, v := range ctrl.Choices {
			if v == cur {
				idx = i
				break
			}
		}
		idx = (idx + dir + len(ctrl.Choices)) % len(ctrl.Choices)
		h.intSetter.SetIntParameter(ctrl.Key, int(ctrl.Choices[idx]))
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return
		}
		h.intSetter.SetIntParameter(ctrl.Key, int(cur)+dir*int(ctrl.Step))
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return
		}
		h.floatSetter.SetFloatParameter(ctrl.Key, cur+float64(dir)*ctrl.Step)
	}
}

// Draw paints the panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	text.Draw(h.panel, "Wind Controls", face, 8, 20, color.White)

	for _, c := range h.controls {
		y := c.minus.Min.Y
		text.Draw(h.panel, c.control.Label, face, 8, y+11, color.RGBA{R: 190, G: 190, B: 200, A: 255})
		text.Draw(h.panel, c.value, face, h.width/2, y+11, color.White)
		h.drawButton(c.minus, "-")
		h.drawButton(c.plus, "+")
	}

	h.drawLegend(height)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(r image.Rectangle, label string) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.Scale(0.25, 0.25, 0.3, 1)
	h.panel.DrawImage(h.pixel, op)
	text.Draw(h.panel, label, basicfont.Face7x13, r.Min.X+4, r.Min.Y+11, color.White)
}

// drawLegend paints the speed color ramp with m/s endpoints derived from the
// adaptive scale.
func (h *HUD) drawLegend(height int) {
	lp, ok := h.sim.(legendProvider)
	if !ok {
		return
	}
	palette := lp.Palette()
	if len(palette) < 2 {
		return
	}
	y0 := height - legendHeight
	barW := h.width - 16
	if barW <= 1 {
		return
	}
	text.Draw(h.panel, "Speed", basicfont.Face7x13, 8, y0+12, color.White)
	for x := 0; x < barW; x++ {
		idx := x * 254 / (barW - 1)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(1, 12)
		op.GeoM.Translate(float64(8+x), float64(y0+20))
		c := palette[idx]
		op.ColorScale.Scale(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1)
		h.panel.DrawImage(h.pixel, op)
	}
	maxMS := lp.DisplaySpeedMS(lp.SmoothedMaxSpeed())
	text.Draw(h.panel, "0", basicfont.Face7x13, 8, y0+48, color.White)
	label := fmt.Sprintf("%.1f m/s", maxMS)
	text.Draw(h.panel, label, basicfont.Face7x13, h.width-8-7*len(label), y0+48, color.White)
}
