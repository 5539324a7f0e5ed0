package wind

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Display encoding: indices 0-254 map normalized speed onto the palette ramp,
// index 255 marks obstacle cells.
const obstacleIndex = 255

var windPalette = buildWindPalette()

// Palette exposes the color palette used for rendering the speed field.
func (s *Simulation) Palette() []color.RGBA {
	return windPalette
}

// buildWindPalette ramps from a calm deep blue through cyan and green up to a
// warm yellow at the smoothed maximum speed, interpolated in HCL so the
// perceived brightness rises evenly with speed.
func buildWindPalette() []color.RGBA {
	low, _ := colorful.Hex("#1a2a6c")
	mid, _ := colorful.Hex("#2ec4b6")
	high, _ := colorful.Hex("#ffd23f")

	palette := make([]color.RGBA, 256)
	for i := 0; i < 255; i++ {
		t := float64(i) / 254
		var c colorful.Color
		if t < 0.5 {
			c = low.BlendHcl(mid, t*2).Clamped()
		} else {
			c = mid.BlendHcl(high, (t-0.5)*2).Clamped()
		}
		r, g, b := c.RGB255()
		palette[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	palette[obstacleIndex] = color.RGBA{R: 28, G: 28, B: 32, A: 255}
	return palette
}

// rebuildDisplay re-encodes the visible sub-grid into the display buffer,
// normalizing speed by the smoothed maximum.
func (s *Simulation) rebuildDisplay() {
	ux := s.velX.Values()
	uy := s.velY.Values()
	mask := s.obstacle.Values()
	norm := s.scale.Value()

	for y := 0; y < s.dom.visH; y++ {
		row := y * s.dom.visW
		for x := 0; x < s.dom.visW; x++ {
			c := (s.dom.visX+x)*s.dom.ny + (s.dom.visY + y)
			if mask[c] {
				s.display[row+x] = obstacleIndex
				continue
			}
			speed := math.Sqrt(ux[c]*ux[c] + uy[c]*uy[c])
			t := speed / norm
			if t > 1 {
				t = 1
			}
			s.display[row+x] = uint8(t * 254)
		}
	}
}

// DisplaySpeedMS converts a lattice speed to the real-world m/s value shown
// on the legend. Approximate display scale only.
func (s *Simulation) DisplaySpeedMS(lattice float64) float64 {
	if s.inletSpeed <= 0 {
		return 0
	}
	return lattice / s.inletSpeed * s.params.WindSpeedMS
}
