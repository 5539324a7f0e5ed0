package wind

import "math"

// Padding factors applied around the visible region, as fractions of the
// visible extent. The upstream margin is the largest so the inlet boundary
// artifact stays off the table.
const (
	padUpstream   = 1.0
	padDownstream = 0.5
	padVertical   = 0.2
)

// domain describes the computational grid derived from a viewport size and a
// target resolution. The visible window occupies cells
// [visX, visX+visW) × [visY, visY+visH) of the padded nx×ny grid.
type domain struct {
	nx, ny int

	visX, visY int
	visW, visH int

	// cellPx is the edge length of one cell in canvas pixels.
	cellPx float64
}

// computeDomain derives grid dimensions from the viewport aspect ratio so
// that the longer visible dimension spans resolution cells.
func computeDomain(viewportW, viewportH, resolution int) domain {
	if viewportW <= 0 {
		viewportW = 1
	}
	if viewportH <= 0 {
		viewportH = 1
	}
	var visW, visH int
	if viewportW >= viewportH {
		visW = resolution
		visH = int(math.Round(float64(resolution) * float64(viewportH) / float64(viewportW)))
	} else {
		visH = resolution
		visW = int(math.Round(float64(resolution) * float64(viewportW) / float64(viewportH)))
	}
	if visW < 1 {
		visW = 1
	}
	if visH < 1 {
		visH = 1
	}

	up := int(math.Round(padUpstream * float64(visW)))
	down := int(math.Round(padDownstream * float64(visW)))
	vert := int(math.Round(padVertical * float64(visH)))

	return domain{
		nx:     up + visW + down,
		ny:     vert + visH + vert,
		visX:   up,
		visY:   vert,
		visW:   visW,
		visH:   visH,
		cellPx: float64(viewportW) / float64(visW),
	}
}

// canvasToCell converts canvas-pixel coordinates to fractional grid
// coordinates on the padded grid.
func (d domain) canvasToCell(px, py float64) (float64, float64) {
	return float64(d.visX) + px/d.cellPx, float64(d.visY) + py/d.cellPx
}

// cellCenter returns the canvas-pixel position of the center of cell (i, j).
// Cells in the padding region map to coordinates outside the viewport.
func (d domain) cellCenter(i, j int) (float64, float64) {
	return (float64(i-d.visX) + 0.5) * d.cellPx, (float64(j-d.visY) + 0.5) * d.cellPx
}
