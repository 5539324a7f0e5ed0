package wind

import "math"

// Point is a position in canvas-pixel space.
type Point struct {
	X float64
	Y float64
}

// Polygon is a closed ring of canvas-pixel vertices. The closing edge from
// the last vertex back to the first is implicit.
type Polygon []Point

// SetObstacles replaces the obstacle set and rasterizes it into the mask.
// The polygons are kept so grid reallocations can rebuild the mask.
func (s *Simulation) SetObstacles(polys []Polygon) {
	s.polys = polys
	s.rasterize()
}

// ObstacleCount returns the number of cells currently flagged as obstacles.
func (s *Simulation) ObstacleCount() int {
	n := 0
	for _, v := range s.obstacle.Values() {
		if v {
			n++
		}
	}
	return n
}

// rasterize rebuilds the obstacle mask from the applied polygons. The mask is
// cleared first so obstacles from a previous set never linger. For each
// polygon only the cells inside its bounding box are point-in-polygon tested
// at their centers.
func (s *Simulation) rasterize() {
	s.obstacle.Clear()
	mask := s.obstacle.Values()
	for _, poly := range s.polys {
		if len(poly) < 3 {
			continue
		}
		minX, minY, maxX, maxY := polyBounds(poly)

		// Bounding box in padded-grid indices, clamped. Padding cells are
		// legitimate targets: footprints may extend past the viewport.
		i0 := s.dom.visX + int(math.Floor(minX/s.dom.cellPx))
		i1 := s.dom.visX + int(math.Ceil(maxX/s.dom.cellPx))
		j0 := s.dom.visY + int(math.Floor(minY/s.dom.cellPx))
		j1 := s.dom.visY + int(math.Ceil(maxY/s.dom.cellPx))
		if i0 < 0 {
			i0 = 0
		}
		if j0 < 0 {
			j0 = 0
		}
		if i1 > s.dom.nx-1 {
			i1 = s.dom.nx - 1
		}
		if j1 > s.dom.ny-1 {
			j1 = s.dom.ny - 1
		}

		for i := i0; i <= i1; i++ {
			for j := j0; j <= j1; j++ {
				cx, cy := s.dom.cellCenter(i, j)
				if pointInPolygon(cx, cy, poly) {
					mask[i*s.dom.ny+j] = true
				}
			}
		}
	}
}

func polyBounds(poly Polygon) (minX, minY, maxX, maxY float64) {
	minX, minY = poly[0].X, poly[0].Y
	maxX, maxY = minX, minY
	for _, p := range poly[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return
}

// pointInPolygon is the standard even-odd ray-casting test against the
// polygon's vertex ring.
func pointInPolygon(x, y float64, poly Polygon) bool {
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		xi, yi := poly[i].X, poly[i].Y
		xj, yj := poly[j].X, poly[j].Y
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}
