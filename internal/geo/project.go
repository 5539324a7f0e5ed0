package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Nodal-Works/interactive-map-sub001/internal/sims/wind"
)

// Projection maps projected map coordinates (meters, y growing north) to
// canvas pixels (y growing down). The solver only ever sees the canvas-pixel
// output, keeping it decoupled from any particular map source.
type Projection func(x, y float64) (float64, float64)

// NewViewportProjection fits bound into a viewport of the given pixel size,
// preserving aspect ratio and centering, then rotates about the viewport
// center so the configured wind direction blows along the +x lattice axis. A
// rotation of 0 means wind from the west; the value follows the
// meteorological convention (degrees the wind comes from, clockwise from
// north).
func NewViewportProjection(bound orb.Bound, viewportW, viewportH float64, windDirDeg float64) Projection {
	spanX := bound.Max[0] - bound.Min[0]
	spanY := bound.Max[1] - bound.Min[1]
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}
	scale := math.Min(viewportW/spanX, viewportH/spanY)
	offX := (viewportW - spanX*scale) / 2
	offY := (viewportH - spanY*scale) / 2

	// Wind from the west (270°) needs no rotation: it already flows +x.
	theta := (windDirDeg - 270) * math.Pi / 180
	sin, cos := math.Sincos(theta)
	cx := viewportW / 2
	cy := viewportH / 2

	return func(x, y float64) (float64, float64) {
		px := (x-bound.Min[0])*scale + offX
		py := viewportH - ((y-bound.Min[1])*scale + offY)
		dx := px - cx
		dy := py - cy
		return cx + dx*cos - dy*sin, cy + dx*sin + dy*cos
	}
}

// CollectionBound returns the bounding box of every geometry in the feature
// collection.
func CollectionBound(fc *geojson.FeatureCollection) orb.Bound {
	var bound orb.Bound
	first := true
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		b := f.Geometry.Bound()
		if first {
			bound = b
			first = false
			continue
		}
		bound = bound.Union(b)
	}
	return bound
}

// ProjectCollection converts every polygonal feature's outer ring into a
// canvas-pixel obstacle polygon. Holes are ignored: a courtyard does not
// change the footprint the wind sees at this resolution.
func ProjectCollection(fc *geojson.FeatureCollection, proj Projection) []wind.Polygon {
	var polys []wind.Polygon
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			if ring := projectRing(g, proj); ring != nil {
				polys = append(polys, ring)
			}
		case orb.MultiPolygon:
			for _, p := range g {
				if ring := projectRing(p, proj); ring != nil {
					polys = append(polys, ring)
				}
			}
		}
	}
	return polys
}

func projectRing(p orb.Polygon, proj Projection) wind.Polygon {
	if len(p) == 0 || len(p[0]) < 3 {
		return nil
	}
	outer := p[0]
	ring := make(wind.Polygon, 0, len(outer))
	for _, pt := range outer {
		x, y := proj(pt[0], pt[1])
		ring = append(ring, wind.Point{X: x, Y: y})
	}
	return ring
}
