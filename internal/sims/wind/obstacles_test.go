package wind

import "testing"

func TestRasterizeClearsPreviousMask(t *testing.T) {
	s := newTestSim(500, 300, 50)

	s.SetObstacles([]Polygon{{
		{X: 100, Y: 100}, {X: 150, Y: 100}, {X: 150, Y: 150}, {X: 100, Y: 150},
	}})
	if s.ObstacleCount() == 0 {
		t.Fatal("first polygon rasterized to zero cells")
	}
	firstMask := append([]bool(nil), s.obstacle.Values()...)

	s.SetObstacles([]Polygon{{
		{X: 300, Y: 100}, {X: 350, Y: 100}, {X: 350, Y: 150}, {X: 300, Y: 150},
	}})
	for c, was := range firstMask {
		if was && s.obstacle.Values()[c] {
			t.Fatalf("cell %d from the previous obstacle set lingers", c)
		}
	}
}

func TestRasterizeMarksCellCenters(t *testing.T) {
	// cellPx = 10: the polygon [100,200)x[100,200) covers exactly cells
	// 10..19 in each visible axis.
	s := newTestSim(500, 300, 50)
	s.SetObstacles([]Polygon{{
		{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 200, Y: 200}, {X: 100, Y: 200},
	}})

	mask := s.obstacle.Values()
	for x := 0; x < s.dom.visW; x++ {
		for y := 0; y < s.dom.visH; y++ {
			c := (s.dom.visX+x)*s.dom.ny + (s.dom.visY + y)
			inside := x >= 10 && x < 20 && y >= 10 && y < 20
			if mask[c] != inside {
				t.Fatalf("visible cell (%d,%d) obstacle=%v, want %v", x, y, mask[c], inside)
			}
		}
	}
}

func TestRasterizePolygonSpillsIntoPadding(t *testing.T) {
	s := newTestSim(500, 300, 50)
	// Extends left of the viewport into the upstream padding.
	s.SetObstacles([]Polygon{{
		{X: -50, Y: 100}, {X: 50, Y: 100}, {X: 50, Y: 150}, {X: -50, Y: 150},
	}})

	mask := s.obstacle.Values()
	saw := false
	for i := 0; i < s.dom.visX; i++ {
		for j := 0; j < s.dom.ny; j++ {
			if mask[i*s.dom.ny+j] {
				saw = true
			}
		}
	}
	if !saw {
		t.Fatal("polygon crossing the viewport edge rasterized no padding cells")
	}
}

func TestPointInPolygonConcave(t *testing.T) {
	// A "C" shape opening to the right.
	poly := Polygon{
		{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 10},
		{X: 10, Y: 10}, {X: 10, Y: 30}, {X: 40, Y: 30},
		{X: 40, Y: 40}, {X: 0, Y: 40},
	}

	cases := []struct {
		x, y float64
		want bool
	}{
		{5, 20, true},   // spine
		{20, 5, true},   // top arm
		{20, 35, true},  // bottom arm
		{25, 20, false}, // inside the notch
		{45, 20, false}, // right of the shape
		{-5, 20, false}, // left of the shape
		{20, -5, false}, // above
	}
	for _, tc := range cases {
		if got := pointInPolygon(tc.x, tc.y, poly); got != tc.want {
			t.Fatalf("pointInPolygon(%g, %g) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestDegeneratePolygonIgnored(t *testing.T) {
	s := newTestSim(500, 300, 50)
	s.SetObstacles([]Polygon{{{X: 10, Y: 10}, {X: 20, Y: 20}}})
	if s.ObstacleCount() != 0 {
		t.Fatal("two-point ring must rasterize no cells")
	}
}
