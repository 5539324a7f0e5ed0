package geo

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func TestDefaultSourceLoads(t *testing.T) {
	fc, err := DefaultSource{}.Load(context.Background())
	if err != nil {
		t.Fatalf("embedded footprints failed to load: %v", err)
	}
	if len(fc.Features) == 0 {
		t.Fatal("embedded footprint set is empty")
	}
	for i, f := range fc.Features {
		if _, ok := f.Geometry.(orb.Polygon); !ok {
			t.Fatalf("feature %d is not a polygon", i)
		}
	}
}

func TestLoadWithFallbackOnMissingFile(t *testing.T) {
	fc := LoadWithFallback(context.Background(), FileSource{Path: "/nonexistent/footprints.geojson"})
	want, _ := DefaultSource{}.Load(context.Background())
	if len(fc.Features) != len(want.Features) {
		t.Fatalf("fallback returned %d features, want the %d embedded ones", len(fc.Features), len(want.Features))
	}
}

func TestViewportProjectionFitsBound(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 50}}
	proj := NewViewportProjection(bound, 200, 100, 270)

	x, y := proj(0, 0)
	if math.Abs(x-0) > 1e-9 || math.Abs(y-100) > 1e-9 {
		t.Fatalf("south-west corner mapped to (%g, %g), want (0, 100)", x, y)
	}
	x, y = proj(100, 50)
	if math.Abs(x-200) > 1e-9 || math.Abs(y-0) > 1e-9 {
		t.Fatalf("north-east corner mapped to (%g, %g), want (200, 0)", x, y)
	}
}

func TestViewportProjectionRotates(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 50}}
	// Wind from the east: obstacles rotate half a turn about the center.
	proj := NewViewportProjection(bound, 200, 100, 90)

	x, y := proj(0, 0)
	if math.Abs(x-200) > 1e-9 || math.Abs(y-0) > 1e-9 {
		t.Fatalf("rotated south-west corner mapped to (%g, %g), want (200, 0)", x, y)
	}
}

func TestProjectCollectionOuterRings(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{2, 2}, {8, 2}, {8, 8}, {2, 8}, {2, 2}}, // hole, ignored
	}))
	fc.Append(geojson.NewFeature(orb.Point{5, 5})) // not polygonal, skipped

	identity := func(x, y float64) (float64, float64) { return x, y }
	polys := ProjectCollection(fc, identity)
	if len(polys) != 1 {
		t.Fatalf("projected %d polygons, want 1", len(polys))
	}
	if len(polys[0]) != 5 {
		t.Fatalf("outer ring has %d points, want 5", len(polys[0]))
	}
}

func TestFetcherNewerResultWins(t *testing.T) {
	f := NewFetcher()
	f.Fetch(context.Background(), DefaultSource{}, 1)
	f.Fetch(context.Background(), DefaultSource{}, 2)

	// The second fetch keeps retrying the send, displacing any unread first
	// result, so generation 2 must eventually come through.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if res, ok := f.Poll(); ok && res.Generation == 2 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("newer fetch result never delivered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFetcherDeliversTaggedResult(t *testing.T) {
	f := NewFetcher()
	f.Fetch(context.Background(), DefaultSource{}, 7)

	deadline := time.Now().Add(2 * time.Second)
	for {
		if res, ok := f.Poll(); ok {
			if res.Generation != 7 {
				t.Fatalf("result tagged with generation %d, want 7", res.Generation)
			}
			if res.Collection == nil || len(res.Collection.Features) == 0 {
				t.Fatal("fetch delivered an empty collection")
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("fetch never delivered a result")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
