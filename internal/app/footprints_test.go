package app

import (
	"context"
	"testing"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/Nodal-Works/interactive-map-sub001/internal/geo"
)

func TestAcceptFetchedMatchingGeneration(t *testing.T) {
	f := geo.NewFetcher()
	res := geo.Result{Generation: 3, Collection: geojson.NewFeatureCollection()}

	if !acceptFetched(context.Background(), f, geo.DefaultSource{}, res, 3) {
		t.Fatal("matching generation must be applied")
	}

	// Applying must not issue another fetch.
	time.Sleep(100 * time.Millisecond)
	if _, ok := f.Poll(); ok {
		t.Fatal("unexpected fetch issued for an applied result")
	}
}

func TestAcceptFetchedStaleGenerationRefetches(t *testing.T) {
	f := geo.NewFetcher()
	stale := geo.Result{Generation: 3, Collection: geojson.NewFeatureCollection()}

	// The grid was reallocated to generation 5 while the load ran.
	if acceptFetched(context.Background(), f, geo.DefaultSource{}, stale, 5) {
		t.Fatal("stale generation must not be applied")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if res, ok := f.Poll(); ok {
			if res.Generation != 5 {
				t.Fatalf("re-fetch tagged with generation %d, want 5", res.Generation)
			}
			if res.Collection == nil || len(res.Collection.Features) == 0 {
				t.Fatal("re-fetch delivered an empty collection")
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("stale result never triggered a re-fetch")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
