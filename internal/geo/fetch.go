package geo

import (
	"context"

	"github.com/paulmach/orb/geojson"
)

// Result is the outcome of one asynchronous footprint fetch. Generation is
// the grid generation the fetch was requested for; consumers must discard
// results whose generation no longer matches the simulation.
type Result struct {
	Generation int
	Collection *geojson.FeatureCollection
}

// Fetcher runs footprint loads off the frame loop. Only the newest pending
// result is retained; an unread stale result is replaced rather than queued.
type Fetcher struct {
	results chan Result
}

// NewFetcher constructs an idle fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{results: make(chan Result, 1)}
}

// Fetch loads footprints from src in the background and makes the raw
// collection available to Poll tagged with generation. Projection is left to
// the consumer, which may re-project the same collection when the wind
// direction changes.
func (f *Fetcher) Fetch(ctx context.Context, src Source, generation int) {
	go func() {
		res := Result{
			Generation: generation,
			Collection: LoadWithFallback(ctx, src),
		}
		for {
			select {
			case f.results <- res:
				return
			default:
			}
			// Channel full: drop the stale pending result and retry.
			select {
			case <-f.results:
			default:
			}
		}
	}()
}

// Poll returns a completed fetch result, if any, without blocking.
func (f *Fetcher) Poll() (Result, bool) {
	select {
	case res := <-f.results:
		return res, true
	default:
		return Result{}, false
	}
}
