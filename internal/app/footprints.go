package app

import (
	"context"

	"github.com/Nodal-Works/interactive-map-sub001/internal/geo"
)

// acceptFetched decides whether a completed footprint fetch applies to the
// current grid generation. A result for an older generation means the grid
// was reallocated while the load was in flight: it is discarded and a fresh
// fetch is issued for the current generation. The returned bool reports
// whether the caller should apply the collection.
func acceptFetched(ctx context.Context, f *geo.Fetcher, src geo.Source, res geo.Result, generation int) bool {
	if res.Generation != generation {
		f.Fetch(ctx, src, generation)
		return false
	}
	return true
}
