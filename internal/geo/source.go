package geo

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb/geojson"
)

// DefaultSourceKey identifies the built-in footprint set used when no
// external obstacle layer is configured or the configured one fails.
const DefaultSourceKey = "default-footprints"

//go:embed default_footprints.geojson
var defaultFootprints []byte

// Source provides building footprints as a GeoJSON feature collection in a
// projected (meter) coordinate system.
type Source interface {
	Name() string
	Load(ctx context.Context) (*geojson.FeatureCollection, error)
}

// FileSource loads footprints from a GeoJSON file on disk.
type FileSource struct {
	Path string
}

// Name returns the file path.
func (s FileSource) Name() string { return s.Path }

// Load reads and decodes the file.
func (s FileSource) Load(ctx context.Context) (*geojson.FeatureCollection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read footprints %s: %w", s.Path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode footprints %s: %w", s.Path, err)
	}
	return fc, nil
}

// DefaultSource serves the embedded footprint set.
type DefaultSource struct{}

// Name returns the well-known identifier of the embedded set.
func (DefaultSource) Name() string { return DefaultSourceKey }

// Load decodes the embedded collection.
func (DefaultSource) Load(ctx context.Context) (*geojson.FeatureCollection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(defaultFootprints)
	if err != nil {
		return nil, fmt.Errorf("decode embedded footprints: %w", err)
	}
	return fc, nil
}

// LoadWithFallback loads from src, falling back once to the embedded default
// set. A failure of both is not an error: the caller gets an empty collection
// and the solver runs unobstructed.
func LoadWithFallback(ctx context.Context, src Source) *geojson.FeatureCollection {
	if src != nil {
		fc, err := src.Load(ctx)
		if err == nil {
			return fc
		}
		log.Printf("obstacle source %s unavailable, falling back to %s: %v", src.Name(), DefaultSourceKey, err)
	}
	fc, err := DefaultSource{}.Load(ctx)
	if err != nil {
		log.Printf("fallback obstacle source failed, running with no obstacles: %v", err)
		return geojson.NewFeatureCollection()
	}
	return fc
}
