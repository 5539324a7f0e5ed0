//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Nodal-Works/interactive-map-sub001/internal/app"
	"github.com/Nodal-Works/interactive-map-sub001/internal/core"
	"github.com/Nodal-Works/interactive-map-sub001/internal/geo"
	"github.com/Nodal-Works/interactive-map-sub001/internal/sims/wind"
)

func main() {
	viewportW := flag.Int("w", 960, "viewport width in pixels")
	viewportH := flag.Int("h", 640, "viewport height in pixels")
	resolution := flag.Int("res", 200, "grid resolution (cells along the longer viewport edge)")
	windMS := flag.Float64("wind", 5.0, "wind speed in m/s")
	windDir := flag.Float64("dir", 270, "wind direction in degrees (meteorological)")
	viscosity := flag.Float64("viscosity", 0.02, "lattice kinematic viscosity")
	particles := flag.Int("particles", 800, "tracer particle count")
	seed := flag.Int64("seed", 1337, "deterministic seed")
	scale := flag.Int("scale", 4, "screen pixels per cell")
	tps := flag.Int("tps", 60, "simulation ticks per second")
	obstacles := flag.String("obstacles", "", "path to a GeoJSON footprint file (empty: built-in set)")
	flag.Parse()

	factory, ok := core.Lookup("wind")
	if !ok {
		names := make([]string, 0, len(core.Sims()))
		for name := range core.Sims() {
			names = append(names, name)
		}
		log.Fatalf("wind simulation not registered (have %v)", names)
	}
	sim, ok := factory(map[string]string{
		"viewport_w": strconv.Itoa(*viewportW),
		"viewport_h": strconv.Itoa(*viewportH),
		"resolution": strconv.Itoa(*resolution),
		"wind_ms":    strconv.FormatFloat(*windMS, 'f', -1, 64),
		"wind_dir":   strconv.FormatFloat(*windDir, 'f', -1, 64),
		"viscosity":  strconv.FormatFloat(*viscosity, 'f', -1, 64),
		"particles":  strconv.Itoa(*particles),
		"seed":       strconv.FormatInt(*seed, 10),
	}).(*wind.Simulation)
	if !ok {
		log.Fatal("registry returned an unexpected simulation type")
	}
	sim.Reset(*seed)

	var source geo.Source = geo.DefaultSource{}
	if *obstacles != "" {
		source = geo.FileSource{Path: *obstacles}
	}

	game := app.New(sim, source, *viewportW, *viewportH, *scale, *seed)
	size := sim.Size()

	ebiten.SetWindowTitle("windtable - " + sim.String())
	ebiten.SetTPS(*tps)
	ebiten.SetWindowSize(size.W*(*scale)+app.HUDWidth, size.H*(*scale))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
