package main

import (
	"flag"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Nodal-Works/interactive-map-sub001/internal/sims/wind"
)

// wake-sweep tunes the solver headlessly: it runs a square block in crossflow
// for every parameter combination and reports the wake velocity deficit one
// cell downstream of the block together with how often the stability clamps
// fired.

type paramSet struct {
	viscosity  float64
	windMS     float64
	resolution int
}

func (p paramSet) String() string {
	return fmt.Sprintf("viscosity=%.3f wind=%.1fm/s res=%d", p.viscosity, p.windMS, p.resolution)
}

type scenarioResult struct {
	params paramSet

	wakeSpeed     float64
	inletSpeed    float64
	deficit       float64
	speedClamps   int
	densityClamps int
	elapsed       time.Duration
}

func main() {
	steps := flag.Int("steps", 400, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	viscosityOptions := []float64{0.01, 0.02, 0.04, 0.08}
	windOptions := []float64{2.5, 5.0, 10.0}
	resolutionOptions := []int{100, 150, 200}

	var sets []paramSet
	for _, visc := range viscosityOptions {
		for _, ms := range windOptions {
			for _, res := range resolutionOptions {
				sets = append(sets, paramSet{viscosity: visc, windMS: ms, resolution: res})
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(params, *steps)
			}
		}()
	}

	go func() {
		for _, p := range sets {
			jobs <- p
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}

	sort.Slice(all, func(a, b int) bool {
		return all[a].deficit > all[b].deficit
	})

	fmt.Println("\nrank | params | wake m-speed | deficit | clamps (speed/density) | time")
	for i, r := range all {
		fmt.Printf("%4d | %s | %.4f/%.4f | %5.1f%% | %d/%d | %s\n",
			i+1, r.params, r.wakeSpeed, r.inletSpeed, r.deficit*100,
			r.speedClamps, r.densityClamps, r.elapsed.Round(time.Millisecond))
	}
}

func runScenario(params paramSet, steps int) scenarioResult {
	cfg := wind.DefaultConfig()
	cfg.ViewportW = 800
	cfg.ViewportH = 500
	cfg.Params.Viscosity = params.viscosity
	cfg.Params.WindSpeedMS = params.windMS
	cfg.Params.Resolution = params.resolution
	cfg.Params.ParticleCount = 300

	sim := wind.NewWithConfig(cfg)

	// A square block centered on the viewport, 8% of its width.
	cx, cy := 400.0, 250.0
	half := 32.0
	sim.SetObstacles([]wind.Polygon{{
		{X: cx - half, Y: cy - half},
		{X: cx + half, Y: cy - half},
		{X: cx + half, Y: cy + half},
		{X: cx - half, Y: cy + half},
	}})

	start := time.Now()
	for i := 0; i < steps; i++ {
		sim.Step()
	}
	elapsed := time.Since(start)

	// Sample one cell downstream of the block's trailing edge, mid-height.
	size := sim.Size()
	ox, oy := sim.VisibleOrigin()
	cellPx := float64(cfg.ViewportW) / float64(size.W)
	i := ox + int((cx+half)/cellPx) + 1
	j := oy + size.H/2
	ux, uy := sim.Velocity()
	vx := ux.At(i, j)
	vy := uy.At(i, j)
	wake := vx*vx + vy*vy

	inlet := sim.InletSpeed()
	deficit := 0.0
	if inlet > 0 {
		deficit = 1 - math.Sqrt(wake)/inlet
	}

	return scenarioResult{
		params:        params,
		wakeSpeed:     math.Sqrt(wake),
		inletSpeed:    inlet,
		deficit:       deficit,
		speedClamps:   sim.SpeedClampCount(),
		densityClamps: sim.DensityClampCount(),
		elapsed:       elapsed,
	}
}
