//go:build ebiten

package app

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/paulmach/orb/geojson"

	"github.com/Nodal-Works/interactive-map-sub001/internal/geo"
	"github.com/Nodal-Works/interactive-map-sub001/internal/render"
	"github.com/Nodal-Works/interactive-map-sub001/internal/sims/wind"
	"github.com/Nodal-Works/interactive-map-sub001/internal/ui"
)

// Game adapts the wind simulation to the ebiten.Game interface: it owns the
// frame loop, the obstacle fetch lifecycle, and the draw order.
type Game struct {
	sim     *wind.Simulation
	painter *render.FieldPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	fetcher *geo.Fetcher
	source  geo.Source
	// footprints is the last successfully fetched collection, kept so a wind
	// direction change can re-project without a new load.
	footprints *geojson.FeatureCollection

	viewportW int
	viewportH int
	scale     int
	seed      int64
	lastDir   float64

	paused   bool
	tickOnce bool
}

// New constructs a Game for the provided simulation and obstacle source.
func New(sim *wind.Simulation, src geo.Source, viewportW, viewportH, scale int, seed int64) *Game {
	size := sim.Size()
	g := &Game{
		sim:       sim,
		painter:   render.NewFieldPainter(size.W, size.H),
		hud:       ui.NewHUD(sim, HUDWidth),
		overlay:   ui.NewOverlay(sim, scale),
		fetcher:   geo.NewFetcher(),
		source:    src,
		viewportW: viewportW,
		viewportH: viewportH,
		scale:     scale,
		seed:      seed,
		lastDir:   sim.WindDirectionDeg(),
	}
	g.fetcher.Fetch(context.Background(), src, sim.Generation())
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.applyFetched()
	g.trackDirection()

	g.overlay.Update()
	g.hud.Update(g.sim.Size().W * g.scale)

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// applyFetched installs a completed obstacle fetch, discarding results whose
// grid generation no longer matches the simulation.
func (g *Game) applyFetched() {
	res, ok := g.fetcher.Poll()
	if !ok {
		return
	}
	if !acceptFetched(context.Background(), g.fetcher, g.source, res, g.sim.Generation()) {
		return
	}
	g.footprints = res.Collection
	g.projectAndApply()
}

// trackDirection re-projects the cached footprints when the wind direction
// parameter changes, rotating the obstacle layer so the lattice inlet stays
// aligned with +x.
func (g *Game) trackDirection() {
	dir := g.sim.WindDirectionDeg()
	if dir == g.lastDir {
		return
	}
	g.lastDir = dir
	g.projectAndApply()
}

func (g *Game) projectAndApply() {
	if g.footprints == nil {
		return
	}
	proj := geo.NewViewportProjection(
		geo.CollectionBound(g.footprints),
		float64(g.viewportW), float64(g.viewportH),
		g.sim.WindDirectionDeg(),
	)
	g.sim.SetObstacles(geo.ProjectCollection(g.footprints, proj))
}

// Draw renders the field, tracer particles, overlay, and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	size := g.sim.Size()
	if w, h := g.painter.Size(); w != size.W || h != size.H {
		g.painter = render.NewFieldPainter(size.W, size.H)
	}
	g.painter.Blit(screen, g.sim.Cells(), g.sim.Palette(), g.scale)

	g.drawParticles(screen)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
}

// drawParticles paints the tracers inside the visible window; tracers in the
// padding region are simulated but not shown.
func (g *Game) drawParticles(screen *ebiten.Image) {
	ox, oy := g.sim.VisibleOrigin()
	size := g.sim.Size()
	for _, p := range g.sim.Particles() {
		x := p.X - float64(ox)
		y := p.Y - float64(oy)
		if x < 0 || x >= float64(size.W) || y < 0 || y >= float64(size.H) {
			continue
		}
		alpha := 0.85 * (1 - p.Age/300)
		render.DrawDot(screen, float32(x*float64(g.scale)), float32(y*float64(g.scale)), 1.5, alpha)
	}
}

// Layout returns the logical screen size: the table view plus the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + HUDWidth, s.H * g.scale
}
