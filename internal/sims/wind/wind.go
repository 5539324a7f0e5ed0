package wind

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Nodal-Works/interactive-map-sub001/internal/core"
	prng "github.com/Nodal-Works/interactive-map-sub001/pkg/core"
)

// Warm-up stepping: the first warmupTicks ticks after a (re)initialization run
// warmupBoost lattice steps each so the flow pattern develops before the user
// is watching, then stepping drops to one per tick for smooth visuals.
const (
	warmupTicks = 120
	warmupBoost = 3
)

// Simulation is a D2Q9 Lattice-Boltzmann flow solver around rasterized
// building footprints. All state lives on the struct; there is no package
// level mutable state, so independent simulations can coexist.
type Simulation struct {
	cfg    Config
	params Params
	dom    domain

	// Distribution functions, flat ((i*ny+j)*9 + k). fCurr is the field the
	// next streaming pass reads; fNext is the scratch buffer. Ownership of
	// "current" changes only at the two swap points inside stepLattice.
	fCurr []float64
	fNext []float64

	rho      *core.FloatGrid
	velX     *core.FloatGrid
	velY     *core.FloatGrid
	obstacle *core.BoolGrid

	// display holds one palette index per visible cell, row-major.
	display []uint8

	particles []Particle
	scale     scaleTracker

	// polys are the last-applied obstacle polygons in canvas pixels, kept so
	// a reallocation can re-rasterize them into the new grid.
	polys []Polygon

	rng    *prng.RNG
	warmup *core.WarmupSchedule
	seed   int64

	// generation increments on every grid reallocation. Asynchronous obstacle
	// loads carry the generation they were requested for and are discarded on
	// mismatch.
	generation int

	inletSpeed float64
	inletEq    [9]float64

	speedClamps   int
	densityClamps int
}

// New returns a wind simulation for the given viewport using defaults.
func New(viewportW, viewportH int) *Simulation {
	cfg := DefaultConfig()
	cfg.ViewportW = viewportW
	cfg.ViewportH = viewportH
	return NewWithConfig(cfg)
}

// NewWithConfig returns a wind simulation configured from the provided options.
func NewWithConfig(cfg Config) *Simulation {
	s := &Simulation{
		cfg:    cfg,
		params: clampParams(cfg.Params),
		rng:    prng.NewRNG(cfg.Seed),
		warmup: core.NewWarmupSchedule(warmupTicks, warmupBoost),
		seed:   cfg.Seed,
	}
	s.reallocate()
	return s
}

// Name returns the simulation identifier.
func (s *Simulation) Name() string { return "wind" }

// Size reports the visible grid dimensions consumed by the renderer.
func (s *Simulation) Size() core.Size { return core.Size{W: s.dom.visW, H: s.dom.visH} }

// Cells exposes the current display buffer over the visible region.
func (s *Simulation) Cells() []uint8 { return s.display }

// Generation reports the current grid generation for fetch matching.
func (s *Simulation) Generation() int { return s.generation }

// InletSpeed reports the lattice-unit inlet velocity.
func (s *Simulation) InletSpeed() float64 { return s.inletSpeed }

// WindSpeedMS reports the configured real-world wind speed.
func (s *Simulation) WindSpeedMS() float64 { return s.params.WindSpeedMS }

// WindDirectionDeg reports the configured wind direction.
func (s *Simulation) WindDirectionDeg() float64 { return s.params.WindDirectionDeg }

// SmoothedMaxSpeed returns the exponentially smoothed maximum visible speed
// in lattice units, the normalization constant for color and legend scaling.
func (s *Simulation) SmoothedMaxSpeed() float64 { return s.scale.Value() }

// SpeedClampCount reports how many times the velocity clamp fired since the
// last reallocation. Diagnostic only.
func (s *Simulation) SpeedClampCount() int { return s.speedClamps }

// DensityClampCount reports how many times the density clamp fired since the
// last reallocation. Diagnostic only.
func (s *Simulation) DensityClampCount() int { return s.densityClamps }

// VisibleOrigin returns the padded-grid cell offset of the visible window.
func (s *Simulation) VisibleOrigin() (int, int) { return s.dom.visX, s.dom.visY }

// Obstacles exposes the obstacle mask over the full padded grid.
func (s *Simulation) Obstacles() *core.BoolGrid { return s.obstacle }

// Density exposes the macroscopic density field over the full padded grid.
func (s *Simulation) Density() *core.FloatGrid { return s.rho }

// Velocity exposes the macroscopic velocity component fields.
func (s *Simulation) Velocity() (*core.FloatGrid, *core.FloatGrid) { return s.velX, s.velY }

// SetViewport resizes the grid for a new viewport pixel size. The previous
// field is discarded entirely; applied obstacle polygons are re-rasterized
// into the new grid.
func (s *Simulation) SetViewport(w, h int) {
	if w == s.cfg.ViewportW && h == s.cfg.ViewportH {
		return
	}
	s.cfg.ViewportW = w
	s.cfg.ViewportH = h
	s.reallocate()
}

// reallocate rebuilds every per-cell array for the current viewport and
// resolution and re-initializes the field to uniform equilibrium flow. Safe
// to call repeatedly; two calls with identical inputs produce identical
// initial state.
func (s *Simulation) reallocate() {
	s.dom = computeDomain(s.cfg.ViewportW, s.cfg.ViewportH, s.params.Resolution)
	n := s.dom.nx * s.dom.ny
	s.fCurr = make([]float64, n*9)
	s.fNext = make([]float64, n*9)
	s.rho = core.NewFloatGrid(s.dom.nx, s.dom.ny)
	s.velX = core.NewFloatGrid(s.dom.nx, s.dom.ny)
	s.velY = core.NewFloatGrid(s.dom.nx, s.dom.ny)
	s.obstacle = core.NewBoolGrid(s.dom.nx, s.dom.ny)
	s.display = make([]uint8, s.dom.visW*s.dom.visH)

	s.generation++
	s.speedClamps = 0
	s.densityClamps = 0
	s.initField()
	s.rasterize()
	s.seedParticles()
	s.scale.Reset()
	s.warmup.Restart()
	s.rebuildDisplay()
}

// initField sets every cell to the equilibrium of uniform horizontal flow at
// the current inlet speed.
func (s *Simulation) initField() {
	s.inletSpeed = latticeInletSpeed(s.params.WindSpeedMS)
	equilibrium(&s.inletEq, 1, s.inletSpeed, 0)

	rho := s.rho.Values()
	ux := s.velX.Values()
	uy := s.velY.Values()
	n := s.dom.nx * s.dom.ny
	for c := 0; c < n; c++ {
		base := c * 9
		for k := 0; k < 9; k++ {
			s.fCurr[base+k] = s.inletEq[k]
			s.fNext[base+k] = 0
		}
		rho[c] = 1
		ux[c] = s.inletSpeed
		uy[c] = 0
	}
}

// Reset re-initializes the field and particle pool deterministically. The
// applied obstacle polygons are kept and re-rasterized.
func (s *Simulation) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.seed = seed
	s.rng = prng.NewRNG(seed)
	s.reallocate()
}

// Step advances the simulation by one tick: a warm-up-dependent number of
// lattice steps, then one particle/scale/display update.
func (s *Simulation) Step() {
	n := s.warmup.Substeps()
	for i := 0; i < n; i++ {
		s.stepLattice()
	}
	s.advectParticles()
	s.scale.Observe(s.maxVisibleSpeed())
	s.rebuildDisplay()
}

// stepLattice runs one full LBM time step: stream, mirror the wall rows,
// swap buffers, resolve every cell, swap back.
func (s *Simulation) stepLattice() {
	s.inletSpeed = latticeInletSpeed(s.params.WindSpeedMS)
	equilibrium(&s.inletEq, 1, s.inletSpeed, 0)

	s.stream()
	s.mirrorWalls()
	s.fCurr, s.fNext = s.fNext, s.fCurr
	s.resolve()
	s.fCurr, s.fNext = s.fNext, s.fCurr
}

// stream propagates every population to its downstream neighbor. Populations
// whose target lies outside the grid are dropped for this step; the boundary
// overrides in resolve refill the affected cells.
func (s *Simulation) stream() {
	for i := range s.fNext {
		s.fNext[i] = 0
	}
	nx, ny := s.dom.nx, s.dom.ny
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			base := (i*ny + j) * 9
			for k := 0; k < 9; k++ {
				ni := i + ex[k]
				nj := j + ey[k]
				if ni < 0 || ni >= nx || nj < 0 || nj >= ny {
					continue
				}
				s.fNext[(ni*ny+nj)*9+k] = s.fCurr[base+k]
			}
		}
	}
}

// mirrorWalls copies the streamed populations of the first interior row onto
// the top wall row and likewise at the bottom, excluding the corner columns.
// This approximates a free-slip wall without a full bounce-back pass.
func (s *Simulation) mirrorWalls() {
	nx, ny := s.dom.nx, s.dom.ny
	if ny < 2 {
		return
	}
	for i := 1; i < nx-1; i++ {
		top := (i*ny + 0) * 9
		topIn := (i*ny + 1) * 9
		bot := (i*ny + ny - 1) * 9
		botIn := (i*ny + ny - 2) * 9
		for k := 0; k < 9; k++ {
			s.fNext[top+k] = s.fNext[topIn+k]
			s.fNext[bot+k] = s.fNext[botIn+k]
		}
	}
}

// resolve applies, per cell and in priority order: obstacle bounce-back, the
// inlet Dirichlet condition, the outlet zero-gradient copy, the free-slip
// wall rows, and the interior moment computation plus turbulence-aware BGK
// collision. Reads fCurr, writes fNext and the macroscopic fields.
func (s *Simulation) resolve() {
	nx, ny := s.dom.nx, s.dom.ny
	rho := s.rho.Values()
	ux := s.velX.Values()
	uy := s.velY.Values()
	mask := s.obstacle.Values()

	omegaBase := 1 / (3*s.params.Viscosity + 0.5)
	cs2 := s.params.Smagorinsky * s.params.Smagorinsky

	var feq [9]float64
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			c := i*ny + j
			base := c * 9

			switch {
			case mask[c]:
				// No-slip solid: every population reverses direction. Density
				// keeps its last fluid value; net macroscopic velocity is zero
				// by construction of opp.
				for k := 0; k < 9; k++ {
					s.fNext[base+k] = s.fCurr[base+opp[k]]
				}
				ux[c] = 0
				uy[c] = 0

			case i == 0:
				// Inlet: force equilibrium at the configured velocity and
				// unit density regardless of what streamed in.
				for k := 0; k < 9; k++ {
					s.fNext[base+k] = s.inletEq[k]
				}
				rho[c] = 1
				ux[c] = s.inletSpeed
				uy[c] = 0

			case i == nx-1:
				// Outlet: zero-gradient copy of the already-resolved
				// upstream neighbor column.
				src := (i-1)*ny + j
				srcBase := src * 9
				for k := 0; k < 9; k++ {
					s.fNext[base+k] = s.fNext[srcBase+k]
				}
				rho[c] = rho[src]
				ux[c] = ux[src]
				uy[c] = uy[src]

			default:
				s.collideCell(i, j, c, base, omegaBase, cs2, &feq)
			}
		}
	}
}

// collideCell computes moments from the streamed populations, applies the
// stability clamps, derives the Smagorinsky effective relaxation rate, and
// relaxes the cell toward equilibrium.
func (s *Simulation) collideCell(i, j, c, base int, omegaBase, cs2 float64, feq *[9]float64) {
	nx, ny := s.dom.nx, s.dom.ny
	rho := s.rho.Values()
	ux := s.velX.Values()
	uy := s.velY.Values()

	r := 0.0
	vx := 0.0
	vy := 0.0
	for k := 0; k < 9; k++ {
		f := s.fCurr[base+k]
		r += f
		vx += float64(ex[k]) * f
		vy += float64(ey[k]) * f
	}
	if r > 0 {
		vx /= r
		vy /= r
	} else {
		vx = 0
		vy = 0
	}
	if r < MinDensity {
		r = MinDensity
		s.densityClamps++
	} else if r > MaxDensity {
		r = MaxDensity
		s.densityClamps++
	}
	speed := math.Sqrt(vx*vx + vy*vy)
	if speed > MaxVelocity {
		f := MaxVelocity / speed
		vx *= f
		vy *= f
		s.speedClamps++
	}
	if j == 0 || j == ny-1 {
		// Free-slip wall rows: no vertical flux, horizontal flow preserved.
		vy = 0
	}
	rho[c] = r
	ux[c] = vx
	uy[c] = vy

	// Smagorinsky large-eddy correction from central differences, computed
	// only with a one-cell margin from every domain boundary; boundary
	// adjacent cells relax at the laminar rate.
	omega := omegaBase
	if cs2 > 0 && i >= 1 && i <= nx-2 && j >= 1 && j <= ny-2 {
		dudx := (ux[(i+1)*ny+j] - ux[(i-1)*ny+j]) * 0.5
		dudy := (ux[i*ny+j+1] - ux[i*ny+j-1]) * 0.5
		dvdx := (uy[(i+1)*ny+j] - uy[(i-1)*ny+j]) * 0.5
		dvdy := (uy[i*ny+j+1] - uy[i*ny+j-1]) * 0.5
		sxy := 0.5 * (dudy + dvdx)
		mag := math.Sqrt(2 * (dudx*dudx + dvdy*dvdy + 2*sxy*sxy))
		nuEddy := cs2 * mag
		omega = 1 / (3*(s.params.Viscosity+nuEddy) + 0.5)
	}

	equilibrium(feq, r, vx, vy)
	for k := 0; k < 9; k++ {
		f := s.fCurr[base+k]
		f -= omega * (f - feq[k])
		if f < 0 {
			f = 0
		}
		s.fNext[base+k] = f
	}
}

// velocityAt samples the macroscopic velocity at fractional padded-grid
// coordinates using bilinear interpolation, falling back to the nearest cell
// at the far edges.
func (s *Simulation) velocityAt(x, y float64) (float64, float64) {
	nx, ny := s.dom.nx, s.dom.ny
	i := int(math.Floor(x))
	j := int(math.Floor(y))
	if i < 0 {
		i = 0
	}
	if j < 0 {
		j = 0
	}
	if i >= nx {
		i = nx - 1
	}
	if j >= ny {
		j = ny - 1
	}
	ux := s.velX.Values()
	uy := s.velY.Values()
	if i+1 >= nx || j+1 >= ny {
		c := i*ny + j
		return ux[c], uy[c]
	}
	fx := x - float64(i)
	fy := y - float64(j)
	c00 := i*ny + j
	c10 := (i+1)*ny + j
	c01 := i*ny + j + 1
	c11 := (i+1)*ny + j + 1
	vx := (1-fx)*(1-fy)*ux[c00] + fx*(1-fy)*ux[c10] + (1-fx)*fy*ux[c01] + fx*fy*ux[c11]
	vy := (1-fx)*(1-fy)*uy[c00] + fx*(1-fy)*uy[c10] + (1-fx)*fy*uy[c01] + fx*fy*uy[c11]
	return vx, vy
}

// VelocityAt samples the velocity at visible-region cell coordinates, for
// the vector overlay.
func (s *Simulation) VelocityAt(x, y float64) (float64, float64) {
	return s.velocityAt(x+float64(s.dom.visX), y+float64(s.dom.visY))
}

// maxVisibleSpeed scans the visible non-obstacle cells for the largest
// instantaneous speed.
func (s *Simulation) maxVisibleSpeed() float64 {
	ux := s.velX.Values()
	uy := s.velY.Values()
	mask := s.obstacle.Values()
	maxSq := 0.0
	for i := s.dom.visX; i < s.dom.visX+s.dom.visW; i++ {
		for j := s.dom.visY; j < s.dom.visY+s.dom.visH; j++ {
			c := i*s.dom.ny + j
			if mask[c] {
				continue
			}
			sq := ux[c]*ux[c] + uy[c]*uy[c]
			if sq > maxSq {
				maxSq = sq
			}
		}
	}
	return math.Sqrt(maxSq)
}

// Parameters returns a snapshot of the tunables for the HUD.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{
		Groups: []core.ParameterGroup{
			{
				Name: "Wind",
				Params: []core.Parameter{
					{Key: "wind_ms", Label: "Wind speed (m/s)", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(s.params.WindSpeedMS, 'f', 1, 64)},
					{Key: "wind_dir", Label: "Direction (deg)", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(s.params.WindDirectionDeg, 'f', 0, 64)},
					{Key: "viscosity", Label: "Viscosity", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(s.params.Viscosity, 'f', 3, 64)},
				},
			},
			{
				Name: "Display",
				Params: []core.Parameter{
					{Key: "resolution", Label: "Resolution", Type: core.ParamTypeChoice, Value: strconv.Itoa(s.params.Resolution)},
					{Key: "particles", Label: "Particles", Type: core.ParamTypeInt, Value: strconv.Itoa(s.params.ParticleCount)},
					{Key: "particle_speed", Label: "Particle speed", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(s.params.ParticleSpeed, 'f', 1, 64)},
				},
			},
		},
	}
}

// ParameterControls lists the HUD-adjustable controls.
func (s *Simulation) ParameterControls() []core.ParameterControl {
	choices := make([]float64, len(supportedResolutions))
	for i, r := range supportedResolutions {
		choices[i] = float64(r)
	}
	return []core.ParameterControl{
		{Key: "wind_ms", Label: "Wind m/s", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, Max: 30, HasMin: true, HasMax: true},
		{Key: "wind_dir", Label: "Direction", Type: core.ParamTypeFloat, Step: 15, Min: 0, Max: 360, HasMin: true, HasMax: true},
		{Key: "viscosity", Label: "Viscosity", Type: core.ParamTypeFloat, Step: 0.005, Min: 0.005, Max: 0.2, HasMin: true, HasMax: true},
		{Key: "resolution", Label: "Resolution", Type: core.ParamTypeChoice, Choices: choices},
		{Key: "particles", Label: "Particles", Type: core.ParamTypeInt, Step: 100, Min: minParticles, Max: maxParticles, HasMin: true, HasMax: true},
		{Key: "particle_speed", Label: "Tracer speed", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.5, Max: 20, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an integer parameter, clamping to the supported
// range. A resolution change reallocates the grid; everything else takes
// effect on the next step.
func (s *Simulation) SetIntParameter(key string, value int) bool {
	switch key {
	case "resolution":
		p := s.params
		p.Resolution = value
		p = clampParams(p)
		if p.Resolution == s.params.Resolution {
			return false
		}
		s.params.Resolution = p.Resolution
		s.reallocate()
		return true
	case "particles":
		p := s.params
		p.ParticleCount = value
		p = clampParams(p)
		if p.ParticleCount == s.params.ParticleCount {
			return false
		}
		s.params.ParticleCount = p.ParticleCount
		s.resizeParticlePool()
		return true
	}
	return false
}

// SetFloatParameter updates a floating point parameter, clamping to the
// supported range.
func (s *Simulation) SetFloatParameter(key string, value float64) bool {
	p := s.params
	switch key {
	case "wind_ms":
		p.WindSpeedMS = value
	case "wind_dir":
		p.WindDirectionDeg = value
	case "viscosity":
		p.Viscosity = value
	case "smagorinsky":
		p.Smagorinsky = value
	case "particle_speed":
		p.ParticleSpeed = value
	default:
		return false
	}
	p = clampParams(p)
	if p == s.params {
		return false
	}
	s.params = p
	return true
}

// String summarizes the simulation state for logs.
func (s *Simulation) String() string {
	return fmt.Sprintf("wind %dx%d (visible %dx%d) inlet=%.3f", s.dom.nx, s.dom.ny, s.dom.visW, s.dom.visH, s.inletSpeed)
}

func init() {
	core.Register("wind", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
