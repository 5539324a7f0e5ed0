package wind

// Tracer particle tuning. Ages are in frames; positions are fractional
// padded-grid coordinates.
const (
	particleMaxAge      = 240.0
	particleAgeStep     = 1.0
	particleWallAgeStep = 6.0

	// upstreamBuffer is how far past the left visible edge a particle may
	// drift before it is recycled, so upstream tracers can re-enter smoothly.
	upstreamBuffer = 4.0

	// inletSeedSpan is the width of the re-seed band at the inlet edge used
	// for particles that left downstream.
	inletSeedSpan = 2.0

	respawnAttempts = 8
)

// Particle is a visual flow tracer. It carries no physics; the pool is fixed
// size and recycled in place.
type Particle struct {
	X   float64
	Y   float64
	Age float64
}

// Particles exposes the tracer pool. Positions are padded-grid coordinates;
// use VisibleOrigin to translate into the visible window.
func (s *Simulation) Particles() []Particle { return s.particles }

// ParticleSpeed reports the configured advection speed multiplier.
func (s *Simulation) ParticleSpeed() float64 { return s.params.ParticleSpeed }

func (s *Simulation) seedParticles() {
	s.particles = make([]Particle, s.params.ParticleCount)
	for i := range s.particles {
		s.respawnParticle(&s.particles[i], false)
		// Stagger ages so the pool does not expire in lockstep.
		s.particles[i].Age = s.rng.Float64() * particleMaxAge * 0.5
	}
}

func (s *Simulation) resizeParticlePool() {
	n := s.params.ParticleCount
	if n == len(s.particles) {
		return
	}
	if n < len(s.particles) {
		s.particles = s.particles[:n]
		return
	}
	for len(s.particles) < n {
		var p Particle
		s.respawnParticle(&p, false)
		p.Age = s.rng.Float64() * particleMaxAge * 0.5
		s.particles = append(s.particles, p)
	}
}

// advectParticles moves every tracer along the interpolated velocity field
// and applies the respawn policy.
func (s *Simulation) advectParticles() {
	mult := s.params.ParticleSpeed
	mask := s.obstacle.Values()
	ux := s.velX.Values()
	uy := s.velY.Values()

	left := float64(s.dom.visX)
	right := float64(s.dom.visX + s.dom.visW)
	top := float64(s.dom.visY)
	bottom := float64(s.dom.visY + s.dom.visH)

	for idx := range s.particles {
		p := &s.particles[idx]

		i, j := s.cellOf(p.X, p.Y)
		c := i*s.dom.ny + j
		if mask[c] {
			// Stuck at a wall: nudge back out along the reversed local flow
			// and age it out quickly.
			p.X -= ux[c] * mult
			p.Y -= uy[c] * mult
			p.Age += particleWallAgeStep
		} else {
			vx, vy := s.velocityAt(p.X, p.Y)
			p.X += vx * mult
			p.Y += vy * mult
			p.Age += particleAgeStep
		}

		downstream := p.X >= right
		escaped := p.X < left-upstreamBuffer || p.Y < top || p.Y >= bottom
		if p.Age > particleMaxAge || downstream || escaped {
			s.respawnParticle(p, downstream)
		}
	}
}

// respawnParticle recycles a tracer. Downstream exits re-seed in a narrow
// band at the inlet edge to sustain visible flow density; every other expiry
// re-seeds uniformly over the visible region. Landing on an obstacle retries
// a bounded number of times, then accepts the position anyway.
func (s *Simulation) respawnParticle(p *Particle, downstream bool) {
	mask := s.obstacle.Values()
	var x, y float64
	for try := 0; try < respawnAttempts; try++ {
		if downstream {
			x = s.rng.Float64In(float64(s.dom.visX), float64(s.dom.visX)+inletSeedSpan)
		} else {
			x = s.rng.Float64In(float64(s.dom.visX), float64(s.dom.visX+s.dom.visW))
		}
		y = s.rng.Float64In(float64(s.dom.visY), float64(s.dom.visY+s.dom.visH))
		i, j := s.cellOf(x, y)
		if !mask[i*s.dom.ny+j] {
			break
		}
	}
	p.X = x
	p.Y = y
	p.Age = 0
}

// cellOf returns the clamped grid cell containing position (x, y).
func (s *Simulation) cellOf(x, y float64) (int, int) {
	i := int(x)
	j := int(y)
	if i < 0 {
		i = 0
	}
	if j < 0 {
		j = 0
	}
	if i >= s.dom.nx {
		i = s.dom.nx - 1
	}
	if j >= s.dom.ny {
		j = s.dom.ny - 1
	}
	return i, j
}
