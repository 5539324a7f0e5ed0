package wind

import (
	"math"
	"testing"
)

func TestDownstreamExitRespawnsNearInlet(t *testing.T) {
	s := newTestSim(500, 300, 50)
	right := float64(s.dom.visX + s.dom.visW)
	s.particles[0] = Particle{X: right + 0.5, Y: float64(s.dom.visY + s.dom.visH/2), Age: 20}

	s.advectParticles()

	p := s.particles[0]
	left := float64(s.dom.visX)
	if p.X < left || p.X > left+inletSeedSpan {
		t.Fatalf("particle re-seeded at x=%g, want within [%g, %g]", p.X, left, left+inletSeedSpan)
	}
	if p.Age != 0 {
		t.Fatalf("respawned particle age=%g, want 0", p.Age)
	}
}

func TestAgedOutParticleRespawnsInVisibleRegion(t *testing.T) {
	s := newTestSim(500, 300, 50)
	s.particles[0] = Particle{
		X:   float64(s.dom.visX + s.dom.visW/2),
		Y:   float64(s.dom.visY + s.dom.visH/2),
		Age: particleMaxAge + 1,
	}

	s.advectParticles()

	p := s.particles[0]
	if p.Age != 0 {
		t.Fatalf("aged-out particle not recycled, age=%g", p.Age)
	}
	if p.X < float64(s.dom.visX) || p.X >= float64(s.dom.visX+s.dom.visW) ||
		p.Y < float64(s.dom.visY) || p.Y >= float64(s.dom.visY+s.dom.visH) {
		t.Fatalf("respawn position (%g, %g) outside visible region", p.X, p.Y)
	}
}

func TestRespawnAvoidsObstacleCells(t *testing.T) {
	s := newTestSim(500, 300, 50)
	// Block out a patch of the visible region.
	s.SetObstacles([]Polygon{{
		{X: 200, Y: 100}, {X: 300, Y: 100}, {X: 300, Y: 200}, {X: 200, Y: 200},
	}})
	mask := s.obstacle.Values()

	var p Particle
	for n := 0; n < 200; n++ {
		s.respawnParticle(&p, false)
		i, j := s.cellOf(p.X, p.Y)
		if mask[i*s.dom.ny+j] {
			t.Fatalf("respawn %d landed on an obstacle cell (%d,%d)", n, i, j)
		}
	}
}

func TestParticleAtObstacleNudgedBackward(t *testing.T) {
	s := newTestSim(500, 300, 50)
	x := float64(s.dom.visX+s.dom.visW/2) + 0.5
	y := float64(s.dom.visY+s.dom.visH/2) + 0.5
	i, j := s.cellOf(x, y)
	c := i*s.dom.ny + j
	s.obstacle.Values()[c] = true
	s.velX.Values()[c] = 0.1
	s.velY.Values()[c] = 0
	s.particles[0] = Particle{X: x, Y: y, Age: 0}

	s.advectParticles()

	p := s.particles[0]
	wantX := x - 0.1*s.params.ParticleSpeed
	if math.Abs(p.X-wantX) > 1e-12 {
		t.Fatalf("particle x=%g, want nudged back to %g", p.X, wantX)
	}
	if p.Age != particleWallAgeStep {
		t.Fatalf("wall-stuck particle aged %g, want %g", p.Age, particleWallAgeStep)
	}
}

func TestParticlePoolResize(t *testing.T) {
	s := newTestSim(500, 300, 50)
	if len(s.particles) != s.params.ParticleCount {
		t.Fatalf("pool size %d, want %d", len(s.particles), s.params.ParticleCount)
	}

	s.SetIntParameter("particles", 1200)
	if len(s.particles) != 1200 {
		t.Fatalf("pool size %d after grow, want 1200", len(s.particles))
	}
	s.SetIntParameter("particles", 10)
	if len(s.particles) != minParticles {
		t.Fatalf("pool size %d after clamped shrink, want %d", len(s.particles), minParticles)
	}
}
