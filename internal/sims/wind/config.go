package wind

import "strconv"

// Solver-wide stability limits. The clamps below are the sole stability
// mechanism; there is no adaptive time-stepping.
const (
	// MaxVelocity bounds the macroscopic speed in lattice units. Velocities
	// above roughly 0.3 break the low-Mach assumption of the D2Q9 equilibrium.
	MaxVelocity = 0.25

	// MinDensity and MaxDensity bound the per-cell density.
	MinDensity = 0.5
	MaxDensity = 2.0

	// msToLattice converts a real-world m/s wind speed to lattice units. The
	// mapping is a display scale only, not a physical calibration.
	msToLattice = 0.012

	// minInletSpeed and maxInletSpeed bound the lattice inlet velocity
	// regardless of the configured m/s value.
	minInletSpeed = 0.01
	maxInletSpeed = 0.12

	minParticles = 300
	maxParticles = 1500
)

// supportedResolutions lists the allowed cell counts along the longer visible
// dimension. Requests outside the set snap to the nearest entry.
var supportedResolutions = []int{50, 100, 150, 200, 300}

// Params holds the user-tunable simulation parameters. All of them may change
// between steps; only Resolution forces a grid reallocation.
type Params struct {
	WindSpeedMS      float64
	WindDirectionDeg float64
	Viscosity        float64
	Smagorinsky      float64
	Resolution       int
	ParticleCount    int
	ParticleSpeed    float64
}

// Config controls the wind simulation domain and initial parameters.
type Config struct {
	// ViewportW and ViewportH are the visible table area in pixels; the
	// computational grid extends past them by fixed padding factors.
	ViewportW int
	ViewportH int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		ViewportW: 960,
		ViewportH: 640,
		Seed:      1337,
		Params: Params{
			WindSpeedMS:      5.0,
			WindDirectionDeg: 270,
			Viscosity:        0.02,
			Smagorinsky:      0.18,
			Resolution:       200,
			ParticleCount:    800,
			ParticleSpeed:    4.0,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["viewport_w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ViewportW = parsed
		}
	}
	if v, ok := cfg["viewport_h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ViewportH = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["wind_ms"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.WindSpeedMS = parsed
		}
	}
	if v, ok := cfg["wind_dir"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.WindDirectionDeg = parsed
		}
	}
	if v, ok := cfg["viscosity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.Viscosity = parsed
		}
	}
	if v, ok := cfg["smagorinsky"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Smagorinsky = parsed
		}
	}
	if v, ok := cfg["resolution"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.Resolution = parsed
		}
	}
	if v, ok := cfg["particles"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.ParticleCount = parsed
		}
	}
	if v, ok := cfg["particle_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.ParticleSpeed = parsed
		}
	}
	c.Params = clampParams(c.Params)
	return c
}

// clampParams snaps every parameter into its supported range. Out-of-range
// values are never an error.
func clampParams(p Params) Params {
	if p.WindSpeedMS < 0 {
		p.WindSpeedMS = 0
	}
	if p.WindSpeedMS > 30 {
		p.WindSpeedMS = 30
	}
	for p.WindDirectionDeg < 0 {
		p.WindDirectionDeg += 360
	}
	for p.WindDirectionDeg >= 360 {
		p.WindDirectionDeg -= 360
	}
	if p.Viscosity < 0.005 {
		p.Viscosity = 0.005
	}
	if p.Viscosity > 0.2 {
		p.Viscosity = 0.2
	}
	if p.Smagorinsky < 0 {
		p.Smagorinsky = 0
	}
	if p.Smagorinsky > 0.5 {
		p.Smagorinsky = 0.5
	}
	p.Resolution = nearestResolution(p.Resolution)
	if p.ParticleCount < minParticles {
		p.ParticleCount = minParticles
	}
	if p.ParticleCount > maxParticles {
		p.ParticleCount = maxParticles
	}
	if p.ParticleSpeed < 0.5 {
		p.ParticleSpeed = 0.5
	}
	if p.ParticleSpeed > 20 {
		p.ParticleSpeed = 20
	}
	return p
}

func nearestResolution(r int) int {
	best := supportedResolutions[0]
	for _, v := range supportedResolutions {
		dv := v - r
		if dv < 0 {
			dv = -dv
		}
		db := best - r
		if db < 0 {
			db = -db
		}
		if dv < db {
			best = v
		}
	}
	return best
}

// latticeInletSpeed maps the configured m/s wind speed into the safe lattice
// range.
func latticeInletSpeed(windMS float64) float64 {
	v := windMS * msToLattice
	if v < minInletSpeed {
		v = minInletSpeed
	}
	if v > maxInletSpeed {
		v = maxInletSpeed
	}
	return v
}
