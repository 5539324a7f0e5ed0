package core

// Size describes the visible dimensions of a simulation in cells.
type Size struct {
	W int
	H int
}

// Sim is the minimal contract the app shell and renderers rely on. Cells
// returns a display buffer over the visible region, one palette index per
// cell, row-major.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Factory constructs a Sim from flag-style key/value configuration.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Lookup returns the factory registered under name, if any.
func Lookup(name string) (Factory, bool) {
	f, ok := sims[name]
	return f, ok
}
