package core

// FloatGrid stores one scalar per cell in column-major order (index i*H+j),
// matching the solver's population layout so macroscopic fields and lattice
// data share a traversal order.
type FloatGrid struct {
	W, H int
	data []float64
}

// NewFloatGrid allocates a zeroed grid with the given dimensions.
func NewFloatGrid(w, h int) *FloatGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FloatGrid{W: w, H: h, data: make([]float64, w*h)}
}

// Values exposes the backing slice so hot loops can index it directly.
func (g *FloatGrid) Values() []float64 { return g.data }

// Index returns the linear slice index for cell (i, j).
func (g *FloatGrid) Index(i, j int) int { return i*g.H + j }

// At returns the value at cell (i, j).
func (g *FloatGrid) At(i, j int) float64 { return g.data[i*g.H+j] }

// Fill sets every cell to v.
func (g *FloatGrid) Fill(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}

// BoolGrid stores one flag per cell in the same column-major order as
// FloatGrid.
type BoolGrid struct {
	W, H int
	data []bool
}

// NewBoolGrid allocates a cleared grid with the given dimensions.
func NewBoolGrid(w, h int) *BoolGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &BoolGrid{W: w, H: h, data: make([]bool, w*h)}
}

// Values exposes the backing slice.
func (g *BoolGrid) Values() []bool { return g.data }

// Index returns the linear slice index for cell (i, j).
func (g *BoolGrid) Index(i, j int) int { return i*g.H + j }

// Clear resets every flag to false.
func (g *BoolGrid) Clear() {
	for i := range g.data {
		g.data[i] = false
	}
}
