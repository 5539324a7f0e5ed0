package wind

// D2Q9 lattice stencil. Direction 0 is the rest population; 1-4 are the axis
// directions east, south, west, north in grid coordinates (j grows downward);
// 5-8 are the diagonals. opp maps each direction to its reverse for
// bounce-back.
var (
	ex = [9]int{0, 1, 0, -1, 0, 1, -1, -1, 1}
	ey = [9]int{0, 0, 1, 0, -1, 1, 1, -1, -1}

	weights = [9]float64{
		4.0 / 9,
		1.0 / 9, 1.0 / 9, 1.0 / 9, 1.0 / 9,
		1.0 / 36, 1.0 / 36, 1.0 / 36, 1.0 / 36,
	}

	opp = [9]int{0, 3, 4, 1, 2, 7, 8, 5, 6}
)

// equilibrium fills f with the second-order lattice equilibrium for the given
// density and velocity:
//
//	f_eq[k] = w[k]·ρ·(1 + 3(e_k·u) + 4.5(e_k·u)² − 1.5|u|²)
func equilibrium(f *[9]float64, rho, ux, uy float64) {
	usq := 1.5 * (ux*ux + uy*uy)
	for k := 0; k < 9; k++ {
		eu := float64(ex[k])*ux + float64(ey[k])*uy
		f[k] = weights[k] * rho * (1 + 3*eu + 4.5*eu*eu - usq)
	}
}
