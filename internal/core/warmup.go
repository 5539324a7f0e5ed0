package core

// WarmupSchedule hands out extra physics substeps for the first ticks after a
// reset so the flow field develops before the user starts watching it.
type WarmupSchedule struct {
	ticks       int
	warmupTicks int
	boost       int
}

// NewWarmupSchedule returns a schedule running boost substeps per tick for
// the first warmupTicks ticks and one substep thereafter.
func NewWarmupSchedule(warmupTicks, boost int) *WarmupSchedule {
	if warmupTicks < 0 {
		warmupTicks = 0
	}
	if boost < 1 {
		boost = 1
	}
	return &WarmupSchedule{warmupTicks: warmupTicks, boost: boost}
}

// Restart rewinds the schedule, e.g. after a grid reallocation.
func (w *WarmupSchedule) Restart() { w.ticks = 0 }

// Substeps returns the number of physics steps to run this tick and advances
// the schedule.
func (w *WarmupSchedule) Substeps() int {
	n := 1
	if w.ticks < w.warmupTicks {
		n = w.boost
	}
	w.ticks++
	return n
}
