package wind

// Exponential smoothing for the display normalization constant. Heavy on the
// retained side so the color scale and legend do not flicker frame to frame.
const (
	scaleRetain = 0.9
	scaleBlend  = 0.1

	// scaleFloor keeps the normalization away from zero during the first
	// frames after a reallocation.
	scaleFloor = 1e-4
)

// scaleTracker blends per-frame maximum speeds into a smoothed value. Purely
// a display normalization; it never feeds back into the physics.
type scaleTracker struct {
	smoothed float64
}

// Reset clears the tracker, e.g. after a grid reallocation.
func (t *scaleTracker) Reset() { t.smoothed = 0 }

// Observe folds one frame's maximum speed into the smoothed value.
func (t *scaleTracker) Observe(max float64) {
	if t.smoothed == 0 {
		t.smoothed = max
		return
	}
	t.smoothed = scaleRetain*t.smoothed + scaleBlend*max
}

// Value returns the smoothed maximum, floored away from zero.
func (t *scaleTracker) Value() float64 {
	if t.smoothed < scaleFloor {
		return scaleFloor
	}
	return t.smoothed
}
