package wind

import (
	"math"
	"testing"
)

func TestScaleTrackerSeedsOnFirstObservation(t *testing.T) {
	var tr scaleTracker
	tr.Observe(0.10)
	if tr.Value() != 0.10 {
		t.Fatalf("first observation gave %g, want seeded 0.10", tr.Value())
	}
}

func TestScaleTrackerBlendsObservations(t *testing.T) {
	var tr scaleTracker
	tr.Observe(0.10)
	tr.Observe(0.20)
	want := scaleRetain*0.10 + scaleBlend*0.20
	if math.Abs(tr.Value()-want) > 1e-15 {
		t.Fatalf("blended value %g, want %g", tr.Value(), want)
	}
}

func TestScaleTrackerResetFloorsValue(t *testing.T) {
	var tr scaleTracker
	tr.Observe(0.10)
	tr.Reset()
	if tr.Value() != scaleFloor {
		t.Fatalf("value %g after Reset, want floor %g", tr.Value(), scaleFloor)
	}
}

func TestSmoothedMaxSpeedTracksQuiescentFlow(t *testing.T) {
	s := newTestSim(500, 300, 50)
	s.Step()

	// Uniform flow: the visible maximum equals the inlet speed, and the
	// first observation seeds the tracker with it directly.
	if math.Abs(s.SmoothedMaxSpeed()-s.InletSpeed()) > 1e-12 {
		t.Fatalf("smoothed max %g after one step, want inlet %g", s.SmoothedMaxSpeed(), s.InletSpeed())
	}
}
