package core

import "testing"

func TestFloatGridIndexing(t *testing.T) {
	g := NewFloatGrid(4, 3)
	g.Values()[g.Index(2, 1)] = 7.5
	if g.At(2, 1) != 7.5 {
		t.Fatalf("At(2,1)=%g, want 7.5", g.At(2, 1))
	}
	g.Fill(1.25)
	for i, v := range g.Values() {
		if v != 1.25 {
			t.Fatalf("cell %d = %g after Fill, want 1.25", i, v)
		}
	}
}

func TestBoolGridClear(t *testing.T) {
	g := NewBoolGrid(3, 3)
	g.Values()[g.Index(1, 2)] = true
	g.Clear()
	for i, v := range g.Values() {
		if v {
			t.Fatalf("cell %d still set after Clear", i)
		}
	}
}

func TestGridDegenerateDimensions(t *testing.T) {
	g := NewFloatGrid(0, -1)
	if g.W != 1 || g.H != 1 {
		t.Fatalf("degenerate grid sized %dx%d, want 1x1", g.W, g.H)
	}
}

func TestWarmupSchedule(t *testing.T) {
	w := NewWarmupSchedule(3, 4)
	for i := 0; i < 3; i++ {
		if n := w.Substeps(); n != 4 {
			t.Fatalf("tick %d ran %d substeps, want warm-up boost 4", i, n)
		}
	}
	if n := w.Substeps(); n != 1 {
		t.Fatalf("post-warm-up tick ran %d substeps, want 1", n)
	}

	w.Restart()
	if n := w.Substeps(); n != 4 {
		t.Fatalf("tick after Restart ran %d substeps, want 4", n)
	}
}

func TestRegistry(t *testing.T) {
	Register("", nil)
	if _, ok := Lookup(""); ok {
		t.Fatal("empty registration must be ignored")
	}
}
