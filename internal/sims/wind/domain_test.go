package wind

import "testing"

func TestComputeDomainLandscape(t *testing.T) {
	d := computeDomain(960, 640, 200)

	if d.visW != 200 {
		t.Fatalf("visW=%d, want resolution 200 along the longer edge", d.visW)
	}
	if d.visH != 133 {
		t.Fatalf("visH=%d, want 133 (aspect preserved)", d.visH)
	}
	if d.visX != 200 {
		t.Fatalf("upstream padding %d, want 1.0x visible width", d.visX)
	}
	if d.nx != 200+200+100 {
		t.Fatalf("nx=%d, want upstream+visible+downstream = 500", d.nx)
	}
	if d.visY != 27 {
		t.Fatalf("top padding %d, want 0.2x visible height", d.visY)
	}
	if d.ny != 27+133+27 {
		t.Fatalf("ny=%d, want 187", d.ny)
	}
	if d.cellPx != 960.0/200 {
		t.Fatalf("cellPx=%g, want %g", d.cellPx, 960.0/200)
	}
}

func TestComputeDomainPortrait(t *testing.T) {
	d := computeDomain(300, 600, 100)

	if d.visH != 100 {
		t.Fatalf("visH=%d, want resolution 100 along the longer edge", d.visH)
	}
	if d.visW != 50 {
		t.Fatalf("visW=%d, want 50", d.visW)
	}
}

func TestComputeDomainDegenerateViewport(t *testing.T) {
	d := computeDomain(0, 0, 100)
	if d.nx <= 0 || d.ny <= 0 {
		t.Fatalf("degenerate viewport produced empty grid %dx%d", d.nx, d.ny)
	}
}

func TestCanvasRoundTrip(t *testing.T) {
	d := computeDomain(500, 300, 50)
	cx, cy := d.cellCenter(d.visX+5, d.visY+7)
	gx, gy := d.canvasToCell(cx, cy)
	if gx != float64(d.visX+5)+0.5 || gy != float64(d.visY+7)+0.5 {
		t.Fatalf("round trip gave (%g, %g)", gx, gy)
	}
}
