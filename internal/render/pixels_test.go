package render

import (
	"image/color"
	"testing"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{
		{R: 10, G: 20, B: 30, A: 255},
		{R: 40, G: 50, B: 60, A: 255},
	}
	cells := []uint8{0, 1, 9} // 9 clamps to the last entry
	buf := make([]byte, 12)

	FillPaletteRGBA(buf, cells, palette)

	want := []byte{10, 20, 30, 255, 40, 50, 60, 255, 40, 50, 60, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, buf[i], want[i])
		}
	}
}

func TestFillPaletteRGBAEmptyPalette(t *testing.T) {
	cells := []uint8{3, 3}
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}

	FillPaletteRGBA(buf, cells, nil)

	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, want cleared", i, b)
		}
	}
}
