package daltonize

import (
	"math"
	"testing"
)

// TestSimulationCoefficients pins the Brettel-Vienot-Mollon projection
// matrices. Selecting the wrong matrix corrects for the wrong deficiency, so
// the exact constants are regression-anchored here.
func TestSimulationCoefficients(t *testing.T) {
	cases := []struct {
		deficiency Deficiency
		want       Matrix3
	}{
		{Protanopia, Matrix3{
			{0, 2.02344, -2.52581},
			{0, 1, 0},
			{0, 0, 1},
		}},
		{Deuteranopia, Matrix3{
			{1, 0, 0},
			{0.494207, 0, 1.24827},
			{0, 0, 1},
		}},
		{Tritanopia, Matrix3{
			{1, 0, 0},
			{0, 1, 0},
			{-0.395913, 0.801109, 0},
		}},
	}
	for _, tc := range cases {
		if got := SimulationMatrix(tc.deficiency); got != tc.want {
			t.Errorf("%s simulation matrix = %v, want %v", tc.deficiency, got, tc.want)
		}
	}
}

func TestSimulateNoneIsIdentity(t *testing.T) {
	l, m, s := 123.4, 56.7, 8.9
	gl, gm, gs := Simulate(l, m, s, None)
	if gl != l || gm != m || gs != s {
		t.Errorf("Simulate(None) = (%g,%g,%g), want input unchanged", gl, gm, gs)
	}
}

// TestPureRedProtanopiaAnchor pins the simulated appearance of pure red for
// a red-blind viewer, derived from the published matrix coefficients. Red
// should collapse to a dim yellow-gray with almost no blue.
func TestPureRedProtanopiaAnchor(t *testing.T) {
	r, g, b := SimulateRGB(Pixel{R: 255}, Protanopia)
	wantR, wantG, wantB := 28.657, 28.658, 1.021
	if math.Abs(r-wantR) > 0.05 || math.Abs(g-wantG) > 0.05 || math.Abs(b-wantB) > 0.05 {
		t.Errorf("SimulateRGB(red, Protanopia) = (%.3f, %.3f, %.3f), want ~(%.3f, %.3f, %.3f)",
			r, g, b, wantR, wantG, wantB)
	}
}

func TestSimulateFrameNoneCopies(t *testing.T) {
	f, err := NewFrame(4, 4)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	f.Set(1, 2, Pixel{R: 200, G: 100, B: 50})

	out := SimulateFrame(f, None)
	if out == f {
		t.Fatal("SimulateFrame returned the input frame")
	}
	if got := out.At(1, 2); got != (Pixel{R: 200, G: 100, B: 50}) {
		t.Errorf("pixel = %v, want original", got)
	}
}
