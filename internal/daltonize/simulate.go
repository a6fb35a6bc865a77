package daltonize

// Brettel-Vienot-Mollon (1997) projections onto the color plane a dichromat
// can perceive. Each matrix zeroes the missing cone's independent
// contribution and re-expresses it from the two remaining cone responses.
// Indexed by Deficiency; None maps to the identity.
var simulation = [4]Matrix3{
	None: {
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	},
	Protanopia: {
		{0, 2.02344, -2.52581},
		{0, 1, 0},
		{0, 0, 1},
	},
	Deuteranopia: {
		{1, 0, 0},
		{0.494207, 0, 1.24827},
		{0, 0, 1},
	},
	Tritanopia: {
		{1, 0, 0},
		{0, 1, 0},
		{-0.395913, 0.801109, 0},
	},
}

// SimulationMatrix returns the projection constants for d. Exposed so tests
// can pin the exact coefficients; selecting the wrong matrix silently
// corrects for the wrong deficiency.
func SimulationMatrix(d Deficiency) Matrix3 {
	if !d.Valid() {
		return simulation[None]
	}
	return simulation[d]
}

// Simulate projects cone responses onto the plane perceivable by d.
// For None the input passes through unchanged.
func Simulate(l, m, s float64, d Deficiency) (float64, float64, float64) {
	if d == None || !d.Valid() {
		return l, m, s
	}
	return simulation[d].Apply(l, m, s)
}

// SimulateRGB models what a dichromat of type d perceives for one pixel,
// returning the unclamped simulated RGB triple on the 0-255 scale.
func SimulateRGB(p Pixel, d Deficiency) (float64, float64, float64) {
	l, m, s := RGBToLMS(float64(p.R), float64(p.G), float64(p.B))
	l, m, s = Simulate(l, m, s, d)
	return LMSToRGB(l, m, s)
}

// SimulateFrame renders a whole frame as perceived by a dichromat of type d.
// Used by the demo views; the correction path goes through Correct instead.
func SimulateFrame(f *Frame, d Deficiency) *Frame {
	if d == None {
		return f.Clone()
	}
	out := f.Clone()
	for i := 0; i < len(f.Pix); i += 3 {
		p := Pixel{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2]}
		r, g, b := SimulateRGB(p, d)
		out.Pix[i] = clampChannel(r)
		out.Pix[i+1] = clampChannel(g)
		out.Pix[i+2] = clampChannel(b)
	}
	return out
}
