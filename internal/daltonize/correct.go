package daltonize

// Error-redistribution weights (Fidaner et al., 2005). The error is the
// portion of the original RGB signal lost to the simulated deficiency; each
// matrix shifts that error out of the imperceptible channel into the two
// channels the viewer retains. None maps to the zero matrix.
var redistribution = [4]Matrix3{
	None: {},
	Protanopia: {
		{0, 0, 0},
		{0.7, 1, 0},
		{0.7, 0, 1},
	},
	Deuteranopia: {
		{1, 0.7, 0},
		{0, 0, 0},
		{0, 0.7, 1},
	},
	Tritanopia: {
		{1, 0, 0.7},
		{0, 1, 0.7},
		{0, 0, 0},
	},
}

// RedistributionMatrix returns the error weighting for d. Exposed for tests.
func RedistributionMatrix(d Deficiency) Matrix3 {
	if !d.Valid() {
		return redistribution[None]
	}
	return redistribution[d]
}

// Correct daltonizes one pixel for deficiency d:
//
//  1. project the pixel into LMS cone space,
//  2. simulate the deficiency,
//  3. convert the simulated response back to RGB,
//  4. take the signed per-channel error against the original,
//  5. redistribute the error into perceivable channels,
//  6. add it back and saturate to the valid range.
//
// For None the chain contributes zero error, so the input is returned
// unchanged (exact, via short-circuit).
func Correct(p Pixel, d Deficiency) Pixel {
	if d == None || !d.Valid() {
		return p
	}

	r := float64(p.R)
	g := float64(p.G)
	b := float64(p.B)

	simR, simG, simB := SimulateRGB(p, d)

	errR := r - simR
	errG := g - simG
	errB := b - simB

	shiftR, shiftG, shiftB := redistribution[d].Apply(errR, errG, errB)

	return Pixel{
		R: clampChannel(r + shiftR),
		G: clampChannel(g + shiftG),
		B: clampChannel(b + shiftB),
	}
}

// CorrectFrame daltonizes every pixel of f for deficiency d, returning a new
// frame. The input frame is never modified.
func CorrectFrame(f *Frame, d Deficiency) *Frame {
	if d == None {
		return f.Clone()
	}
	out := f.Clone()
	for i := 0; i < len(f.Pix); i += 3 {
		p := Correct(Pixel{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2]}, d)
		out.Pix[i] = p.R
		out.Pix[i+1] = p.G
		out.Pix[i+2] = p.B
	}
	return out
}
