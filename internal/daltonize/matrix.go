package daltonize

import "math"

// Matrix3 is a fixed 3x3 transform applied to channel triples.
type Matrix3 [3][3]float64

// Apply multiplies the matrix by the column vector (a, b, c).
func (m Matrix3) Apply(a, b, c float64) (float64, float64, float64) {
	return m[0][0]*a + m[0][1]*b + m[0][2]*c,
		m[1][0]*a + m[1][1]*b + m[1][2]*c,
		m[2][0]*a + m[2][1]*b + m[2][2]*c
}

// Inverse returns the matrix inverse by cofactor expansion. It panics on a
// singular matrix; the only caller inverts the fixed RGB-to-LMS matrix,
// which is well conditioned.
func (m Matrix3) Inverse() Matrix3 {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	if math.Abs(det) < 1e-12 {
		panic("daltonize: singular transform matrix")
	}
	inv := 1 / det
	return Matrix3{
		{
			(m[1][1]*m[2][2] - m[1][2]*m[2][1]) * inv,
			(m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv,
			(m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv,
		},
		{
			(m[1][2]*m[2][0] - m[1][0]*m[2][2]) * inv,
			(m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv,
			(m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv,
		},
		{
			(m[1][0]*m[2][1] - m[1][1]*m[2][0]) * inv,
			(m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv,
			(m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv,
		},
	}
}

// rgbToLMS is the Hunt-Pointer-Estevez approximation mapping linear RGB to
// cone responses.
var rgbToLMS = Matrix3{
	{17.8824, 43.5161, 4.11935},
	{3.45565, 27.1554, 3.86714},
	{0.0299566, 0.184309, 1.46709},
}

// lmsToRGB is the exact inverse, computed once at startup.
var lmsToRGB = rgbToLMS.Inverse()

// RGBToLMS converts one RGB triple (0-255 scale) to cone space.
func RGBToLMS(r, g, b float64) (float64, float64, float64) {
	return rgbToLMS.Apply(r, g, b)
}

// LMSToRGB converts cone responses back to RGB on the 0-255 scale. The
// result is unclamped; callers saturate after the full transform chain.
func LMSToRGB(l, m, s float64) (float64, float64, float64) {
	return lmsToRGB.Apply(l, m, s)
}
