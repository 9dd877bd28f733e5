package arbor

import "math"

// Matrix is a 2D affine transform stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// IdentityMatrix is the identity affine transform.
var IdentityMatrix = Matrix{1, 0, 0, 1, 0, 0}

// TranslateMatrix returns a translation by (x, y).
func TranslateMatrix(x, y float64) Matrix {
	return Matrix{1, 0, 0, 1, x, y}
}

// RotateMatrix returns a rotation by angle radians (clockwise on screen).
func RotateMatrix(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// ScaleMatrix returns a scale by (sx, sy).
func ScaleMatrix(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Mul returns m * o, i.e. o is applied first.
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Invert returns the inverse of m.
// Returns the identity matrix if m is singular (determinant ≈ 0).
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityMatrix
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Bounds returns the floor/ceil-aligned bounding box of r's four corners
// under m. This is conservative, not a tight rotated bound.
func (m Matrix) Bounds(r Rect) Rect {
	if r.Empty() {
		return Rect{}
	}
	x0, y0 := m.Apply(r.X, r.Y)
	x1, y1 := m.Apply(r.MaxX(), r.Y)
	x2, y2 := m.Apply(r.MaxX(), r.MaxY())
	x3, y3 := m.Apply(r.X, r.MaxY())
	minX := math.Floor(math.Min(math.Min(x0, x1), math.Min(x2, x3)))
	minY := math.Floor(math.Min(math.Min(y0, y1), math.Min(y2, y3)))
	maxX := math.Ceil(math.Max(math.Max(x0, x1), math.Max(x2, x3)))
	maxY := math.Ceil(math.Max(math.Max(y0, y1), math.Max(y2, y3)))
	out := Rect{minX, minY, maxX - minX, maxY - minY}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// localMatrix composes translate, rotate, scale in that order, matching the
// sequence of surface calls made by drawNode.
func localMatrix(x, y, rotation, scale float64) Matrix {
	sin, cos := math.Sincos(rotation)
	return Matrix{
		cos * scale, sin * scale,
		-sin * scale, cos * scale,
		x, y,
	}
}
