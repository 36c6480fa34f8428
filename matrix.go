package scene

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrices are row-major 2x3 affine transforms:
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]

// IdentityMatrix returns the identity transform.
func IdentityMatrix() f64.Aff3 {
	return f64.Aff3{1, 0, 0, 0, 1, 0}
}

// TranslateMatrix returns a translation by (dx, dy).
func TranslateMatrix(dx, dy float64) f64.Aff3 {
	return f64.Aff3{1, 0, dx, 0, 1, dy}
}

// ScaleMatrix returns a scale about the origin.
func ScaleMatrix(sx, sy float64) f64.Aff3 {
	return f64.Aff3{sx, 0, 0, 0, sy, 0}
}

// RotateMatrix returns a counter-clockwise rotation about the origin.
func RotateMatrix(radians float64) f64.Aff3 {
	s, c := math.Sincos(radians)
	return f64.Aff3{c, -s, 0, s, c, 0}
}

// MultiplyMatrix returns a·b, the transform that applies b first.
func MultiplyMatrix(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// InvertMatrix returns the inverse of m. Singular matrices report false
// and return the identity.
func InvertMatrix(m f64.Aff3) (f64.Aff3, bool) {
	det := m[0]*m[4] - m[1]*m[3]
	if math.Abs(det) < 1e-12 {
		return IdentityMatrix(), false
	}
	inv := 1 / det
	a := m[4] * inv
	b := -m[1] * inv
	d := -m[3] * inv
	e := m[0] * inv
	return f64.Aff3{
		a, b, -(a*m[2] + b*m[5]),
		d, e, -(d*m[2] + e*m[5]),
	}, true
}

// MapPoint applies m to p.
func MapPoint(m f64.Aff3, p OffsetF) OffsetF {
	return OffsetF{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// MapRect returns the bounding box of r transformed by m.
func MapRect(m f64.Aff3, r RectF) RectF {
	corners := [4]OffsetF{
		MapPoint(m, OffsetF{X: r.X, Y: r.Y}),
		MapPoint(m, OffsetF{X: r.Right(), Y: r.Y}),
		MapPoint(m, OffsetF{X: r.X, Y: r.Bottom()}),
		MapPoint(m, OffsetF{X: r.Right(), Y: r.Bottom()}),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minY, maxY = min(minY, c.Y), max(maxY, c.Y)
	}
	return RectF{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func isIdentity(m f64.Aff3) bool {
	return m == IdentityMatrix()
}
