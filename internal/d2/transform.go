package d2

import (
	"gonum.org/v1/gonum/spatial/r2"
)

var identityT Transform

func (t Transform) isIdentity() bool {
	return t == identityT
}

// Transform represents a 2D affine transformation
// including translation and scaling. The zero value
// is the identity transform.
type Transform struct {
	data [3 * 3]float64
}

// Translation returns a Transform that adds v to positions.
func Translation(v r2.Vec) Transform {
	t := Transform{}
	t.Set(0, 2, v.X)
	t.Set(1, 2, v.Y)
	return t
}

// Scaling returns a Transform that scales X positions by sx
// and Y positions by sy about the origin.
func Scaling(sx, sy float64) Transform {
	t := Transform{}
	t.Set(0, 0, sx)
	t.Set(1, 1, sy)
	return t
}

func (t *Transform) At(i, j int) float64 {
	v := t.data[i*3+j]
	if i == j {
		// diagonal stored with identity subtracted so the
		// zero value is the identity transform.
		v++
	}
	return v
}

func (t *Transform) Set(i, j int, v float64) {
	if i == j {
		v--
	}
	t.data[i*3+j] = v
}

// Mul multiplies 3x3 matrices.
func (a Transform) Mul(b Transform) Transform {
	if a.isIdentity() {
		return b
	}
	if b.isIdentity() {
		return a
	}
	m := Transform{}
	m.Set(0, 0, a.At(0, 0)*b.At(0, 0)+a.At(0, 1)*b.At(1, 0)+a.At(0, 2)*b.At(2, 0))
	m.Set(1, 0, a.At(1, 0)*b.At(0, 0)+a.At(1, 1)*b.At(1, 0)+a.At(1, 2)*b.At(2, 0))
	m.Set(2, 0, a.At(2, 0)*b.At(0, 0)+a.At(2, 1)*b.At(1, 0)+a.At(2, 2)*b.At(2, 0))
	m.Set(0, 1, a.At(0, 0)*b.At(0, 1)+a.At(0, 1)*b.At(1, 1)+a.At(0, 2)*b.At(2, 1))
	m.Set(1, 1, a.At(1, 0)*b.At(0, 1)+a.At(1, 1)*b.At(1, 1)+a.At(1, 2)*b.At(2, 1))
	m.Set(2, 1, a.At(2, 0)*b.At(0, 1)+a.At(2, 1)*b.At(1, 1)+a.At(2, 2)*b.At(2, 1))
	m.Set(0, 2, a.At(0, 0)*b.At(0, 2)+a.At(0, 1)*b.At(1, 2)+a.At(0, 2)*b.At(2, 2))
	m.Set(1, 2, a.At(1, 0)*b.At(0, 2)+a.At(1, 1)*b.At(1, 2)+a.At(1, 2)*b.At(2, 2))
	m.Set(2, 2, a.At(2, 0)*b.At(0, 2)+a.At(2, 1)*b.At(1, 2)+a.At(2, 2)*b.At(2, 2))
	return m
}

// ApplyPos transforms the position b.
func (t Transform) ApplyPos(b r2.Vec) r2.Vec {
	if t.isIdentity() {
		return b
	}
	return r2.Vec{
		X: t.At(0, 0)*b.X + t.At(0, 1)*b.Y + t.At(0, 2),
		Y: t.At(1, 0)*b.X + t.At(1, 1)*b.Y + t.At(1, 2),
	}
}
