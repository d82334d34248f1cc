package d3

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform represents a 3D spatial transformation.
// The zero value of Transform is the identity transform.
type Transform struct {
	// in order to make the zero value of Transform represent the identity
	// transform we store it with the identity matrix subtracted.
	// These diagonal elements are subtracted such that
	//  d00 = x00-1, d11 = x11-1, d22 = x22-1, d33 = x33-1
	// where x00, x11, x22, x33 are the matrix diagonal elements.
	// We can then check for identity in if blocks like so:
	//  if T == (Transform{})
	d00, x01, x02, x03 float64
	x10, d11, x12, x13 float64
	x20, x21, d22, x23 float64
	x30, x31, x32, d33 float64
}

// Transform applies the Transform to the argument vector
// and returns the result.
func (t Transform) Transform(v r3.Vec) r3.Vec {
	w := 1 / (t.x30*v.X + t.x31*v.Y + t.x32*v.Z + t.d33 + 1)
	return r3.Vec{
		X: ((t.d00+1)*v.X + t.x01*v.Y + t.x02*v.Z + t.x03) * w,
		Y: (t.x10*v.X + (t.d11+1)*v.Y + t.x12*v.Z + t.x13) * w,
		Z: (t.x20*v.X + t.x21*v.Y + (t.d22+1)*v.Z + t.x23) * w,
	}
}

// Translate adds Vec to the positional Transform.
func (t Transform) Translate(v r3.Vec) Transform {
	t.x03 += v.X
	t.x13 += v.Y
	t.x23 += v.Z
	return t
}

// Scale returns the transform with scaling added around
// the argument origin.
func (t Transform) Scale(origin, factor r3.Vec) Transform {
	if origin == (r3.Vec{}) {
		return t.scale(factor)
	}
	t = t.Translate(r3.Scale(-1, origin))
	t = t.scale(factor)
	return t.Translate(origin)
}

func (t Transform) scale(factor r3.Vec) Transform {
	t.d00 = (t.d00+1)*factor.X - 1
	t.x10 *= factor.X
	t.x20 *= factor.X
	t.x30 *= factor.X

	t.x01 *= factor.Y
	t.d11 = (t.d11+1)*factor.Y - 1
	t.x21 *= factor.Y
	t.x31 *= factor.Y

	t.x02 *= factor.Z
	t.x12 *= factor.Z
	t.d22 = (t.d22+1)*factor.Z - 1
	t.x32 *= factor.Z
	return t
}
