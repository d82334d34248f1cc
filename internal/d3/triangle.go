package d3

import "gonum.org/v1/gonum/spatial/r3"

// Triangle is a triangle in 3D space addressed by its corner positions.
type Triangle [3]r3.Vec

// Normal returns the triangle's non-unit normal vector from
// the cross product of its edges.
func (t Triangle) Normal() r3.Vec {
	return r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
}

// Area returns the triangle's area.
func (t Triangle) Area() float64 {
	return 0.5 * r3.Norm(t.Normal())
}

// Degenerate returns true if the triangle's area is zero within tol
// or any of its vertices is non-finite.
func (t Triangle) Degenerate(tol float64) bool {
	if !Finite(t[0]) || !Finite(t[1]) || !Finite(t[2]) {
		return true
	}
	return t.Area() <= tol
}
