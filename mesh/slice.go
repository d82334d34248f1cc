package mesh

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Segment is a 2D line segment produced by slicing a mesh with a plane
// of constant Y. X maps to the world X (width) coordinate and Y maps to
// the world Z (height) coordinate.
type Segment struct {
	P0, P1 r2.Vec
}

// SliceY intersects every triangle of the mesh with the plane Y = y and
// returns the resulting intersection segments projected onto the XZ plane.
// Triangles entirely on one side of the plane contribute nothing. The
// returned segments appear in triangle index order so repeated slices of
// an unchanged mesh are identical.
func SliceY(vertices []r3.Vec, triangles [][3]int, y float64) []Segment {
	var segs []Segment
	var pts [2]r2.Vec
	for _, t := range triangles {
		n := 0
		for e := 0; e < 3 && n < 2; e++ {
			a := vertices[t[e]]
			b := vertices[t[(e+1)%3]]
			da := a.Y - y
			db := b.Y - y
			if (da < 0) == (db < 0) {
				continue
			}
			f := da / (da - db)
			pts[n] = r2.Vec{
				X: a.X + f*(b.X-a.X),
				Y: a.Z + f*(b.Z-a.Z),
			}
			n++
		}
		if n == 2 {
			segs = append(segs, Segment{P0: pts[0], P1: pts[1]})
		}
	}
	return segs
}
