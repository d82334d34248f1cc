// Package mesh provides the triangle-mesh primitives behind billet layer
// solids: subdivided box generation with shared vertices, mesh volume and
// bounds, and the plane-intersection primitive used for cross-section views.
//
// Meshes are addressed as a vertex buffer plus a triangle index buffer.
// Deformation replaces vertex positions and never touches the index buffer.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/damast/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	errSegments = errors.New("mesh: segment counts must be at least 1")
	errBoxSize  = errors.New("mesh: box size must be positive in all dimensions")
)

// Box assembles a closed box surface mesh spanning bounds with nx, ny, nz
// subdivisions along each axis. Vertices on shared edges and corners are
// welded so the surface is watertight. Triangles are wound with outward
// facing normals.
func Box(bounds r3.Box, nx, ny, nz int) (vertices []r3.Vec, triangles [][3]int, err error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, nil, errSegments
	}
	size := r3.Sub(bounds.Max, bounds.Min)
	if d3.LTEZero(size) {
		return nil, nil, errBoxSize
	}
	step := r3.Vec{X: size.X / float64(nx), Y: size.Y / float64(ny), Z: size.Z / float64(nz)}
	// vertex index cache keyed by grid coordinate so face seams share vertices.
	cache := make(map[[3]int]int)
	vertexIdx := func(i, j, k int) int {
		gi := [3]int{i, j, k}
		idx, ok := cache[gi]
		if !ok {
			idx = len(vertices)
			cache[gi] = idx
			vertices = append(vertices, r3.Add(bounds.Min, d3.MulElem(step, r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)})))
		}
		return idx
	}
	quad := func(a, b, c, d int) {
		triangles = append(triangles, [3]int{a, b, c}, [3]int{a, c, d})
	}
	// top (+Z) and bottom (-Z) faces.
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			quad(vertexIdx(i, j, nz), vertexIdx(i+1, j, nz), vertexIdx(i+1, j+1, nz), vertexIdx(i, j+1, nz))
			quad(vertexIdx(i, j, 0), vertexIdx(i, j+1, 0), vertexIdx(i+1, j+1, 0), vertexIdx(i+1, j, 0))
		}
	}
	// far (+Y) and near (-Y) faces.
	for i := 0; i < nx; i++ {
		for k := 0; k < nz; k++ {
			quad(vertexIdx(i, ny, k), vertexIdx(i, ny, k+1), vertexIdx(i+1, ny, k+1), vertexIdx(i+1, ny, k))
			quad(vertexIdx(i, 0, k), vertexIdx(i+1, 0, k), vertexIdx(i+1, 0, k+1), vertexIdx(i, 0, k+1))
		}
	}
	// right (+X) and left (-X) faces.
	for j := 0; j < ny; j++ {
		for k := 0; k < nz; k++ {
			quad(vertexIdx(nx, j, k), vertexIdx(nx, j+1, k), vertexIdx(nx, j+1, k+1), vertexIdx(nx, j, k+1))
			quad(vertexIdx(0, j, k), vertexIdx(0, j, k+1), vertexIdx(0, j+1, k+1), vertexIdx(0, j+1, k))
		}
	}
	return vertices, triangles, nil
}

// Volume returns the signed volume enclosed by the mesh from the divergence
// theorem over the surface triangles. The result is positive for meshes
// wound with outward facing normals.
func Volume(vertices []r3.Vec, triangles [][3]int) float64 {
	var v float64
	for _, t := range triangles {
		a, b, c := vertices[t[0]], vertices[t[1]], vertices[t[2]]
		v += r3.Dot(a, r3.Cross(b, c))
	}
	return v / 6
}

// Bounds returns the axis aligned bounding box of the vertex buffer.
func Bounds(vertices []r3.Vec) r3.Box {
	if len(vertices) == 0 {
		return r3.Box{}
	}
	set := d3.Set(vertices)
	return r3.Box{Min: set.Min(), Max: set.Max()}
}

// Validate checks a candidate vertex buffer against its index buffer.
// It returns an error describing the first non-finite vertex, out of
// range index or degenerate (zero area within tol) triangle found.
func Validate(vertices []r3.Vec, triangles [][3]int, tol float64) error {
	for i, v := range vertices {
		if !d3.Finite(v) {
			return fmt.Errorf("mesh: non-finite vertex %d: %v", i, v)
		}
	}
	for i, t := range triangles {
		for _, idx := range t {
			if idx < 0 || idx >= len(vertices) {
				return fmt.Errorf("mesh: triangle %d index %d out of range", i, idx)
			}
		}
		tri := d3.Triangle{vertices[t[0]], vertices[t[1]], vertices[t[2]]}
		if tri.Degenerate(tol) {
			return fmt.Errorf("mesh: degenerate triangle %d with area %g", i, tri.Area())
		}
	}
	return nil
}
