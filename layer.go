package damast

import (
	"github.com/soypat/damast/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Layer is one steel sheet of the billet represented as a closed triangle
// mesh. Deformation replaces the layer's vertex buffer wholesale; the
// triangle topology is fixed for the layer's lifetime.
type Layer struct {
	index    int
	material Material
	// current scalar state, mutated by forging and compression.
	thickness float64
	zpos      float64
	// creation snapshot, the reference frame for cumulative recomputation.
	origThickness float64
	origZPos      float64
	vertices      []r3.Vec // current positions, swapped atomically.
	original      []r3.Vec // immutable creation snapshot.
	topology      [][3]int
	history       []Record
}

// Index returns the layer's position in the stack. 0 is the bottom layer.
func (l *Layer) Index() int { return l.index }

// Material returns the layer's material identity.
func (l *Layer) Material() Material { return l.material }

// Thickness returns the layer's current thickness.
func (l *Layer) Thickness() float64 { return l.thickness }

// ZPosition returns the current height of the layer's bottom face.
func (l *Layer) ZPosition() float64 { return l.zpos }

// OriginalThickness returns the thickness at stack construction.
func (l *Layer) OriginalThickness() float64 { return l.origThickness }

// OriginalZPosition returns the z position at stack construction.
func (l *Layer) OriginalZPosition() float64 { return l.origZPos }

// Vertices returns the layer's current vertex positions. The returned
// slice is replaced, never mutated, by operations; callers must not
// modify it.
func (l *Layer) Vertices() []r3.Vec { return l.vertices }

// OriginalVertices returns the immutable vertex snapshot taken at stack
// construction. Callers must not modify the returned slice.
func (l *Layer) OriginalVertices() []r3.Vec { return l.original }

// Topology returns the triangle index buffer shared by the current and
// original vertex buffers. It is fixed for the lifetime of the layer.
func (l *Layer) Topology() [][3]int { return l.topology }

// History returns the layer's applied operation records in order.
func (l *Layer) History() []Record { return l.history }

// DeformationCount returns the number of operations that have deformed
// this layer.
func (l *Layer) DeformationCount() int { return len(l.history) }

// Bounds returns the axis aligned bounding box of the current vertices.
func (l *Layer) Bounds() r3.Box { return mesh.Bounds(l.vertices) }

// Volume returns the volume enclosed by the layer's current mesh.
func (l *Layer) Volume() float64 { return mesh.Volume(l.vertices, l.topology) }
