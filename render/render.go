// Package render exports billet geometry to interchange formats for
// external 3D viewers: binary STL for plain geometry and OBJ with
// vertex colors for etched layer visualization.
package render

import (
	"io"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/damast"
)

// Triangle3 is a 3D triangle defined by its three vertices.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the triangle's normal following the right hand rule
// on vertex order.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Renderer is a stream of triangles. ReadTriangles fills t with up to
// len(t) triangles and returns io.EOF when the geometry is exhausted,
// following the io.Reader contract.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// BilletRenderer streams the current triangle meshes of a billet's
// layers, bottom layer first. It reads billet state once at creation;
// operations applied afterwards do not affect the stream.
type BilletRenderer struct {
	buf triangle3Buffer
}

var _ Renderer = (*BilletRenderer)(nil)

// NewBilletRenderer returns a Renderer over all layer meshes of b.
func NewBilletRenderer(b *damast.Billet) *BilletRenderer {
	var total int
	for _, l := range b.Layers() {
		total += len(l.Topology())
	}
	tris := make([]Triangle3, 0, total)
	for _, l := range b.Layers() {
		tris = appendLayerTriangles(tris, l)
	}
	return &BilletRenderer{buf: triangle3Buffer{buf: tris}}
}

// NewLayerRenderer returns a Renderer over a single layer's mesh.
func NewLayerRenderer(l *damast.Layer) *BilletRenderer {
	tris := appendLayerTriangles(make([]Triangle3, 0, len(l.Topology())), l)
	return &BilletRenderer{buf: triangle3Buffer{buf: tris}}
}

func appendLayerTriangles(dst []Triangle3, l *damast.Layer) []Triangle3 {
	vertices := l.Vertices()
	for _, tri := range l.Topology() {
		dst = append(dst, Triangle3{V: [3]r3.Vec{
			vertices[tri[0]],
			vertices[tri[1]],
			vertices[tri[2]],
		}})
	}
	return dst
}

// ReadTriangles implements the Renderer interface.
func (b *BilletRenderer) ReadTriangles(t []Triangle3) (int, error) {
	if b.buf.Len() == 0 {
		return 0, io.EOF
	}
	return b.buf.Read(t), nil
}
