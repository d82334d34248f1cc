package damast

import (
	"github.com/soypat/damast/internal/d3"
)

// LayerStats summarizes one layer's current geometry.
type LayerStats struct {
	LayerIndex       int        `json:"layer_index"`
	Material         string     `json:"material"`
	VertexCount      int        `json:"vertex_count"`
	TriangleCount    int        `json:"triangle_count"`
	BoundsX          [2]float64 `json:"bounds_x"`
	BoundsY          [2]float64 `json:"bounds_y"`
	BoundsZ          [2]float64 `json:"bounds_z"`
	Center           [3]float64 `json:"center"`
	DeformationCount int        `json:"deformation_count"`
}

// BilletStats aggregates the billet's declared dimensions and per-layer
// geometry summaries.
type BilletStats struct {
	Width  float64      `json:"width_mm"`
	Length float64      `json:"length_mm"`
	Height float64      `json:"total_height_mm"`
	Volume float64      `json:"volume_mm3"`
	Forged bool         `json:"is_forged"`
	Layers []LayerStats `json:"layers"`
}

// Stats returns the billet's aggregate statistics. It is a pure read of
// current state.
func (b *Billet) Stats() BilletStats {
	s := BilletStats{
		Width:  b.width,
		Length: b.length,
		Height: b.Height(),
		Volume: b.Volume(),
		Forged: b.forged,
		Layers: make([]LayerStats, len(b.layers)),
	}
	for i, l := range b.layers {
		bb := d3.Box(l.Bounds())
		c := bb.Center()
		s.Layers[i] = LayerStats{
			LayerIndex:       l.index,
			Material:         l.material.Name,
			VertexCount:      len(l.vertices),
			TriangleCount:    len(l.topology),
			BoundsX:          [2]float64{bb.Min.X, bb.Max.X},
			BoundsY:          [2]float64{bb.Min.Y, bb.Max.Y},
			BoundsZ:          [2]float64{bb.Min.Z, bb.Max.Z},
			Center:           [3]float64{c.X, c.Y, c.Z},
			DeformationCount: l.DeformationCount(),
		}
	}
	return s
}
