package damast

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/soypat/damast/mesh"
)

// Operation is a deformation step applied to a billet. Implementations
// live in package forge.
//
// Apply receives a candidate Geometry rebuilt from the billet's
// construction snapshot and mutates it in place. It must derive all
// positions from the candidate's Original buffers and its own
// parameters so that replaying the same history always reproduces the
// same vertices.
type Operation interface {
	// Name identifies the operation in histories and logs.
	Name() string
	// Validate rejects bad parameters or a billet in the wrong state
	// before any geometry work happens.
	Validate(b *Billet) error
	// Apply deforms the candidate geometry.
	Apply(g *Geometry) error
	// Parameters returns the operation's inputs for history records.
	Parameters() map[string]float64
}

// LayerGeom is one layer of a candidate Geometry. Vertices is the
// mutable buffer operations deform; Original is the immutable
// construction snapshot sharing Topology with it.
type LayerGeom struct {
	Material          Material
	Thickness         float64
	ZPosition         float64
	OriginalThickness float64
	OriginalZPosition float64
	Vertices          []r3.Vec
	Original          []r3.Vec
	Topology          [][3]int
}

// Geometry is the candidate state an operation transforms. It starts as
// a copy of the billet's construction snapshot, has the billet's prior
// operations replayed onto it, and replaces the billet's state only
// after validation passes.
type Geometry struct {
	Width  float64
	Length float64
	// Area is the bookkeeping cross-section in the x-z plane.
	// Operations that reshape the profile must keep Area*Length equal
	// to the construction volume.
	Area   float64
	Forged bool
	// Live is true only while the newly requested operation runs, not
	// during history replay. Progress callbacks fire only when Live.
	Live bool

	OriginalWidth  float64
	OriginalLength float64
	OriginalHeight float64

	Layers []LayerGeom
}

// Height returns the candidate stack height.
func (g *Geometry) Height() float64 {
	var h float64
	for i := range g.Layers {
		h += g.Layers[i].Thickness
	}
	return h
}

// OriginalVolume returns the conserved construction volume.
func (g *Geometry) OriginalVolume() float64 {
	return g.OriginalWidth * g.OriginalLength * g.OriginalHeight
}

// newGeometry builds a fresh candidate from the construction snapshot.
func (b *Billet) newGeometry() *Geometry {
	g := &Geometry{
		Width:          b.origWidth,
		Length:         b.origLength,
		Area:           b.origWidth * b.origHeight,
		OriginalWidth:  b.origWidth,
		OriginalLength: b.origLength,
		OriginalHeight: b.origHeight,
		Layers:         make([]LayerGeom, len(b.layers)),
	}
	for i, l := range b.layers {
		vertices := make([]r3.Vec, len(l.original))
		copy(vertices, l.original)
		g.Layers[i] = LayerGeom{
			Material:          l.material,
			Thickness:         l.origThickness,
			ZPosition:         l.origZPos,
			OriginalThickness: l.origThickness,
			OriginalZPosition: l.origZPos,
			Vertices:          vertices,
			Original:          l.original,
			Topology:          l.topology,
		}
	}
	return g
}

// Apply validates op, rebuilds the billet's geometry with op appended
// to its history and commits the result. On any error the billet is
// left exactly as it was.
func (b *Billet) Apply(op Operation) error {
	if err := op.Validate(b); err != nil {
		return err
	}
	g := b.newGeometry()
	for _, prev := range b.ops {
		if err := prev.Apply(g); err != nil {
			return &NumericalError{Op: op.Name(), Err: fmt.Errorf("replaying %s: %w", prev.Name(), err)}
		}
	}
	pre := snapshotVertices(g)
	g.Live = true
	start := time.Now()
	err := op.Apply(g)
	elapsed := time.Since(start)
	g.Live = false
	if err != nil {
		if _, ok := err.(*ValidationError); ok {
			return err
		}
		return &NumericalError{Op: op.Name(), Err: err}
	}
	if err := b.checkGeometry(op.Name(), g); err != nil {
		return err
	}
	billetStats, layerStats := displacementStats(pre, g)
	b.commit(op, g, elapsed, billetStats, layerStats)
	return nil
}

// zposTol bounds drift between a layer's recorded z position and the
// cumulative thickness of the layers below it.
const zposTol = 1e-6

// checkGeometry rejects a candidate whose meshes or bookkeeping went
// bad. Rejection leaves the billet untouched.
func (b *Billet) checkGeometry(opName string, g *Geometry) error {
	fail := func(err error) error { return &NumericalError{Op: opName, Err: err} }
	if !finitePositive(g.Width) || !finitePositive(g.Length) || !finitePositive(g.Area) {
		return fail(fmt.Errorf("bookkeeping dimensions %gx%g area %g are not positive finite", g.Width, g.Length, g.Area))
	}
	z := 0.0
	for i := range g.Layers {
		l := &g.Layers[i]
		if !finitePositive(l.Thickness) {
			return fail(fmt.Errorf("layer %d thickness %g is not positive finite", i, l.Thickness))
		}
		if math.Abs(l.ZPosition-z) > zposTol {
			return fail(fmt.Errorf("layer %d z position %g drifted from stack position %g", i, l.ZPosition, z))
		}
		z += l.Thickness
		if err := mesh.Validate(l.Vertices, l.Topology, 0); err != nil {
			return fail(fmt.Errorf("layer %d mesh: %w", i, err))
		}
	}
	v0 := g.OriginalVolume()
	v := g.Area * g.Length
	if math.Abs(v-v0) > VolumeTol*v0 {
		return fail(fmt.Errorf("volume %g drifted beyond %g tolerance of construction volume %g", v, VolumeTol, v0))
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// commit publishes a validated candidate. Layer vertex buffers are
// swapped wholesale so readers holding the previous buffers keep a
// consistent view.
func (b *Billet) commit(op Operation, g *Geometry, elapsed time.Duration, billetStats map[string]float64, layerStats []map[string]float64) {
	now := time.Now().UTC()
	b.width = g.Width
	b.length = g.Length
	b.area = g.Area
	b.forged = g.Forged
	for i, l := range b.layers {
		cand := &g.Layers[i]
		l.vertices = cand.Vertices
		l.thickness = cand.Thickness
		l.zpos = cand.ZPosition
		if layerStats[i]["max_displacement"] > 0 {
			l.history = append(l.history, Record{
				Operation:  op.Name(),
				Timestamp:  now,
				Duration:   elapsed.Seconds(),
				Parameters: op.Parameters(),
				Stats:      layerStats[i],
			})
		}
	}
	b.ops = append(b.ops, op)
	b.history = append(b.history, Record{
		Operation:  op.Name(),
		Timestamp:  now,
		Duration:   elapsed.Seconds(),
		Parameters: op.Parameters(),
		Stats:      billetStats,
	})
}

func snapshotVertices(g *Geometry) [][]r3.Vec {
	pre := make([][]r3.Vec, len(g.Layers))
	for i := range g.Layers {
		pre[i] = make([]r3.Vec, len(g.Layers[i].Vertices))
		copy(pre[i], g.Layers[i].Vertices)
	}
	return pre
}

// displacementStats measures how far the requested operation moved
// vertices relative to the replayed pre-state.
func displacementStats(pre [][]r3.Vec, g *Geometry) (billet map[string]float64, layers []map[string]float64) {
	var all []float64
	var maxDisp, maxVert, maxHoriz float64
	layers = make([]map[string]float64, len(g.Layers))
	for i := range g.Layers {
		curr := g.Layers[i].Vertices
		norms := make([]float64, len(curr))
		var lMax, lVert, lHoriz float64
		for j := range curr {
			d := r3.Sub(curr[j], pre[i][j])
			norms[j] = r3.Norm(d)
			if norms[j] > lMax {
				lMax = norms[j]
			}
			if dz := math.Abs(d.Z); dz > lVert {
				lVert = dz
			}
			if dh := math.Hypot(d.X, d.Y); dh > lHoriz {
				lHoriz = dh
			}
		}
		all = append(all, norms...)
		layers[i] = map[string]float64{
			"max_displacement":  lMax,
			"mean_displacement": stat.Mean(norms, nil),
			"max_vertical":      lVert,
			"max_horizontal":    lHoriz,
		}
		if lMax > maxDisp {
			maxDisp = lMax
		}
		if lVert > maxVert {
			maxVert = lVert
		}
		if lHoriz > maxHoriz {
			maxHoriz = lHoriz
		}
	}
	billet = map[string]float64{
		"max_displacement":  maxDisp,
		"mean_displacement": stat.Mean(all, nil),
		"max_vertical":      maxVert,
		"max_horizontal":    maxHoriz,
	}
	return billet, layers
}
