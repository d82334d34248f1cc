package forge

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/damast"
)

// defaultForce is the nominal press force in newtons used for the
// stress/strain refinement when the caller does not override it.
const defaultForce = 2e6

// centerTol is the half width of the centerline band whose vertices
// move with the +x half of a split.
const centerTol = 1e-3

// Wedge drives a wedge along the billet's length axis, dropping
// material near the centerline and flaring the two halves outward.
// Repeated on a twisted billet this produces the feather pattern's
// central vein.
type Wedge struct {
	// Depth is the wedge penetration in mm.
	Depth float64
	// Angle is the wedge half angle in degrees, below 90.
	Angle float64
	// Gap is the extra lateral split distance in mm.
	Gap float64
	// Force is the nominal press force in newtons. Stiffer layers
	// strain less under it and keep more of their shape.
	Force float64
}

// NewWedge returns a wedge split with the default press force.
func NewWedge(depth, angle, gap float64) *Wedge {
	return &Wedge{Depth: depth, Angle: angle, Gap: gap, Force: defaultForce}
}

func (w *Wedge) Name() string { return "wedge" }

func (w *Wedge) Validate(b *damast.Billet) error {
	if math.Abs(w.Angle) >= 90 {
		return damast.NewValidationError(damast.CodeBadAngle, "wedge angle %g degrees must be within (-90, 90)", w.Angle)
	}
	if w.Force <= 0 {
		return damast.NewValidationError(damast.CodeBadDimension, "wedge force %g must be positive", w.Force)
	}
	return nil
}

func (w *Wedge) Parameters() map[string]float64 {
	return map[string]float64{
		"depth": w.Depth,
		"angle": w.Angle,
		"gap":   w.Gap,
		"force": w.Force,
	}
}

// Apply displaces the current geometry. Intensity falls off as a
// Gaussian of distance from the centerline with sigma at a third of
// the billet width, and grows with layer height so the bottom layer
// stays anchored to the anvil.
func (w *Wedge) Apply(g *damast.Geometry) error {
	width := g.Width
	height := g.Height()
	sigma := width / 3
	spread := w.Gap + w.Depth*math.Tan(w.Angle*math.Pi/180)

	// Softer layers take more of the deformation. Strains are
	// normalized against the softest layer so displacements never
	// exceed the nominal wedge parameters.
	stress := w.Force / (width * g.Length)
	strains := make([]float64, len(g.Layers))
	var maxStrain float64
	for i := range g.Layers {
		strains[i] = g.Layers[i].Material.Strain(stress)
		if strains[i] > maxStrain {
			maxStrain = strains[i]
		}
	}

	for i := range g.Layers {
		l := &g.Layers[i]
		factor := l.ZPosition / height * strains[i] / maxStrain
		if factor == 0 {
			continue
		}
		for j, v := range l.Vertices {
			intensity := math.Exp(-v.X * v.X / (2 * sigma * sigma))
			drop := w.Depth * intensity * factor
			push := spread * intensity * factor
			if v.X < -centerTol {
				push = -push
			}
			l.Vertices[j] = r3.Vec{X: v.X + push, Y: v.Y, Z: v.Z - drop}
		}
	}
	return nil
}
