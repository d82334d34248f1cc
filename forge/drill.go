package forge

import (
	"math"

	"github.com/soypat/damast"
)

// axisTol is the radial distance below which a vertex sits on the
// drill axis and has no defined outward direction.
const axisTol = 1e-3

// Drill pushes material radially away from a vertical bore axis,
// approximating the flow around a drilled hole. Topology never
// changes; the mesh bulges rather than gaining a real bore.
type Drill struct {
	// X, Y position the bore axis in the width/length plane.
	X float64
	Y float64
	// Radius is the bore radius in mm. Zero drills nothing.
	Radius float64
}

// NewDrill returns a drill of the given radius centered at (x, y).
func NewDrill(x, y, radius float64) *Drill {
	return &Drill{X: x, Y: y, Radius: radius}
}

func (d *Drill) Name() string { return "drill" }

func (d *Drill) Validate(b *damast.Billet) error {
	if d.Radius < 0 {
		return damast.NewValidationError(damast.CodeBadRadius, "drill radius %g must not be negative", d.Radius)
	}
	return nil
}

func (d *Drill) Parameters() map[string]float64 {
	return map[string]float64{
		"x":      d.X,
		"y":      d.Y,
		"radius": d.Radius,
	}
}

// Apply displaces vertices within the bore radius outward by 1.5
// radii, and vertices within twice the radius by a Gaussian falloff
// push. Farther vertices are untouched.
func (d *Drill) Apply(g *damast.Geometry) error {
	r := d.Radius
	if r == 0 {
		return nil
	}
	for i := range g.Layers {
		l := &g.Layers[i]
		for j, v := range l.Vertices {
			dx := v.X - d.X
			dy := v.Y - d.Y
			dist := math.Hypot(dx, dy)
			if dist >= 2*r || dist < axisTol {
				continue
			}
			push := 1.5 * r
			if dist >= r {
				push = 0.3 * r * math.Exp(-(dist-r)*(dist-r)/(2*r*r))
			}
			v.X += dx / dist * push
			v.Y += dy / dist * push
			l.Vertices[j] = v
		}
	}
	return nil
}
