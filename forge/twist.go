package forge

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/damast"
)

// Twist rotates the billet about its length axis, with the rotation
// angle growing linearly from zero at one end to Angle at the other.
// Twisting requires a billet already forged to a regular cross
// section; twisting a raw stack tears the welds.
type Twist struct {
	// Angle is the total twist in degrees at the far end, negative for
	// the opposite handedness. Sequential twists about the same axis
	// add, so twisting by -Angle undoes a twist by Angle.
	Angle float64
}

// NewTwist returns a twist through angle degrees.
func NewTwist(angle float64) *Twist {
	return &Twist{Angle: angle}
}

func (t *Twist) Name() string { return "twist" }

func (t *Twist) Validate(b *damast.Billet) error {
	if !b.Forged() {
		return damast.NewValidationError(damast.CodeNotForged, "twist requires a billet forged to a square or octagon cross section")
	}
	return nil
}

func (t *Twist) Parameters() map[string]float64 {
	return map[string]float64{"angle": t.Angle}
}

// Apply rotates every vertex about the axis x=0, z=height/2 by an
// angle proportional to its position along the length.
func (t *Twist) Apply(g *damast.Geometry) error {
	length := g.Length
	cz := g.Height() / 2
	rad := t.Angle * math.Pi / 180
	for i := range g.Layers {
		l := &g.Layers[i]
		for j, v := range l.Vertices {
			a := rad * (v.Y + length/2) / length
			sin, cos := math.Sincos(a)
			x := v.X
			z := v.Z - cz
			l.Vertices[j] = r3.Vec{
				X: x*cos - z*sin,
				Y: v.Y,
				Z: x*sin + z*cos + cz,
			}
		}
	}
	return nil
}
