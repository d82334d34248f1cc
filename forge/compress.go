package forge

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/damast"
	"github.com/soypat/damast/internal/d3"
)

// Compress squashes the billet vertically by a factor in (0,1],
// spreading it laterally so volume is conserved. Unlike forging it
// composes with whatever deformation the billet already carries.
type Compress struct {
	// Factor is the height scale, 1 for no change.
	Factor float64
}

// NewCompress returns a compression to factor of the current height.
func NewCompress(factor float64) *Compress {
	return &Compress{Factor: factor}
}

func (c *Compress) Name() string { return "compress" }

func (c *Compress) Validate(b *damast.Billet) error {
	if c.Factor <= 0 || c.Factor > 1 {
		return damast.NewValidationError(damast.CodeBadFactor, "compression factor %g must be in (0, 1]", c.Factor)
	}
	return nil
}

func (c *Compress) Parameters() map[string]float64 {
	return map[string]float64{"factor": c.Factor}
}

// Apply scales heights by Factor and spreads width and length by
// 1/sqrt(Factor). The lateral spread scales any cross section's area
// by exactly sqrt(Factor), so area*length stays put.
func (c *Compress) Apply(g *damast.Geometry) error {
	f := c.Factor
	lat := 1 / math.Sqrt(f)
	// The billet sits on z=0 centered in x and y, so the squash is a
	// pure scale about the origin.
	squash := d3.Transform{}.Scale(r3.Vec{}, r3.Vec{X: lat, Y: lat, Z: f})
	for i := range g.Layers {
		l := &g.Layers[i]
		for j, v := range l.Vertices {
			l.Vertices[j] = squash.Transform(v)
		}
		l.Thickness *= f
		l.ZPosition *= f
	}
	g.Width *= lat
	g.Length *= lat
	g.Area *= math.Sqrt(f)
	return nil
}
