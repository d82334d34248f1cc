// Package forge implements the deformation operations applied to a
// damast.Billet: progressive forging to a square or octagon cross
// section, wedge splitting, twisting, compression and drilling.
//
// Every operation derives vertex positions from the billet's
// construction snapshot and the recorded parameter history, never from
// intermediate results, so identical histories reproduce identical
// geometry.
package forge

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/damast"
)

// Forge progressively deforms the billet so its cross section
// approaches a target square or octagon of side Size over Heats
// discrete heating steps. Total volume is conserved by stretching the
// billet along its length as the cross section shrinks.
type Forge struct {
	// Size is the target cross section side in mm.
	Size float64
	// Heats is the number of progressive forging steps.
	Heats int
	// Chamfer is the corner cut fraction of Size for octagonal
	// forging, zero for square.
	Chamfer float64
	// OnHeat, if non-nil, is called after each completed heat of a
	// live forge with the 1-based heat index and the total heat
	// count. History replays never fire it.
	OnHeat func(heat, total int)

	octagon bool
}

// Square returns an operation that forges the billet to a square cross
// section of side size over heats steps.
func Square(size float64, heats int) *Forge {
	return &Forge{Size: size, Heats: heats}
}

// Octagon returns an operation that forges the billet to an octagonal
// cross section: a square of side size with its four corners cut back
// by chamfer*size. Chamfer must be below 0.5 or the cuts meet.
func Octagon(size float64, heats int, chamfer float64) *Forge {
	return &Forge{Size: size, Heats: heats, Chamfer: chamfer, octagon: true}
}

func (f *Forge) Name() string {
	if f.octagon {
		return "forge_octagon"
	}
	return "forge_square"
}

func (f *Forge) Validate(b *damast.Billet) error {
	if f.Size <= 0 {
		return damast.NewValidationError(damast.CodeBadTargetSize, "forge target size %g must be positive", f.Size)
	}
	if f.Heats < 1 {
		return damast.NewValidationError(damast.CodeBadHeatCount, "forge heat count %d must be at least 1", f.Heats)
	}
	if f.octagon && (f.Chamfer < 0 || f.Chamfer >= 0.5) {
		return damast.NewValidationError(damast.CodeBadChamfer, "octagon chamfer %g must be in [0, 0.5)", f.Chamfer)
	}
	return nil
}

func (f *Forge) Parameters() map[string]float64 {
	p := map[string]float64{
		"target_size": f.Size,
		"heats":       float64(f.Heats),
	}
	if f.octagon {
		p["chamfer"] = f.Chamfer
	}
	return p
}

// Apply runs every heat against the original construction geometry.
// Heat h scales all originals to the dimensions interpolated at
// progress h/Heats, so the final heat alone determines the result and
// intermediate heats exist for progress observation.
func (f *Forge) Apply(g *damast.Geometry) error {
	w0 := g.OriginalWidth
	h0 := g.OriginalHeight
	l0 := g.OriginalLength
	v0 := g.OriginalVolume()
	for h := 1; h <= f.Heats; h++ {
		progress := float64(h) / float64(f.Heats)
		width := w0 + (f.Size-w0)*progress
		height := h0 + (f.Size-h0)*progress
		// Chamfer legs grow with progress so early heats stay
		// near-rectangular.
		legs := 0.0
		if f.octagon {
			legs = f.Chamfer * progress * f.Size
		}
		area := width*height - 2*legs*legs
		length := v0 / area
		sx := width / w0
		sy := length / l0
		sz := height / h0
		for i := range g.Layers {
			l := &g.Layers[i]
			for j, o := range l.Original {
				v := r3.Vec{X: o.X * sx, Y: o.Y * sy, Z: o.Z * sz}
				if f.octagon {
					v = chamferCut(v, width, height, legs)
				}
				l.Vertices[j] = v
			}
			l.Thickness = l.OriginalThickness * sz
			l.ZPosition = l.OriginalZPosition * sz
		}
		g.Width = width
		g.Length = length
		g.Area = area
		if g.Live && f.OnHeat != nil {
			f.OnHeat(h, f.Heats)
		}
	}
	g.Forged = true
	return nil
}

// chamferCut projects vertices lying beyond a corner cut plane onto
// it. The cut runs at 45 degrees across each corner of the width by
// height profile, legs long on both faces, centered on z=height/2.
func chamferCut(v r3.Vec, width, height, legs float64) r3.Vec {
	if legs <= 0 {
		return v
	}
	x := v.X
	z := v.Z - height/2
	excess := math.Abs(x) + math.Abs(z) - (width/2 + height/2 - legs)
	if excess <= 0 {
		return v
	}
	x -= math.Copysign(excess/2, x)
	z -= math.Copysign(excess/2, z)
	return r3.Vec{X: x, Y: v.Y, Z: z + height/2}
}
