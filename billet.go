// Package damast implements mesh based deformation of layered steel
// billets for pattern-welded ("damascus") forging simulation. A billet
// is a stack of material layers, each a closed triangle mesh. Forging
// operations deform the meshes while conserving total volume; the
// resulting internal layer boundaries produce the pattern revealed by
// cross-sectioning or etching.
package damast

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/damast/mesh"
)

// VolumeTol is the maximum relative drift allowed between the billet's
// bookkeeping volume and its construction volume after any operation.
// Drift beyond VolumeTol aborts the operation with a NumericalError.
const VolumeTol = 1e-3

// LayerSpec declares one layer of a billet under construction,
// bottom up.
type LayerSpec struct {
	Material  Material
	Thickness float64
}

// Resolution sets the mesh density of a billet in grid segments per
// axis. Height is the segment count through each individual layer,
// not through the whole stack.
type Resolution struct {
	Width  int
	Length int
	Height int
}

// DefaultResolution is used when Config.Resolution is left zero.
var DefaultResolution = Resolution{Width: 16, Length: 32, Height: 2}

func (r Resolution) validate() error {
	if r.Width < 1 || r.Length < 1 || r.Height < 1 {
		return NewValidationError(CodeBadResolution, "resolution %dx%dx%d must be at least 1 segment per axis", r.Width, r.Length, r.Height)
	}
	return nil
}

// Config declares a billet: outer dimensions in millimeters and the
// layer stack from bottom to top.
type Config struct {
	// Width is the billet extent along x, centered on the origin.
	Width float64
	// Length is the billet extent along y, centered on the origin.
	Length float64
	// Layers is the material stack, index 0 at z=0.
	Layers []LayerSpec
	// Resolution is the mesh density. The zero value selects
	// DefaultResolution.
	Resolution Resolution
}

// AlternatingStack returns a LayerSpec stack of count layers of uniform
// thickness alternating between materials a and b, starting with a at
// the bottom. It is the typical starting point of a pattern-welded
// billet.
func AlternatingStack(a, b Material, count int, thickness float64) []LayerSpec {
	stack := make([]LayerSpec, count)
	for i := range stack {
		stack[i] = LayerSpec{Material: a, Thickness: thickness}
		if i%2 == 1 {
			stack[i].Material = b
		}
	}
	return stack
}

// Billet is a layered stack of steel meshes and the ordered history of
// operations applied to it. All mutation goes through Apply, which
// either commits a fully validated new geometry or leaves the billet
// untouched.
type Billet struct {
	width  float64
	length float64
	// area is the bookkeeping cross-section in the x-z plane. The
	// billet's conserved volume is area*length.
	area   float64
	forged bool
	layers []*Layer
	// construction snapshot. Operations recompute geometry from these,
	// never from previous results, so repeated histories reproduce
	// vertex positions exactly.
	origWidth  float64
	origLength float64
	origHeight float64
	resolution Resolution
	ops        []Operation
	history    []Record
}

// New meshes a billet from cfg. Each layer becomes an independent
// closed box mesh spanning the full width and length at its own height
// band.
func New(cfg Config) (*Billet, error) {
	if cfg.Width <= 0 || cfg.Length <= 0 {
		return nil, NewValidationError(CodeBadDimension, "billet dimensions %gx%g must be positive", cfg.Width, cfg.Length)
	}
	if len(cfg.Layers) == 0 {
		return nil, NewValidationError(CodeEmptyStack, "billet needs at least one layer")
	}
	res := cfg.Resolution
	if res == (Resolution{}) {
		res = DefaultResolution
	}
	if err := res.validate(); err != nil {
		return nil, err
	}
	b := &Billet{
		width:      cfg.Width,
		length:     cfg.Length,
		origWidth:  cfg.Width,
		origLength: cfg.Length,
		resolution: res,
		layers:     make([]*Layer, len(cfg.Layers)),
	}
	z := 0.0
	for i, spec := range cfg.Layers {
		if spec.Thickness <= 0 {
			return nil, NewValidationError(CodeBadThickness, "layer %d thickness %g must be positive", i, spec.Thickness)
		}
		if err := spec.Material.validate(); err != nil {
			return nil, err
		}
		bounds := r3.Box{
			Min: r3.Vec{X: -cfg.Width / 2, Y: -cfg.Length / 2, Z: z},
			Max: r3.Vec{X: cfg.Width / 2, Y: cfg.Length / 2, Z: z + spec.Thickness},
		}
		vertices, triangles, err := mesh.Box(bounds, res.Width, res.Length, res.Height)
		if err != nil {
			return nil, err
		}
		original := make([]r3.Vec, len(vertices))
		copy(original, vertices)
		b.layers[i] = &Layer{
			index:         i,
			material:      spec.Material,
			thickness:     spec.Thickness,
			zpos:          z,
			origThickness: spec.Thickness,
			origZPos:      z,
			vertices:      vertices,
			original:      original,
			topology:      triangles,
		}
		z += spec.Thickness
	}
	b.origHeight = z
	b.area = cfg.Width * z
	return b, nil
}

// Width returns the billet's current bookkeeping width.
func (b *Billet) Width() float64 { return b.width }

// Length returns the billet's current bookkeeping length.
func (b *Billet) Length() float64 { return b.length }

// Height returns the current stack height, the sum of layer
// thicknesses.
func (b *Billet) Height() float64 {
	var h float64
	for _, l := range b.layers {
		h += l.thickness
	}
	return h
}

// Volume returns the billet's bookkeeping volume. It stays within
// VolumeTol of the construction volume for the life of the billet.
func (b *Billet) Volume() float64 { return b.area * b.length }

// Forged reports whether a forging operation has shaped the billet.
// Some operations require a forged billet.
func (b *Billet) Forged() bool { return b.forged }

// Layers returns the billet's layers, bottom first. The slice is shared;
// callers must not modify it.
func (b *Billet) Layers() []*Layer { return b.layers }

// History returns the billet level record of every applied operation.
func (b *Billet) History() []Record { return b.history }

// Resolution returns the mesh density the billet was constructed with.
func (b *Billet) Resolution() Resolution { return b.resolution }
