package damast_test

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/damast"
	"github.com/soypat/damast/helpers/steel"
	"github.com/soypat/damast/mesh"
)

func mustBillet(t testing.TB, cfg damast.Config) *damast.Billet {
	t.Helper()
	b, err := damast.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// classicConfig is the 50x100 mm, 30 layer billet used throughout the
// package tests.
func classicConfig() damast.Config {
	dark, bright := steel.Classic()
	return damast.Config{
		Width:  50,
		Length: 100,
		Layers: damast.AlternatingStack(dark, bright, 30, 0.8),
	}
}

func TestNewBillet(t *testing.T) {
	b := mustBillet(t, classicConfig())
	if got := b.Width(); got != 50 {
		t.Errorf("width %g, want 50", got)
	}
	if got := b.Length(); got != 100 {
		t.Errorf("length %g, want 100", got)
	}
	if got := b.Height(); math.Abs(got-24) > 1e-12 {
		t.Errorf("height %g, want 24", got)
	}
	if got := b.Volume(); math.Abs(got-120000) > 1e-6 {
		t.Errorf("volume %g, want 120000", got)
	}
	if b.Forged() {
		t.Error("fresh billet reports forged")
	}
	if got := len(b.History()); got != 0 {
		t.Errorf("fresh billet has %d history records", got)
	}
	if got := b.Resolution(); got != damast.DefaultResolution {
		t.Errorf("zero config resolution resolved to %+v, want default", got)
	}
}

func TestNewBilletLayers(t *testing.T) {
	b := mustBillet(t, classicConfig())
	layers := b.Layers()
	if len(layers) != 30 {
		t.Fatalf("got %d layers, want 30", len(layers))
	}
	z := 0.0
	for i, l := range layers {
		if l.Index() != i {
			t.Errorf("layer %d reports index %d", i, l.Index())
		}
		want := "1084"
		if i%2 == 1 {
			want = "15N20"
		}
		if got := l.Material().Name; got != want {
			t.Errorf("layer %d material %s, want %s", i, got, want)
		}
		if math.Abs(l.ZPosition()-z) > 1e-12 {
			t.Errorf("layer %d z position %g, want %g", i, l.ZPosition(), z)
		}
		if l.Thickness() != 0.8 {
			t.Errorf("layer %d thickness %g, want 0.8", i, l.Thickness())
		}
		if l.ZPosition() != l.OriginalZPosition() || l.Thickness() != l.OriginalThickness() {
			t.Errorf("layer %d original snapshot differs from creation state", i)
		}
		if len(l.Vertices()) != len(l.OriginalVertices()) {
			t.Errorf("layer %d vertex buffer lengths differ", i)
		}
		if err := mesh.Validate(l.Vertices(), l.Topology(), 0); err != nil {
			t.Errorf("layer %d: %v", i, err)
		}
		// Each layer is a closed box of width x length x thickness.
		if v := l.Volume(); math.Abs(v-50*100*0.8) > 1e-6 {
			t.Errorf("layer %d mesh volume %g, want 4000", i, v)
		}
		z += l.Thickness()
	}
}

func TestNewBilletValidation(t *testing.T) {
	dark, bright := steel.Classic()
	stack := damast.AlternatingStack(dark, bright, 4, 1)
	for _, tc := range []struct {
		name string
		cfg  damast.Config
		code string
	}{
		{
			name: "zero_width",
			cfg:  damast.Config{Length: 100, Layers: stack},
			code: damast.CodeBadDimension,
		},
		{
			name: "negative_length",
			cfg:  damast.Config{Width: 50, Length: -1, Layers: stack},
			code: damast.CodeBadDimension,
		},
		{
			name: "no_layers",
			cfg:  damast.Config{Width: 50, Length: 100},
			code: damast.CodeEmptyStack,
		},
		{
			name: "zero_thickness",
			cfg: damast.Config{Width: 50, Length: 100, Layers: []damast.LayerSpec{
				{Material: dark, Thickness: 0},
			}},
			code: damast.CodeBadThickness,
		},
		{
			name: "unnamed_material",
			cfg: damast.Config{Width: 50, Length: 100, Layers: []damast.LayerSpec{
				{Material: damast.Material{Modulus: 200, Yield: 400}, Thickness: 1},
			}},
			code: damast.CodeBadMaterial,
		},
		{
			name: "bad_resolution",
			cfg: damast.Config{Width: 50, Length: 100, Layers: stack,
				Resolution: damast.Resolution{Width: 4, Length: 0, Height: 1}},
			code: damast.CodeBadResolution,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := damast.New(tc.cfg)
			var verr *damast.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("got %v, want ValidationError", err)
			}
			if verr.Code != tc.code {
				t.Errorf("got code %s, want %s", verr.Code, tc.code)
			}
		})
	}
}

func TestAlternatingStack(t *testing.T) {
	dark, bright := steel.Classic()
	stack := damast.AlternatingStack(dark, bright, 5, 0.8)
	if len(stack) != 5 {
		t.Fatalf("got %d specs, want 5", len(stack))
	}
	for i, spec := range stack {
		want := dark.Name
		if i%2 == 1 {
			want = bright.Name
		}
		if spec.Material.Name != want {
			t.Errorf("spec %d material %s, want %s", i, spec.Material.Name, want)
		}
		if spec.Thickness != 0.8 {
			t.Errorf("spec %d thickness %g, want 0.8", i, spec.Thickness)
		}
	}
}

func TestStats(t *testing.T) {
	b := mustBillet(t, classicConfig())
	s := b.Stats()
	if s.Width != 50 || s.Length != 100 {
		t.Errorf("stats footprint %gx%g, want 50x100", s.Width, s.Length)
	}
	if math.Abs(s.Height-24) > 1e-12 {
		t.Errorf("stats height %g, want 24", s.Height)
	}
	if s.Forged {
		t.Error("stats report forged before forging")
	}
	if len(s.Layers) != 30 {
		t.Fatalf("stats carry %d layers, want 30", len(s.Layers))
	}
	first := s.Layers[0]
	if first.LayerIndex != 0 || first.Material != "1084" {
		t.Errorf("bottom layer stats %+v", first)
	}
	if first.DeformationCount != 0 {
		t.Errorf("fresh layer deformation count %d", first.DeformationCount)
	}
	if first.BoundsX != [2]float64{-25, 25} {
		t.Errorf("bounds x %v, want [-25 25]", first.BoundsX)
	}
	if first.BoundsZ != [2]float64{0, 0.8} {
		t.Errorf("bounds z %v, want [0 0.8]", first.BoundsZ)
	}
	if first.VertexCount == 0 || first.TriangleCount == 0 {
		t.Error("layer stats missing mesh counts")
	}
}

func TestMaterialStrain(t *testing.T) {
	m := damast.Material{Name: "test", Modulus: 200, Yield: 400}
	if got, want := m.Strain(200), 200/(200*1e3); math.Abs(got-want) > 1e-15 {
		t.Errorf("elastic strain %g, want %g", got, want)
	}
	// Stress beyond yield is clipped.
	if got, want := m.Strain(1000), 400/(200*1e3); math.Abs(got-want) > 1e-15 {
		t.Errorf("clipped strain %g, want %g", got, want)
	}
}

func TestValidationErrorFormat(t *testing.T) {
	err := damast.NewValidationError(damast.CodeBadFactor, "factor %g out of range", 1.5)
	const want = "damast: factor 1.5 out of range (bad_factor)"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
