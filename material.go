package damast

import "image/color"

// Material is the immutable identity of a layer's steel. The engine only
// consumes the numeric constants; resolving a named alloy to its constants
// is the caller's concern (see helpers/steel).
type Material struct {
	// Name identifies the material in histories and exports.
	Name string
	// Modulus is the Young's modulus in GPa. Stiffer layers deform
	// less under the same nominal stress.
	Modulus float64
	// Yield is the yield strength in MPa. Stress beyond yield is
	// clipped to model plastic flow.
	Yield float64
	// Etch is the color the material shows after acid etching,
	// used for cross-section views and mesh exports.
	Etch color.NRGBA
}

func (m Material) validate() error {
	if m.Name == "" {
		return NewValidationError(CodeBadMaterial, "material name is empty")
	}
	if m.Modulus <= 0 {
		return NewValidationError(CodeBadMaterial, "material %q modulus %g must be positive", m.Name, m.Modulus)
	}
	if m.Yield <= 0 {
		return NewValidationError(CodeBadMaterial, "material %q yield %g must be positive", m.Name, m.Yield)
	}
	return nil
}

// Strain returns the elastic strain under stress sigma (MPa), clipped
// at the material's yield strength.
func (m Material) Strain(sigma float64) float64 {
	if sigma > m.Yield {
		sigma = m.Yield
	}
	return sigma / (m.Modulus * 1e3)
}
