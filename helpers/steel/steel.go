// Package steel is a reference registry of steels commonly welded into
// pattern billets. The engine itself only consumes numeric material
// constants; this package resolves the names smiths actually use into
// those constants.
package steel

import (
	"image/color"
	"sort"

	"github.com/soypat/damast"
)

var (
	// Steel1084 is a eutectoid carbon steel, the classic dark layer of
	// pattern welded blades. Etches near black in ferric chloride.
	Steel1084 = damast.Material{Name: "1084", Modulus: 205, Yield: 425, Etch: color.NRGBA{R: 30, G: 30, B: 34, A: 255}}
	// Steel15N20 carries around 2% nickel and resists etching, giving
	// the bright layer against 1084.
	Steel15N20 = damast.Material{Name: "15N20", Modulus: 210, Yield: 470, Etch: color.NRGBA{R: 220, G: 222, B: 228, A: 255}}
	// Steel52100 is a chromium bearing steel popular for its fine
	// carbide structure. Etches dark.
	Steel52100 = damast.Material{Name: "52100", Modulus: 210, Yield: 505, Etch: color.NRGBA{R: 38, G: 36, B: 40, A: 255}}
	// O1 is an oil hardening tool steel. Etches dark brown-gray.
	O1 = damast.Material{Name: "O1", Modulus: 208, Yield: 490, Etch: color.NRGBA{R: 45, G: 42, B: 40, A: 255}}
	// A2 is an air hardening tool steel of intermediate etch response.
	A2 = damast.Material{Name: "A2", Modulus: 203, Yield: 515, Etch: color.NRGBA{R: 120, G: 122, B: 126, A: 255}}
	// D2 is high chromium and only darkens slightly; often called
	// semi-stainless.
	D2 = damast.Material{Name: "D2", Modulus: 207, Yield: 550, Etch: color.NRGBA{R: 170, G: 172, B: 176, A: 255}}
	// CruWear is a tough wear resistant tool steel. Annealed yield is
	// approximate, spec sheets quote hardened values only.
	CruWear = damast.Material{Name: "CruWear", Modulus: 204, Yield: 560, Etch: color.NRGBA{R: 140, G: 142, B: 148, A: 255}}
	// MagnaCut is a recent powder stainless that barely etches.
	MagnaCut = damast.Material{Name: "MagnaCut", Modulus: 200, Yield: 580, Etch: color.NRGBA{R: 200, G: 202, B: 208, A: 255}}
)

var registry = map[string]damast.Material{
	Steel1084.Name:  Steel1084,
	Steel15N20.Name: Steel15N20,
	Steel52100.Name: Steel52100,
	O1.Name:         O1,
	A2.Name:         A2,
	D2.Name:         D2,
	CruWear.Name:    CruWear,
	MagnaCut.Name:   MagnaCut,
}

// Lookup resolves a steel by its registered name.
func Lookup(name string) (damast.Material, bool) {
	m, ok := registry[name]
	return m, ok
}

// All returns every registered steel sorted by name.
func All() []damast.Material {
	steels := make([]damast.Material, 0, len(registry))
	for _, m := range registry {
		steels = append(steels, m)
	}
	sort.Slice(steels, func(i, j int) bool { return steels[i].Name < steels[j].Name })
	return steels
}

// Classic returns the 1084 and 15N20 pairing most smiths start with:
// maximum etch contrast and forgiving weld temperatures.
func Classic() (dark, bright damast.Material) {
	return Steel1084, Steel15N20
}
