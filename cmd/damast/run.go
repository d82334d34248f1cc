package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/soypat/damast"
	"github.com/soypat/damast/forge"
	"github.com/soypat/damast/helpers/steel"
	"github.com/soypat/damast/render"
	"github.com/soypat/damast/section"
)

var runCmd = &cobra.Command{
	Use:   "run recipe.yaml",
	Short: "Forge a billet end to end from a YAML recipe",
	Long: `Run builds the billet a recipe declares, applies its forging steps in
order and writes the requested outputs. A minimal twisted bar recipe:

    title: twisted bar
    width: 50
    length: 100
    alternating: {dark: "1084", bright: 15N20, count: 30, thickness: 0.8}
    steps:
      - forge: {size: 20, heats: 3}
      - twist: {angle: 360}
    outputs:
      stl: bar.stl
      section: pattern.png

Layers may also be listed one by one under "layers" as
{steel: <name>, thickness: <mm>} pairs. Steel names that read as
numbers, like "1084", need quotes. See "damast steels" for the names
the recipe format understands.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecipe,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// Recipe declares a billet and the ordered operations applied to it.
type Recipe struct {
	Title  string  `yaml:"title"`
	Width  float64 `yaml:"width"`
	Length float64 `yaml:"length"`
	// Resolution overrides the default mesh subdivision.
	Resolution *recipeResolution `yaml:"resolution"`
	// Layers lists the stack bottom up. Alternating generates the
	// classic two steel stack instead; declare one or the other.
	Layers      []recipeLayer      `yaml:"layers"`
	Alternating *recipeAlternating `yaml:"alternating"`
	Steps       []recipeStep       `yaml:"steps"`
	Outputs     recipeOutputs      `yaml:"outputs"`
}

type recipeResolution struct {
	Width  int `yaml:"width"`
	Length int `yaml:"length"`
	Height int `yaml:"height"`
}

type recipeLayer struct {
	Steel     string  `yaml:"steel"`
	Thickness float64 `yaml:"thickness"`
}

type recipeAlternating struct {
	Dark      string  `yaml:"dark"`
	Bright    string  `yaml:"bright"`
	Count     int     `yaml:"count"`
	Thickness float64 `yaml:"thickness"`
}

// recipeStep holds exactly one operation.
type recipeStep struct {
	Forge    *forgeStep    `yaml:"forge"`
	Twist    *twistStep    `yaml:"twist"`
	Wedge    *wedgeStep    `yaml:"wedge"`
	Compress *compressStep `yaml:"compress"`
	Drill    *drillStep    `yaml:"drill"`
}

type forgeStep struct {
	Size  float64 `yaml:"size"`
	Heats int     `yaml:"heats"`
	// Shape is "square" (default) or "octagon".
	Shape   string  `yaml:"shape"`
	Chamfer float64 `yaml:"chamfer"`
}

type twistStep struct {
	Angle float64 `yaml:"angle"`
}

type wedgeStep struct {
	Depth float64 `yaml:"depth"`
	Angle float64 `yaml:"angle"`
	Gap   float64 `yaml:"gap"`
	Force float64 `yaml:"force"`
}

type compressStep struct {
	Factor float64 `yaml:"factor"`
}

type drillStep struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

type recipeOutputs struct {
	STL     string `yaml:"stl"`
	OBJ     string `yaml:"obj"`
	Section string `yaml:"section"`
	// SectionPosition slices along the length axis, default mid-billet.
	SectionPosition   float64 `yaml:"section_position"`
	SectionResolution int     `yaml:"section_resolution"`
	Log               string  `yaml:"log"`
}

func loadRecipe(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var r Recipe
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &r, nil
}

// stack resolves the recipe's steel names into a layer stack.
func (r *Recipe) stack() ([]damast.LayerSpec, error) {
	if r.Alternating != nil && len(r.Layers) > 0 {
		return nil, fmt.Errorf("recipe declares both layers and alternating")
	}
	if r.Alternating != nil {
		a := r.Alternating
		dark, ok := steel.Lookup(a.Dark)
		if !ok {
			return nil, unknownSteel(a.Dark)
		}
		bright, ok := steel.Lookup(a.Bright)
		if !ok {
			return nil, unknownSteel(a.Bright)
		}
		return damast.AlternatingStack(dark, bright, a.Count, a.Thickness), nil
	}
	specs := make([]damast.LayerSpec, len(r.Layers))
	for i, l := range r.Layers {
		m, ok := steel.Lookup(l.Steel)
		if !ok {
			return nil, unknownSteel(l.Steel)
		}
		specs[i] = damast.LayerSpec{Material: m, Thickness: l.Thickness}
	}
	return specs, nil
}

func unknownSteel(name string) error {
	all := steel.All()
	names := make([]string, len(all))
	for i, m := range all {
		names[i] = m.Name
	}
	return fmt.Errorf("unknown steel %q, registry has %s", name, strings.Join(names, ", "))
}

// operation translates one recipe step into an engine operation.
func (s recipeStep) operation() (damast.Operation, error) {
	var ops []damast.Operation
	if s.Forge != nil {
		f := s.Forge
		heats := f.Heats
		if heats == 0 {
			heats = 1
		}
		switch f.Shape {
		case "", "square":
			ops = append(ops, forge.Square(f.Size, heats))
		case "octagon":
			ops = append(ops, forge.Octagon(f.Size, heats, f.Chamfer))
		default:
			return nil, fmt.Errorf("unknown forge shape %q", f.Shape)
		}
	}
	if s.Twist != nil {
		ops = append(ops, forge.NewTwist(s.Twist.Angle))
	}
	if s.Wedge != nil {
		w := forge.NewWedge(s.Wedge.Depth, s.Wedge.Angle, s.Wedge.Gap)
		if s.Wedge.Force != 0 {
			w.Force = s.Wedge.Force
		}
		ops = append(ops, w)
	}
	if s.Compress != nil {
		ops = append(ops, forge.NewCompress(s.Compress.Factor))
	}
	if s.Drill != nil {
		ops = append(ops, forge.NewDrill(s.Drill.X, s.Drill.Y, s.Drill.Radius))
	}
	if len(ops) != 1 {
		return nil, fmt.Errorf("a step needs exactly one of forge, twist, wedge, compress or drill, got %d", len(ops))
	}
	return ops[0], nil
}

func runRecipe(cmd *cobra.Command, args []string) error {
	recipe, err := loadRecipe(args[0])
	if err != nil {
		return err
	}
	stack, err := recipe.stack()
	if err != nil {
		return err
	}
	cfg := damast.Config{Width: recipe.Width, Length: recipe.Length, Layers: stack}
	if res := recipe.Resolution; res != nil {
		cfg.Resolution = damast.Resolution{Width: res.Width, Length: res.Length, Height: res.Height}
	}
	b, err := damast.New(cfg)
	if err != nil {
		return err
	}
	if recipe.Title != "" {
		color.Cyan(recipe.Title)
	}
	log.Printf("billet %gx%g mm, %d layers, %.0f mm3 of steel",
		b.Width(), b.Length(), len(b.Layers()), b.Volume())

	for i, s := range recipe.Steps {
		op, err := s.operation()
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if f, ok := op.(*forge.Forge); ok {
			f.OnHeat = func(heat, total int) { log.Printf("  heat %d/%d", heat, total) }
		}
		log.Printf("step %d: %s", i+1, op.Name())
		if err := b.Apply(op); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	out := recipe.Outputs
	if out.STL != "" {
		if err := render.CreateSTL(out.STL, render.NewBilletRenderer(b)); err != nil {
			return err
		}
		log.Printf("wrote %s", out.STL)
	}
	if out.OBJ != "" {
		if err := render.CreateOBJ(out.OBJ, b); err != nil {
			return err
		}
		log.Printf("wrote %s", out.OBJ)
	}
	if out.Section != "" {
		res := out.SectionResolution
		if res == 0 {
			res = 800
		}
		img, err := section.Extract(b, out.SectionPosition, res)
		if err != nil {
			return err
		}
		if err := section.SavePNG(out.Section, img); err != nil {
			return err
		}
		log.Printf("wrote %s", out.Section)
	}
	if out.Log != "" {
		if err := b.SaveOperationLog(out.Log); err != nil {
			return err
		}
		log.Printf("wrote %s", out.Log)
	}

	stats := b.Stats()
	color.Green("forged to %.1f x %.1f x %.1f mm in %d operations",
		stats.Width, stats.Length, stats.Height, len(b.History()))
	return nil
}
