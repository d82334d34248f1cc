// Package section reconstructs the traditional flat pattern view of a
// billet by slicing every layer mesh with a plane across the length
// axis and rasterizing the intersection in each layer's etch color.
package section

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soypat/damast"
	"github.com/soypat/damast/internal/d2"
	"github.com/soypat/damast/mesh"
)

// Background fills the image behind the sectioned steel.
var Background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// margin is the fraction of the billet extent left blank around the
// section on each side.
const margin = 0.05

// Extract slices the billet at position pos along its length axis and
// rasterizes the cut into a res by res image. The width axis maps to
// image x and the height axis to image y, top up, uniformly scaled. A
// position outside the billet produces a background-only image, not an
// error. Extraction is a pure read of billet state: equal states yield
// byte-identical images.
func Extract(b *damast.Billet, pos float64, res int) (*image.RGBA, error) {
	if res < 1 {
		return nil, damast.NewValidationError(damast.CodeBadResolution, "section resolution %d must be at least 1 pixel", res)
	}
	img := image.NewRGBA(image.Rect(0, 0, res, res))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	layers := b.Layers()
	profile := profileBox(layers[0])
	for _, l := range layers[1:] {
		profile = profile.Extend(profileBox(l))
	}
	size := profile.Size()
	extent := math.Max(size.X, size.Y)
	if extent <= 0 {
		return img, nil
	}
	window := extent * (1 + 2*margin)
	scale := float64(res) / window
	// World x-z to pixel coordinates, image y growing downward.
	view := d2.Translation(r2.Vec{X: float64(res) / 2, Y: float64(res) / 2}).
		Mul(d2.Scaling(scale, -scale)).
		Mul(d2.Translation(r2.Scale(-1, profile.Center())))

	for _, l := range layers {
		segments := mesh.SliceY(l.Vertices(), l.Topology(), pos)
		if len(segments) == 0 {
			continue
		}
		etch := l.Material().Etch
		for _, s := range segments {
			drawSegment(img, view.ApplyPos(s.P0), view.ApplyPos(s.P1), etch)
		}
	}
	return img, nil
}

// profileBox is a layer's footprint in the x-z cutting plane.
func profileBox(l *damast.Layer) d2.Box {
	bb := l.Bounds()
	return d2.Box{
		Min: r2.Vec{X: bb.Min.X, Y: bb.Min.Z},
		Max: r2.Vec{X: bb.Max.X, Y: bb.Max.Z},
	}
}

// drawSegment rasterizes a 2 pixel wide line by stepping at half-pixel
// intervals.
func drawSegment(img *image.RGBA, p0, p1 r2.Vec, c color.NRGBA) {
	d := r2.Sub(p1, p0)
	steps := int(2*math.Hypot(d.X, d.Y)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(p0.X + d.X*t)
		y := int(p0.Y + d.Y*t)
		img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		img.SetRGBA(x+1, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		img.SetRGBA(x, y+1, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		img.SetRGBA(x+1, y+1, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
	}
}

// SavePNG writes img to path as PNG.
func SavePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
