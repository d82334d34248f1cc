package render

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/soypat/damast"
)

// WriteOBJ writes the billet to w as Wavefront OBJ geometry with one
// group per layer and per-vertex colors in each layer's etch color.
// The color extension appends normalized RGB to every vertex line and
// is understood by common mesh viewers. Output depends only on billet
// state, never on the clock, so equal billets export equal bytes.
func WriteOBJ(w io.Writer, b *damast.Billet) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# pattern-welded billet %.3fx%.3fx%.3f mm, %d layers\n",
		b.Width(), b.Length(), b.Height(), len(b.Layers()))
	offset := 1
	for _, l := range b.Layers() {
		etch := l.Material().Etch
		red := float64(etch.R) / 255
		green := float64(etch.G) / 255
		blue := float64(etch.B) / 255
		fmt.Fprintf(bw, "g layer%02d_%s\n", l.Index(), l.Material().Name)
		for _, v := range l.Vertices() {
			fmt.Fprintf(bw, "v %.6f %.6f %.6f %.4f %.4f %.4f\n", v.X, v.Y, v.Z, red, green, blue)
		}
		for _, tri := range l.Topology() {
			fmt.Fprintf(bw, "f %d %d %d\n", offset+tri[0], offset+tri[1], offset+tri[2])
		}
		offset += len(l.Vertices())
	}
	return bw.Flush()
}

// CreateOBJ writes the billet to an OBJ file at path.
func CreateOBJ(path string, b *damast.Billet) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOBJ(file, b); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
