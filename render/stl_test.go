package render_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/soypat/damast/forge"
	"github.com/soypat/damast/render"
)

func TestSTLCreateWriteRead(t *testing.T) {
	b := testBillet(t)
	if err := b.Apply(forge.Square(20, 1)); err != nil {
		t.Fatal(err)
	}
	const path = "billet.stl"
	defer os.Remove(path)
	err := render.CreateSTL(path, render.NewBilletRenderer(b))
	if err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	model, err := render.RenderAll(render.NewBilletRenderer(b))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	err = render.WriteSTL(&buf, model)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Len() != len(bfile) {
		t.Fatal("WriteSTL and CreateSTL output length mismatch")
	}
	if buf.String() != string(bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
	read, err := render.ReadSTL(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(read) != len(model) {
		t.Fatalf("read %d STL triangles back, rendered %d", len(read), len(model))
	}
}

func TestLayerRendererTriangleCount(t *testing.T) {
	b := testBillet(t)
	var total int
	for _, l := range b.Layers() {
		model, err := render.RenderAll(render.NewLayerRenderer(l))
		if err != nil {
			t.Fatal(err)
		}
		if len(model) != len(l.Topology()) {
			t.Errorf("layer %d rendered %d triangles, topology has %d", l.Index(), len(model), len(l.Topology()))
		}
		total += len(model)
	}
	full, err := render.RenderAll(render.NewBilletRenderer(b))
	if err != nil {
		t.Fatal(err)
	}
	if len(full) != total {
		t.Errorf("billet renderer yields %d triangles, layers sum to %d", len(full), total)
	}
}
