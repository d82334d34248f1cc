package render_test

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/soypat/damast/forge"
	"github.com/soypat/damast/render"
)

func TestWriteOBJ(t *testing.T) {
	b := testBillet(t)
	if err := b.Apply(forge.Octagon(20, 2, 0.25)); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := render.WriteOBJ(&buf, b); err != nil {
		t.Fatal(err)
	}
	var wantVerts, wantFaces int
	for _, l := range b.Layers() {
		wantVerts += len(l.Vertices())
		wantFaces += len(l.Topology())
	}
	var verts, faces, groups int
	sc := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	sc.Buffer(make([]byte, 1024), 1024)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "v "):
			verts++
			if got := len(strings.Fields(line)); got != 7 {
				t.Fatalf("vertex line %q has %d fields, want 7 with color extension", line, got)
			}
		case strings.HasPrefix(line, "f "):
			faces++
		case strings.HasPrefix(line, "g "):
			groups++
		}
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if verts != wantVerts {
		t.Errorf("OBJ has %d vertices, billet has %d", verts, wantVerts)
	}
	if faces != wantFaces {
		t.Errorf("OBJ has %d faces, billet has %d", faces, wantFaces)
	}
	if groups != len(b.Layers()) {
		t.Errorf("OBJ has %d groups, billet has %d layers", groups, len(b.Layers()))
	}

	var again bytes.Buffer
	if err := render.WriteOBJ(&again, b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Error("two OBJ exports of the same billet differ")
	}
}
