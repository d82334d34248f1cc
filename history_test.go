package damast_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/damast"
	"github.com/soypat/damast/forge"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestApplyRecordsHistory(t *testing.T) {
	b := mustBillet(t, classicConfig())
	if err := b.Apply(forge.Square(20, 3)); err != nil {
		t.Fatal(err)
	}
	history := b.History()
	if len(history) != 1 {
		t.Fatalf("billet history has %d records, want 1", len(history))
	}
	rec := history[0]
	if rec.Operation != "forge_square" {
		t.Errorf("recorded operation %q", rec.Operation)
	}
	if rec.Timestamp.IsZero() {
		t.Error("record carries zero timestamp")
	}
	if rec.Duration < 0 {
		t.Errorf("negative duration %g", rec.Duration)
	}
	if rec.Parameters["target_size"] != 20 || rec.Parameters["heats"] != 3 {
		t.Errorf("recorded parameters %v", rec.Parameters)
	}
	for _, key := range []string{"max_displacement", "mean_displacement", "max_vertical", "max_horizontal"} {
		if _, ok := rec.Stats[key]; !ok {
			t.Errorf("record stats missing %s", key)
		}
	}
	if rec.Stats["max_displacement"] <= 0 {
		t.Error("forging recorded zero displacement")
	}
	// Forging displaces every layer, so each carries a record.
	for _, l := range b.Layers() {
		if got := l.DeformationCount(); got != 1 {
			t.Errorf("layer %d deformation count %d, want 1", l.Index(), got)
		}
	}
}

// The bottom layer is anchored during a wedge split and must not
// accumulate a deformation record.
func TestWedgeSkipsAnchoredLayer(t *testing.T) {
	b := mustBillet(t, classicConfig())
	if err := b.Apply(forge.Square(20, 1)); err != nil {
		t.Fatal(err)
	}
	if err := b.Apply(forge.NewWedge(3, 15, 1)); err != nil {
		t.Fatal(err)
	}
	layers := b.Layers()
	if got := layers[0].DeformationCount(); got != 1 {
		t.Errorf("bottom layer deformation count %d, want 1 (forge only)", got)
	}
	if got := layers[len(layers)-1].DeformationCount(); got != 2 {
		t.Errorf("top layer deformation count %d, want 2", got)
	}
}

func TestApplyValidationLeavesBilletUntouched(t *testing.T) {
	b := mustBillet(t, classicConfig())
	before := snapshot(b)
	err := b.Apply(forge.NewCompress(1.5))
	var verr *damast.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if verr.Code != damast.CodeBadFactor {
		t.Errorf("got code %s", verr.Code)
	}
	assertUnchanged(t, b, before)
}

// breaker is an operation that corrupts geometry to exercise the
// candidate validation path.
type breaker struct{}

func (breaker) Name() string { return "breaker" }

func (breaker) Validate(*damast.Billet) error { return nil }

func (breaker) Parameters() map[string]float64 { return nil }

func (breaker) Apply(g *damast.Geometry) error {
	g.Layers[0].Vertices[0] = r3.Vec{X: math.NaN()}
	return nil
}

func TestApplyNumericalFailureLeavesBilletUntouched(t *testing.T) {
	b := mustBillet(t, classicConfig())
	before := snapshot(b)
	err := b.Apply(breaker{})
	var nerr *damast.NumericalError
	if !errors.As(err, &nerr) {
		t.Fatalf("got %v, want NumericalError", err)
	}
	if nerr.Op != "breaker" {
		t.Errorf("failure names op %q", nerr.Op)
	}
	if nerr.Unwrap() == nil {
		t.Error("numerical failure hides its cause")
	}
	assertUnchanged(t, b, before)
}

func TestOperationLogJSON(t *testing.T) {
	b := mustBillet(t, classicConfig())
	for _, op := range []damast.Operation{
		forge.Square(20, 2),
		forge.NewTwist(90),
	} {
		if err := b.Apply(op); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := b.WriteOperationLog(&buf); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		BilletInfo struct {
			Width      float64 `json:"width_mm"`
			LayerCount int     `json:"layer_count"`
		} `json:"billet_info"`
		Operations []struct {
			Operation  string             `json:"operation"`
			Parameters map[string]float64 `json:"parameters"`
		} `json:"operations"`
		FinalStats struct {
			Volume float64 `json:"volume_mm3"`
			Forged bool    `json:"is_forged"`
		} `json:"final_stats"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.BilletInfo.Width != 20 {
		t.Errorf("logged width %g, want 20 after forging", decoded.BilletInfo.Width)
	}
	if decoded.BilletInfo.LayerCount != 30 {
		t.Errorf("logged layer count %d", decoded.BilletInfo.LayerCount)
	}
	if len(decoded.Operations) != 2 {
		t.Fatalf("logged %d operations, want 2", len(decoded.Operations))
	}
	if decoded.Operations[0].Operation != "forge_square" || decoded.Operations[1].Operation != "twist" {
		t.Errorf("logged operations %q and %q", decoded.Operations[0].Operation, decoded.Operations[1].Operation)
	}
	if decoded.Operations[1].Parameters["angle"] != 90 {
		t.Errorf("twist parameters %v", decoded.Operations[1].Parameters)
	}
	if math.Abs(decoded.FinalStats.Volume-120000) > 120000*damast.VolumeTol {
		t.Errorf("logged volume %g drifted from 120000", decoded.FinalStats.Volume)
	}
	if !decoded.FinalStats.Forged {
		t.Error("final stats not marked forged")
	}

	// The log is a pure read: writing twice yields identical bytes.
	var again bytes.Buffer
	if err := b.WriteOperationLog(&again); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Error("two exports of the same history differ")
	}
}

func TestSaveOperationLog(t *testing.T) {
	b := mustBillet(t, classicConfig())
	if err := b.Apply(forge.Square(20, 1)); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "history.json")
	if err := b.SaveOperationLog(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Error("saved log is not valid JSON")
	}
	if err := b.SaveOperationLog(filepath.Join(t.TempDir(), "missing", "history.json")); err == nil {
		t.Error("expected error for unwritable path")
	}
}

// billetSnapshot captures observable billet state for mutation checks.
type billetSnapshot struct {
	width, length, height float64
	forged                bool
	history               int
	vertices              [][]r3.Vec
}

func snapshot(b *damast.Billet) billetSnapshot {
	s := billetSnapshot{
		width:   b.Width(),
		length:  b.Length(),
		height:  b.Height(),
		forged:  b.Forged(),
		history: len(b.History()),
	}
	for _, l := range b.Layers() {
		verts := make([]r3.Vec, len(l.Vertices()))
		copy(verts, l.Vertices())
		s.vertices = append(s.vertices, verts)
	}
	return s
}

func assertUnchanged(t *testing.T, b *damast.Billet, want billetSnapshot) {
	t.Helper()
	if b.Width() != want.width || b.Length() != want.length || b.Height() != want.height {
		t.Error("billet dimensions mutated by failed operation")
	}
	if b.Forged() != want.forged {
		t.Error("forged flag mutated by failed operation")
	}
	if len(b.History()) != want.history {
		t.Error("history mutated by failed operation")
	}
	for i, l := range b.Layers() {
		for j, v := range l.Vertices() {
			if v != want.vertices[i][j] {
				t.Fatalf("layer %d vertex %d moved on failed operation", i, j)
			}
		}
	}
}
