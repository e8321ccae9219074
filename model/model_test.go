package model

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPointDistance(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 3, Y: 4}
	if d := a.Distance(b); d != 5 {
		t.Errorf("expected distance 5, got %v", d)
	}
}

func TestBBoxFromPoints(t *testing.T) {
	b := NewBBoxFromPoints(Point{X: 10, Y: 30}, Point{X: 20, Y: 5}, Point{X: 15, Y: 12})
	want := BBox{X: 10, Y: 5, Width: 10, Height: 25}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("bounding box mismatch (-want +got):\n%s", diff)
	}

	// SVG coordinates: top is the smallest y
	if b.Top() != 5 || b.Bottom() != 30 {
		t.Errorf("expected top=5 bottom=30, got top=%v bottom=%v", b.Top(), b.Bottom())
	}
}

func TestBBoxContains(t *testing.T) {
	b := NewBBox(0, 0, 10, 10)
	if !b.Contains(Point{X: 5, Y: 5}) {
		t.Error("expected point inside box")
	}
	if b.Contains(Point{X: 5, Y: 11}) {
		t.Error("expected point below box to be outside")
	}
}

func TestMatrixTransform(t *testing.T) {
	m := Translate(10, 20)
	got := m.Transform(Point{X: 1, Y: 2})
	want := Point{X: 11, Y: 22}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("translate mismatch (-want +got):\n%s", diff)
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// Parent scales, child translates: the child transform applies first.
	parent := Scale(2, 2)
	child := Translate(5, 0)
	ctm := parent.Multiply(child)

	got := ctm.Transform(Point{X: 1, Y: 1})
	want := Point{X: 12, Y: 2}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("composition mismatch (-want +got):\n%s", diff)
	}
}

func TestMatrixRotate(t *testing.T) {
	m := Rotate(math.Pi / 2)
	got := m.Transform(Point{X: 1, Y: 0})
	want := Point{X: 0, Y: 1}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("rotation mismatch (-want +got):\n%s", diff)
	}
}

func TestDataTableAppendAndColumns(t *testing.T) {
	table := NewDataTable("x", "y")
	if err := table.Append(1, 2); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := table.Append(3, 4); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if err := table.Append(1, 2, 3); err == nil {
		t.Error("expected error for wrong arity")
	}

	ys, err := table.Column("y")
	if err != nil {
		t.Fatalf("column failed: %v", err)
	}
	if diff := cmp.Diff([]float64{2, 4}, ys); diff != "" {
		t.Errorf("column mismatch (-want +got):\n%s", diff)
	}

	if _, err := table.Column("z"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestDataTablePreservesRowOrder(t *testing.T) {
	// Rows arrive in curve traversal order and must never be sorted.
	table := NewDataTable("x")
	for _, v := range []float64{3, 1, 2, 1, 3} {
		if err := table.Append(v); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	xs, err := table.Column("x")
	if err != nil {
		t.Fatalf("column failed: %v", err)
	}
	if diff := cmp.Diff([]float64{3, 1, 2, 1, 3}, xs); diff != "" {
		t.Errorf("row order mismatch (-want +got):\n%s", diff)
	}
}

func TestDataTableWithColumn(t *testing.T) {
	table := NewDataTable("x")
	_ = table.Append(1)
	_ = table.Append(2)

	out, err := table.WithColumn("t", []float64{0, 0.5})
	if err != nil {
		t.Fatalf("with column failed: %v", err)
	}

	if diff := cmp.Diff([]string{"x", "t"}, out.Columns()); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if got, _ := out.Get(1, "t"); got != 0.5 {
		t.Errorf("expected t=0.5, got %v", got)
	}

	// Original table is unchanged.
	if len(table.Columns()) != 1 {
		t.Error("expected original table to keep one column")
	}

	if _, err := table.WithColumn("t", []float64{1}); err == nil {
		t.Error("expected error for wrong column length")
	}
}

func TestDataTableToCSV(t *testing.T) {
	table := NewDataTable("x", "y")
	_ = table.Append(0.5, 1e-3)
	_ = table.Append(1, 2)

	got := table.ToCSV()
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 CSV lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "x,y" {
		t.Errorf("expected header x,y, got %q", lines[0])
	}
	if lines[1] != "0.5,0.001" {
		t.Errorf("unexpected first row: %q", lines[1])
	}
}

func TestMetadataMerge(t *testing.T) {
	figure := Metadata{
		"figure description": map[string]any{
			"type":    "digitized",
			"comment": "",
		},
		"units": "mV",
	}
	caller := Metadata{
		"figure description": map[string]any{
			"comment": "scanned from fig 3",
		},
		"curator": "mustermann",
	}

	got := figure.Merge(caller)
	want := Metadata{
		"figure description": map[string]any{
			"type":    "digitized",
			"comment": "scanned from fig 3",
		},
		"units":   "mV",
		"curator": "mustermann",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}

	// Inputs are untouched.
	if figure["figure description"].(map[string]any)["comment"] != "" {
		t.Error("expected source metadata to be unmodified")
	}
}
