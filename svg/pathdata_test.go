package svg

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/plotdig/plotdig/model"
)

func mustParsePath(t *testing.T, d string) *PathData {
	t.Helper()
	pd, err := parsePathData(d)
	if err != nil {
		t.Fatalf("parsing %q: %v", d, err)
	}
	return pd
}

func TestParsePathAbsolute(t *testing.T) {
	pd := mustParsePath(t, "M 10 20 L 30 40 L 50 60")
	if len(pd.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(pd.Segments))
	}
	if pd.Segments[0].Op != OpMoveTo || pd.Segments[1].Op != OpLineTo {
		t.Error("unexpected segment ops")
	}
	if pd.End() != (model.Point{X: 50, Y: 60}) {
		t.Errorf("unexpected end point %+v", pd.End())
	}
}

func TestParsePathRelative(t *testing.T) {
	pd := mustParsePath(t, "m 10 20 l 5 5 l 5 -5")
	want := model.Point{X: 20, Y: 20}
	if pd.End() != want {
		t.Errorf("expected end %+v, got %+v", want, pd.End())
	}
}

func TestParsePathImplicitLineTo(t *testing.T) {
	// Coordinates after the moveto pair continue as linetos.
	pd := mustParsePath(t, "M 0 0 10 0 20 5")
	if len(pd.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(pd.Segments))
	}
	if pd.Segments[1].Op != OpLineTo || pd.Segments[2].Op != OpLineTo {
		t.Error("expected implicit linetos after moveto")
	}
}

func TestParsePathHorizontalVertical(t *testing.T) {
	pd := mustParsePath(t, "M 1 2 H 10 V 20 h -4 v -3")
	points := []model.Point{
		pd.Segments[1].End,
		pd.Segments[2].End,
		pd.Segments[3].End,
		pd.Segments[4].End,
	}
	want := []model.Point{
		{X: 10, Y: 2},
		{X: 10, Y: 20},
		{X: 6, Y: 20},
		{X: 6, Y: 17},
	}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Errorf("H/V resolution mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePathSmoothCubic(t *testing.T) {
	// S reflects the previous cubic's second control point.
	pd := mustParsePath(t, "M 0 0 C 0 10 10 10 10 0 S 20 -10 20 0")
	if len(pd.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(pd.Segments))
	}
	seg := pd.Segments[2]
	if seg.Op != OpCubicTo {
		t.Fatal("expected smooth segment to resolve to a cubic")
	}
	wantC1 := model.Point{X: 10, Y: -10}
	if diff := cmp.Diff(wantC1, seg.C1, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("reflected control point mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePathQuadAndSmoothQuad(t *testing.T) {
	pd := mustParsePath(t, "M 0 0 Q 5 10 10 0 T 20 0")
	if pd.Segments[1].Op != OpQuadTo || pd.Segments[2].Op != OpQuadTo {
		t.Fatal("expected quadratic segments")
	}
	// T reflects the previous quad control point (5, 10) about (10, 0).
	wantC1 := model.Point{X: 15, Y: -10}
	if diff := cmp.Diff(wantC1, pd.Segments[2].C1, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("reflected quad control mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePathArcPackedFlags(t *testing.T) {
	// Inkscape packs arc flags without separators: "0 01" = large=0 sweep=1.
	pd := mustParsePath(t, "M 0 0 A 5 5 0 0110 0")
	seg := pd.Segments[1]
	if seg.Op != OpArcTo {
		t.Fatal("expected arc segment")
	}
	if seg.LargeArc || !seg.Sweep {
		t.Errorf("expected large=false sweep=true, got large=%v sweep=%v", seg.LargeArc, seg.Sweep)
	}
	if seg.End != (model.Point{X: 10, Y: 0}) {
		t.Errorf("unexpected arc end %+v", seg.End)
	}
}

func TestParsePathClose(t *testing.T) {
	pd := mustParsePath(t, "M 1 1 L 5 1 L 5 5 Z")
	last := pd.Segments[len(pd.Segments)-1]
	if last.Op != OpClose {
		t.Fatal("expected close segment")
	}
	if last.End != (model.Point{X: 1, Y: 1}) {
		t.Errorf("close should return to subpath start, got %+v", last.End)
	}
}

func TestParsePathScientificNotation(t *testing.T) {
	pd := mustParsePath(t, "M 1e1 2.5e-1 L 1.5E2 0")
	if pd.Start() != (model.Point{X: 10, Y: 0.25}) {
		t.Errorf("unexpected start %+v", pd.Start())
	}
	if pd.End() != (model.Point{X: 150, Y: 0}) {
		t.Errorf("unexpected end %+v", pd.End())
	}
}

func TestParsePathErrors(t *testing.T) {
	bad := []string{
		"",
		"L 10 10",   // must start with moveto
		"M 10",      // incomplete pair
		"M 1 1 C 1", // incomplete cubic
		"M 1 1 X 2", // unknown command
	}
	for _, d := range bad {
		if _, err := parsePathData(d); err == nil {
			t.Errorf("expected error for %q", d)
		}
	}
}

func TestFlattenPolyline(t *testing.T) {
	pd := mustParsePath(t, "M 0 0 L 10 0 L 10 10 L 0 10")
	points := pd.Flatten(DefaultChordTolerance)
	want := []model.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Errorf("polyline flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenCubicBoundedError(t *testing.T) {
	// Quarter circle of radius 100 approximated by the standard cubic.
	const r = 100.0
	pd := mustParsePath(t, "M 100 0 C 100 55.22847498307936 55.22847498307936 100 0 100")

	const tol = 0.5
	points := pd.Flatten(tol)
	if len(points) < 4 {
		t.Fatalf("expected the curve to be subdivided, got %d points", len(points))
	}

	// Every sample must lie near the true circle. The cubic itself
	// deviates from the circle by < 0.03% of r, so tol dominates.
	for _, p := range points {
		radius := math.Hypot(p.X, p.Y)
		if math.Abs(radius-r) > tol+r*1e-3 {
			t.Errorf("point (%v, %v) deviates from arc: radius %v", p.X, p.Y, radius)
		}
	}

	// Tighter tolerance yields at least as many samples.
	fine := pd.Flatten(tol / 100)
	if len(fine) < len(points) {
		t.Errorf("expected finer tolerance to produce more samples: %d < %d", len(fine), len(points))
	}
}

func TestFlattenArc(t *testing.T) {
	// Half circle of radius 10 from (0,0) to (20,0).
	pd := mustParsePath(t, "M 0 0 A 10 10 0 0 1 20 0")
	const tol = 0.1
	points := pd.Flatten(tol)
	if len(points) < 5 {
		t.Fatalf("expected arc subdivision, got %d points", len(points))
	}

	for _, p := range points {
		radius := math.Hypot(p.X-10, p.Y)
		if math.Abs(radius-10) > tol {
			t.Errorf("arc sample (%v, %v) off circle: radius %v", p.X, p.Y, radius)
		}
	}

	last := points[len(points)-1]
	if last != (model.Point{X: 20, Y: 0}) {
		t.Errorf("arc must land on declared endpoint, got %+v", last)
	}
}

func TestFlattenPreservesDrawingOrder(t *testing.T) {
	// A forward-then-reverse sweep; x first increases then decreases.
	pd := mustParsePath(t, "M 0 0 L 10 5 L 20 0 L 10 -5 L 0 0")
	points := pd.Flatten(DefaultChordTolerance)

	xs := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
	}
	want := []float64{0, 10, 20, 10, 0}
	if diff := cmp.Diff(want, xs); diff != "" {
		t.Errorf("drawing order mismatch (-want +got):\n%s", diff)
	}
}
