package svg

import (
	"errors"
	"testing"

	"github.com/plotdig/plotdig/model"
)

const calibrationSVG = `<svg xmlns="http://www.w3.org/2000/svg">
  <g id="x1-group">
    <path id="x1-marker" d="M 10 100 L 10 95"/>
    <text id="x1-label" x="8" y="110">x1: 0 mV</text>
  </g>
  <path id="stray" d="M 500 500 L 501 501"/>
  <path id="curve" d="M 10 90 L 60 50 L 110 90"/>
  <text id="lonely" x="200" y="200">y1: 5 A</text>
</svg>`

func TestTextsByPrefix(t *testing.T) {
	doc, err := ParseBytes([]byte(calibrationSVG))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	got := doc.TextsByPrefix("x1")
	if len(got) != 1 || got[0].ID != "x1-label" {
		t.Errorf("expected x1-label, got %d matches", len(got))
	}
	if n := len(doc.TextsByPrefix("z9")); n != 0 {
		t.Errorf("expected no matches, got %d", n)
	}
}

func TestGroupedPath(t *testing.T) {
	doc, err := ParseBytes([]byte(calibrationSVG))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	label := doc.FindByID("x1-label")
	marker := doc.GroupedPath(label)
	if marker == nil || marker.ID != "x1-marker" {
		t.Fatalf("expected grouped marker x1-marker, got %v", marker)
	}

	lonely := doc.FindByID("lonely")
	if doc.GroupedPath(lonely) != nil {
		t.Error("expected no grouped path for ungrouped text")
	}
}

func TestNearestPathEndpoint(t *testing.T) {
	doc, err := ParseBytes([]byte(calibrationSVG))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	// The x1 marker ends at (10, 95) and (10, 100); the label anchor is
	// at (8, 110), closest to (10, 100).
	el, pt, err := doc.NearestPathEndpoint(model.Point{X: 8, Y: 110}, 20, nil)
	if err != nil {
		t.Fatalf("nearest query failed: %v", err)
	}
	if el.ID != "x1-marker" {
		t.Errorf("expected x1-marker, got %q", el.ID)
	}
	if pt != (model.Point{X: 10, Y: 100}) {
		t.Errorf("expected endpoint (10, 100), got %+v", pt)
	}
}

func TestNearestPathEndpointNoAnchor(t *testing.T) {
	doc, err := ParseBytes([]byte(calibrationSVG))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	_, _, err = doc.NearestPathEndpoint(model.Point{X: 200, Y: 200}, 5, nil)
	if !errors.Is(err, ErrNoAnchor) {
		t.Errorf("expected ErrNoAnchor, got %v", err)
	}
}

func TestNearestPathEndpointExactTieFails(t *testing.T) {
	in := `<svg>
	  <path id="a" d="M 0 10 L 0 5"/>
	  <path id="b" d="M 20 10 L 20 5"/>
	</svg>`
	doc, err := ParseBytes([]byte(in))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	// (10, 10) is exactly 10px from both (0, 10) and (20, 10).
	_, _, err = doc.NearestPathEndpoint(model.Point{X: 10, Y: 10}, 15, nil)
	if !errors.Is(err, ErrAmbiguousNearest) {
		t.Errorf("expected ErrAmbiguousNearest, got %v", err)
	}
}

func TestNearestPathEndpointExclusion(t *testing.T) {
	doc, err := ParseBytes([]byte(calibrationSVG))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	marker := doc.FindByID("x1-marker")
	exclude := map[*Element]bool{marker: true}

	el, _, err := doc.NearestPathEndpoint(model.Point{X: 8, Y: 110}, 30, exclude)
	if err != nil {
		t.Fatalf("nearest query failed: %v", err)
	}
	if el.ID != "curve" {
		t.Errorf("expected fallback to curve path, got %q", el.ID)
	}
}
