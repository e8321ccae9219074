package svg

import (
	"bytes"
	"compress/gzip"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/plotdig/plotdig/model"
)

const minimalSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
  <g id="grp" transform="translate(10, 20)">
    <path id="p1" d="M 0 0 L 10 0 L 10 10"/>
    <text id="t1" x="5" y="5">x1: 0 mV</text>
  </g>
</svg>`

func TestParseMinimal(t *testing.T) {
	doc, err := ParseBytes([]byte(minimalSVG))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if doc.Root == nil || doc.Root.Kind != KindRoot {
		t.Fatal("expected svg root element")
	}
	if len(doc.Paths()) != 1 {
		t.Fatalf("expected 1 path, got %d", len(doc.Paths()))
	}
	if len(doc.Texts()) != 1 {
		t.Fatalf("expected 1 text, got %d", len(doc.Texts()))
	}
}

func TestParseMalformed(t *testing.T) {
	inputs := map[string]string{
		"truncated":    `<svg><path d="M 0 0`,
		"not xml":      `%PDF-1.7 garbage`,
		"wrong root":   `<html><body/></html>`,
		"empty":        ``,
		"bad path":     `<svg><path d="M 0"/></svg>`,
		"no d":         `<svg><path/></svg>`,
		"bad d start":  `<svg><path d="10 20 L 5 5"/></svg>`,
		"bad tfm":      `<svg><g transform="warp(3)"><path d="M 0 0 L 1 1"/></g></svg>`,
		"bad arc flag": `<svg><path d="M 0 0 A 5 5 0 2 0 10 10"/></svg>`,
	}

	for name, in := range inputs {
		_, err := ParseBytes([]byte(in))
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: expected ErrMalformed, got %v", name, err)
		}
	}
}

func TestParseSVGZ(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(minimalSVG)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	doc, err := Parse(&buf)
	if err != nil {
		t.Fatalf("parse of gzip stream failed: %v", err)
	}
	if len(doc.Paths()) != 1 {
		t.Errorf("expected 1 path in SVGZ document, got %d", len(doc.Paths()))
	}
}

func TestTextContentAndPosition(t *testing.T) {
	doc, err := ParseBytes([]byte(minimalSVG))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	txt := doc.FindByID("t1")
	if txt == nil {
		t.Fatal("text element not found by id")
	}
	if got := txt.Text(); got != "x1: 0 mV" {
		t.Errorf("expected label text, got %q", got)
	}

	pos, ok := txt.Position()
	if !ok {
		t.Fatal("expected text position")
	}
	// (5, 5) through translate(10, 20)
	want := model.Point{X: 15, Y: 25}
	if diff := cmp.Diff(want, pos, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
}

func TestTSpanTextAndPosition(t *testing.T) {
	in := `<svg><text id="t"><tspan x="3" y="4">curve:</tspan><tspan x="3" y="10">solid</tspan></text></svg>`
	doc, err := ParseBytes([]byte(in))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	txt := doc.FindByID("t")
	if got := txt.Text(); got != "curve: solid" {
		t.Errorf("expected joined tspan text, got %q", got)
	}

	pos, ok := txt.Position()
	if !ok {
		t.Fatal("expected position from first tspan")
	}
	if pos.X != 3 || pos.Y != 4 {
		t.Errorf("expected (3, 4), got (%v, %v)", pos.X, pos.Y)
	}
}

func TestMixedTextContentKeepsDocumentOrder(t *testing.T) {
	in := `<svg><text id="t">scan rate:<tspan>50</tspan> mV/s</text></svg>`
	doc, err := ParseBytes([]byte(in))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	// Character data around a tspan must read back in document order,
	// not with the tspan content pushed to the end.
	if got := doc.FindByID("t").Text(); got != "scan rate: 50 mV/s" {
		t.Errorf("expected interleaved text in document order, got %q", got)
	}
}

func TestNestedTransformsApplyToPath(t *testing.T) {
	in := `<svg>
	  <g transform="translate(100, 0)">
	    <g transform="scale(2)">
	      <path id="p" d="M 1 1 L 2 1"/>
	    </g>
	  </g>
	</svg>`
	doc, err := ParseBytes([]byte(in))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	p := doc.FindByID("p")
	start, end := p.Path.Endpoints()
	wantStart := model.Point{X: 102, Y: 2}
	wantEnd := model.Point{X: 104, Y: 2}
	if diff := cmp.Diff(wantStart, start, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("start mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantEnd, end, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("end mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateIDFirstWins(t *testing.T) {
	in := `<svg><path id="p" d="M 0 0 L 1 0"/><path id="p" d="M 5 5 L 6 5"/></svg>`
	doc, err := ParseBytes([]byte(in))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	start, _ := doc.FindByID("p").Path.Endpoints()
	if start.X != 0 {
		t.Errorf("expected first definition to win, got start x=%v", start.X)
	}
}
