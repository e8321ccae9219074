package plot

import (
	"errors"
	"testing"
)

func TestParseLabelRefs(t *testing.T) {
	tests := []struct {
		in    string
		axis  Axis
		index int
		value float64
		unit  string
	}{
		{"x1: 0 mV", AxisX, 1, 0, "mV"},
		{"x2: 100 mV", AxisX, 2, 100, "mV"},
		{"y1: -1.5 V", AxisY, 1, -1.5, "V"},
		{"y2: 1e-3 A/m2", AxisY, 2, 1e-3, "A/m2"},
		{"x1: 42", AxisX, 1, 42, ""},
		{"x: 5 mV", AxisX, 0, 5, "mV"},
	}

	for _, tt := range tests {
		got, err := parseLabel(tt.in)
		if err != nil {
			t.Errorf("parseLabel(%q) failed: %v", tt.in, err)
			continue
		}
		if got.kind != labelRef {
			t.Errorf("parseLabel(%q) kind = %v, want ref", tt.in, got.kind)
			continue
		}
		if got.axis != tt.axis || got.index != tt.index || got.value != tt.value || got.unit != tt.unit {
			t.Errorf("parseLabel(%q) = %+v, want axis=%v index=%d value=%v unit=%q",
				tt.in, got, tt.axis, tt.index, tt.value, tt.unit)
		}
	}
}

func TestParseLabelKinds(t *testing.T) {
	tests := []struct {
		in   string
		kind labelKind
	}{
		{"curve: solid", labelCurve},
		{"curve: 50 mV/s trace", labelCurve},
		{"x_scale_bar: 100 mV", labelScaleBar},
		{"y scale bar: 50 uA", labelScaleBar},
		{"scan rate: 50 mV/s", labelRate},
		{"scan_rate: 50 mV/s", labelRate},
		{"xscale: log", labelScale},
		{"yscale: linear", labelScale},
		{"comment: measured at 25C", labelFreeform},
		{"figure: 2b", labelFreeform},
		{"tags: BCV, HER", labelFreeform},
		{"ignore: draft annotation", labelIgnore},
		{"Pt(111) in 0.1 M HClO4", labelAnnotation},
		{"a", labelAnnotation},
	}

	for _, tt := range tests {
		got, err := parseLabel(tt.in)
		if err != nil {
			t.Errorf("parseLabel(%q) failed: %v", tt.in, err)
			continue
		}
		if got.kind != tt.kind {
			t.Errorf("parseLabel(%q) kind = %v, want %v", tt.in, got.kind, tt.kind)
		}
	}
}

func TestParseLabelCurveID(t *testing.T) {
	got, err := parseLabel("curve: solid")
	if err != nil {
		t.Fatalf("parseLabel failed: %v", err)
	}
	if got.name != "solid" {
		t.Errorf("curve id = %q, want %q", got.name, "solid")
	}
}

func TestParseLabelErrors(t *testing.T) {
	for _, in := range []string{
		"x1: banana",
		"x1:",
		"y_scale_bar: wide",
		"scan rate: fast",
		"frobnicate: 12",
	} {
		if _, err := parseLabel(in); !errors.Is(err, ErrUnparsableLabel) {
			t.Errorf("parseLabel(%q): expected ErrUnparsableLabel, got %v", in, err)
		}
	}
}
