package format

import (
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{SVG, "SVG"},
		{SVGZ, "SVGZ"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{SVG, ".svg"},
		{SVGZ, ".svgz"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"plot.svg", SVG},
		{"plot.SVG", SVG},
		{"plot.svgz", SVGZ},
		{"plot.pdf", Unknown},
		{"plot", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"bare svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), SVG},
		{"xml declaration", []byte(`<?xml version="1.0"?><svg></svg>`), SVG},
		{"leading whitespace", []byte("\n\t <svg></svg>"), SVG},
		{"bom", append([]byte{0xef, 0xbb, 0xbf}, []byte(`<svg/>`)...), SVG},
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, SVGZ},
		{"pdf", []byte("%PDF-1.7"), Unknown},
		{"empty", nil, Unknown},
		{"xml without svg root", []byte(`<?xml version="1.0"?><html></html>`), Unknown},
	}

	for _, tt := range tests {
		if got := DetectFromMagic(tt.data); got != tt.want {
			t.Errorf("%s: DetectFromMagic = %v, want %v", tt.name, got, tt.want)
		}
	}
}
