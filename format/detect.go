// Package format provides input format detection for the plotdig library.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// SVG indicates a plain-text SVG document.
	SVG
	// SVGZ indicates a gzip-compressed SVG document.
	SVGZ
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case SVG:
		return "SVG"
	case SVGZ:
		return "SVGZ"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case SVG:
		return ".svg"
	case SVGZ:
		return ".svgz"
	default:
		return ""
	}
}

// Detect determines the input format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".svg":
		return SVG
	case ".svgz":
		return SVGZ
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine the format. This is
// more reliable than extension-based detection: Inkscape exports SVGZ
// files with a plain .svg extension when asked to.
func DetectFromMagic(data []byte) Format {
	if len(data) < 2 {
		return Unknown
	}

	// gzip magic: 1f 8b
	if data[0] == 0x1f && data[1] == 0x8b {
		return SVGZ
	}

	if looksLikeSVG(data) {
		return SVG
	}

	return Unknown
}

// looksLikeSVG reports whether the data starts with an XML declaration,
// a comment/doctype, or an <svg> root element.
func looksLikeSVG(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	// Strip a UTF-8 BOM if present.
	trimmed = bytes.TrimPrefix(trimmed, []byte{0xef, 0xbb, 0xbf})
	if len(trimmed) == 0 {
		return false
	}

	upper := strings.ToUpper(string(trimmed[:min(512, len(trimmed))]))
	switch {
	case strings.HasPrefix(upper, "<SVG"):
		return true
	case strings.HasPrefix(upper, "<?XML"), strings.HasPrefix(upper, "<!DOCTYPE"), strings.HasPrefix(upper, "<!--"):
		return strings.Contains(upper, "<SVG")
	}
	return false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
