// Package plotdig provides a fluent API for digitizing scientific plots
// from SVG figures: recovering the traced data as numeric tables by
// classifying the figure's labeled reference points, calibrating the
// pixel-to-data transform and sampling the curve geometry.
//
// Basic usage:
//
//	table, warnings, err := plotdig.Open("figure.svg").Table()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", plotdig.FormatWarnings(warnings))
//	}
//
// With options:
//
//	cv, _, err := plotdig.Open("figure.svg").
//	    Curve("solid").
//	    SamplingInterval(0.001).
//	    CV()
//
// For advanced use cases, the lower-level svg and plot packages are
// also available.
package plotdig

import (
	"github.com/plotdig/plotdig/svg"
)

// Open opens an SVG or SVGZ file and returns a Digitizer for fluent
// configuration. The file is parsed lazily, on the first terminal
// operation.
//
// Example:
//
//	table, warnings, err := plotdig.Open("figure.svg").Table()
func Open(filename string) *Digitizer {
	return &Digitizer{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument creates a Digitizer from an already-parsed SVG document.
// This is useful when the same document is digitized several times with
// different configurations, or when the markup does not come from a
// file.
//
// Example:
//
//	doc, err := svg.ParseBytes(markup)
//	if err != nil {
//	    // handle error
//	}
//	table, warnings, err := plotdig.FromDocument(doc).Table()
func FromDocument(doc *svg.Document) *Digitizer {
	return &Digitizer{
		doc:     doc,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTable is a helper that wraps a terminal operation returning
// (T, []Warning, error) and panics if the error is non-nil, discarding
// warnings.
//
// Example:
//
//	table := plotdig.MustTable(plotdig.Open("figure.svg").Table())
func MustTable[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
