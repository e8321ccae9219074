// Package svg parses SVG documents into a queryable tree of typed
// drawable primitives.
//
// The parser resolves everything the digitization pipeline needs up
// front: element transforms are accumulated into a current transformation
// matrix per element, path data is parsed from the d attribute into
// absolute segments, and curve segments can be flattened into ordered
// point sequences with a bounded chord error.
//
// Parsing is a pure operation. A [Document] is immutable once built and
// owned by a single digitization run.
//
// Basic usage:
//
//	doc, err := svg.Open("figure.svg")
//	if err != nil {
//	    // handle error
//	}
//	for _, p := range doc.Paths() {
//	    points := p.Path.Flatten(svg.DefaultChordTolerance)
//	    // ...
//	}
package svg
