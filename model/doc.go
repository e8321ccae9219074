// Package model provides the shared data types for the digitization
// pipeline.
//
// This package defines the user-facing structures that every stage of the
// pipeline produces or consumes. Parsing, classification, calibration and
// domain mapping all ultimately speak in these types, making them the
// primary API for consuming digitized data.
//
// # Geometry
//
// Geometric primitives describe positions in pixel space:
//
//   - [Point] - 2D point with distance calculation
//   - [BBox] - bounding box in SVG coordinates (y grows downward)
//   - [Matrix] - 2D affine transformation matrix
//
// # Tables
//
// The [DataTable] type is the terminal artifact of a digitization run: an
// ordered sequence of numeric rows with a fixed column set. Row order is
// the curve's traversal order and is never re-sorted. Export methods
// include WriteCSV and ToCSV.
//
// # Metadata
//
// [Metadata] is a free-form key/value mapping merged from caller-supplied
// input and facts derived from the figure itself (axis units, scan rate,
// figure description). Caller values win on key collision.
package model
