// Package plot recovers a data series from a parsed SVG figure.
//
// It scans the document for the plot conventions the digitization
// pipeline understands: reference labels that tie a pixel position to a
// known data value ("x1: 0 mV" grouped with a marker path), scale bars,
// a scan-rate annotation, and the traced data curve ("curve: solid").
// From two or more reference points per axis it solves the pixel→data
// affine transform, optionally in log space, and applies it to the
// flattened curve geometry to build a [model.DataTable].
//
// Calibration is strict by design: unparsable or unassociated labels,
// missing reference points, and degenerate or inconsistent calibrations
// are reported as errors rather than guessed around, because the value
// of digitized data depends entirely on unambiguous calibration.
package plot
