package plot

import "errors"

var (
	// ErrUnparsableLabel indicates a text label that should carry a
	// numeric reference value but does not parse.
	ErrUnparsableLabel = errors.New("plot: unparsable label")

	// ErrUnassociatedLabel indicates a reference label with no marker
	// anchor within the association tolerance, or an ambiguous one.
	ErrUnassociatedLabel = errors.New("plot: label has no associated marker")

	// ErrInsufficientCalibration indicates an axis with fewer than two
	// reference points and no scale bar to substitute for the second.
	ErrInsufficientCalibration = errors.New("plot: insufficient calibration")

	// ErrDegenerateCalibration indicates reference points whose pixel
	// coordinates coincide, leaving the axis solve underdetermined.
	ErrDegenerateCalibration = errors.New("plot: degenerate calibration")

	// ErrInconsistentCalibration indicates more than two reference
	// points that disagree beyond the residual tolerance.
	ErrInconsistentCalibration = errors.New("plot: inconsistent calibration")

	// ErrNoCurve indicates that no data curve was identified in the
	// document, or that the requested curve id does not exist.
	ErrNoCurve = errors.New("plot: no data curve found")
)
