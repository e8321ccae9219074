package plot

import (
	"fmt"
	"math"

	"github.com/plotdig/plotdig/units"
)

// residualTolerance bounds how far, relative to the calibrated value
// span, an overdetermined reference point may sit from the least-squares
// fit before the calibration is rejected as inconsistent.
const residualTolerance = 1e-3

// AffineMap converts a pixel coordinate to a data value along one axis.
// When Log is set the linear map operates in log10 space and Apply
// exponentiates the result.
type AffineMap struct {
	A, B float64
	Log  bool
}

// Apply maps a pixel coordinate to its data value.
func (m AffineMap) Apply(px float64) float64 {
	v := m.A*px + m.B
	if m.Log {
		return math.Pow(10, v)
	}
	return v
}

// AxisCalibration is the solved transform for one axis together with the
// unit its output values are expressed in.
type AxisCalibration struct {
	Map AffineMap

	// Unit is the raw unit symbol of the reference labels, empty for a
	// dimensionless axis.
	Unit string
}

// Calibrate solves the pixel→data map for one axis from its reference
// points, optionally substituting a scale bar for the second point.
//
// Two reference points give an exact solve. More than two are fit by
// least squares and rejected if any point sits further from the fit
// than the residual tolerance allows. Reference points at coinciding
// pixel coordinates cannot determine a slope and are rejected as
// degenerate.
func Calibrate(axis Axis, refs []RefPoint, bar *ScaleBar, log bool) (AxisCalibration, error) {
	values, unit, err := normalizeRefs(axis, refs)
	if err != nil {
		return AxisCalibration{}, err
	}

	pixels := make([]float64, len(refs))
	for i, r := range refs {
		pixels[i] = axisComponent(axis, r.Pixel.X, r.Pixel.Y)
	}

	if log {
		for i, v := range values {
			if v <= 0 {
				return AxisCalibration{}, fmt.Errorf("%w: %s axis is log scaled but reference %q has non-positive value",
					ErrDegenerateCalibration, axis, refs[i].Label)
			}
			values[i] = math.Log10(v)
		}
	}

	switch {
	case len(refs) == 0:
		return AxisCalibration{}, fmt.Errorf("%w: %s axis has no reference points", ErrInsufficientCalibration, axis)

	case len(refs) == 1:
		if bar == nil {
			return AxisCalibration{}, fmt.Errorf("%w: %s axis has one reference point and no scale bar",
				ErrInsufficientCalibration, axis)
		}
		if log {
			return AxisCalibration{}, fmt.Errorf("%w: %s axis is log scaled, a scale bar cannot substitute for a second reference",
				ErrInsufficientCalibration, axis)
		}
		m, err := solveWithBar(axis, pixels[0], values[0], unit, bar)
		if err != nil {
			return AxisCalibration{}, err
		}
		return AxisCalibration{Map: m, Unit: unit}, nil

	case len(refs) == 2:
		dp := pixels[1] - pixels[0]
		if dp == 0 {
			return AxisCalibration{}, fmt.Errorf("%w: %s axis references %q and %q share a pixel coordinate",
				ErrDegenerateCalibration, axis, refs[0].Label, refs[1].Label)
		}
		a := (values[1] - values[0]) / dp
		return AxisCalibration{
			Map:  AffineMap{A: a, B: values[0] - a*pixels[0], Log: log},
			Unit: unit,
		}, nil

	default:
		m, err := leastSquares(axis, pixels, values, refs)
		if err != nil {
			return AxisCalibration{}, err
		}
		m.Log = log
		return AxisCalibration{Map: m, Unit: unit}, nil
	}
}

// normalizeRefs converts all reference values to the unit of the first
// labeled reference, so mixed spellings like "0 mV" and "0.1 V" agree.
// References whose units measure different quantities are rejected.
func normalizeRefs(axis Axis, refs []RefPoint) ([]float64, string, error) {
	values := make([]float64, len(refs))

	var (
		baseSym  string
		baseUnit units.Unit
		haveBase bool
	)
	for i, r := range refs {
		values[i] = r.Value
		if r.Unit == "" {
			continue
		}

		u, err := units.Lookup(r.Unit)
		if err != nil {
			// Unknown symbols are carried opaquely, but they must all
			// agree since no conversion between them is possible. A mix
			// of an unknown symbol with a convertible one would let an
			// unconverted value into the fit.
			if haveBase || (baseSym != "" && r.Unit != baseSym) {
				return nil, "", fmt.Errorf("%w: %s axis mixes units %q and %q",
					ErrInconsistentCalibration, axis, baseSym, r.Unit)
			}
			baseSym = r.Unit
			continue
		}

		if !haveBase {
			if baseSym != "" {
				return nil, "", fmt.Errorf("%w: %s axis mixes units %q and %q",
					ErrInconsistentCalibration, axis, baseSym, u.Symbol)
			}
			baseSym, baseUnit, haveBase = u.Symbol, u, true
			continue
		}
		if u.Kind != baseUnit.Kind {
			return nil, "", fmt.Errorf("%w: %s axis mixes %s and %s units",
				ErrInconsistentCalibration, axis, baseUnit.Kind, u.Kind)
		}
		values[i] = r.Value * u.Factor / baseUnit.Factor
	}

	return values, baseSym, nil
}

// solveWithBar derives the slope from a scale bar's pixel displacement
// and anchors the intercept at the single reference point.
func solveWithBar(axis Axis, px, value float64, unit string, bar *ScaleBar) (AffineMap, error) {
	dp := axisComponent(axis, bar.End.X-bar.Start.X, bar.End.Y-bar.Start.Y)
	if dp == 0 {
		return AffineMap{}, fmt.Errorf("%w: %s scale bar has zero extent along its axis",
			ErrDegenerateCalibration, axis)
	}

	barValue := bar.Value
	if bar.Unit != "" && unit != "" {
		bu, err1 := units.Lookup(bar.Unit)
		ru, err2 := units.Lookup(unit)
		switch {
		case err1 == nil && err2 == nil && bu.Kind == ru.Kind:
			barValue = bar.Value * bu.Factor / ru.Factor
		case err1 == nil && err2 == nil:
			return AffineMap{}, fmt.Errorf("%w: %s scale bar unit %s does not measure %s",
				ErrInconsistentCalibration, axis, bu.Symbol, ru.Kind)
		case bar.Unit != unit:
			return AffineMap{}, fmt.Errorf("%w: %s axis mixes units %q and %q",
				ErrInconsistentCalibration, axis, unit, bar.Unit)
		}
	}

	a := barValue / math.Abs(dp)
	// A vertical scale bar drawn in y-down pixel space still means
	// values grow upward, so the slope flips sign on the y axis.
	if axis == AxisY {
		a = -a
	}
	return AffineMap{A: a, B: value - a*px}, nil
}

// leastSquares fits value = a*pixel + b over all reference points and
// verifies every point lies within the residual tolerance.
func leastSquares(axis Axis, pixels, values []float64, refs []RefPoint) (AffineMap, error) {
	n := float64(len(pixels))
	var sp, sv, spp, spv float64
	for i := range pixels {
		sp += pixels[i]
		sv += values[i]
		spp += pixels[i] * pixels[i]
		spv += pixels[i] * values[i]
	}

	det := n*spp - sp*sp
	if math.Abs(det) < 1e-9*math.Max(spp, 1) {
		return AffineMap{}, fmt.Errorf("%w: %s axis reference pixels have no spread", ErrDegenerateCalibration, axis)
	}

	a := (n*spv - sp*sv) / det
	b := (sv*spp - sp*spv) / det

	vMin, vMax := values[0], values[0]
	for _, v := range values[1:] {
		vMin = math.Min(vMin, v)
		vMax = math.Max(vMax, v)
	}
	span := vMax - vMin
	if span == 0 {
		span = math.Max(math.Abs(vMax), 1)
	}

	for i := range pixels {
		resid := math.Abs(values[i] - (a*pixels[i] + b))
		if resid > residualTolerance*span {
			return AffineMap{}, fmt.Errorf("%w: %s axis reference %q deviates from the fit by %.3g",
				ErrInconsistentCalibration, axis, refs[i].Label, resid)
		}
	}

	return AffineMap{A: a, B: b}, nil
}

func axisComponent(axis Axis, x, y float64) float64 {
	if axis == AxisY {
		return y
	}
	return x
}
