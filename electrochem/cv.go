// Package electrochem maps a digitized x,y plot to cyclic voltammetry
// quantities: potential in V, current or current density in SI units,
// and the elapsed time recovered from the scan rate.
package electrochem

import (
	"errors"
	"fmt"
	"math"

	"github.com/plotdig/plotdig/model"
	"github.com/plotdig/plotdig/plot"
	"github.com/plotdig/plotdig/units"
)

// ErrAmbiguousCurrentAxis indicates that the figure's y axis unit does
// not identify the quantity as a current or a current density, so the
// output column cannot be named.
var ErrAmbiguousCurrentAxis = errors.New("electrochem: ambiguous current axis")

// ErrMissingRate indicates that the time axis was requested but the
// figure carries no scan-rate annotation.
var ErrMissingRate = errors.New("electrochem: no scan rate available")

// Voltammogram is a digitized cyclic voltammogram in SI units.
type Voltammogram struct {
	// Table holds the columns t (s, present when a scan rate is known),
	// E (V) and I (A) or j (A/m2).
	Table *model.DataTable

	// CurrentColumn is "I" for a current axis and "j" for a current
	// density axis.
	CurrentColumn string

	// Rate is the scan rate in V/s, zero when unknown.
	Rate float64

	// Metadata describes the digitized curve: axis units, scan rate
	// and whatever the caller supplied on top.
	Metadata model.Metadata
}

// Map converts an x,y table in figure units to a voltammogram in SI
// units.
//
// The x axis must carry a potential unit and the y axis a current or
// current density unit. When a scan rate is given, time is integrated
// from the potential sweep: each step advances by the absolute
// potential change divided by the rate, so time grows monotonically
// through sweep reversals.
//
// The extra metadata is merged over the derived snapshot, so caller
// values win on conflicts.
func Map(table *model.DataTable, xUnit, yUnit string, rate *plot.Rate, extra model.Metadata) (*Voltammogram, error) {
	if xUnit == "" {
		return nil, fmt.Errorf("%w: potential axis has no unit", units.ErrUnsupportedUnit)
	}
	xu, err := units.Lookup(xUnit)
	if err != nil {
		return nil, fmt.Errorf("potential axis: %w", err)
	}
	if xu.Kind != units.KindPotential {
		return nil, fmt.Errorf("%w: x axis unit %s is a %s, not a potential",
			units.ErrUnsupportedUnit, xu.Symbol, xu.Kind)
	}

	cur, yu, err := currentColumn(yUnit)
	if err != nil {
		return nil, err
	}

	var rateSI float64
	if rate != nil {
		rateSI = rate.Unit.ToSI(rate.Value)
		if rateSI <= 0 {
			return nil, fmt.Errorf("%w: scan rate must be positive", ErrMissingRate)
		}
	}

	xs, err := table.Column("x")
	if err != nil {
		return nil, fmt.Errorf("reading potential column: %w", err)
	}
	ys, err := table.Column("y")
	if err != nil {
		return nil, fmt.Errorf("reading current column: %w", err)
	}

	e := make([]float64, len(xs))
	c := make([]float64, len(ys))
	for i := range xs {
		e[i] = xu.ToSI(xs[i])
		c[i] = yu.ToSI(ys[i])
	}

	var out *model.DataTable
	if rateSI > 0 {
		t := make([]float64, len(e))
		for i := 1; i < len(e); i++ {
			t[i] = t[i-1] + math.Abs(e[i]-e[i-1])/rateSI
		}
		out = model.NewDataTable("t", "E", cur)
		for i := range e {
			out.Append(t[i], e[i], c[i])
		}
	} else {
		out = model.NewDataTable("E", cur)
		for i := range e {
			out.Append(e[i], c[i])
		}
	}

	meta := snapshot(cur, yu, rate)
	meta = meta.Merge(extra)

	return &Voltammogram{
		Table:         out,
		CurrentColumn: cur,
		Rate:          rateSI,
		Metadata:      meta,
	}, nil
}

// currentColumn names the y column from its unit kind.
func currentColumn(yUnit string) (string, units.Unit, error) {
	if yUnit == "" {
		return "", units.Unit{}, fmt.Errorf("%w: y axis has no unit", ErrAmbiguousCurrentAxis)
	}
	yu, err := units.Lookup(yUnit)
	if err != nil {
		return "", units.Unit{}, fmt.Errorf("%w: %v", ErrAmbiguousCurrentAxis, err)
	}

	switch yu.Kind {
	case units.KindCurrent:
		return "I", yu, nil
	case units.KindCurrentDensity:
		return "j", yu, nil
	default:
		return "", units.Unit{}, fmt.Errorf("%w: y axis unit %s is a %s",
			ErrAmbiguousCurrentAxis, yu.Symbol, yu.Kind)
	}
}

// snapshot derives the metadata describing the converted curve.
func snapshot(cur string, yu units.Unit, rate *plot.Rate) model.Metadata {
	axes := map[string]any{
		"E": map[string]any{
			"unit":        "V",
			"orientation": "x",
		},
		cur: map[string]any{
			"unit":        units.SI(yu.Kind).Symbol,
			"orientation": "y",
		},
	}

	meta := model.Metadata{
		"figure description": map[string]any{
			"type": "digitized",
			"axes": axes,
		},
	}
	if rate != nil {
		meta["figure description"].(map[string]any)["scan rate"] = map[string]any{
			"value": rate.Value,
			"unit":  rate.Unit.Symbol,
		}
	}
	return meta
}
