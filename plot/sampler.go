package plot

import (
	"math"

	"github.com/plotdig/plotdig/model"
)

// Sample converts flattened curve geometry to a two-column data table by
// applying the axis calibrations to every point, preserving drawing
// order. Direction reversals in the traced path survive untouched, which
// is what keeps cyclic voltammogram sweeps intact.
//
// A positive samplingInterval additionally resamples each span between
// consecutive points so that emitted x values step by at most the
// interval, in data units. Zero disables resampling and returns exactly
// one row per flattened point.
func Sample(points []model.Point, xc, yc AxisCalibration, samplingInterval float64) *model.DataTable {
	table := model.NewDataTable("x", "y")

	var prevX, prevY float64
	for i, p := range points {
		x := xc.Map.Apply(p.X)
		y := yc.Map.Apply(p.Y)

		if i > 0 && samplingInterval > 0 {
			steps := int(math.Ceil(math.Abs(x-prevX) / samplingInterval))
			for s := 1; s < steps; s++ {
				t := float64(s) / float64(steps)
				table.Append(prevX+(x-prevX)*t, prevY+(y-prevY)*t)
			}
		}

		table.Append(x, y)
		prevX, prevY = x, y
	}

	return table
}
