package plotdig

import "github.com/plotdig/plotdig/model"

// digitizeOptions holds configuration for a digitization run.
type digitizeOptions struct {
	// Curve selection
	curveID string

	// Geometry
	chordTolerance       float64
	associationTolerance float64

	// Output
	samplingInterval float64

	// Axis scales
	logX bool
	logY bool

	// Caller metadata merged over the derived snapshot
	metadata model.Metadata
}

// defaultOptions returns the default digitization options. Zero values
// for the tolerances select the package defaults downstream.
func defaultOptions() digitizeOptions {
	return digitizeOptions{}
}

// clone creates a deep copy of digitizeOptions.
func (o digitizeOptions) clone() digitizeOptions {
	newOpts := digitizeOptions{
		curveID:              o.curveID,
		chordTolerance:       o.chordTolerance,
		associationTolerance: o.associationTolerance,
		samplingInterval:     o.samplingInterval,
		logX:                 o.logX,
		logY:                 o.logY,
	}

	if o.metadata != nil {
		newOpts.metadata = o.metadata.Copy()
	}

	return newOpts
}
