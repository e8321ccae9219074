package plot

import (
	"fmt"

	"github.com/plotdig/plotdig/model"
	"github.com/plotdig/plotdig/svg"
)

// Config controls classification, calibration and sampling for a plot.
type Config struct {
	// Classify tunes label-to-marker association.
	Classify ClassifyConfig

	// ChordTolerance is the maximum chord deviation, in pixels, when
	// flattening curve geometry. Zero selects the default.
	ChordTolerance float64

	// SamplingInterval resamples the output so x steps by at most this
	// many data units. Zero emits one row per flattened point.
	SamplingInterval float64

	// CurveID selects a labeled curve by id. Empty takes the first
	// curve in document order.
	CurveID string

	// LogX and LogY force log-scale calibration for an axis. The
	// document's own "xscale: log" declarations are honored either way.
	LogX bool
	LogY bool
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		Classify:       DefaultClassifyConfig(),
		ChordTolerance: svg.DefaultChordTolerance,
	}
}

// Plot is a classified and calibrated figure, ready for sampling.
type Plot struct {
	doc *svg.Document
	cfg Config

	classified *Classified
	xcal       AxisCalibration
	ycal       AxisCalibration
}

// New classifies the document and solves both axis calibrations. All
// label and calibration failures surface here, before any sampling, so
// a plot that constructs successfully can always produce a table as
// long as it has a curve.
func New(doc *svg.Document, cfg Config) (*Plot, error) {
	if cfg.ChordTolerance <= 0 {
		cfg.ChordTolerance = svg.DefaultChordTolerance
	}

	classified, err := Classify(doc, cfg.Classify)
	if err != nil {
		return nil, err
	}

	logX := cfg.LogX || classified.LogX
	logY := cfg.LogY || classified.LogY

	xcal, err := Calibrate(AxisX, classified.XRefs, scaleBar(classified, AxisX), logX)
	if err != nil {
		return nil, err
	}
	ycal, err := Calibrate(AxisY, classified.YRefs, scaleBar(classified, AxisY), logY)
	if err != nil {
		return nil, err
	}

	return &Plot{
		doc:        doc,
		cfg:        cfg,
		classified: classified,
		xcal:       xcal,
		ycal:       ycal,
	}, nil
}

func scaleBar(c *Classified, axis Axis) *ScaleBar {
	if bar, ok := c.ScaleBars[axis]; ok {
		return &bar
	}
	return nil
}

// Curves returns the identified curve candidates in document order.
func (p *Plot) Curves() []Curve {
	return p.classified.Curves
}

// Rate returns the scan-rate annotation, or nil if the figure has none.
func (p *Plot) Rate() *Rate {
	return p.classified.Rate
}

// Fields returns the free-form metadata labels found in the figure.
func (p *Plot) Fields() map[string]string {
	return p.classified.Fields
}

// Warnings returns the non-fatal observations collected while
// classifying the figure.
func (p *Plot) Warnings() []string {
	return p.classified.Warnings
}

// XCalibration returns the solved x axis transform.
func (p *Plot) XCalibration() AxisCalibration {
	return p.xcal
}

// YCalibration returns the solved y axis transform.
func (p *Plot) YCalibration() AxisCalibration {
	return p.ycal
}

// AxisUnits returns the unit symbols the table's x and y columns are
// expressed in. Either may be empty for a dimensionless axis.
func (p *Plot) AxisUnits() (x, y string) {
	return p.xcal.Unit, p.ycal.Unit
}

// curve resolves the configured curve selection.
func (p *Plot) curve() (Curve, error) {
	curves := p.classified.Curves
	if p.cfg.CurveID != "" {
		for _, c := range curves {
			if c.ID == p.cfg.CurveID {
				return c, nil
			}
		}
		return Curve{}, fmt.Errorf("%w: no curve labeled %q", ErrNoCurve, p.cfg.CurveID)
	}

	if len(curves) == 0 {
		return Curve{}, ErrNoCurve
	}
	return curves[0], nil
}

// PixelPoints returns the selected curve flattened to pixel-space
// points in drawing order.
func (p *Plot) PixelPoints() ([]model.Point, error) {
	c, err := p.curve()
	if err != nil {
		return nil, err
	}
	return c.Path.Path.Flatten(p.cfg.ChordTolerance), nil
}

// Table samples the selected curve through both axis calibrations and
// returns the x,y data table in drawing order.
func (p *Plot) Table() (*model.DataTable, error) {
	points, err := p.PixelPoints()
	if err != nil {
		return nil, err
	}
	return Sample(points, p.xcal, p.ycal, p.cfg.SamplingInterval), nil
}
