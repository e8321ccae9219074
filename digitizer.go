package plotdig

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/plotdig/plotdig/electrochem"
	"github.com/plotdig/plotdig/format"
	"github.com/plotdig/plotdig/model"
	"github.com/plotdig/plotdig/plot"
	"github.com/plotdig/plotdig/svg"
)

// Digitizer provides a fluent interface for digitizing a plot. Each
// configuration method returns a new Digitizer instance, making it safe
// for concurrent use and allowing method chaining. The source is parsed
// lazily on the first terminal operation and cached, guarded so that
// terminal operations on one instance may also run concurrently.
type Digitizer struct {
	// Source
	filename string
	doc      *svg.Document
	mu       sync.Mutex // guards the lazy parse of doc

	// Configuration
	options digitizeOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Digitizer with a deep copy of
// options. This ensures immutability, each chain method returns a new
// instance.
func (d *Digitizer) clone() *Digitizer {
	d.mu.Lock()
	defer d.mu.Unlock()

	return &Digitizer{
		filename: d.filename,
		doc:      d.doc,
		options:  d.options.clone(),
		err:      d.err,
	}
}

// ensureDocument parses the source if not already parsed.
func (d *Digitizer) ensureDocument() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.err != nil {
		return d.err
	}
	if d.doc != nil {
		return nil
	}
	if d.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	// An unfamiliar extension is fine if the content sniffs as SVG or
	// SVGZ, but reject files that are clearly something else before
	// handing them to the XML parser.
	if format.Detect(d.filename) == format.Unknown {
		f, err := os.Open(d.filename)
		if err != nil {
			return err
		}
		head := make([]byte, 512)
		n, _ := io.ReadFull(f, head)
		f.Close()

		if format.DetectFromMagic(head[:n]) == format.Unknown {
			return fmt.Errorf("%s: not an SVG or SVGZ file", d.filename)
		}
	}

	doc, err := svg.Open(d.filename)
	if err != nil {
		return err
	}
	d.doc = doc
	return nil
}

// Curve selects a labeled curve by id. Without a selection the first
// curve in document order is used.
func (d *Digitizer) Curve(id string) *Digitizer {
	newD := d.clone()
	newD.options.curveID = id
	return newD
}

// SamplingInterval resamples the output so that x advances by at most
// the given step, in data units. Zero, the default, emits one row per
// flattened curve point.
func (d *Digitizer) SamplingInterval(step float64) *Digitizer {
	newD := d.clone()
	newD.options.samplingInterval = step
	return newD
}

// ChordTolerance sets the maximum deviation, in pixels, between the
// curve geometry and its flattened polyline.
func (d *Digitizer) ChordTolerance(tol float64) *Digitizer {
	newD := d.clone()
	newD.options.chordTolerance = tol
	return newD
}

// AssociationTolerance sets the search radius, in pixels, for matching
// labels to marker paths when they are not grouped together.
func (d *Digitizer) AssociationTolerance(tol float64) *Digitizer {
	newD := d.clone()
	newD.options.associationTolerance = tol
	return newD
}

// LogX forces log-scale calibration of the x axis. A "xscale: log"
// declaration in the figure has the same effect.
func (d *Digitizer) LogX() *Digitizer {
	newD := d.clone()
	newD.options.logX = true
	return newD
}

// LogY forces log-scale calibration of the y axis.
func (d *Digitizer) LogY() *Digitizer {
	newD := d.clone()
	newD.options.logY = true
	return newD
}

// WithMetadata merges the given metadata into the output of CV. Caller
// values win over facts derived from the figure.
func (d *Digitizer) WithMetadata(meta model.Metadata) *Digitizer {
	newD := d.clone()
	if newD.options.metadata == nil {
		newD.options.metadata = meta.Copy()
	} else {
		newD.options.metadata = newD.options.metadata.Merge(meta)
	}
	return newD
}

// plotConfig translates the fluent options into the plot package's
// configuration.
func (d *Digitizer) plotConfig() plot.Config {
	cfg := plot.DefaultConfig()
	cfg.CurveID = d.options.curveID
	cfg.SamplingInterval = d.options.samplingInterval
	cfg.LogX = d.options.logX
	cfg.LogY = d.options.logY
	if d.options.chordTolerance > 0 {
		cfg.ChordTolerance = d.options.chordTolerance
	}
	if d.options.associationTolerance > 0 {
		cfg.Classify.AssociationTolerance = d.options.associationTolerance
	}
	return cfg
}

// Document parses and returns the underlying SVG document.
func (d *Digitizer) Document() (*svg.Document, error) {
	if err := d.ensureDocument(); err != nil {
		return nil, err
	}
	return d.doc, nil
}

// Plot classifies and calibrates the figure, returning the lower-level
// plot for inspection of curves, units and metadata fields.
func (d *Digitizer) Plot() (*plot.Plot, []Warning, error) {
	if err := d.ensureDocument(); err != nil {
		return nil, nil, err
	}

	p, err := plot.New(d.doc, d.plotConfig())
	if err != nil {
		return nil, nil, err
	}
	return p, classifyWarnings(p), nil
}

// Points is a terminal operation returning the selected curve flattened
// to pixel-space points, before any calibration is applied.
func (d *Digitizer) Points() ([]model.Point, []Warning, error) {
	p, warnings, err := d.Plot()
	if err != nil {
		return nil, nil, err
	}

	points, err := p.PixelPoints()
	if err != nil {
		return nil, warnings, err
	}
	return points, warnings, nil
}

// Table is a terminal operation returning the digitized curve as a
// two-column x,y table in the figure's axis units, rows in drawing
// order.
func (d *Digitizer) Table() (*model.DataTable, []Warning, error) {
	p, warnings, err := d.Plot()
	if err != nil {
		return nil, nil, err
	}

	table, err := p.Table()
	if err != nil {
		return nil, warnings, err
	}
	return table, warnings, nil
}

// CV is a terminal operation returning the digitized curve as a cyclic
// voltammogram in SI units, with the time axis recovered from the
// figure's scan rate when one is annotated.
func (d *Digitizer) CV() (*electrochem.Voltammogram, []Warning, error) {
	p, warnings, err := d.Plot()
	if err != nil {
		return nil, nil, err
	}

	table, err := p.Table()
	if err != nil {
		return nil, warnings, err
	}

	xUnit, yUnit := p.AxisUnits()
	meta := fieldMetadata(p.Fields())
	if d.options.metadata != nil {
		meta = meta.Merge(d.options.metadata)
	}

	cv, err := electrochem.Map(table, xUnit, yUnit, p.Rate(), meta)
	if err != nil {
		return nil, warnings, err
	}
	return cv, warnings, nil
}

// classifyWarnings lifts the plot's warning strings into Warning
// values.
func classifyWarnings(p *plot.Plot) []Warning {
	msgs := p.Warnings()
	if len(msgs) == 0 {
		return nil
	}

	warnings := make([]Warning, len(msgs))
	for i, m := range msgs {
		warnings[i] = Warning{Op: "classify", Message: m}
	}
	return warnings
}

// fieldMetadata turns the figure's free-form labels into metadata.
func fieldMetadata(fields map[string]string) model.Metadata {
	if len(fields) == 0 {
		return model.Metadata{}
	}

	sub := make(map[string]any, len(fields))
	for k, v := range fields {
		sub[k] = v
	}
	return model.Metadata{"figure description": sub}
}
