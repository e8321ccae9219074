package plot

import (
	"fmt"
	"sort"

	"github.com/plotdig/plotdig/model"
	"github.com/plotdig/plotdig/svg"
	"github.com/plotdig/plotdig/units"
)

// DefaultAssociationTolerance is the search radius, in pixels, used when
// a label is not grouped with its marker and the nearest path endpoint
// must be found spatially.
const DefaultAssociationTolerance = 20.0

// ClassifyConfig controls how figure elements are matched to roles.
type ClassifyConfig struct {
	// AssociationTolerance is the maximum pixel distance between a
	// label anchor and a path endpoint for spatial association.
	AssociationTolerance float64
}

// DefaultClassifyConfig returns the configuration used when none is
// supplied.
func DefaultClassifyConfig() ClassifyConfig {
	return ClassifyConfig{AssociationTolerance: DefaultAssociationTolerance}
}

// RefPoint ties a pixel position to a known data value on one axis.
type RefPoint struct {
	Pixel model.Point
	Value float64
	Unit  string
	Label string
	Index int
}

// ScaleBar expresses an axis calibration as a pixel displacement worth a
// known data interval, substituting for a second reference point.
type ScaleBar struct {
	Axis  Axis
	Start model.Point
	End   model.Point
	Value float64
	Unit  string
}

// Rate is the scan-rate annotation of a cyclic voltammogram.
type Rate struct {
	Value float64
	Unit  units.Unit
}

// Curve is a traced data curve candidate.
type Curve struct {
	ID   string
	Path *svg.Element
}

// Classified is the outcome of scanning a document for plot roles.
type Classified struct {
	XRefs []RefPoint
	YRefs []RefPoint

	ScaleBars map[Axis]ScaleBar
	Rate      *Rate
	Curves    []Curve

	LogX bool
	LogY bool

	// Fields holds free-form metadata labels (comment, figure, tags).
	Fields map[string]string

	// Annotations is text that matched no convention, kept for the
	// caller to surface.
	Annotations []string

	Warnings []string
}

// Classify scans the document's text elements, parses each through the
// label grammar and associates reference, scale-bar and curve labels
// with their marker paths.
//
// Association is group-first: a label wrapped in a <g> with exactly one
// path uses that path. Otherwise the path with the endpoint nearest the
// label anchor is used, within the configured tolerance. Paths consumed
// by one role are excluded from later spatial queries.
func Classify(doc *svg.Document, cfg ClassifyConfig) (*Classified, error) {
	if cfg.AssociationTolerance <= 0 {
		cfg.AssociationTolerance = DefaultAssociationTolerance
	}

	out := &Classified{
		ScaleBars: make(map[Axis]ScaleBar),
		Fields:    make(map[string]string),
	}
	consumed := make(map[*svg.Element]bool)

	for _, text := range doc.Texts() {
		label, err := parseLabel(text.Text())
		if err != nil {
			return nil, err
		}

		switch label.kind {
		case labelIgnore:
			continue

		case labelAnnotation:
			out.Annotations = append(out.Annotations, label.text)
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("text %q matches no labeling convention, treated as annotation", label.text))

		case labelFreeform:
			out.Fields[label.name] = label.field

		case labelScale:
			log := label.field == "log"
			if label.axis == AxisX {
				out.LogX = log
			} else {
				out.LogY = log
			}

		case labelRate:
			unit, err := units.Lookup(label.unit)
			if err != nil {
				return nil, fmt.Errorf("%w: scan rate %q: %v", ErrUnparsableLabel, label.text, err)
			}
			if unit.Kind != units.KindRate {
				return nil, fmt.Errorf("%w: scan rate %q: %s is not a rate unit", ErrUnparsableLabel, label.text, unit.Symbol)
			}
			out.Rate = &Rate{Value: label.value, Unit: unit}

		case labelRef:
			marker, err := associate(doc, text, cfg.AssociationTolerance, consumed)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrUnassociatedLabel, label.text, err)
			}
			consumed[marker] = true
			ref := RefPoint{
				Pixel: markerPoint(marker, text),
				Value: label.value,
				Unit:  label.unit,
				Label: label.text,
				Index: label.index,
			}
			if label.axis == AxisX {
				out.XRefs = append(out.XRefs, ref)
			} else {
				out.YRefs = append(out.YRefs, ref)
			}

		case labelScaleBar:
			marker, err := associate(doc, text, cfg.AssociationTolerance, consumed)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrUnassociatedLabel, label.text, err)
			}
			consumed[marker] = true
			start, end := marker.Path.Endpoints()
			if _, exists := out.ScaleBars[label.axis]; exists {
				return nil, fmt.Errorf("%w: duplicate %s scale bar %q", ErrUnparsableLabel, label.axis, label.text)
			}
			out.ScaleBars[label.axis] = ScaleBar{
				Axis:  label.axis,
				Start: start,
				End:   end,
				Value: label.value,
				Unit:  label.unit,
			}

		case labelCurve:
			path, err := associate(doc, text, cfg.AssociationTolerance, consumed)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrUnassociatedLabel, label.text, err)
			}
			consumed[path] = true
			out.Curves = append(out.Curves, Curve{ID: label.name, Path: path})
		}
	}

	sortRefs(out.XRefs)
	sortRefs(out.YRefs)

	if len(out.Curves) == 0 {
		if c := fallbackCurve(doc, consumed); c != nil {
			out.Curves = append(out.Curves, Curve{Path: c})
			out.Warnings = append(out.Warnings,
				"no curve label found, using the longest unclaimed path")
		}
	} else if len(out.Curves) > 1 {
		out.Warnings = append(out.Warnings,
			fmt.Sprintf("figure contains %d labeled curves, the first is used unless one is selected by id", len(out.Curves)))
	}

	return out, nil
}

// associate resolves the marker path for a label element, preferring the
// grouped path and falling back to the nearest endpoint query.
func associate(doc *svg.Document, text *svg.Element, tol float64, consumed map[*svg.Element]bool) (*svg.Element, error) {
	if p := doc.GroupedPath(text); p != nil && !consumed[p] {
		return p, nil
	}

	pos, ok := text.Position()
	if !ok {
		return nil, fmt.Errorf("label has no position and no grouped marker")
	}
	p, _, err := doc.NearestPathEndpoint(pos, tol, consumed)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// markerPoint picks the calibration pixel from a marker path: the
// endpoint farther from the label anchor, since the marker points away
// from its label toward the exact axis position. Without a label anchor
// the path end point is used.
func markerPoint(marker *svg.Element, text *svg.Element) model.Point {
	start, end := marker.Path.Endpoints()
	pos, ok := text.Position()
	if !ok {
		return end
	}
	if pos.Distance(start) > pos.Distance(end) {
		return start
	}
	return end
}

// fallbackCurve picks the unclaimed path with the most segments, a
// reasonable stand-in for the traced data curve in figures that omit
// the curve label.
func fallbackCurve(doc *svg.Document, consumed map[*svg.Element]bool) *svg.Element {
	var best *svg.Element
	for _, p := range doc.Paths() {
		if consumed[p] {
			continue
		}
		if best == nil || len(p.Path.Segments) > len(best.Path.Segments) {
			best = p
		}
	}
	return best
}

// sortRefs orders reference points by their label index so "x1" always
// precedes "x2" regardless of document order.
func sortRefs(refs []RefPoint) {
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Index < refs[j].Index
	})
}
