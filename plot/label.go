package plot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/plotdig/plotdig/units"
)

// Axis names a logical plot axis.
type Axis int

const (
	// AxisX is the horizontal axis.
	AxisX Axis = iota
	// AxisY is the vertical axis.
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// labelKind classifies what a text element in the figure declares.
type labelKind int

const (
	labelAnnotation labelKind = iota // free text, not a pipeline convention
	labelRef                        // axis reference point: "x1: 0 mV"
	labelCurve                      // curve tag: "curve: solid"
	labelScaleBar                   // scale bar: "y_scale_bar: 50 uA"
	labelRate                       // scan rate: "scan rate: 50 mV/s"
	labelScale                      // scale declaration: "yscale: log"
	labelFreeform                   // known free-form field: "comment: ..."
	labelIgnore                     // explicit ignore: "ignore: ..."
)

// parsedLabel is the result of running a text label through the label
// grammar.
type parsedLabel struct {
	kind labelKind
	text string // original text

	axis  Axis    // labelRef, labelScaleBar, labelScale
	index int     // labelRef: the digit in "x1"
	value float64 // labelRef, labelScaleBar, labelRate
	unit  string  // labelRef, labelScaleBar, labelRate (raw, unvalidated)

	name  string // labelCurve: curve id; labelFreeform: field name
	field string // labelFreeform: field value; labelScale: "linear"/"log"
}

var (
	refRe      = regexp.MustCompile(`^([xy])(\d*)\s*:\s*(.+)$`)
	curveRe    = regexp.MustCompile(`^curve\s*:\s*(\S.*)$`)
	scaleBarRe = regexp.MustCompile(`^([xy])[_ ]scale[_ ]bar\s*:\s*(.+)$`)
	rateRe     = regexp.MustCompile(`^scan[_ ]rate\s*:\s*(.+)$`)
	scaleRe    = regexp.MustCompile(`^([xy])scale\s*:\s*(linear|log)$`)
	freeformRe = regexp.MustCompile(`^(comment|figure|description|tags|linked)\s*:\s*(.*)$`)
	ignoreRe   = regexp.MustCompile(`^ignore\s*:`)
	prefixRe   = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_ ]*)\s*:`)
)

// parseLabel runs the label grammar over a text element's content.
//
// Labels that match a reference shape but carry no parsable numeric
// value are an error: a silently dropped reference point would corrupt
// the calibration. Text that matches no convention at all (a title, an
// in-plot annotation) is returned as labelAnnotation and left to the
// caller to surface.
func parseLabel(text string) (parsedLabel, error) {
	t := strings.TrimSpace(text)

	if ignoreRe.MatchString(t) {
		return parsedLabel{kind: labelIgnore, text: t}, nil
	}

	if m := scaleBarRe.FindStringSubmatch(t); m != nil {
		value, unit, err := units.Parse(m[2])
		if err != nil {
			return parsedLabel{}, fmt.Errorf("%w: scale bar %q: %v", ErrUnparsableLabel, t, err)
		}
		return parsedLabel{
			kind:  labelScaleBar,
			text:  t,
			axis:  axisOf(m[1]),
			value: value,
			unit:  unit,
		}, nil
	}

	if m := scaleRe.FindStringSubmatch(t); m != nil {
		return parsedLabel{kind: labelScale, text: t, axis: axisOf(m[1]), field: m[2]}, nil
	}

	if m := rateRe.FindStringSubmatch(t); m != nil {
		value, unit, err := units.Parse(m[1])
		if err != nil {
			return parsedLabel{}, fmt.Errorf("%w: scan rate %q: %v", ErrUnparsableLabel, t, err)
		}
		return parsedLabel{kind: labelRate, text: t, value: value, unit: unit}, nil
	}

	if m := curveRe.FindStringSubmatch(t); m != nil {
		return parsedLabel{kind: labelCurve, text: t, name: strings.TrimSpace(m[1])}, nil
	}

	if m := freeformRe.FindStringSubmatch(t); m != nil {
		return parsedLabel{kind: labelFreeform, text: t, name: m[1], field: m[2]}, nil
	}

	if m := refRe.FindStringSubmatch(t); m != nil {
		value, unit, err := units.Parse(m[3])
		if err != nil {
			return parsedLabel{}, fmt.Errorf("%w: %q: %v", ErrUnparsableLabel, t, err)
		}
		index := 0
		if m[2] != "" {
			index, _ = strconv.Atoi(m[2])
		}
		return parsedLabel{
			kind:  labelRef,
			text:  t,
			axis:  axisOf(m[1]),
			index: index,
			value: value,
			unit:  unit,
		}, nil
	}

	// A colon-prefixed label that matches none of the conventions is
	// suspicious enough to reject: it is probably a typo in a reference
	// label ("x1; 0 mV", "xl: 0 mV").
	if prefixRe.MatchString(t) {
		return parsedLabel{}, fmt.Errorf("%w: %q matches no labeling convention", ErrUnparsableLabel, t)
	}

	return parsedLabel{kind: labelAnnotation, text: t}, nil
}

func axisOf(s string) Axis {
	if s == "y" {
		return AxisY
	}
	return AxisX
}
