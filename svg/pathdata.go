package svg

import (
	"fmt"
	"strconv"

	"github.com/plotdig/plotdig/model"
)

// SegmentOp identifies the operation of a path segment.
type SegmentOp int

const (
	// OpMoveTo starts a new subpath.
	OpMoveTo SegmentOp = iota
	// OpLineTo draws a straight line.
	OpLineTo
	// OpCubicTo draws a cubic Bézier curve.
	OpCubicTo
	// OpQuadTo draws a quadratic Bézier curve.
	OpQuadTo
	// OpArcTo draws an elliptical arc.
	OpArcTo
	// OpClose closes the current subpath.
	OpClose
)

// Segment is a single path segment with all coordinates resolved to
// absolute values.
type Segment struct {
	Op SegmentOp

	// End is the segment end point. For OpClose it is the subpath start.
	End model.Point

	// C1 is the first control point (OpCubicTo, OpQuadTo).
	C1 model.Point
	// C2 is the second control point (OpCubicTo).
	C2 model.Point

	// Arc parameters (OpArcTo).
	Rx, Ry   float64
	Rotation float64 // x-axis rotation in degrees
	LargeArc bool
	Sweep    bool
}

// PathData is the parsed geometry of one path element: an ordered
// sequence of absolute segments in the coordinate space the path was
// parsed in.
type PathData struct {
	Segments []Segment
}

// parsePathData parses an SVG d attribute into absolute segments.
// Relative commands (lowercase) and the shorthand forms H/V/S/T are
// resolved during parsing, so consumers only see the canonical segment
// operations.
func parsePathData(d string) (*PathData, error) {
	p := &pathParser{data: d}
	pd := &PathData{}

	var (
		current      model.Point
		subpathStart model.Point
		prevCubicC2  model.Point
		prevQuadC1   model.Point
		prevOp       SegmentOp = -1
	)

	for {
		p.skipSeparators()
		if p.done() {
			break
		}

		cmd := p.data[p.pos]
		if isCommand(cmd) {
			p.pos++
			p.cmd = cmd
		} else if p.cmd == 0 {
			return nil, fmt.Errorf("path data must start with a command, got %q at position %d", cmd, p.pos)
		} else {
			// Repeated coordinate set for the previous command. An
			// implicit repeat of M/m is a lineto. Closepath takes no
			// coordinates, so trailing data after it is an error.
			switch p.cmd {
			case 'M':
				p.cmd = 'L'
			case 'm':
				p.cmd = 'l'
			case 'Z', 'z':
				return nil, fmt.Errorf("unexpected %q after closepath at position %d", cmd, p.pos)
			}
		}

		relative := p.cmd >= 'a' && p.cmd <= 'z'
		abs := func(pt model.Point) model.Point {
			if relative {
				return model.Point{X: current.X + pt.X, Y: current.Y + pt.Y}
			}
			return pt
		}

		switch upper(p.cmd) {
		case 'M':
			pt, err := p.point()
			if err != nil {
				return nil, err
			}
			end := abs(pt)
			pd.Segments = append(pd.Segments, Segment{Op: OpMoveTo, End: end})
			current, subpathStart = end, end
			prevOp = OpMoveTo

		case 'L':
			pt, err := p.point()
			if err != nil {
				return nil, err
			}
			end := abs(pt)
			pd.Segments = append(pd.Segments, Segment{Op: OpLineTo, End: end})
			current = end
			prevOp = OpLineTo

		case 'H':
			x, err := p.number()
			if err != nil {
				return nil, err
			}
			end := model.Point{X: x, Y: current.Y}
			if relative {
				end.X = current.X + x
			}
			pd.Segments = append(pd.Segments, Segment{Op: OpLineTo, End: end})
			current = end
			prevOp = OpLineTo

		case 'V':
			y, err := p.number()
			if err != nil {
				return nil, err
			}
			end := model.Point{X: current.X, Y: y}
			if relative {
				end.Y = current.Y + y
			}
			pd.Segments = append(pd.Segments, Segment{Op: OpLineTo, End: end})
			current = end
			prevOp = OpLineTo

		case 'C':
			c1, err := p.point()
			if err != nil {
				return nil, err
			}
			c2, err := p.point()
			if err != nil {
				return nil, err
			}
			pt, err := p.point()
			if err != nil {
				return nil, err
			}
			seg := Segment{Op: OpCubicTo, C1: abs(c1), C2: abs(c2), End: abs(pt)}
			pd.Segments = append(pd.Segments, seg)
			current, prevCubicC2 = seg.End, seg.C2
			prevOp = OpCubicTo

		case 'S':
			c2, err := p.point()
			if err != nil {
				return nil, err
			}
			pt, err := p.point()
			if err != nil {
				return nil, err
			}
			// First control point reflects the previous cubic's second
			// control point, or equals the current point.
			c1 := current
			if prevOp == OpCubicTo {
				c1 = model.Point{X: 2*current.X - prevCubicC2.X, Y: 2*current.Y - prevCubicC2.Y}
			}
			seg := Segment{Op: OpCubicTo, C1: c1, C2: abs(c2), End: abs(pt)}
			pd.Segments = append(pd.Segments, seg)
			current, prevCubicC2 = seg.End, seg.C2
			prevOp = OpCubicTo

		case 'Q':
			c1, err := p.point()
			if err != nil {
				return nil, err
			}
			pt, err := p.point()
			if err != nil {
				return nil, err
			}
			seg := Segment{Op: OpQuadTo, C1: abs(c1), End: abs(pt)}
			pd.Segments = append(pd.Segments, seg)
			current, prevQuadC1 = seg.End, seg.C1
			prevOp = OpQuadTo

		case 'T':
			pt, err := p.point()
			if err != nil {
				return nil, err
			}
			c1 := current
			if prevOp == OpQuadTo {
				c1 = model.Point{X: 2*current.X - prevQuadC1.X, Y: 2*current.Y - prevQuadC1.Y}
			}
			seg := Segment{Op: OpQuadTo, C1: c1, End: abs(pt)}
			pd.Segments = append(pd.Segments, seg)
			current, prevQuadC1 = seg.End, seg.C1
			prevOp = OpQuadTo

		case 'A':
			rx, err := p.number()
			if err != nil {
				return nil, err
			}
			ry, err := p.number()
			if err != nil {
				return nil, err
			}
			rot, err := p.number()
			if err != nil {
				return nil, err
			}
			large, err := p.flag()
			if err != nil {
				return nil, err
			}
			sweep, err := p.flag()
			if err != nil {
				return nil, err
			}
			pt, err := p.point()
			if err != nil {
				return nil, err
			}
			seg := Segment{
				Op:       OpArcTo,
				Rx:       rx,
				Ry:       ry,
				Rotation: rot,
				LargeArc: large,
				Sweep:    sweep,
				End:      abs(pt),
			}
			pd.Segments = append(pd.Segments, seg)
			current = seg.End
			prevOp = OpArcTo

		case 'Z':
			pd.Segments = append(pd.Segments, Segment{Op: OpClose, End: subpathStart})
			current = subpathStart
			prevOp = OpClose

		default:
			return nil, fmt.Errorf("unknown path command %q at position %d", p.cmd, p.pos)
		}
	}

	if len(pd.Segments) == 0 {
		return nil, fmt.Errorf("empty path data")
	}
	if pd.Segments[0].Op != OpMoveTo {
		return nil, fmt.Errorf("path data must start with a moveto")
	}

	return pd, nil
}

// transform returns a copy of the path with every coordinate mapped
// through m. Arc radii are scaled by the matrix's axis scale factors;
// non-uniform shear of arcs is not supported and falls back to treating
// the radii independently, which is exact for the axis-aligned
// translate/scale transforms plot SVGs actually use.
func (pd *PathData) transform(m model.Matrix) *PathData {
	if m.IsIdentity() {
		return pd
	}

	out := &PathData{Segments: make([]Segment, len(pd.Segments))}
	sx := model.Point{X: m[0], Y: m[1]}.Distance(model.Point{})
	sy := model.Point{X: m[2], Y: m[3]}.Distance(model.Point{})
	for i, s := range pd.Segments {
		s.End = m.Transform(s.End)
		s.C1 = m.Transform(s.C1)
		s.C2 = m.Transform(s.C2)
		if s.Op == OpArcTo {
			s.Rx *= sx
			s.Ry *= sy
			if m[1] != 0 || m[2] != 0 {
				// Mirrored/rotated CTMs flip the arc orientation when the
				// determinant is negative.
				if m[0]*m[3]-m[1]*m[2] < 0 {
					s.Sweep = !s.Sweep
				}
			} else if m[0]*m[3] < 0 {
				s.Sweep = !s.Sweep
			}
		}
		out.Segments[i] = s
	}
	return out
}

// Start returns the first point of the path.
func (pd *PathData) Start() model.Point {
	return pd.Segments[0].End
}

// End returns the final point of the path.
func (pd *PathData) End() model.Point {
	return pd.Segments[len(pd.Segments)-1].End
}

// Endpoints returns the start and end points of the path. These are the
// anchors used when associating a path with a nearby text label.
func (pd *PathData) Endpoints() (model.Point, model.Point) {
	return pd.Start(), pd.End()
}

// pathParser is a position-based scanner over a d attribute value.
type pathParser struct {
	data string
	pos  int
	cmd  byte
}

func (p *pathParser) done() bool {
	return p.pos >= len(p.data)
}

func (p *pathParser) skipSeparators() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' {
			p.pos++
			continue
		}
		break
	}
}

// number scans one floating point number, including sign and exponent.
func (p *pathParser) number() (float64, error) {
	p.skipSeparators()
	start := p.pos

	if p.pos < len(p.data) && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
		p.pos++
	}
	digits := false
	for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		p.pos++
		digits = true
	}
	if p.pos < len(p.data) && p.data[p.pos] == '.' {
		p.pos++
		for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
			p.pos++
			digits = true
		}
	}
	if !digits {
		return 0, fmt.Errorf("expected number at position %d in path data", start)
	}
	if p.pos < len(p.data) && (p.data[p.pos] == 'e' || p.data[p.pos] == 'E') {
		mark := p.pos
		p.pos++
		if p.pos < len(p.data) && (p.data[p.pos] == '+' || p.data[p.pos] == '-') {
			p.pos++
		}
		expDigits := false
		for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
			p.pos++
			expDigits = true
		}
		if !expDigits {
			// Not an exponent after all (e.g. a following "e" command
			// cannot occur in SVG, but be conservative).
			p.pos = mark
		}
	}

	v, err := strconv.ParseFloat(p.data[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q at position %d", p.data[start:p.pos], start)
	}
	return v, nil
}

// point scans an x,y coordinate pair.
func (p *pathParser) point() (model.Point, error) {
	x, err := p.number()
	if err != nil {
		return model.Point{}, err
	}
	y, err := p.number()
	if err != nil {
		return model.Point{}, err
	}
	return model.Point{X: x, Y: y}, nil
}

// flag scans an arc flag, which is a single 0 or 1 that may be run
// together with the following number.
func (p *pathParser) flag() (bool, error) {
	p.skipSeparators()
	if p.done() {
		return false, fmt.Errorf("expected arc flag at end of path data")
	}
	switch p.data[p.pos] {
	case '0':
		p.pos++
		return false, nil
	case '1':
		p.pos++
		return true, nil
	default:
		return false, fmt.Errorf("invalid arc flag %q at position %d", p.data[p.pos], p.pos)
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isCommand(c byte) bool {
	switch upper(c) {
	case 'M', 'L', 'H', 'V', 'C', 'S', 'Q', 'T', 'A', 'Z':
		return true
	}
	return false
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
