package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/plotdig/plotdig/model"
)

// parseTransform parses an SVG transform attribute value into a single
// matrix. The transform list is applied left to right, matching the
// rendering order defined by the SVG specification.
func parseTransform(s string) (model.Matrix, error) {
	m := model.Identity()
	s = strings.TrimSpace(s)

	for s != "" {
		open := strings.IndexByte(s, '(')
		if open < 0 {
			return model.Matrix{}, fmt.Errorf("invalid transform %q: missing (", s)
		}
		close := strings.IndexByte(s, ')')
		if close < open {
			return model.Matrix{}, fmt.Errorf("invalid transform %q: missing )", s)
		}

		name := strings.TrimSpace(s[:open])
		args, err := parseTransformArgs(s[open+1 : close])
		if err != nil {
			return model.Matrix{}, fmt.Errorf("transform %s: %w", name, err)
		}

		var t model.Matrix
		switch name {
		case "matrix":
			if len(args) != 6 {
				return model.Matrix{}, fmt.Errorf("matrix requires 6 values, got %d", len(args))
			}
			t = model.Matrix{args[0], args[1], args[2], args[3], args[4], args[5]}

		case "translate":
			switch len(args) {
			case 1:
				t = model.Translate(args[0], 0)
			case 2:
				t = model.Translate(args[0], args[1])
			default:
				return model.Matrix{}, fmt.Errorf("translate requires 1 or 2 values, got %d", len(args))
			}

		case "scale":
			switch len(args) {
			case 1:
				t = model.Scale(args[0], args[0])
			case 2:
				t = model.Scale(args[0], args[1])
			default:
				return model.Matrix{}, fmt.Errorf("scale requires 1 or 2 values, got %d", len(args))
			}

		case "rotate":
			switch len(args) {
			case 1:
				t = model.Rotate(args[0] * math.Pi / 180)
			case 3:
				// rotate about a point: translate, rotate, translate back
				t = model.Translate(args[1], args[2]).
					Multiply(model.Rotate(args[0] * math.Pi / 180)).
					Multiply(model.Translate(-args[1], -args[2]))
			default:
				return model.Matrix{}, fmt.Errorf("rotate requires 1 or 3 values, got %d", len(args))
			}

		case "skewX":
			if len(args) != 1 {
				return model.Matrix{}, fmt.Errorf("skewX requires 1 value, got %d", len(args))
			}
			t = model.SkewX(args[0] * math.Pi / 180)

		case "skewY":
			if len(args) != 1 {
				return model.Matrix{}, fmt.Errorf("skewY requires 1 value, got %d", len(args))
			}
			t = model.SkewY(args[0] * math.Pi / 180)

		default:
			return model.Matrix{}, fmt.Errorf("unknown transform function %q", name)
		}

		m = m.Multiply(t)
		s = strings.TrimLeft(s[close+1:], " \t\r\n,")
	}

	return m, nil
}

// parseTransformArgs splits a transform argument list on whitespace and
// commas and parses each token as a float.
func parseTransformArgs(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	args := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		args = append(args, v)
	}
	return args, nil
}
