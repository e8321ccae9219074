package svg

import (
	"strings"

	"github.com/plotdig/plotdig/model"
)

// Kind identifies the role of an element in the document tree.
type Kind int

const (
	// KindOther is any element the pipeline has no special handling for.
	KindOther Kind = iota
	// KindRoot is the svg root element.
	KindRoot
	// KindGroup is a g container element.
	KindGroup
	// KindPath is a path element with parsed geometry.
	KindPath
	// KindText is a text element.
	KindText
	// KindTSpan is a tspan inside a text element.
	KindTSpan
	// KindUse is a use reference element.
	KindUse
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "svg"
	case KindGroup:
		return "g"
	case KindPath:
		return "path"
	case KindText:
		return "text"
	case KindTSpan:
		return "tspan"
	case KindUse:
		return "use"
	default:
		return "other"
	}
}

// Element is a node in the parsed document tree. Geometry-bearing
// elements carry their resolved current transformation matrix, so
// coordinates reported by Position and Path geometry are always in
// document pixel space.
type Element struct {
	Kind     Kind
	Tag      string
	ID       string
	Attrs    map[string]string
	Parent   *Element
	Children []*Element

	// Path holds the parsed geometry for KindPath elements, already
	// transformed into document space.
	Path *PathData

	// CTM is the accumulated transform from the root down to and
	// including this element's own transform attribute.
	CTM model.Matrix

	// pieces holds character data and child elements of text-bearing
	// elements in document order, so mixed content reads back the way
	// it is written.
	pieces []textPiece
}

// textPiece is one run of a text element's mixed content: either raw
// character data or a child element.
type textPiece struct {
	chars string
	child *Element
}

// Attr returns the value of the named attribute, or "" if absent.
func (e *Element) Attr(name string) string {
	return e.Attrs[name]
}

// Text returns the character data of this element and its descendants
// in document order, one space between runs, surrounding whitespace
// trimmed. For a text element with tspan children this is the visible
// label.
func (e *Element) Text() string {
	var runs []string
	for _, p := range e.pieces {
		var s string
		if p.child != nil {
			s = p.child.Text()
		} else {
			s = strings.TrimSpace(p.chars)
		}
		if s != "" {
			runs = append(runs, s)
		}
	}
	return strings.Join(runs, " ")
}

// Position returns the element's anchor position in document space. For
// text elements this is the x/y attribute pair transformed through the
// CTM; if the text element itself has no coordinates, the first child
// tspan that has them is used.
func (e *Element) Position() (model.Point, bool) {
	x, okX := parseLength(e.Attr("x"))
	y, okY := parseLength(e.Attr("y"))
	if okX && okY {
		return e.CTM.Transform(model.Point{X: x, Y: y}), true
	}

	for _, c := range e.Children {
		if c.Kind != KindTSpan {
			continue
		}
		if p, ok := c.Position(); ok {
			return p, true
		}
	}
	return model.Point{}, false
}

// Ancestor returns the closest ancestor of the given kind, or nil.
func (e *Element) Ancestor(kind Kind) *Element {
	for p := e.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}

// descendants appends e and all elements below it in document order.
func (e *Element) descendants(out []*Element) []*Element {
	out = append(out, e)
	for _, c := range e.Children {
		out = c.descendants(out)
	}
	return out
}
