package svg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/plotdig/plotdig/model"
)

// ErrAmbiguousNearest indicates that two distinct anchors are at exactly
// the same distance from a query point. The caller gets an error rather
// than an arbitrary pick, so association stays deterministic.
var ErrAmbiguousNearest = errors.New("svg: ambiguous nearest anchor")

// ErrNoAnchor indicates that no anchor lies within the search tolerance.
var ErrNoAnchor = errors.New("svg: no anchor within tolerance")

// Elements returns all elements in document order.
func (d *Document) Elements() []*Element {
	return append([]*Element(nil), d.all...)
}

// Paths returns all path elements in document order.
func (d *Document) Paths() []*Element {
	return d.ofKind(KindPath)
}

// Texts returns all text elements in document order.
func (d *Document) Texts() []*Element {
	return d.ofKind(KindText)
}

func (d *Document) ofKind(k Kind) []*Element {
	var out []*Element
	for _, el := range d.all {
		if el.Kind == k {
			out = append(out, el)
		}
	}
	return out
}

// FindByID returns the element with the given id, or nil.
func (d *Document) FindByID(id string) *Element {
	return d.byID[id]
}

// TextsByPrefix returns text elements whose visible content starts with
// the given prefix, in document order.
func (d *Document) TextsByPrefix(prefix string) []*Element {
	var out []*Element
	for _, el := range d.Texts() {
		if strings.HasPrefix(el.Text(), prefix) {
			out = append(out, el)
		}
	}
	return out
}

// GroupedPath returns the path element sharing the closest enclosing
// group with el, or nil if the group contains no path. This is the
// primary label-to-marker association: a reference label and its marker
// line are conventionally wrapped in one <g>.
func (d *Document) GroupedPath(el *Element) *Element {
	group := el.Ancestor(KindGroup)
	if group == nil {
		return nil
	}

	var found *Element
	for _, c := range group.descendants(nil) {
		if c.Kind == KindPath {
			if found != nil {
				// More than one path in the group is not a simple
				// marker convention; let the caller fall back to the
				// spatial query.
				return nil
			}
			found = c
		}
	}
	return found
}

// NearestPathEndpoint finds the path whose start or end point is closest
// to pt, searching within maxDist pixels. Exclusions let the classifier
// skip paths already consumed for other roles.
//
// The query is deterministic: the single closest endpoint wins, an exact
// distance tie between different paths is ErrAmbiguousNearest, and an
// empty search radius is ErrNoAnchor.
func (d *Document) NearestPathEndpoint(pt model.Point, maxDist float64, exclude map[*Element]bool) (*Element, model.Point, error) {
	var (
		best     *Element
		bestPt   model.Point
		bestDist = maxDist
		found    bool
		tied     bool
	)

	for _, p := range d.Paths() {
		if exclude[p] {
			continue
		}
		start, end := p.Path.Endpoints()
		for _, candidate := range []model.Point{start, end} {
			dist := pt.Distance(candidate)
			if dist > maxDist {
				continue
			}
			switch {
			case !found || dist < bestDist:
				best, bestPt, bestDist = p, candidate, dist
				found = true
				tied = false
			case dist == bestDist && p != best:
				tied = true
			}
		}
	}

	if !found {
		return nil, model.Point{}, fmt.Errorf("%w: no path endpoint within %.1fpx of (%.1f, %.1f)",
			ErrNoAnchor, maxDist, pt.X, pt.Y)
	}
	if tied {
		return nil, model.Point{}, fmt.Errorf("%w: multiple path endpoints at distance %.3fpx from (%.1f, %.1f)",
			ErrAmbiguousNearest, bestDist, pt.X, pt.Y)
	}

	return best, bestPt, nil
}
