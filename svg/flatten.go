package svg

import (
	"math"

	"github.com/plotdig/plotdig/model"
)

// DefaultChordTolerance is the maximum distance, in pixels, between a
// flattened chord and the true curve. It is deliberately exposed so the
// sample density of flattened curves is reproducible.
const DefaultChordTolerance = 0.1

// maxSubdivisionDepth bounds recursive Bézier subdivision. 2^24 chords
// per segment is far below any plausible tolerance.
const maxSubdivisionDepth = 24

// Flatten converts the path into an ordered sequence of points. Line
// segments contribute their endpoints; curve and arc segments are
// subdivided until every chord deviates from the true curve by at most
// tol pixels. The natural drawing order of the path is preserved.
func (pd *PathData) Flatten(tol float64) []model.Point {
	if tol <= 0 {
		tol = DefaultChordTolerance
	}

	var (
		points       []model.Point
		current      model.Point
		subpathStart model.Point
	)

	emit := func(p model.Point) {
		// Collapse exact duplicates produced by degenerate segments.
		if n := len(points); n > 0 && points[n-1] == p {
			return
		}
		points = append(points, p)
	}

	for _, seg := range pd.Segments {
		switch seg.Op {
		case OpMoveTo:
			emit(seg.End)
			current, subpathStart = seg.End, seg.End

		case OpLineTo:
			emit(seg.End)
			current = seg.End

		case OpCubicTo:
			flattenCubic(current, seg.C1, seg.C2, seg.End, tol, 0, emit)
			current = seg.End

		case OpQuadTo:
			// Exact degree elevation to a cubic.
			c1 := model.Point{
				X: current.X + 2.0/3.0*(seg.C1.X-current.X),
				Y: current.Y + 2.0/3.0*(seg.C1.Y-current.Y),
			}
			c2 := model.Point{
				X: seg.End.X + 2.0/3.0*(seg.C1.X-seg.End.X),
				Y: seg.End.Y + 2.0/3.0*(seg.C1.Y-seg.End.Y),
			}
			flattenCubic(current, c1, c2, seg.End, tol, 0, emit)
			current = seg.End

		case OpArcTo:
			flattenArc(current, seg, tol, emit)
			current = seg.End

		case OpClose:
			emit(subpathStart)
			current = subpathStart
		}
	}

	return points
}

// flattenCubic recursively subdivides a cubic Bézier until it is flat
// within tol, then emits the endpoint of each flat piece.
func flattenCubic(p0, p1, p2, p3 model.Point, tol float64, depth int, emit func(model.Point)) {
	if depth >= maxSubdivisionDepth || cubicFlat(p0, p1, p2, p3, tol) {
		emit(p3)
		return
	}

	// de Casteljau split at t = 0.5
	ab := midpoint(p0, p1)
	bc := midpoint(p1, p2)
	cd := midpoint(p2, p3)
	abc := midpoint(ab, bc)
	bcd := midpoint(bc, cd)
	mid := midpoint(abc, bcd)

	flattenCubic(p0, ab, abc, mid, tol, depth+1, emit)
	flattenCubic(mid, bcd, cd, p3, tol, depth+1, emit)
}

// cubicFlat reports whether both control points lie within tol of the
// chord from p0 to p3. The control polygon bounds the curve, so this
// also bounds the chord error.
func cubicFlat(p0, p1, p2, p3 model.Point, tol float64) bool {
	return pointLineDistance(p1, p0, p3) <= tol && pointLineDistance(p2, p0, p3) <= tol
}

// pointLineDistance returns the distance from p to the segment a-b. For
// a degenerate segment it is the distance to a.
func pointLineDistance(p, a, b model.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Distance(a)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	proj := model.Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return p.Distance(proj)
}

func midpoint(a, b model.Point) model.Point {
	return model.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// flattenArc converts an endpoint-parameterized elliptical arc to center
// parameterization and emits chords whose sagitta stays within tol.
// The conversion follows the SVG arc implementation notes (F.6.5/F.6.6).
func flattenArc(from model.Point, seg Segment, tol float64, emit func(model.Point)) {
	rx := math.Abs(seg.Rx)
	ry := math.Abs(seg.Ry)
	if rx == 0 || ry == 0 || from == seg.End {
		// Degenerate arcs render as straight lines.
		emit(seg.End)
		return
	}

	phi := seg.Rotation * math.Pi / 180
	cosPhi := math.Cos(phi)
	sinPhi := math.Sin(phi)

	// Transform to the ellipse-aligned frame.
	dx2 := (from.X - seg.End.X) / 2
	dy2 := (from.Y - seg.End.Y) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// Scale radii up if the endpoints cannot be joined by the given
	// ellipse.
	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	var coef float64
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if seg.LargeArc == seg.Sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (from.X+seg.End.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (from.Y+seg.End.Y)/2

	theta1 := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	theta2 := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx)
	delta := theta2 - theta1
	if !seg.Sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if seg.Sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	// Chord count: sagitta of a chord spanning dTheta on radius r is
	// r*(1-cos(dTheta/2)); solve for the largest dTheta within tol.
	rMax := math.Max(rx, ry)
	var maxStep float64
	if tol >= rMax {
		maxStep = math.Pi / 2
	} else {
		maxStep = 2 * math.Acos(1-tol/rMax)
	}
	steps := int(math.Ceil(math.Abs(delta) / maxStep))
	if steps < 1 {
		steps = 1
	}

	for i := 1; i < steps; i++ {
		theta := theta1 + delta*float64(i)/float64(steps)
		cosT := math.Cos(theta)
		sinT := math.Sin(theta)
		emit(model.Point{
			X: cx + rx*cosT*cosPhi - ry*sinT*sinPhi,
			Y: cy + rx*cosT*sinPhi + ry*sinT*cosPhi,
		})
	}

	// Land exactly on the declared endpoint regardless of rounding.
	emit(seg.End)
}
