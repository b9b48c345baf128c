// SPDX-License-Identifier: MIT

package geometry

import (
	"math"
	"math/rand"
)

// Degeneracy thresholds. Points closer than minSeparation are coincident;
// a sine below minSine makes two directions parallel.
const (
	minSeparation = 1e-9
	minSine       = 1e-9
)

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns k·p.
func (p Point) Scale(k float64) Point { return Point{k * p.X, k * p.Y} }

// Norm returns the Euclidean length of p as a vector.
func (p Point) Norm() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns |p-q|.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Norm() }

func cross(u, v Point) float64 { return u.X*v.Y - u.Y*v.X }

func checkPoint(p Point) (Point, error) {
	if !finite(p.X, p.Y) {
		return Point{}, ErrDegenerate
	}
	return p, nil
}

// NewLine builds the normalized line a·x + b·y + c = 0.
// The sign is fixed so that A > 0, or A == 0 and B > 0.
func NewLine(a, b, c float64) (Line, error) {
	n := math.Hypot(a, b)
	if n < minSeparation || !finite(a/n, b/n, c/n) {
		return Line{}, ErrDegenerate
	}
	a, b, c = a/n, b/n, c/n
	if a < 0 || (a == 0 && b < 0) {
		a, b, c = -a, -b, -c
	}
	return Line{A: a, B: b, C: c}, nil
}

// Direction returns a unit vector along l.
func (l Line) Direction() Point { return Point{-l.B, l.A} }

// Normal returns the unit normal (A, B) of l.
func (l Line) Normal() Point { return Point{l.A, l.B} }

// Origin returns the foot of the perpendicular from (0,0) to l.
func (l Line) Origin() Point { return Point{-l.A * l.C, -l.B * l.C} }

// Distance returns the unsigned distance from p to l.
func (l Line) Distance(p Point) float64 { return math.Abs(l.A*p.X + l.B*p.Y + l.C) }

// LineThrough returns the line through p with direction d.
func LineThrough(p, d Point) (Line, error) {
	if d.Norm() < minSeparation {
		return Line{}, ErrDegenerate
	}
	return NewLine(d.Y, -d.X, d.X*p.Y-d.Y*p.X)
}

// LineFromPoints returns the line through p and q.
func LineFromPoints(p, q Point) (Line, error) {
	if p.Dist(q) < minSeparation {
		return Line{}, ErrDegenerate
	}
	return LineThrough(p, q.Sub(p))
}

// Midpoint returns the midpoint of pq.
func Midpoint(p, q Point) (Point, error) {
	if p.Dist(q) < minSeparation {
		return Point{}, ErrDegenerate
	}
	return checkPoint(p.Add(q).Scale(0.5))
}

// PerpendicularBisector returns the perpendicular bisector of pq.
func PerpendicularBisector(p, q Point) (Line, error) {
	m, err := Midpoint(p, q)
	if err != nil {
		return Line{}, err
	}
	d := q.Sub(p)
	return LineThrough(m, Point{-d.Y, d.X})
}

// Projection returns the foot of the perpendicular from p to l.
func Projection(p Point, l Line) (Point, error) {
	s := l.A*p.X + l.B*p.Y + l.C
	return checkPoint(Point{p.X - s*l.A, p.Y - s*l.B})
}

// PerpendicularLine returns the line through p perpendicular to l.
func PerpendicularLine(p Point, l Line) (Line, error) {
	return LineThrough(p, l.Normal())
}

// ParallelLine returns the line through p parallel to l.
// A point on l yields l itself, which callers detect as equality.
func ParallelLine(p Point, l Line) (Line, error) {
	return LineThrough(p, l.Direction())
}

// Intersection returns the common point of two non-parallel lines.
func Intersection(l, m Line) (Point, error) {
	det := l.A*m.B - l.B*m.A
	if math.Abs(det) < minSine {
		return Point{}, ErrDegenerate
	}
	x := (l.B*m.C - m.B*l.C) / det
	y := (m.A*l.C - l.A*m.C) / det
	return checkPoint(Point{x, y})
}

// collinear reports whether a, b, c lie on one line (or coincide).
func collinear(a, b, c Point) bool {
	u, v := b.Sub(a), c.Sub(a)
	nu, nv := u.Norm(), v.Norm()
	if nu < minSeparation || nv < minSeparation || b.Dist(c) < minSeparation {
		return true
	}
	return math.Abs(cross(u, v)) < minSine*nu*nv
}

// Circumcenter returns the center of the circle through a, b, c.
func Circumcenter(a, b, c Point) (Point, error) {
	if collinear(a, b, c) {
		return Point{}, ErrDegenerate
	}
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	a2, b2, c2 := a.X*a.X+a.Y*a.Y, b.X*b.X+b.Y*b.Y, c.X*c.X+c.Y*c.Y
	x := (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d
	y := (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d
	return checkPoint(Point{x, y})
}

// Circumcircle returns the circle through a, b, c.
func Circumcircle(a, b, c Point) (Circle, error) {
	o, err := Circumcenter(a, b, c)
	if err != nil {
		return Circle{}, err
	}
	return NewCircle(o, o.Dist(a))
}

// NewCircle validates and returns a circle.
func NewCircle(center Point, r float64) (Circle, error) {
	if r < minSeparation || !finite(center.X, center.Y, r) {
		return Circle{}, ErrDegenerate
	}
	return Circle{Center: center, Radius: r}, nil
}

// CircleThrough returns the circle with the given center through p.
func CircleThrough(center, p Point) (Circle, error) {
	return NewCircle(center, center.Dist(p))
}

// Centroid returns the centroid of triangle abc.
func Centroid(a, b, c Point) (Point, error) {
	if collinear(a, b, c) {
		return Point{}, ErrDegenerate
	}
	return checkPoint(a.Add(b).Add(c).Scale(1.0 / 3))
}

// Orthocenter returns the orthocenter of triangle abc (H = A+B+C-2O).
func Orthocenter(a, b, c Point) (Point, error) {
	o, err := Circumcenter(a, b, c)
	if err != nil {
		return Point{}, err
	}
	return checkPoint(a.Add(b).Add(c).Sub(o.Scale(2)))
}

// Incenter returns the incenter of triangle abc.
func Incenter(a, b, c Point) (Point, error) {
	if collinear(a, b, c) {
		return Point{}, ErrDegenerate
	}
	la, lb, lc := b.Dist(c), a.Dist(c), a.Dist(b)
	s := la + lb + lc
	return checkPoint(a.Scale(la / s).Add(b.Scale(lb / s)).Add(c.Scale(lc / s)))
}

// InternalAngleBisector returns the bisector of angle bvc at vertex v.
func InternalAngleBisector(v, b, c Point) (Line, error) {
	if collinear(v, b, c) {
		return Line{}, ErrDegenerate
	}
	u1 := b.Sub(v)
	u2 := c.Sub(v)
	d := u1.Scale(1 / u1.Norm()).Add(u2.Scale(1 / u2.Norm()))
	return LineThrough(v, d)
}

// PointReflection returns the reflection of p in center.
func PointReflection(p, center Point) (Point, error) {
	if p.Dist(center) < minSeparation {
		return Point{}, ErrDegenerate
	}
	return checkPoint(center.Scale(2).Sub(p))
}

// LineReflection returns the reflection of p in l.
func LineReflection(p Point, l Line) (Point, error) {
	f, err := Projection(p, l)
	if err != nil {
		return Point{}, err
	}
	return checkPoint(f.Scale(2).Sub(p))
}

// RandomPointOn returns a random point of l within span of its origin.
func RandomPointOn(l Line, span float64, rng *rand.Rand) (Point, error) {
	t := (rng.Float64()*2 - 1) * span
	return checkPoint(l.Origin().Add(l.Direction().Scale(t)))
}
