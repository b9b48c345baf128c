// SPDX-License-Identifier: MIT

// Package geometry provides the floating-point analytic primitives that
// realize configuration objects inside a picture: points, lines and
// circles, tolerance-based equality, and the constructions geogen
// predefines (intersections, bisectors, circle through three points, ...).
//
// Numeric policy:
//   - all routines return ErrDegenerate instead of NaN/Inf or on degenerate
//     input (coincident points, collinear triples, parallel lines);
//   - values whose coordinates exceed MaxCoordinate are rejected as
//     degenerate, keeping pictures well conditioned;
//   - equality is tolerance-based (eps), never exact.
package geometry

import (
	"errors"
	"math"

	"github.com/katalvlaran/geogen/core"
)

// ErrDegenerate is returned when a construction is undefined for its input.
var ErrDegenerate = errors.New("geometry: degenerate construction")

// MaxCoordinate bounds the magnitude of any constructed coordinate or radius.
const MaxCoordinate = 1e5

// DefaultEpsilon is the default tolerance for equality and degeneracy checks.
const DefaultEpsilon = 1e-6

// Value is the analytic realization of one configuration object.
type Value interface {
	// Type is the object type the value realizes.
	Type() core.ObjectType
	// Equal reports whether v and other denote the same object within eps.
	Equal(other Value, eps float64) bool
}

// Point is a point of the Euclidean plane.
type Point struct {
	X, Y float64
}

// Line is the line A·x + B·y + C = 0 with A² + B² = 1.
type Line struct {
	A, B, C float64
}

// Circle is the circle with the given center and positive radius.
type Circle struct {
	Center Point
	Radius float64
}

// Type implements Value.
func (Point) Type() core.ObjectType { return core.Point }

// Type implements Value.
func (Line) Type() core.ObjectType { return core.Line }

// Type implements Value.
func (Circle) Type() core.ObjectType { return core.Circle }

// Equal implements Value.
func (p Point) Equal(other Value, eps float64) bool {
	q, ok := other.(Point)
	return ok && near(p.X, q.X, eps) && near(p.Y, q.Y, eps)
}

// Equal implements Value. The sign of the normalized coefficients is
// ambiguous, so both orientations are compared.
func (l Line) Equal(other Value, eps float64) bool {
	m, ok := other.(Line)
	if !ok {
		return false
	}
	if near(l.A, m.A, eps) && near(l.B, m.B, eps) && near(l.C, m.C, eps) {
		return true
	}
	return near(l.A, -m.A, eps) && near(l.B, -m.B, eps) && near(l.C, -m.C, eps)
}

// Equal implements Value.
func (c Circle) Equal(other Value, eps float64) bool {
	d, ok := other.(Circle)
	return ok && c.Center.Equal(d.Center, eps) && near(c.Radius, d.Radius, eps)
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// finite reports whether every x is a finite number within MaxCoordinate.
func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) > MaxCoordinate {
			return false
		}
	}
	return true
}
