// SPDX-License-Identifier: MIT

package geometry_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geogen/geometry"
)

const eps = geometry.DefaultEpsilon

func TestLineFromPoints_NormalizedAndEqual(t *testing.T) {
	l1, err := geometry.LineFromPoints(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 2, Y: 2})
	require.NoError(t, err)
	l2, err := geometry.LineFromPoints(geometry.Point{X: 3, Y: 3}, geometry.Point{X: -1, Y: -1})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, l1.A*l1.A+l1.B*l1.B, 1e-12)
	assert.True(t, l1.Equal(l2, eps))
	assert.InDelta(t, 0.0, l1.Distance(geometry.Point{X: 5, Y: 5}), 1e-12)
}

func TestLine_EqualIgnoresOrientation(t *testing.T) {
	l := geometry.Line{A: 0, B: 1, C: -2}
	m := geometry.Line{A: 0, B: -1, C: 2}
	assert.True(t, l.Equal(m, eps))
}

func TestDegenerateInputs(t *testing.T) {
	p := geometry.Point{X: 1, Y: 1}
	_, err := geometry.LineFromPoints(p, p)
	assert.ErrorIs(t, err, geometry.ErrDegenerate)

	_, err = geometry.Midpoint(p, p)
	assert.ErrorIs(t, err, geometry.ErrDegenerate)

	// Three collinear points have no circumcircle.
	_, err = geometry.Circumcircle(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 1, Y: 1}, geometry.Point{X: 2, Y: 2})
	assert.ErrorIs(t, err, geometry.ErrDegenerate)

	l1 := geometry.Line{A: 1, B: 0, C: 0}
	l2 := geometry.Line{A: 1, B: 0, C: -3}
	_, err = geometry.Intersection(l1, l2)
	assert.ErrorIs(t, err, geometry.ErrDegenerate)

	_, err = geometry.PointReflection(p, p)
	assert.ErrorIs(t, err, geometry.ErrDegenerate)
}

func TestCircumcircle_RightTriangle(t *testing.T) {
	a := geometry.Point{X: 0, Y: 0}
	b := geometry.Point{X: 4, Y: 0}
	c := geometry.Point{X: 0, Y: 3}

	circle, err := geometry.Circumcircle(a, b, c)
	require.NoError(t, err)
	// Hypotenuse is a diameter.
	assert.True(t, circle.Center.Equal(geometry.Point{X: 2, Y: 1.5}, eps))
	assert.InDelta(t, 2.5, circle.Radius, 1e-9)

	h, err := geometry.Orthocenter(a, b, c)
	require.NoError(t, err)
	assert.True(t, h.Equal(a, eps), "orthocenter of a right triangle is the right-angle vertex")

	i, err := geometry.Incenter(a, b, c)
	require.NoError(t, err)
	assert.True(t, i.Equal(geometry.Point{X: 1, Y: 1}, eps))
}

func TestIntersectionAndProjection(t *testing.T) {
	l, err := geometry.LineFromPoints(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 1, Y: 0})
	require.NoError(t, err)
	m, err := geometry.LineFromPoints(geometry.Point{X: 3, Y: -1}, geometry.Point{X: 3, Y: 5})
	require.NoError(t, err)

	x, err := geometry.Intersection(l, m)
	require.NoError(t, err)
	assert.True(t, x.Equal(geometry.Point{X: 3, Y: 0}, eps))

	f, err := geometry.Projection(geometry.Point{X: 2, Y: 7}, l)
	require.NoError(t, err)
	assert.True(t, f.Equal(geometry.Point{X: 2, Y: 0}, eps))

	r, err := geometry.LineReflection(geometry.Point{X: 2, Y: 7}, l)
	require.NoError(t, err)
	assert.True(t, r.Equal(geometry.Point{X: 2, Y: -7}, eps))
}

func TestParallelAndPerpendicular(t *testing.T) {
	l := geometry.Line{A: 0, B: 1, C: 0} // y = 0
	p := geometry.Point{X: 1, Y: 2}

	par, err := geometry.ParallelLine(p, l)
	require.NoError(t, err)
	assert.True(t, par.Equal(geometry.Line{A: 0, B: 1, C: -2}, eps))

	perp, err := geometry.PerpendicularLine(p, l)
	require.NoError(t, err)
	assert.True(t, perp.Equal(geometry.Line{A: 1, B: 0, C: -1}, eps))

	// A parallel through a point of l is l itself.
	same, err := geometry.ParallelLine(geometry.Point{X: 7, Y: 0}, l)
	require.NoError(t, err)
	assert.True(t, same.Equal(l, eps))
}

func TestInternalAngleBisector(t *testing.T) {
	v := geometry.Point{X: 0, Y: 0}
	bis, err := geometry.InternalAngleBisector(v, geometry.Point{X: 1, Y: 0}, geometry.Point{X: 0, Y: 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, bis.Distance(geometry.Point{X: 3, Y: 3}), 1e-9)
}

func TestRandomPointOn_LiesOnLine(t *testing.T) {
	l, err := geometry.LineFromPoints(geometry.Point{X: 1, Y: 2}, geometry.Point{X: -3, Y: 5})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		p, err := geometry.RandomPointOn(l, 10, rng)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, l.Distance(p), 1e-9)
	}
}

func TestValue_TypeMismatchNeverEqual(t *testing.T) {
	p := geometry.Point{X: 0, Y: 0}
	c, err := geometry.NewCircle(p, 1)
	require.NoError(t, err)
	assert.False(t, p.Equal(c, math.Inf(1)))
	assert.False(t, c.Equal(p, math.Inf(1)))
}
