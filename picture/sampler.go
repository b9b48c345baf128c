// SPDX-License-Identifier: MIT

package picture

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/geogen/core"
	"github.com/katalvlaran/geogen/geometry"
)

// Sampler draws analytic values for the loose objects of a layout, one per
// layout position. A Sampler must be deterministic given rng and must not
// retain rng.
type Sampler interface {
	Sample(layout core.Layout, rng *rand.Rand) ([]geometry.Value, error)
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func(layout core.Layout, rng *rand.Rand) ([]geometry.Value, error)

// Sample implements Sampler.
func (f SamplerFunc) Sample(layout core.Layout, rng *rand.Rand) ([]geometry.Value, error) {
	return f(layout, rng)
}

// Placement bounds of DefaultSampler.
const (
	sampleRadius   = 10.0 // coordinates are drawn from [-sampleRadius, sampleRadius]
	minPointGap    = 1.0  // minimal distance between two sampled points
	minAngle       = 0.25 // radians; smallest admissible triangle angle
	minSideRatio   = 0.08 // relative difference between any two triangle sides
	sampleAttempts = 64
)

// DefaultSampler places loose objects generically: well separated points,
// scalene non-degenerate triangles, convex-position free quadrilaterals and
// points off lines. Rejection sampling is bounded; exhaustion returns
// ErrSampleFailed.
type DefaultSampler struct{}

// Sample implements Sampler.
func (DefaultSampler) Sample(layout core.Layout, rng *rand.Rand) ([]geometry.Value, error) {
	if rng == nil {
		return nil, fmt.Errorf("picture: Sample(%s): nil rng: %w", layout, ErrSampleFailed)
	}
	for attempt := 0; attempt < sampleAttempts; attempt++ {
		var (
			vals []geometry.Value
			ok   bool
		)
		switch layout {
		case core.TwoPoints:
			vals, ok = samplePoints(rng, 2)
		case core.Triangle:
			vals, ok = sampleTriangle(rng)
		case core.Quadrilateral:
			vals, ok = samplePoints(rng, 4)
		case core.CyclicQuadrilateral:
			vals, ok = sampleCyclic(rng)
		case core.RightTriangle:
			vals, ok = sampleRightTriangle(rng)
		case core.LineAndPoint:
			vals, ok = sampleLineAndPoints(rng, 1)
		case core.LineAndTwoPoints:
			vals, ok = sampleLineAndPoints(rng, 2)
		default:
			return nil, fmt.Errorf("picture: Sample(%d): %w", layout, core.ErrLayoutMismatch)
		}
		if ok {
			return vals, nil
		}
	}
	return nil, fmt.Errorf("picture: Sample(%s): %d attempts: %w", layout, sampleAttempts, ErrSampleFailed)
}

func randomPoint(rng *rand.Rand) geometry.Point {
	return geometry.Point{
		X: (rng.Float64()*2 - 1) * sampleRadius,
		Y: (rng.Float64()*2 - 1) * sampleRadius,
	}
}

// samplePoints draws n points, pairwise separated with no three collinear.
func samplePoints(rng *rand.Rand, n int) ([]geometry.Value, bool) {
	ps := make([]geometry.Point, n)
	for i := range ps {
		ps[i] = randomPoint(rng)
	}
	if !generic(ps) {
		return nil, false
	}
	return points(ps), true
}

func sampleTriangle(rng *rand.Rand) ([]geometry.Value, bool) {
	ps := []geometry.Point{randomPoint(rng), randomPoint(rng), randomPoint(rng)}
	if !generic(ps) || !scalene(ps[0], ps[1], ps[2]) {
		return nil, false
	}
	return points(ps), true
}

func sampleCyclic(rng *rand.Rand) ([]geometry.Value, bool) {
	center := randomPoint(rng).Scale(0.3)
	r := sampleRadius * (0.3 + 0.4*rng.Float64())
	ps := make([]geometry.Point, 4)
	for i := range ps {
		phi := rng.Float64() * 2 * math.Pi
		ps[i] = center.Add(geometry.Point{X: r * math.Cos(phi), Y: r * math.Sin(phi)})
	}
	if !generic(ps) {
		return nil, false
	}
	return points(ps), true
}

func sampleRightTriangle(rng *rand.Rand) ([]geometry.Value, bool) {
	a := randomPoint(rng).Scale(0.5)
	phi := rng.Float64() * 2 * math.Pi
	u := geometry.Point{X: math.Cos(phi), Y: math.Sin(phi)}
	v := geometry.Point{X: -u.Y, Y: u.X}
	lb := minPointGap + rng.Float64()*sampleRadius/2
	lc := minPointGap + rng.Float64()*sampleRadius/2
	b, c := a.Add(u.Scale(lb)), a.Add(v.Scale(lc))
	if !scalene(a, b, c) {
		return nil, false
	}
	return points([]geometry.Point{a, b, c}), true
}

// sampleLineAndPoints draws a line and n points off it. Two points must lie
// at different distances from the line and not on one perpendicular.
func sampleLineAndPoints(rng *rand.Rand, n int) ([]geometry.Value, bool) {
	l, err := geometry.LineFromPoints(randomPoint(rng), randomPoint(rng))
	if err != nil {
		return nil, false
	}
	ps := make([]geometry.Point, n)
	for i := range ps {
		ps[i] = randomPoint(rng)
		if l.Distance(ps[i]) < minPointGap {
			return nil, false
		}
	}
	if n == 2 {
		if !generic(ps) || math.Abs(l.Distance(ps[0])-l.Distance(ps[1])) < minPointGap {
			return nil, false
		}
		w, d := ps[1].Sub(ps[0]), l.Direction()
		if math.Abs(w.X*d.X+w.Y*d.Y) < minPointGap {
			return nil, false
		}
	}
	out := make([]geometry.Value, 0, n+1)
	out = append(out, l)
	for _, p := range ps {
		out = append(out, p)
	}
	return out, true
}

// generic reports whether ps are pairwise separated and no three of them
// span an angle below minAngle.
func generic(ps []geometry.Point) bool {
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if ps[i].Dist(ps[j]) < minPointGap {
				return false
			}
			for k := j + 1; k < len(ps); k++ {
				if !wellShaped(ps[i], ps[j], ps[k]) {
					return false
				}
			}
		}
	}
	return true
}

// wellShaped reports whether every angle of triangle abc is at least minAngle.
func wellShaped(a, b, c geometry.Point) bool {
	for _, t := range [][3]geometry.Point{{a, b, c}, {b, c, a}, {c, a, b}} {
		u, v := t[1].Sub(t[0]), t[2].Sub(t[0])
		sin := math.Abs(cross(u, v)) / (u.Norm() * v.Norm())
		if sin < math.Sin(minAngle) {
			return false
		}
	}
	return true
}

// scalene reports whether no two sides of abc have nearly equal length.
func scalene(a, b, c geometry.Point) bool {
	s := []float64{b.Dist(c), a.Dist(c), a.Dist(b)}
	for i := range s {
		for j := i + 1; j < len(s); j++ {
			if math.Abs(s[i]-s[j]) < minSideRatio*math.Max(s[i], s[j]) {
				return false
			}
		}
	}
	return true
}

func cross(u, v geometry.Point) float64 { return u.X*v.Y - u.Y*v.X }

func points(ps []geometry.Point) []geometry.Value {
	out := make([]geometry.Value, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out
}
