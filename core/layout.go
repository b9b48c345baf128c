// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Layout names an arrangement of loose objects. It fixes the number and
// types of the loose objects and the symmetry group used to canonicalize
// configurations.
type Layout int

const (
	// TwoPoints: A, B; any swap is a symmetry.
	TwoPoints Layout = iota
	// Triangle: A, B, C in general position; all 6 permutations.
	Triangle
	// Quadrilateral: A, B, C, D in general position; all 24 permutations.
	Quadrilateral
	// CyclicQuadrilateral: A, B, C, D on one circle; all 24 permutations.
	CyclicQuadrilateral
	// RightTriangle: right angle at A; B and C may be swapped.
	RightTriangle
	// LineAndPoint: line l, point P off it; no symmetry.
	LineAndPoint
	// LineAndTwoPoints: line l, points P and Q off it; P and Q may be swapped.
	LineAndTwoPoints
)

type layoutSpec struct {
	name   string
	types  []ObjectType
	blocks [][]int
}

var layoutSpecs = map[Layout]layoutSpec{
	TwoPoints:           {"TwoPoints", []ObjectType{Point, Point}, [][]int{{0, 1}}},
	Triangle:            {"Triangle", []ObjectType{Point, Point, Point}, [][]int{{0, 1, 2}}},
	Quadrilateral:       {"Quadrilateral", []ObjectType{Point, Point, Point, Point}, [][]int{{0, 1, 2, 3}}},
	CyclicQuadrilateral: {"CyclicQuadrilateral", []ObjectType{Point, Point, Point, Point}, [][]int{{0, 1, 2, 3}}},
	RightTriangle:       {"RightTriangle", []ObjectType{Point, Point, Point}, [][]int{{1, 2}}},
	LineAndPoint:        {"LineAndPoint", []ObjectType{Line, Point}, nil},
	LineAndTwoPoints:    {"LineAndTwoPoints", []ObjectType{Line, Point, Point}, [][]int{{1, 2}}},
}

// Layouts lists every known layout in declaration order.
func Layouts() []Layout {
	return []Layout{TwoPoints, Triangle, Quadrilateral, CyclicQuadrilateral, RightTriangle, LineAndPoint, LineAndTwoPoints}
}

// ParseLayout resolves a layout by case-insensitive name.
func ParseLayout(name string) (Layout, error) {
	for _, l := range Layouts() {
		if strings.EqualFold(l.String(), name) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("core: unknown layout %q: %w", name, ErrLayoutMismatch)
}

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool {
	_, ok := layoutSpecs[l]
	return ok
}

// String implements fmt.Stringer.
func (l Layout) String() string {
	if s, ok := layoutSpecs[l]; ok {
		return s.name
	}
	return "Layout(" + strconv.Itoa(int(l)) + ")"
}

// ObjectTypes returns the loose-object types by layout position.
func (l Layout) ObjectTypes() []ObjectType {
	return append([]ObjectType(nil), layoutSpecs[l].types...)
}

// Blocks returns the groups of interchangeable positions. The layout's
// symmetry group is the product of the symmetric groups on these blocks;
// positions not covered by any block are fixed.
func (l Layout) Blocks() [][]int {
	src := layoutSpecs[l].blocks
	out := make([][]int, len(src))
	for i, b := range src {
		out[i] = append([]int(nil), b...)
	}
	return out
}
