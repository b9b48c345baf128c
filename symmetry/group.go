// SPDX-License-Identifier: MIT

// Package symmetry computes the symmetry groups of loose-object layouts and
// the canonical forms used to deduplicate configurations.
//
// A layout's group is the product of the symmetric groups on its
// interchangeable position blocks (core.Layout.Blocks), so a triangle has 6
// elements, a quadrilateral 24 and a line with a point only the identity.
//
// CanonicalForm renames the loose objects by every group element, encodes
// each constructed object recursively down to the renamed loose objects,
// sorts the encodings and keeps the lexicographically smallest result:
//
//	Triangle|Midpoint[0]({0,1})
//
// is the canonical form of the triangle with one side midpoint, whichever
// side was chosen. The encoding is purely syntactic; no tolerance is
// involved.
//
// Complexity: O(|G| · E) where E is the encoding cost of the configuration;
// |G| ≤ 24 for the known layouts.
package symmetry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/geogen/core"
)

// ErrBadPermutation indicates a permutation that does not fit the configuration.
var ErrBadPermutation = errors.New("symmetry: invalid permutation")

// Permutation maps loose position i to position p[i].
type Permutation []int

// IsIdentity reports whether p fixes every position.
func (p Permutation) IsIdentity() bool {
	for i, v := range p {
		if v != i {
			return false
		}
	}
	return true
}

// String renders p in one-line notation, e.g. "[1 0 2]".
func (p Permutation) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// valid reports whether p is a bijection of 0..n-1.
func (p Permutation) valid(n int) bool {
	if len(p) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range p {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Group is a finite permutation group on the loose positions of a layout.
// The identity is always the first element.
type Group struct {
	degree int
	perms  []Permutation
}

// Trivial returns the identity-only group on n positions.
func Trivial(n int) Group {
	id := make(Permutation, n)
	for i := range id {
		id[i] = i
	}
	return Group{degree: n, perms: []Permutation{id}}
}

// GroupOf returns the symmetry group of layout: the product of the symmetric
// groups on its blocks, in lexicographic order.
// Panics on an unknown layout (programmer error).
//
// Complexity: O(|G| · n).
func GroupOf(layout core.Layout) Group {
	if !layout.Valid() {
		panic(fmt.Sprintf("symmetry: GroupOf(%d): unknown layout", layout))
	}
	g := Trivial(len(layout.ObjectTypes()))
	for _, block := range layout.Blocks() {
		var next []Permutation
		for _, p := range g.perms {
			for _, q := range permutations(len(block)) {
				r := append(Permutation(nil), p...)
				for i, j := range q {
					r[block[i]] = block[j]
				}
				next = append(next, r)
			}
		}
		g.perms = next
	}
	return g
}

// permutations returns every permutation of 0..k-1 in lexicographic order.
func permutations(k int) [][]int {
	var (
		out  [][]int
		cur  = make([]int, 0, k)
		used = make([]bool, k)
		walk func()
	)
	walk = func() {
		if len(cur) == k {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for v := 0; v < k; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			cur = append(cur, v)
			walk()
			cur = cur[:len(cur)-1]
			used[v] = false
		}
	}
	walk()
	return out
}

// Len returns |G|.
func (g Group) Len() int { return len(g.perms) }

// Degree returns the number of positions the group acts on.
func (g Group) Degree() int { return g.degree }

// Elements returns the permutations of g, identity first. Do not modify.
func (g Group) Elements() []Permutation { return g.perms }
