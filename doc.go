// SPDX-License-Identifier: MIT

// Package geogen enumerates geometric configurations: starting from a few
// loose points or lines, it applies constructions layer by layer and keeps
// every configuration that is new up to symmetry and numerically sound.
//
// What is in the box?
//
//   - Object model: points, lines and circles as loose or constructed objects
//   - Construction catalogue: midpoints, circumcenters, reflections and more
//   - Pictures: K random numeric realizations checked for agreement
//   - Interning: one identity per structurally distinct object
//   - Symmetry: canonical forms under the layout's permutation group
//   - Generator: concurrent layer expansion with logging, metrics and traces
//
// Packages:
//
//	core/       object types, arguments, signatures, constructions, layouts, configurations
//	geometry/   analytic values (Point, Line, Circle) and the construction formulas
//	construct/  predefined catalogue and resolver for predefined and composed constructions
//	picture/    pictures, samplers and the manager running actions consistently
//	intern/     the object interning container
//	enumerate/  argument lists for a signature, optionally one per symmetry orbit
//	symmetry/   layout groups, canonical forms and configuration stabilizers
//	generator/  the layer driver, run config, metrics and tracing
//	cmd/geogen/ command-line front end
//
// Quick ASCII example (triangle, one layer of midpoints):
//
//	    C
//	   / \
//	  A─M─B        M = Midpoint({A,B})
//
// Under the triangle's symmetry group the three side midpoints are one
// configuration; with WithoutSymmetryReduction they are three.
//
//	go run ./cmd/geogen generate --layout Triangle -k Midpoint -n 2
package geogen
