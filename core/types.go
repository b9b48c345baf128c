// SPDX-License-Identifier: MIT

// Package core defines the object model shared by every geogen package:
// object types and identities, loose and constructed objects, construction
// arguments and signatures, constructions, loose-object layouts and
// configurations.
//
// This file declares ObjectType, ObjectID and the sentinel errors.
//
// Errors:
//
//	ErrInvariant         - a programming invariant was violated (fatal for a run).
//	ErrArgumentMismatch  - arguments do not match a construction signature.
//	ErrBadOutput         - output index out of the construction's output range.
//	ErrBadTemplate       - composed construction template is inconsistent.
//	ErrLayoutMismatch    - loose objects do not match the layout.
package core

import (
	"errors"
	"strconv"
)

// Sentinel errors for the object model.
var (
	// ErrInvariant indicates a violated programming invariant: a missing identity,
	// a reference to an object outside the configuration, an acyclicity violation
	// or a declared/actual type mismatch. Runs must abort on it.
	ErrInvariant = errors.New("core: invariant violation")

	// ErrArgumentMismatch indicates arguments that do not fit a signature.
	ErrArgumentMismatch = errors.New("core: arguments do not match signature")

	// ErrBadOutput indicates an output index outside [0, len(outputs)).
	ErrBadOutput = errors.New("core: output index out of range")

	// ErrBadTemplate indicates an inconsistent composed construction.
	ErrBadTemplate = errors.New("core: invalid composed construction template")

	// ErrLayoutMismatch indicates loose objects that do not match the layout.
	ErrLayoutMismatch = errors.New("core: loose objects do not match layout")
)

// ObjectType is the geometric kind of a configuration object.
type ObjectType int

const (
	Point ObjectType = iota
	Line
	Circle
)

// objectTypeCount is the number of ObjectType values; used to size per-type indexes.
const objectTypeCount = 3

// ObjectTypes lists every ObjectType in declaration order.
func ObjectTypes() []ObjectType {
	return []ObjectType{Point, Line, Circle}
}

// String implements fmt.Stringer.
func (t ObjectType) String() string {
	switch t {
	case Point:
		return "Point"
	case Line:
		return "Line"
	case Circle:
		return "Circle"
	default:
		return "ObjectType(" + strconv.Itoa(int(t)) + ")"
	}
}

// Valid reports whether t is one of the declared object types.
func (t ObjectType) Valid() bool {
	return t >= 0 && int(t) < objectTypeCount
}

// ObjectID is the identity of an object within one generation run.
//
// Loose objects carry 0..n-1 (their layout position); constructed objects
// receive strictly increasing identities from the interning container. An
// object may only reference objects with smaller identities.
type ObjectID int

// NoID marks an object that has not been interned yet.
const NoID ObjectID = -1
