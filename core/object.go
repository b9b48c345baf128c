// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"strconv"
)

// Object is a configuration object. A loose object has only a Type and an
// ID; a constructed object additionally has its Construction, Arguments and
// Output index. Objects are immutable once interned.
type Object struct {
	// ID is the identity; NoID until the interning container assigns one.
	ID ObjectID

	// Type is the geometric kind of the object.
	Type ObjectType

	// Construction is nil for loose objects.
	Construction Construction

	// Arguments are the concrete arguments of the construction.
	Arguments Arguments

	// Output selects one of the construction's outputs.
	Output int
}

// NewLoose returns a loose object with the given identity.
func NewLoose(id ObjectID, t ObjectType) *Object {
	return &Object{ID: id, Type: t}
}

// NewConstructed builds an un-interned candidate object.
//
// Errors:
//   - ErrArgumentMismatch if args do not match k's signature.
//   - ErrBadOutput if output is outside k's outputs.
//
// Complexity: O(total argument objects).
func NewConstructed(k Construction, args Arguments, output int) (*Object, error) {
	if k == nil {
		return nil, fmt.Errorf("NewConstructed: nil construction: %w", ErrArgumentMismatch)
	}
	outs := k.Outputs()
	if output < 0 || output >= len(outs) {
		return nil, fmt.Errorf("NewConstructed(%s): output %d of %d: %w", k.Name(), output, len(outs), ErrBadOutput)
	}
	if err := k.Signature().Matches(args); err != nil {
		return nil, fmt.Errorf("NewConstructed(%s): %w", k.Name(), err)
	}
	return &Object{ID: NoID, Type: outs[output], Construction: k, Arguments: args, Output: output}, nil
}

// IsLoose reports whether o is a loose object.
func (o *Object) IsLoose() bool { return o.Construction == nil }

// WithID returns a copy of o carrying id. Used by the interning container.
func (o *Object) WithID(id ObjectID) *Object {
	c := *o
	c.ID = id
	return &c
}

// String renders the object recursively using loose-object letters.
func (o *Object) String() string {
	return o.format(LooseName)
}

func (o *Object) format(loose func(*Object) string) string {
	if o.IsLoose() {
		return loose(o)
	}
	name := func(x *Object) string { return x.format(loose) }
	s := o.Construction.Name() + "(" + o.Arguments.Encode(name) + ")"
	if len(o.Construction.Outputs()) > 1 {
		s += "[" + strconv.Itoa(o.Output) + "]"
	}
	return s
}

// LooseName names loose objects A, B, C, ... by identity.
func LooseName(o *Object) string {
	if o.ID >= 0 && o.ID < 26 {
		return string(rune('A' + int(o.ID)))
	}
	return "X" + strconv.Itoa(int(o.ID))
}
