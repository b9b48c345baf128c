// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Parameter is one entry of a construction signature: an ObjectParameter or
// a SetParameter. Closed set of variants.
type Parameter interface {
	isParameter()
	String() string
}

// ObjectParameter expects a single object of Type.
type ObjectParameter struct {
	Type ObjectType
}

// SetParameter expects an unordered set of N arguments shaped like Elem.
type SetParameter struct {
	N    int
	Elem Parameter
}

func (ObjectParameter) isParameter() {}
func (SetParameter) isParameter()    {}

// String implements fmt.Stringer.
func (p ObjectParameter) String() string { return p.Type.String() }

// String implements fmt.Stringer.
func (p SetParameter) String() string {
	return "{" + strconv.Itoa(p.N) + "x" + p.Elem.String() + "}"
}

// Signature is the ordered parameter list of a construction.
type Signature []Parameter

// SetOf is shorthand for a SetParameter of n objects of type t.
func SetOf(n int, t ObjectType) SetParameter {
	return SetParameter{N: n, Elem: ObjectParameter{Type: t}}
}

// String implements fmt.Stringer.
func (s Signature) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ObjectTypes flattens the signature into the types of the objects it
// consumes, in argument order.
func (s Signature) ObjectTypes() []ObjectType {
	var out []ObjectType
	for _, p := range s {
		out = appendParamTypes(out, p)
	}
	return out
}

func appendParamTypes(dst []ObjectType, p Parameter) []ObjectType {
	switch v := p.(type) {
	case ObjectParameter:
		return append(dst, v.Type)
	case SetParameter:
		for i := 0; i < v.N; i++ {
			dst = appendParamTypes(dst, v.Elem)
		}
		return dst
	default:
		panic(fmt.Sprintf("core: unknown parameter variant %T", p))
	}
}

// Validate reports whether the signature is well formed: known types and
// set sizes of at least one.
func (s Signature) Validate() error {
	for i, p := range s {
		if err := validateParam(p); err != nil {
			return fmt.Errorf("parameter %d: %w", i, err)
		}
	}
	return nil
}

func validateParam(p Parameter) error {
	switch v := p.(type) {
	case ObjectParameter:
		if !v.Type.Valid() {
			return fmt.Errorf("unknown object type %d: %w", v.Type, ErrArgumentMismatch)
		}
		return nil
	case SetParameter:
		if v.N < 1 || v.Elem == nil {
			return fmt.Errorf("set of %d: %w", v.N, ErrArgumentMismatch)
		}
		return validateParam(v.Elem)
	default:
		return fmt.Errorf("unknown parameter variant %T: %w", p, ErrArgumentMismatch)
	}
}

// Matches checks that args have exactly the shape of the signature and
// that no object is repeated across the whole list.
// Complexity: O(total objects).
func (s Signature) Matches(args Arguments) error {
	if len(args) != len(s) {
		return fmt.Errorf("want %d arguments, got %d: %w", len(s), len(args), ErrArgumentMismatch)
	}
	for i := range s {
		if err := matchParam(s[i], args[i]); err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
	}
	seen := make(map[*Object]struct{})
	for _, o := range args.Objects() {
		if _, dup := seen[o]; dup {
			return fmt.Errorf("object %s repeated: %w", IDName(o), ErrArgumentMismatch)
		}
		seen[o] = struct{}{}
	}
	return nil
}

func matchParam(p Parameter, a Argument) error {
	switch pv := p.(type) {
	case ObjectParameter:
		av, ok := a.(ObjectArgument)
		if !ok || av.Object == nil {
			return fmt.Errorf("want object of type %s: %w", pv.Type, ErrArgumentMismatch)
		}
		if av.Object.Type != pv.Type {
			return fmt.Errorf("want %s, got %s: %w", pv.Type, av.Object.Type, ErrArgumentMismatch)
		}
		return nil
	case SetParameter:
		av, ok := a.(SetArgument)
		if !ok || len(av.Items) != pv.N {
			return fmt.Errorf("want set of %d: %w", pv.N, ErrArgumentMismatch)
		}
		for _, it := range av.Items {
			if err := matchParam(pv.Elem, it); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown parameter variant %T: %w", p, ErrArgumentMismatch)
	}
}
