// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Argument is a construction argument: either an ObjectArgument or a
// SetArgument. The set of variants is closed; switch on the concrete type.
type Argument interface {
	isArgument()
	// Objects appends every object referenced by the argument to dst, depth-first.
	Objects(dst []*Object) []*Object
}

// ObjectArgument wraps exactly one object.
type ObjectArgument struct {
	Object *Object
}

// SetArgument is an unordered collection of arguments of uniform shape.
// The order of Items carries no meaning; encodings sort members.
type SetArgument struct {
	Items []Argument
}

func (ObjectArgument) isArgument() {}
func (SetArgument) isArgument()    {}

// Objects implements Argument.
func (a ObjectArgument) Objects(dst []*Object) []*Object {
	return append(dst, a.Object)
}

// Objects implements Argument.
func (a SetArgument) Objects(dst []*Object) []*Object {
	for _, it := range a.Items {
		dst = it.Objects(dst)
	}
	return dst
}

// Arguments is the ordered argument list of a constructed object.
type Arguments []Argument

// Objects returns all referenced objects flattened in argument order.
// Complexity: O(total objects).
func (as Arguments) Objects() []*Object {
	var out []*Object
	for _, a := range as {
		out = a.Objects(out)
	}
	return out
}

// Encode renders the arguments with name supplying the encoding of each
// referenced object. Set members are sorted by their own encoding, so two
// sets holding the same members encode identically whatever their order.
func (as Arguments) Encode(name func(*Object) string) string {
	var sb strings.Builder
	for i, a := range as {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(EncodeArgument(a, name))
	}
	return sb.String()
}

// EncodeArgument renders one argument; see Arguments.Encode.
func EncodeArgument(a Argument, name func(*Object) string) string {
	switch v := a.(type) {
	case ObjectArgument:
		return name(v.Object)
	case SetArgument:
		parts := make([]string, len(v.Items))
		for i, it := range v.Items {
			parts[i] = EncodeArgument(it, name)
		}
		sort.Strings(parts)
		return "{" + strings.Join(parts, ",") + "}"
	default:
		panic(fmt.Sprintf("core: unknown argument variant %T", a))
	}
}

// IDName encodes an object by its identity; the interning encoding.
func IDName(o *Object) string {
	return strconv.Itoa(int(o.ID))
}
