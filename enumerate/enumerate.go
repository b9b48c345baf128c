// SPDX-License-Identifier: MIT

// Package enumerate lists the argument lists a construction can take in a
// configuration.
//
// Arguments walks a signature left to right:
//
//	Object(T)        one unused object of type T
//	Set{N x Elem}    an N-element subset of pairwise disjoint Elem choices
//
// No object appears twice in one argument list, and sets are produced as
// subsets, never as permutations, so Midpoint's Set{2 x Point} over a
// triangle yields exactly {A,B}, {A,C}, {B,C}.
//
// With WithMappings, an argument list is produced only if it is the
// smallest, by structural encoding, in its orbit under the given
// configuration symmetries; candidates that would only rebuild a symmetric
// copy of another candidate are never attempted.
//
// Sequences are finite, lazy at the argument-list level and restartable:
// ranging twice yields the same lists in the same order.
package enumerate

import (
	"iter"
	"strconv"

	"github.com/katalvlaran/geogen/core"
	"github.com/katalvlaran/geogen/symmetry"
)

// Pool provides the objects available to a construction, by type.
// *core.Configuration implements it.
type Pool interface {
	ObjectsOfType(t core.ObjectType) []*core.Object
}

type options struct {
	mappings []symmetry.Mapping
}

// Option configures Arguments.
type Option func(*options)

// WithMappings prunes argument lists that are not minimal under mappings.
// The mappings must be symmetries of the pool's configuration, as returned
// by symmetry.Stabilizer. Nil or empty mappings disable pruning.
// Complexity: O(1) time, O(1) space; each produced list then costs
// O(|mappings| · encoding).
func WithMappings(mappings []symmetry.Mapping) Option {
	return func(o *options) {
		// Shared, not copied: Stabilizer results are read-only.
		o.mappings = mappings
	}
}

// Arguments returns every valid argument list for sig over pool.
// A malformed or unmatchable signature yields an empty sequence.
//
// Complexity: O(number of produced lists · (|sig| + |mappings| · encoding)).
func Arguments(sig core.Signature, pool Pool, opts ...Option) iter.Seq[core.Arguments] {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return func(yield func(core.Arguments) bool) {
		if len(sig) == 0 || sig.Validate() != nil {
			return
		}
		used := make(map[*core.Object]bool)
		args := make(core.Arguments, len(sig))

		var walk func(i int) bool
		walk = func(i int) bool {
			if i == len(sig) {
				out := append(core.Arguments(nil), args...)
				if !o.minimal(out) {
					return true
				}
				return yield(out)
			}
			for _, c := range choices(sig[i], pool, used) {
				objs := c.Objects(nil)
				mark(used, objs, true)
				args[i] = c
				more := walk(i + 1)
				mark(used, objs, false)
				if !more {
					return false
				}
			}
			return true
		}
		walk(0)
	}
}

// Count returns the number of lists Arguments would produce.
func Count(sig core.Signature, pool Pool, opts ...Option) int {
	n := 0
	for range Arguments(sig, pool, opts...) {
		n++
	}
	return n
}

func mark(used map[*core.Object]bool, objs []*core.Object, v bool) {
	for _, x := range objs {
		if v {
			used[x] = true
		} else {
			delete(used, x)
		}
	}
}

// choices lists the arguments p can take without touching used objects.
func choices(p core.Parameter, pool Pool, used map[*core.Object]bool) []core.Argument {
	switch v := p.(type) {
	case core.ObjectParameter:
		var out []core.Argument
		for _, x := range pool.ObjectsOfType(v.Type) {
			if !used[x] {
				out = append(out, core.ObjectArgument{Object: x})
			}
		}
		return out
	case core.SetParameter:
		return subsets(choices(v.Elem, pool, used), v.N)
	default:
		return nil
	}
}

// subsets returns every n-element subset of elems whose members share no
// object, as SetArguments, members in elems order.
func subsets(elems []core.Argument, n int) []core.Argument {
	if n > len(elems) {
		return nil
	}
	objs := make([][]*core.Object, len(elems))
	for i, e := range elems {
		objs[i] = e.Objects(nil)
	}

	var (
		out   []core.Argument
		pick  = make([]int, 0, n)
		taken = make(map[*core.Object]bool)
		walk  func(from int)
	)
	walk = func(from int) {
		if len(pick) == n {
			items := make([]core.Argument, n)
			for i, j := range pick {
				items[i] = elems[j]
			}
			out = append(out, core.SetArgument{Items: items})
			return
		}
		for j := from; j <= len(elems)-(n-len(pick)); j++ {
			if overlaps(taken, objs[j]) {
				continue
			}
			mark(taken, objs[j], true)
			pick = append(pick, j)
			walk(j + 1)
			pick = pick[:len(pick)-1]
			mark(taken, objs[j], false)
		}
	}
	walk(0)
	return out
}

func overlaps(taken map[*core.Object]bool, objs []*core.Object) bool {
	for _, x := range objs {
		if taken[x] {
			return true
		}
	}
	return false
}

// minimal reports whether args encode no larger than any of their images.
func (o *options) minimal(args core.Arguments) bool {
	if len(o.mappings) == 0 {
		return true
	}
	key := args.Encode(core.IDName)
	for _, m := range o.mappings {
		img := args.Encode(func(x *core.Object) string {
			return strconv.Itoa(int(m.Map(x.ID)))
		})
		if img < key {
			return false
		}
	}
	return true
}
