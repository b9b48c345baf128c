// SPDX-License-Identifier: MIT

// Package construct resolves constructions to analytic routines.
//
// A Resolver maps a core.Construction to a Func that receives the values of
// the argument objects, flattened in signature order, and returns the values
// of all outputs. Predefined constructions map to fixed routines from the
// geometry package; composed constructions evaluate their template
// configuration step by step, resolving each template construction through
// the same Resolver.
//
// Geometric failures (degenerate input) surface as geometry.ErrDegenerate and
// are expected; every other error is a programming error.
package construct

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sync"

	"github.com/katalvlaran/geogen/core"
	"github.com/katalvlaran/geogen/geometry"
)

// Sentinel errors of the resolver.
var (
	// ErrUnknownConstruction indicates a predefined name with no routine.
	ErrUnknownConstruction = errors.New("construct: unknown construction")

	// ErrBadInput indicates argument values that do not match the signature.
	ErrBadInput = errors.New("construct: argument values do not match signature")

	// ErrNoRand indicates a randomized construction evaluated without an RNG.
	ErrNoRand = errors.New("construct: randomized construction needs an rng")
)

// Func evaluates a construction on flattened argument values and returns
// one value per output. rng serves randomized constructions only.
type Func func(args []geometry.Value, rng *rand.Rand) ([]geometry.Value, error)

// Resolver maps constructions to Funcs. Resolved composed constructions are
// cached. Safe for concurrent use.
type Resolver struct {
	mu    sync.RWMutex
	cache map[core.Construction]Func
}

// NewResolver returns a resolver over the predefined catalogue.
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[core.Construction]Func)}
}

// Resolve returns the Func realizing k. The returned Func validates the
// number and types of its inputs before evaluating.
//
// Errors: ErrUnknownConstruction for a predefined construction missing from
// the catalogue or declared with a signature or outputs other than the
// catalogue entry of that name; errors of nested template constructions for
// composed ones.
func (r *Resolver) Resolve(k core.Construction) (Func, error) {
	r.mu.RLock()
	fn, ok := r.cache[k]
	r.mu.RUnlock()
	if ok {
		return fn, nil
	}

	var err error
	switch v := k.(type) {
	case *core.Predefined:
		e, found := lookup(v.Name())
		if !found {
			return nil, unknown(v.Name())
		}
		if err = sameShape(v, e.construction); err != nil {
			return nil, err
		}
		fn = e.fn
	case *core.Composed:
		fn, err = r.composed(v)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("construct: construction variant %T: %w", k, ErrUnknownConstruction)
	}
	fn = checked(k.Name(), k.Signature().ObjectTypes(), fn)

	r.mu.Lock()
	r.cache[k] = fn
	r.mu.Unlock()
	return fn, nil
}

// composed resolves every template step once and returns the evaluator.
func (r *Resolver) composed(c *core.Composed) (Func, error) {
	tpl := c.Template()
	steps := tpl.ConstructedObjects()
	fns := make([]Func, len(steps))
	for i, o := range steps {
		f, err := r.Resolve(o.Construction)
		if err != nil {
			return nil, fmt.Errorf("construct: composed %s step %d: %w", c.Name(), i, err)
		}
		fns[i] = f
	}
	loose := tpl.LooseObjects()
	outputs := c.OutputObjects()

	return func(in []geometry.Value, rng *rand.Rand) ([]geometry.Value, error) {
		values := make(map[core.ObjectID]geometry.Value, tpl.Len())
		for i, o := range loose {
			values[o.ID] = in[i]
		}
		for i, o := range steps {
			args := o.Arguments.Objects()
			vals := make([]geometry.Value, len(args))
			for j, a := range args {
				vals[j] = values[a.ID]
			}
			out, err := fns[i](vals, rng)
			if err != nil {
				return nil, err
			}
			values[o.ID] = out[o.Output]
		}
		res := make([]geometry.Value, len(outputs))
		for i, o := range outputs {
			res[i] = values[o.ID]
		}
		return res, nil
	}, nil
}

// checked wraps fn with input validation.
func checked(name string, types []core.ObjectType, fn Func) Func {
	return func(in []geometry.Value, rng *rand.Rand) ([]geometry.Value, error) {
		if len(in) != len(types) {
			return nil, fmt.Errorf("construct: %s takes %d values, got %d: %w", name, len(types), len(in), ErrBadInput)
		}
		for i, v := range in {
			if v == nil || v.Type() != types[i] {
				return nil, fmt.Errorf("construct: %s value %d is not a %s: %w", name, i, types[i], ErrBadInput)
			}
		}
		return fn(in, rng)
	}
}

// sameShape checks a user-declared predefined construction against the
// catalogue entry of the same name: signature and outputs must agree.
func sameShape(declared, known *core.Predefined) error {
	if declared == known {
		return nil
	}
	if declared.Signature().String() != known.Signature().String() {
		return fmt.Errorf("construct: %q declared as %s, catalogue has %s: %w",
			declared.Name(), declared.Signature(), known.Signature(), ErrUnknownConstruction)
	}
	if !slices.Equal(declared.Outputs(), known.Outputs()) {
		return fmt.Errorf("construct: %q declared with outputs %v, catalogue has %v: %w",
			declared.Name(), declared.Outputs(), known.Outputs(), ErrUnknownConstruction)
	}
	return nil
}

func unknown(name string) error {
	return fmt.Errorf("construct: %q: %w", name, ErrUnknownConstruction)
}
