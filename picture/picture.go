// SPDX-License-Identifier: MIT

package picture

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/geogen/construct"
	"github.com/katalvlaran/geogen/core"
	"github.com/katalvlaran/geogen/geometry"
)

// Status classifies the result of evaluating an object in a picture.
type Status int

const (
	// Constructed: the object has a value not present in the picture.
	Constructed Status = iota
	// Equal: the value coincides with the object reported in Outcome.Equal.
	Equal
	// Failed: the construction is degenerate for the picture's values.
	Failed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Constructed:
		return "constructed"
	case Equal:
		return "equal"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is the comparable result of one evaluation. Equal is core.NoID
// unless Status == Equal.
type Outcome struct {
	Status Status
	Equal  core.ObjectID
}

// Picture is one numeric realization of a configuration.
type Picture struct {
	values map[core.ObjectID]geometry.Value
	byType [3][]core.ObjectID
	rng    *rand.Rand
	eps    float64
}

func newPicture(rng *rand.Rand, eps float64) *Picture {
	return &Picture{values: make(map[core.ObjectID]geometry.Value), rng: rng, eps: eps}
}

// Value returns the value of the object with identity id.
func (p *Picture) Value(id core.ObjectID) (geometry.Value, bool) {
	v, ok := p.values[id]
	return v, ok
}

// Len returns the number of realized objects.
func (p *Picture) Len() int { return len(p.values) }

// Find returns the object whose value equals v within the tolerance.
// Complexity: O(objects of v's type).
func (p *Picture) Find(v geometry.Value) (core.ObjectID, bool) {
	t := v.Type()
	if !t.Valid() {
		return core.NoID, false
	}
	for _, id := range p.byType[t] {
		if p.values[id].Equal(v, p.eps) {
			return id, true
		}
	}
	return core.NoID, false
}

// Evaluate computes the value of the constructed object o with fn, without
// inserting it. The value is nil unless the status is Constructed.
//
// Errors: core.ErrInvariant (wrapped) if o has no identity, is already
// realized, references an unrealized argument, or fn produced a value of a
// type other than o.Type; non-degeneracy errors of fn are also invariant
// violations.
func (p *Picture) Evaluate(o *core.Object, fn construct.Func) (Outcome, geometry.Value, error) {
	if o == nil || o.IsLoose() || o.ID == core.NoID {
		return Outcome{}, nil, fmt.Errorf("picture: Evaluate: interned constructed object required: %w", core.ErrInvariant)
	}
	if _, dup := p.values[o.ID]; dup {
		return Outcome{}, nil, fmt.Errorf("picture: Evaluate(%s): object %d already realized: %w", o, o.ID, core.ErrInvariant)
	}
	args := o.Arguments.Objects()
	in := make([]geometry.Value, len(args))
	for i, a := range args {
		v, ok := p.values[a.ID]
		if !ok {
			return Outcome{}, nil, fmt.Errorf("picture: Evaluate(%s): argument %d not realized: %w", o, a.ID, core.ErrInvariant)
		}
		in[i] = v
	}

	out, err := fn(in, p.rng)
	if errors.Is(err, geometry.ErrDegenerate) {
		return Outcome{Status: Failed, Equal: core.NoID}, nil, nil
	}
	if err != nil {
		return Outcome{}, nil, fmt.Errorf("picture: Evaluate(%s): %w", o, errors.Join(err, core.ErrInvariant))
	}
	if o.Output >= len(out) || out[o.Output] == nil || out[o.Output].Type() != o.Type {
		return Outcome{}, nil, fmt.Errorf("picture: Evaluate(%s): construction did not produce a %s: %w", o, o.Type, core.ErrInvariant)
	}

	v := out[o.Output]
	if id, ok := p.Find(v); ok {
		return Outcome{Status: Equal, Equal: id}, nil, nil
	}
	return Outcome{Status: Constructed, Equal: core.NoID}, v, nil
}

// Add evaluates o and inserts its value when the outcome is Constructed.
// Equal and Failed outcomes leave the picture unchanged.
func (p *Picture) Add(o *core.Object, fn construct.Func) (Outcome, error) {
	out, v, err := p.Evaluate(o, fn)
	if err != nil || out.Status != Constructed {
		return out, err
	}
	p.insert(o.ID, v)
	return out, nil
}

func (p *Picture) insert(id core.ObjectID, v geometry.Value) {
	p.values[id] = v
	p.byType[v.Type()] = append(p.byType[v.Type()], id)
}

// clone copies the values; the copy draws from rng.
func (p *Picture) clone(rng *rand.Rand) *Picture {
	c := newPicture(rng, p.eps)
	for id, v := range p.values {
		c.values[id] = v
	}
	for t := range p.byType {
		c.byType[t] = append([]core.ObjectID(nil), p.byType[t]...)
	}
	return c
}
