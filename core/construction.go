// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"fmt"
)

// Construction is a geometric operation applicable to a configuration:
// either *Predefined or *Composed. Names must be unique within one run.
type Construction interface {
	isConstruction()
	// Name identifies the construction in encodings and output.
	Name() string
	// Signature is the ordered parameter shape the construction expects.
	Signature() Signature
	// Outputs lists the types of the produced objects, indexed by output index.
	Outputs() []ObjectType
}

// Predefined is an engine-known construction resolved to a fixed analytic
// routine by name.
type Predefined struct {
	name      string
	signature Signature
	outputs   []ObjectType
}

// NewPredefined declares a predefined construction.
// Panics on an empty name, a malformed signature or no outputs: predefined
// constructions are declared in code, so these are programmer errors.
func NewPredefined(name string, sig Signature, outputs ...ObjectType) *Predefined {
	if name == "" {
		panic("core: NewPredefined with empty name")
	}
	if err := sig.Validate(); err != nil {
		panic(fmt.Sprintf("core: NewPredefined(%s): %v", name, err))
	}
	if len(outputs) == 0 {
		panic(fmt.Sprintf("core: NewPredefined(%s) without outputs", name))
	}
	return &Predefined{name: name, signature: sig, outputs: outputs}
}

func (*Predefined) isConstruction() {}

// Name implements Construction.
func (p *Predefined) Name() string { return p.name }

// Signature implements Construction.
func (p *Predefined) Signature() Signature { return p.signature }

// Outputs implements Construction.
func (p *Predefined) Outputs() []ObjectType { return p.outputs }

// Composed is a user-defined construction: a template configuration whose
// loose objects are bound to the flattened arguments and whose listed
// objects are the outputs.
type Composed struct {
	name      string
	signature Signature
	template  *Configuration
	outputs   []*Object
}

// NewComposed validates and declares a composed construction.
//
// Contract:
//   - sig must be well formed and its flattened types must equal the types of
//     the template's loose objects, in order.
//   - every output must be an object of the template.
//
// Errors: ErrBadTemplate (wrapped) on any violation.
func NewComposed(name string, sig Signature, template *Configuration, outputs ...ObjectID) (*Composed, error) {
	if name == "" || template == nil || len(outputs) == 0 {
		return nil, fmt.Errorf("NewComposed(%q): name, template and outputs are required: %w", name, ErrBadTemplate)
	}
	if err := sig.Validate(); err != nil {
		return nil, fmt.Errorf("NewComposed(%s): %w", name, errors.Join(err, ErrBadTemplate))
	}
	want := sig.ObjectTypes()
	loose := template.LooseObjects()
	if len(want) != len(loose) {
		return nil, fmt.Errorf("NewComposed(%s): signature takes %d objects, template has %d loose: %w",
			name, len(want), len(loose), ErrBadTemplate)
	}
	for i, o := range loose {
		if o.Type != want[i] {
			return nil, fmt.Errorf("NewComposed(%s): loose %d is %s, signature wants %s: %w",
				name, i, o.Type, want[i], ErrBadTemplate)
		}
	}
	outs := make([]*Object, len(outputs))
	for i, id := range outputs {
		o, ok := template.Object(id)
		if !ok {
			return nil, fmt.Errorf("NewComposed(%s): output %d not in template: %w", name, id, ErrBadTemplate)
		}
		outs[i] = o
	}
	return &Composed{name: name, signature: sig, template: template, outputs: outs}, nil
}

func (*Composed) isConstruction() {}

// Name implements Construction.
func (c *Composed) Name() string { return c.name }

// Signature implements Construction.
func (c *Composed) Signature() Signature { return c.signature }

// Outputs implements Construction.
func (c *Composed) Outputs() []ObjectType {
	types := make([]ObjectType, len(c.outputs))
	for i, o := range c.outputs {
		types[i] = o.Type
	}
	return types
}

// Template returns the configuration the construction is defined by.
func (c *Composed) Template() *Configuration { return c.template }

// OutputObjects returns the template objects produced, by output index.
func (c *Composed) OutputObjects() []*Object { return c.outputs }
