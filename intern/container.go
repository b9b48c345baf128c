// SPDX-License-Identifier: MIT

// Package intern hash-conses constructed objects.
//
// A Container assigns one identity to every structurally distinct
// constructed object of a run. The structural key of an object is its
// construction name, output index and arguments, where argument objects are
// encoded by their identity and set members are sorted by their own key:
//
//	Midpoint[0]({0,1})          Midpoint of loose A and B
//	Midpoint[0]({1,0})          the same key, sets are unordered
//	PointReflection[0](0,3)     reflection of A in object 3
//
// Two candidates built along different enumeration paths therefore share one
// canonical *core.Object. Identities grow strictly: loose objects keep
// 0..n-1, constructed objects get n, n+1, ... in interning order.
//
// Errors:
//
//	ErrNotLoose         - New was given a configuration with constructed objects.
//	ErrMissingIdentity  - a candidate argument was never interned here.
//
// Identity errors from Key and Intern also match core.ErrInvariant.
//
// Concurrency: all methods are safe for concurrent use.
package intern

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/katalvlaran/geogen/core"
)

// Sentinel errors.
var (
	// ErrNotLoose indicates an initial configuration holding constructed objects.
	ErrNotLoose = errors.New("intern: initial configuration must be fully loose")

	// ErrMissingIdentity indicates an argument object unknown to the container.
	ErrMissingIdentity = errors.New("intern: argument object has no identity")
)

// Container maps structural keys to canonical objects.
type Container struct {
	mu    sync.RWMutex
	loose []*core.Object
	byKey map[string]*core.Object
	byID  []*core.Object
}

// New returns a container seeded with the loose objects of initial.
//
// Errors: ErrNotLoose if initial is nil or holds constructed objects.
func New(initial *core.Configuration) (*Container, error) {
	if initial == nil || !initial.IsLoose() {
		return nil, fmt.Errorf("intern: New: %w", ErrNotLoose)
	}
	c := &Container{loose: initial.LooseObjects()}
	c.reset()
	return c, nil
}

func (c *Container) reset() {
	c.byKey = make(map[string]*core.Object)
	c.byID = append(make([]*core.Object, 0, 2*len(c.loose)), c.loose...)
}

// Key returns the structural key of a constructed object.
//
// Errors: ErrMissingIdentity (with core.ErrInvariant) if an argument has no identity.
//
// Complexity: O(a log a) for a referenced argument objects.
func Key(o *core.Object) (string, error) {
	if o == nil || o.IsLoose() {
		return "", fmt.Errorf("intern: Key: constructed object required: %w", core.ErrInvariant)
	}
	for _, a := range o.Arguments.Objects() {
		if a == nil || a.ID == core.NoID {
			return "", fmt.Errorf("intern: Key(%s): %w", o.Construction.Name(), errors.Join(ErrMissingIdentity, core.ErrInvariant))
		}
	}
	return o.Construction.Name() + "[" + strconv.Itoa(o.Output) + "](" + o.Arguments.Encode(core.IDName) + ")", nil
}

// Intern returns the canonical object structurally equal to candidate.
// created reports whether the call assigned a new identity. Interning the
// same structure twice returns the same pointer and does not grow the
// container.
//
// Errors (all with core.ErrInvariant):
//   - ErrMissingIdentity if an argument is not an object of this container;
//   - a candidate carrying an identity the container never assigned.
//
// Complexity: O(key) amortized.
func (c *Container) Intern(candidate *core.Object) (obj *core.Object, created bool, err error) {
	key, err := Key(candidate)
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range candidate.Arguments.Objects() {
		if a.ID < 0 || int(a.ID) >= len(c.byID) || c.byID[a.ID] != a {
			return nil, false, fmt.Errorf("intern: Intern(%s): argument %d: %w",
				candidate.Construction.Name(), a.ID, errors.Join(ErrMissingIdentity, core.ErrInvariant))
		}
	}
	if got, ok := c.byKey[key]; ok {
		return got, false, nil
	}
	if candidate.ID != core.NoID {
		return nil, false, fmt.Errorf("intern: Intern(%s): foreign identity %d: %w", key, candidate.ID, core.ErrInvariant)
	}
	obj = candidate.WithID(core.ObjectID(len(c.byID)))
	c.byKey[key] = obj
	c.byID = append(c.byID, obj)
	return obj, true, nil
}

// Object returns the object with identity id.
func (c *Container) Object(id core.ObjectID) (*core.Object, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id < 0 || int(id) >= len(c.byID) {
		return nil, false
	}
	return c.byID[id], true
}

// Len returns the number of objects, loose ones included.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// Reset forgets every constructed object; identities restart after the
// loose objects.
func (c *Container) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}
