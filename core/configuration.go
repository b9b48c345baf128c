// SPDX-License-Identifier: MIT

package core

import (
	"fmt"
	"strings"
)

// Configuration is a set of loose objects arranged by a Layout plus an
// ordered list of constructed objects. Every argument of a constructed object
// is a loose object or an earlier constructed object of the same
// configuration.
//
// Configurations are immutable: With returns an extended copy, so a
// configuration may be shared freely between layers and goroutines.
type Configuration struct {
	layout      Layout
	loose       []*Object
	constructed []*Object
	byID        map[ObjectID]*Object
	byType      [objectTypeCount][]*Object
	maxID       ObjectID
}

// NewLooseConfiguration returns the configuration holding only the loose
// objects of layout, identified 0..n-1 by position.
// Panics on an unknown layout (programmer error).
func NewLooseConfiguration(layout Layout) *Configuration {
	if !layout.Valid() {
		panic(fmt.Sprintf("core: NewLooseConfiguration(%d): unknown layout", layout))
	}
	types := layout.ObjectTypes()
	loose := make([]*Object, len(types))
	for i, t := range types {
		loose[i] = NewLoose(ObjectID(i), t)
	}
	c, _ := NewConfiguration(layout, loose)
	return c
}

// NewConfiguration builds a configuration from explicit loose objects.
//
// Errors: ErrLayoutMismatch if the loose objects do not have the layout's
// types in order or are not identified 0..n-1.
func NewConfiguration(layout Layout, loose []*Object) (*Configuration, error) {
	if !layout.Valid() {
		return nil, fmt.Errorf("NewConfiguration: unknown layout %d: %w", layout, ErrLayoutMismatch)
	}
	types := layout.ObjectTypes()
	if len(loose) != len(types) {
		return nil, fmt.Errorf("NewConfiguration(%s): want %d loose objects, got %d: %w",
			layout, len(types), len(loose), ErrLayoutMismatch)
	}
	c := &Configuration{
		layout: layout,
		loose:  make([]*Object, len(loose)),
		byID:   make(map[ObjectID]*Object, len(loose)),
		maxID:  NoID,
	}
	for i, o := range loose {
		if o == nil || !o.IsLoose() || o.Type != types[i] || o.ID != ObjectID(i) {
			return nil, fmt.Errorf("NewConfiguration(%s): bad loose object at %d: %w", layout, i, ErrLayoutMismatch)
		}
		c.loose[i] = o
		c.index(o)
	}
	return c, nil
}

func (c *Configuration) index(o *Object) {
	c.byID[o.ID] = o
	c.byType[o.Type] = append(c.byType[o.Type], o)
	if o.ID > c.maxID {
		c.maxID = o.ID
	}
}

// With returns a copy of c extended by the interned constructed object o.
//
// Errors (all wrap ErrInvariant):
//   - o is loose or has no identity;
//   - o is already part of c;
//   - an argument of o is not an object of c;
//   - an argument identity is not smaller than o's identity (acyclicity).
//
// Complexity: O(|c| + args).
func (c *Configuration) With(o *Object) (*Configuration, error) {
	if o == nil || o.IsLoose() {
		return nil, fmt.Errorf("With: constructed object required: %w", ErrInvariant)
	}
	if o.ID == NoID {
		return nil, fmt.Errorf("With(%s): object has no identity: %w", o, ErrInvariant)
	}
	if _, dup := c.byID[o.ID]; dup {
		return nil, fmt.Errorf("With(%s): object %d already present: %w", o, o.ID, ErrInvariant)
	}
	for _, a := range o.Arguments.Objects() {
		if got, ok := c.byID[a.ID]; !ok || got != a {
			return nil, fmt.Errorf("With(%s): argument %d outside configuration: %w", o, a.ID, ErrInvariant)
		}
		if a.ID >= o.ID {
			return nil, fmt.Errorf("With(%s): argument %d not older than %d: %w", o, a.ID, o.ID, ErrInvariant)
		}
	}

	n := &Configuration{
		layout:      c.layout,
		loose:       c.loose,
		constructed: make([]*Object, len(c.constructed), len(c.constructed)+1),
		byID:        make(map[ObjectID]*Object, len(c.byID)+1),
		maxID:       c.maxID,
	}
	copy(n.constructed, c.constructed)
	n.constructed = append(n.constructed, o)
	for id, x := range c.byID {
		n.byID[id] = x
	}
	for t := range c.byType {
		n.byType[t] = append([]*Object(nil), c.byType[t]...)
	}
	n.index(o)
	return n, nil
}

// Layout returns the loose-object layout.
func (c *Configuration) Layout() Layout { return c.layout }

// LooseObjects returns the loose objects by layout position. Do not modify.
func (c *Configuration) LooseObjects() []*Object { return c.loose }

// ConstructedObjects returns the constructed objects in order. Do not modify.
func (c *Configuration) ConstructedObjects() []*Object { return c.constructed }

// Objects returns loose objects followed by constructed ones.
func (c *Configuration) Objects() []*Object {
	out := make([]*Object, 0, len(c.loose)+len(c.constructed))
	out = append(out, c.loose...)
	return append(out, c.constructed...)
}

// ObjectsOfType returns the objects of type t in order of identity. Do not modify.
func (c *Configuration) ObjectsOfType(t ObjectType) []*Object {
	if !t.Valid() {
		return nil
	}
	return c.byType[t]
}

// Object looks an object of c up by identity.
func (c *Configuration) Object(id ObjectID) (*Object, bool) {
	o, ok := c.byID[id]
	return o, ok
}

// Contains reports whether the object with identity id belongs to c.
func (c *Configuration) Contains(id ObjectID) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the total number of objects.
func (c *Configuration) Len() int { return len(c.byID) }

// IsLoose reports whether c holds no constructed objects.
func (c *Configuration) IsLoose() bool { return len(c.constructed) == 0 }

// LastObject returns the most recently added object, or nil for a loose configuration.
func (c *Configuration) LastObject() *Object {
	if len(c.constructed) == 0 {
		return nil
	}
	return c.constructed[len(c.constructed)-1]
}

// String renders the configuration one object per line, loose objects
// named A, B, C, ...
func (c *Configuration) String() string {
	var sb strings.Builder
	sb.WriteString(c.layout.String())
	sb.WriteString(": ")
	for i, o := range c.loose {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(LooseName(o))
	}
	for _, o := range c.constructed {
		sb.WriteString("\n  ")
		sb.WriteString(o.String())
	}
	return sb.String()
}
