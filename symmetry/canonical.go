// SPDX-License-Identifier: MIT

package symmetry

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/geogen/core"
)

// encoder renders objects structurally with loose objects renamed by perm.
type encoder struct {
	perm Permutation
	memo map[*core.Object]string
}

func newEncoder(perm Permutation) *encoder {
	return &encoder{perm: perm, memo: make(map[*core.Object]string)}
}

func (e *encoder) encode(o *core.Object) string {
	if o.IsLoose() {
		return strconv.Itoa(e.perm[o.ID])
	}
	if s, ok := e.memo[o]; ok {
		return s
	}
	s := o.Construction.Name() + "[" + strconv.Itoa(o.Output) + "](" + o.Arguments.Encode(e.encode) + ")"
	e.memo[o] = s
	return s
}

// form returns the sorted encodings of cfg's constructed objects under perm.
func (e *encoder) form(cfg *core.Configuration) string {
	objs := cfg.ConstructedObjects()
	parts := make([]string, len(objs))
	for i, o := range objs {
		parts[i] = e.encode(o)
	}
	sort.Strings(parts)
	return cfg.Layout().String() + "|" + strings.Join(parts, ";")
}

// CanonicalForm returns the lexicographically smallest encoding of cfg over
// every element of g. Configurations related by an element of g, or
// differing only in the order of their constructed objects, share it.
//
// Errors: ErrBadPermutation if g does not act on cfg's loose objects.
//
// Complexity: O(|G| · (E + c log c)) for c constructed objects.
func CanonicalForm(cfg *core.Configuration, g Group) (string, error) {
	if g.degree != len(cfg.LooseObjects()) {
		return "", fmt.Errorf("symmetry: group of degree %d on %s: %w", g.degree, cfg.Layout(), ErrBadPermutation)
	}
	best := ""
	for i, p := range g.perms {
		f := newEncoder(p).form(cfg)
		if i == 0 || f < best {
			best = f
		}
	}
	return best, nil
}

// Apply returns the image of cfg under p: every loose reference i becomes a
// reference to loose object p[i]; constructed objects keep their identities.
// The loose objects must have pairwise-compatible types under p.
//
// Errors: ErrBadPermutation if p is not a type-preserving bijection of the
// loose positions; core errors if the image is malformed.
func Apply(cfg *core.Configuration, p Permutation) (*core.Configuration, error) {
	loose := cfg.LooseObjects()
	if !p.valid(len(loose)) {
		return nil, fmt.Errorf("symmetry: Apply(%s): %w", p, ErrBadPermutation)
	}
	for i, o := range loose {
		if loose[p[i]].Type != o.Type {
			return nil, fmt.Errorf("symmetry: Apply(%s): position %d changes type: %w", p, i, ErrBadPermutation)
		}
	}

	image := make(map[core.ObjectID]*core.Object, cfg.Len())
	for i, o := range loose {
		image[o.ID] = loose[p[i]]
	}
	out, err := core.NewConfiguration(cfg.Layout(), loose)
	if err != nil {
		return nil, err
	}
	for _, o := range cfg.ConstructedObjects() {
		c := *o
		c.Arguments = mapArguments(o.Arguments, image)
		n := &c
		image[o.ID] = n
		if out, err = out.With(n); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func mapArguments(as core.Arguments, image map[core.ObjectID]*core.Object) core.Arguments {
	out := make(core.Arguments, len(as))
	for i, a := range as {
		out[i] = mapArgument(a, image)
	}
	return out
}

func mapArgument(a core.Argument, image map[core.ObjectID]*core.Object) core.Argument {
	switch v := a.(type) {
	case core.ObjectArgument:
		return core.ObjectArgument{Object: image[v.Object.ID]}
	case core.SetArgument:
		items := make([]core.Argument, len(v.Items))
		for i, it := range v.Items {
			items[i] = mapArgument(it, image)
		}
		return core.SetArgument{Items: items}
	default:
		panic(fmt.Sprintf("symmetry: unknown argument variant %T", a))
	}
}

// Mapping is a symmetry of one configuration: a group element together with
// the object bijection it induces.
type Mapping struct {
	Perm    Permutation
	Objects map[core.ObjectID]core.ObjectID
}

// Map returns the image identity of id.
func (m Mapping) Map(id core.ObjectID) core.ObjectID { return m.Objects[id] }

// Stabilizer returns the non-identity elements of g that map cfg onto
// itself, with their induced object maps. The identity is omitted; an empty
// result means cfg has no symmetry left.
//
// Errors: ErrBadPermutation if g does not act on cfg's loose objects.
//
// Complexity: O(|G| · E).
func Stabilizer(cfg *core.Configuration, g Group) ([]Mapping, error) {
	loose := cfg.LooseObjects()
	if g.degree != len(loose) {
		return nil, fmt.Errorf("symmetry: group of degree %d on %s: %w", g.degree, cfg.Layout(), ErrBadPermutation)
	}
	objs := cfg.ConstructedObjects()
	ident := newEncoder(g.perms[0])
	byEncoding := make(map[string]core.ObjectID, len(objs))
	for _, o := range objs {
		byEncoding[ident.encode(o)] = o.ID
	}

	var out []Mapping
next:
	for _, p := range g.perms[1:] {
		m := Mapping{Perm: p, Objects: make(map[core.ObjectID]core.ObjectID, cfg.Len())}
		for i, o := range loose {
			m.Objects[o.ID] = loose[p[i]].ID
		}
		enc := newEncoder(p)
		for _, o := range objs {
			id, ok := byEncoding[enc.encode(o)]
			if !ok {
				continue next
			}
			m.Objects[o.ID] = id
		}
		out = append(out, m)
	}
	return out, nil
}
