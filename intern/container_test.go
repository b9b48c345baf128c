// SPDX-License-Identifier: MIT

package intern_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geogen/construct"
	"github.com/katalvlaran/geogen/core"
	"github.com/katalvlaran/geogen/intern"
)

var midpoint = construct.MustByName(construct.NameMidpoint)[0]

func pair(a, b *core.Object) core.Arguments {
	return core.Arguments{core.SetArgument{Items: []core.Argument{
		core.ObjectArgument{Object: a}, core.ObjectArgument{Object: b},
	}}}
}

func candidate(t *testing.T, a, b *core.Object) *core.Object {
	t.Helper()
	o, err := core.NewConstructed(midpoint, pair(a, b), 0)
	require.NoError(t, err)
	return o
}

func setup(t *testing.T) (*intern.Container, []*core.Object) {
	t.Helper()
	cfg := core.NewLooseConfiguration(core.Triangle)
	c, err := intern.New(cfg)
	require.NoError(t, err)
	return c, cfg.LooseObjects()
}

func TestIntern_Idempotent(t *testing.T) {
	c, l := setup(t)
	require.Equal(t, 3, c.Len())

	first, created, err := c.Intern(candidate(t, l[0], l[1]))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, core.ObjectID(3), first.ID)

	second, created, err := c.Intern(candidate(t, l[0], l[1]))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, first, second)
	assert.Equal(t, 4, c.Len())

	// Reinterning the canonical object itself is a hit as well.
	third, created, err := c.Intern(first)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, first, third)
}

func TestIntern_SetOrderIrrelevant(t *testing.T) {
	c, l := setup(t)
	ab, _, err := c.Intern(candidate(t, l[0], l[1]))
	require.NoError(t, err)
	ba, created, err := c.Intern(candidate(t, l[1], l[0]))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, ab, ba)

	k1, err := intern.Key(candidate(t, l[0], l[1]))
	require.NoError(t, err)
	k2, err := intern.Key(candidate(t, l[1], l[0]))
	require.NoError(t, err)
	assert.Equal(t, "Midpoint[0]({0,1})", k1)
	assert.Equal(t, k1, k2)
}

func TestIntern_IdentitiesStrictlyIncrease(t *testing.T) {
	c, l := setup(t)
	ab, _, err := c.Intern(candidate(t, l[0], l[1]))
	require.NoError(t, err)
	ac, _, err := c.Intern(candidate(t, l[0], l[2]))
	require.NoError(t, err)
	nested, _, err := c.Intern(candidate(t, ab, ac))
	require.NoError(t, err)

	assert.Less(t, ab.ID, ac.ID)
	assert.Less(t, ac.ID, nested.ID)
	got, ok := c.Object(nested.ID)
	require.True(t, ok)
	assert.Same(t, nested, got)
	_, ok = c.Object(99)
	assert.False(t, ok)
}

func TestIntern_MissingIdentity(t *testing.T) {
	c, l := setup(t)
	stray := candidate(t, l[0], l[1]) // never interned, ID is NoID
	_, _, err := c.Intern(candidate(t, stray, l[2]))
	assert.ErrorIs(t, err, intern.ErrMissingIdentity)
	assert.ErrorIs(t, err, core.ErrInvariant)

	// An identity assigned by another container is not ours.
	other, ol := setup(t)
	foreign, _, err := other.Intern(candidate(t, ol[0], ol[1]))
	require.NoError(t, err)
	_, _, err = c.Intern(candidate(t, foreign, l[2]))
	assert.ErrorIs(t, err, intern.ErrMissingIdentity)
}

func TestNew_RejectsConstructedObjects(t *testing.T) {
	cfg := core.NewLooseConfiguration(core.TwoPoints)
	l := cfg.LooseObjects()
	o, err := core.NewConstructed(midpoint, pair(l[0], l[1]), 0)
	require.NoError(t, err)
	ext, err := cfg.With(o.WithID(2))
	require.NoError(t, err)

	_, err = intern.New(ext)
	assert.ErrorIs(t, err, intern.ErrNotLoose)
	_, err = intern.New(nil)
	assert.ErrorIs(t, err, intern.ErrNotLoose)
}

func TestReset_RestartsIdentities(t *testing.T) {
	c, l := setup(t)
	before, _, err := c.Intern(candidate(t, l[0], l[1]))
	require.NoError(t, err)
	c.Reset()
	assert.Equal(t, 3, c.Len())

	after, created, err := c.Intern(candidate(t, l[1], l[2]))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, before.ID, after.ID)
}

// TestIntern_Concurrent interns the same three structures from many
// goroutines; every structure must get exactly one identity.
func TestIntern_Concurrent(t *testing.T) {
	c, l := setup(t)
	const workers = 64
	got := make([][3]*core.Object, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			pairs := [3][2]int{{0, 1}, {1, 2}, {2, 0}}
			for i, p := range pairs {
				// Alternate member order to exercise set sorting.
				a, b := l[p[0]], l[p[1]]
				if w%2 == 1 {
					a, b = b, a
				}
				o, err := core.NewConstructed(midpoint, pair(a, b), 0)
				if err != nil {
					t.Error(err)
					return
				}
				obj, _, err := c.Intern(o)
				if err != nil {
					t.Error(err)
					return
				}
				got[w][i] = obj
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, 6, c.Len())
	for w := 1; w < workers; w++ {
		for i := range got[w] {
			assert.Same(t, got[0][i], got[w][i])
		}
	}
}
