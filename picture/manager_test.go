// SPDX-License-Identifier: MIT

package picture_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geogen/construct"
	"github.com/katalvlaran/geogen/core"
	"github.com/katalvlaran/geogen/geometry"
	"github.com/katalvlaran/geogen/picture"
)

// collinear is a degenerate triangle: no circumcenter exists.
var collinear = []geometry.Value{
	geometry.Point{X: 0, Y: 0}, geometry.Point{X: 1, Y: 1}, geometry.Point{X: 2, Y: 2},
}

// countingSampler returns the collinear triangle for draws selected by bad
// and generic triangles otherwise. Draws are numbered from 0.
func countingSampler(bad func(n int) bool) picture.Sampler {
	n := 0
	return picture.SamplerFunc(func(l core.Layout, rng *rand.Rand) ([]geometry.Value, error) {
		k := n
		n++
		if bad(k) {
			return collinear, nil
		}
		return picture.DefaultSampler{}.Sample(l, rng)
	})
}

// constructed builds an object with an explicit identity, as the interning
// container would.
func constructed(t *testing.T, name string, id core.ObjectID, args core.Arguments) *core.Object {
	t.Helper()
	o, err := core.NewConstructed(construct.MustByName(name)[0], args, 0)
	require.NoError(t, err)
	return o.WithID(id)
}

func set(objs ...*core.Object) core.SetArgument {
	items := make([]core.Argument, len(objs))
	for i, o := range objs {
		items[i] = core.ObjectArgument{Object: o}
	}
	return core.SetArgument{Items: items}
}

func obj(o *core.Object) core.ObjectArgument { return core.ObjectArgument{Object: o} }

func triangle() (*core.Configuration, *core.Object, *core.Object, *core.Object) {
	cfg := core.NewLooseConfiguration(core.Triangle)
	l := cfg.LooseObjects()
	return cfg, l[0], l[1], l[2]
}

func TestNewManager_RealizesLooseObjects(t *testing.T) {
	cfg, _, _, _ := triangle()
	m, err := picture.NewManager(cfg, nil, picture.WithPictures(4), picture.WithSeed(11))
	require.NoError(t, err)
	require.Equal(t, 4, m.Len())
	for i := 0; i < m.Len(); i++ {
		assert.Equal(t, 3, m.Picture(i).Len())
	}

	// Same seed, same pictures; pictures differ from one another.
	again, err := picture.NewManager(cfg, nil, picture.WithPictures(4), picture.WithSeed(11))
	require.NoError(t, err)
	a0, _ := m.Picture(0).Value(0)
	b0, _ := again.Picture(0).Value(0)
	a1, _ := m.Picture(1).Value(0)
	assert.True(t, a0.Equal(b0, 0))
	assert.False(t, a0.Equal(a1, 1e-9))
}

func TestConstruct_MidpointExtendsChildOnly(t *testing.T) {
	cfg, a, b, _ := triangle()
	m, err := picture.NewManager(cfg, nil, picture.WithSeed(5))
	require.NoError(t, err)

	mid := constructed(t, construct.NameMidpoint, 3, core.Arguments{set(a, b)})
	out, child, err := m.Construct(mid)
	require.NoError(t, err)
	assert.Equal(t, picture.Constructed, out.Status)
	require.NotNil(t, child)
	assert.True(t, child.Configuration().Contains(3))
	assert.False(t, m.Configuration().Contains(3))

	for i := 0; i < child.Len(); i++ {
		_, ok := m.Picture(i).Value(3)
		assert.False(t, ok, "parent picture %d extended", i)

		v, ok := child.Picture(i).Value(3)
		require.True(t, ok)
		pa, _ := child.Picture(i).Value(0)
		pb, _ := child.Picture(i).Value(1)
		want, err := geometry.Midpoint(pa.(geometry.Point), pb.(geometry.Point))
		require.NoError(t, err)
		assert.True(t, v.Equal(want, 1e-9))
	}
}

// A reflection of A in the midpoint of AB is B in every picture.
func TestConstruct_EqualToExistingObject(t *testing.T) {
	cfg, a, b, _ := triangle()
	m, err := picture.NewManager(cfg, nil, picture.WithSeed(9))
	require.NoError(t, err)

	mid := constructed(t, construct.NameMidpoint, 3, core.Arguments{set(a, b)})
	_, child, err := m.Construct(mid)
	require.NoError(t, err)

	refl := constructed(t, construct.NamePointReflection, 4, core.Arguments{obj(a), obj(mid)})
	out, grand, err := child.Construct(refl)
	require.NoError(t, err)
	assert.Equal(t, picture.Outcome{Status: picture.Equal, Equal: b.ID}, out)
	assert.Nil(t, grand)
	assert.Zero(t, child.Stats().Inconsistencies)
}

func TestConstruct_UnanimousFailure(t *testing.T) {
	cfg, a, b, _ := triangle()
	m, err := picture.NewManager(cfg, nil)
	require.NoError(t, err)

	mid := constructed(t, construct.NameMidpoint, 3, core.Arguments{set(a, b)})
	_, child, err := m.Construct(mid)
	require.NoError(t, err)

	// A, B and their midpoint are always collinear.
	cc := constructed(t, construct.NameCircumcenter, 4, core.Arguments{set(a, b, mid)})
	out, grand, err := child.Construct(cc)
	require.NoError(t, err)
	assert.Equal(t, picture.Failed, out.Status)
	assert.Nil(t, grand)
}

// One accidental collinear draw is repaired by reconstructing only the
// outlier picture.
func TestConstruct_ReconstructsOutlierOnly(t *testing.T) {
	cfg, a, b, c := triangle()
	m, err := picture.NewManager(cfg, nil,
		picture.WithPictures(5),
		picture.WithSeed(3),
		picture.WithSampler(countingSampler(func(n int) bool { return n == 1 })))
	require.NoError(t, err)

	before := make([]*picture.Picture, m.Len())
	for i := range before {
		before[i] = m.Picture(i)
	}

	cc := constructed(t, construct.NameCircumcenter, 3, core.Arguments{set(a, b, c)})
	out, child, err := m.Construct(cc)
	require.NoError(t, err)
	assert.Equal(t, picture.Constructed, out.Status)
	require.NotNil(t, child)

	for i := range before {
		if i == 1 {
			assert.NotSame(t, before[i], m.Picture(i), "outlier must be rebuilt")
			continue
		}
		assert.Same(t, before[i], m.Picture(i), "picture %d must be untouched", i)
	}
	assert.Equal(t, picture.Stats{Inconsistencies: 1, Reconstructions: 1}, m.Stats())
}

// Without reconstruction budget an accidental degeneracy is terminal at once.
func TestConstruct_NoAttemptsIsTerminal(t *testing.T) {
	cfg, a, b, c := triangle()
	m, err := picture.NewManager(cfg, nil,
		picture.WithMaxAttemptsPerPicture(0),
		picture.WithSampler(countingSampler(func(n int) bool { return n == 1 })))
	require.NoError(t, err)

	cc := constructed(t, construct.NameCircumcenter, 3, core.Arguments{set(a, b, c)})
	_, child, err := m.Construct(cc)
	assert.ErrorIs(t, err, picture.ErrUnresolvedInconsistency)
	assert.Nil(t, child)
	assert.Equal(t, 1, m.Stats().Inconsistencies)
	assert.Zero(t, m.Stats().Reconstructions)
}

func TestRunConsistently_BoundedRounds(t *testing.T) {
	cfg, _, _, _ := triangle()
	const k, rounds = 3, 2
	m, err := picture.NewManager(cfg, nil,
		picture.WithPictures(k),
		picture.WithMaxAttemptsAll(rounds),
		picture.WithMaxAttemptsPerPicture(1))
	require.NoError(t, err)

	calls := 0
	_, err = picture.RunConsistently(m, func(i int, _ *picture.Picture) (bool, error) {
		calls++
		return i == 0, nil
	})
	assert.ErrorIs(t, err, picture.ErrUnresolvedInconsistency)
	assert.Equal(t, (rounds+1)*k, calls)
	assert.Equal(t, rounds, m.Stats().Reconstructions)
	assert.Equal(t, rounds+1, m.Stats().Inconsistencies)
}

func TestRunConsistently_TieRebuildsAll(t *testing.T) {
	cfg, _, _, _ := triangle()
	m, err := picture.NewManager(cfg, nil, picture.WithPictures(2), picture.WithMaxAttemptsAll(1))
	require.NoError(t, err)

	_, err = picture.RunConsistently(m, func(i int, _ *picture.Picture) (int, error) {
		return i, nil
	})
	assert.ErrorIs(t, err, picture.ErrUnresolvedInconsistency)
	assert.Equal(t, 2, m.Stats().Reconstructions)
}

func TestRunConsistently_Unanimous(t *testing.T) {
	cfg, _, _, _ := triangle()
	m, err := picture.NewManager(cfg, nil)
	require.NoError(t, err)

	got, err := picture.RunConsistently(m, func(_ int, p *picture.Picture) (int, error) {
		return p.Len(), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.Zero(t, m.Stats())
}

func TestNewManager_SamplerExhausted(t *testing.T) {
	cfg, _, _, _ := triangle()
	failing := picture.SamplerFunc(func(core.Layout, *rand.Rand) ([]geometry.Value, error) {
		return nil, picture.ErrSampleFailed
	})
	_, err := picture.NewManager(cfg, nil, picture.WithSampler(failing))
	assert.ErrorIs(t, err, picture.ErrReconstructionFailed)
	assert.ErrorIs(t, err, picture.ErrSampleFailed)
}

func TestNewManager_WrongSamplerTypesIsInvariant(t *testing.T) {
	cfg := core.NewLooseConfiguration(core.LineAndPoint)
	wrong := picture.SamplerFunc(func(core.Layout, *rand.Rand) ([]geometry.Value, error) {
		return []geometry.Value{geometry.Point{}, geometry.Point{X: 1}}, nil
	})
	_, err := picture.NewManager(cfg, nil, picture.WithSampler(wrong))
	assert.ErrorIs(t, err, core.ErrInvariant)
}

func TestReconstruct_ReplaysConstructedObjects(t *testing.T) {
	cfg, a, b, _ := triangle()
	m, err := picture.NewManager(cfg, nil)
	require.NoError(t, err)
	mid := constructed(t, construct.NameMidpoint, 3, core.Arguments{set(a, b)})
	_, child, err := m.Construct(mid)
	require.NoError(t, err)

	old, _ := child.Picture(0).Value(3)
	require.NoError(t, child.Reconstruct())
	fresh, ok := child.Picture(0).Value(3)
	require.True(t, ok)
	assert.False(t, old.Equal(fresh, 1e-9))
	assert.Equal(t, child.Len(), child.Stats().Reconstructions)
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	assert.Panics(t, func() { picture.WithPictures(0) })
	assert.Panics(t, func() { picture.WithMaxAttemptsPerPicture(-1) })
	assert.Panics(t, func() { picture.WithMaxAttemptsAll(-1) })
	assert.Panics(t, func() { picture.WithTolerance(0) })
	assert.Panics(t, func() { picture.WithRand(nil) })
	assert.Panics(t, func() { picture.WithSampler(nil) })
	assert.Panics(t, func() { picture.WithLogger(nil) })
	assert.NotPanics(t, func() { picture.WithMaxAttemptsPerPicture(0) })
}
