// SPDX-License-Identifier: MIT

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geogen/core"
)

// midpoint is a one-output point construction over a set of two points.
var midpoint = core.NewPredefined("Midpoint", core.Signature{core.SetOf(2, core.Point)}, core.Point)

// lineThrough is a one-output line construction over a set of two points.
var lineThrough = core.NewPredefined("LineFromPoints", core.Signature{core.SetOf(2, core.Point)}, core.Line)

func pair(a, b *core.Object) core.Arguments {
	return core.Arguments{core.SetArgument{Items: []core.Argument{
		core.ObjectArgument{Object: a}, core.ObjectArgument{Object: b},
	}}}
}

func build(t *testing.T, k core.Construction, args core.Arguments, id core.ObjectID) *core.Object {
	t.Helper()
	o, err := core.NewConstructed(k, args, 0)
	require.NoError(t, err)
	return o.WithID(id)
}

func TestNewLooseConfiguration(t *testing.T) {
	for _, l := range core.Layouts() {
		cfg := core.NewLooseConfiguration(l)
		assert.True(t, cfg.IsLoose(), l.String())
		assert.Equal(t, l, cfg.Layout())
		assert.Len(t, cfg.LooseObjects(), len(l.ObjectTypes()))
		assert.Nil(t, cfg.LastObject())
		for i, o := range cfg.LooseObjects() {
			assert.Equal(t, core.ObjectID(i), o.ID)
			assert.Equal(t, l.ObjectTypes()[i], o.Type)
		}
	}
	assert.Panics(t, func() { core.NewLooseConfiguration(core.Layout(99)) })
}

func TestNewConfiguration_LayoutMismatch(t *testing.T) {
	_, err := core.NewConfiguration(core.Triangle, []*core.Object{core.NewLoose(0, core.Point)})
	assert.ErrorIs(t, err, core.ErrLayoutMismatch)

	_, err = core.NewConfiguration(core.LineAndPoint, []*core.Object{
		core.NewLoose(0, core.Point), core.NewLoose(1, core.Line),
	})
	assert.ErrorIs(t, err, core.ErrLayoutMismatch)

	_, err = core.NewConfiguration(core.TwoPoints, []*core.Object{
		core.NewLoose(1, core.Point), core.NewLoose(0, core.Point),
	})
	assert.ErrorIs(t, err, core.ErrLayoutMismatch)
}

func TestConfiguration_WithIsCopyOnWrite(t *testing.T) {
	cfg := core.NewLooseConfiguration(core.Triangle)
	l := cfg.LooseObjects()
	m := build(t, midpoint, pair(l[0], l[1]), 3)

	next, err := cfg.With(m)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Len())
	assert.Equal(t, 4, next.Len())
	assert.False(t, cfg.Contains(3))
	assert.True(t, next.Contains(3))
	assert.Same(t, m, next.LastObject())
	assert.Len(t, cfg.ObjectsOfType(core.Point), 3)
	assert.Len(t, next.ObjectsOfType(core.Point), 4)

	line := build(t, lineThrough, pair(m, l[2]), 4)
	last, err := next.With(line)
	require.NoError(t, err)
	assert.Len(t, last.ObjectsOfType(core.Line), 1)
	assert.Empty(t, next.ObjectsOfType(core.Line))
	assert.Equal(t, []*core.Object{m, line}, last.ConstructedObjects())

	got, ok := last.Object(4)
	require.True(t, ok)
	assert.Same(t, line, got)
}

func TestConfiguration_WithInvariants(t *testing.T) {
	cfg := core.NewLooseConfiguration(core.Triangle)
	l := cfg.LooseObjects()
	other := core.NewLooseConfiguration(core.Triangle).LooseObjects()

	m := build(t, midpoint, pair(l[0], l[1]), 3)
	withM, err := cfg.With(m)
	require.NoError(t, err)
	late := build(t, midpoint, pair(l[0], l[1]), 5)
	withLate, err := cfg.With(late)
	require.NoError(t, err)

	unidentified, err := core.NewConstructed(midpoint, pair(l[0], l[2]), 0)
	require.NoError(t, err)

	tests := []struct {
		name string
		cfg  *core.Configuration
		obj  *core.Object
	}{
		{"nil", cfg, nil},
		{"loose", cfg, core.NewLoose(3, core.Point)},
		{"no identity", cfg, unidentified},
		{"already present", withM, m},
		{"foreign argument", cfg, build(t, midpoint, pair(other[0], l[1]), 3)},
		{"argument not older", withLate, build(t, midpoint, pair(late, l[2]), 4)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.cfg.With(tc.obj)
			assert.ErrorIs(t, err, core.ErrInvariant)
		})
	}
}

func TestConfiguration_String(t *testing.T) {
	cfg := core.NewLooseConfiguration(core.Triangle)
	l := cfg.LooseObjects()
	m := build(t, midpoint, pair(l[1], l[0]), 3)
	next, err := cfg.With(m)
	require.NoError(t, err)
	assert.Equal(t, "Triangle: A, B, C\n  Midpoint({A,B})", next.String())
}

func TestParseLayout(t *testing.T) {
	for _, l := range core.Layouts() {
		got, err := core.ParseLayout(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	got, err := core.ParseLayout("righttriangle")
	require.NoError(t, err)
	assert.Equal(t, core.RightTriangle, got)

	_, err = core.ParseLayout("Pentagon")
	assert.ErrorIs(t, err, core.ErrLayoutMismatch)
	assert.Equal(t, "Layout(99)", core.Layout(99).String())
}
