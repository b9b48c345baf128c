// SPDX-License-Identifier: MIT

package construct

import (
	"math/rand"

	"github.com/katalvlaran/geogen/core"
	"github.com/katalvlaran/geogen/geometry"
)

// Names of the predefined constructions.
const (
	NameLineFromPoints               = "LineFromPoints"
	NameMidpoint                     = "Midpoint"
	NamePerpendicularBisector        = "PerpendicularBisector"
	NameCircumcircle                 = "Circumcircle"
	NameCircumcenter                 = "Circumcenter"
	NameCentroid                     = "Centroid"
	NameOrthocenter                  = "Orthocenter"
	NameIncenter                     = "Incenter"
	NameIntersectionOfLines          = "IntersectionOfLines"
	NamePerpendicularProjection      = "PerpendicularProjection"
	NamePerpendicularLine            = "PerpendicularLine"
	NameParallelLine                 = "ParallelLine"
	NameCenterOfCircle               = "CenterOfCircle"
	NameCircleWithCenterThroughPoint = "CircleWithCenterThroughPoint"
	NameInternalAngleBisector        = "InternalAngleBisector"
	NamePointReflection              = "PointReflection"
	NameReflectionInLine             = "ReflectionInLine"
	NameRandomPointOnLine            = "RandomPointOnLine"
)

// randomSpan bounds the parameter of RandomPointOnLine around the line origin.
const randomSpan = 5.0

var (
	pt = core.ObjectParameter{Type: core.Point}
	ln = core.ObjectParameter{Type: core.Line}
	cr = core.ObjectParameter{Type: core.Circle}
)

// entry pairs a declaration with its analytic routine.
type entry struct {
	construction *core.Predefined
	fn           Func
}

// predefined is the fixed table of engine-known constructions, in catalogue order.
var predefined = []entry{
	{core.NewPredefined(NameLineFromPoints, core.Signature{core.SetOf(2, core.Point)}, core.Line),
		liftPP(geometry.LineFromPoints)},
	{core.NewPredefined(NameMidpoint, core.Signature{core.SetOf(2, core.Point)}, core.Point),
		liftPP(geometry.Midpoint)},
	{core.NewPredefined(NamePerpendicularBisector, core.Signature{core.SetOf(2, core.Point)}, core.Line),
		liftPP(geometry.PerpendicularBisector)},
	{core.NewPredefined(NameCircumcircle, core.Signature{core.SetOf(3, core.Point)}, core.Circle),
		liftPPP(geometry.Circumcircle)},
	{core.NewPredefined(NameCircumcenter, core.Signature{core.SetOf(3, core.Point)}, core.Point),
		liftPPP(geometry.Circumcenter)},
	{core.NewPredefined(NameCentroid, core.Signature{core.SetOf(3, core.Point)}, core.Point),
		liftPPP(geometry.Centroid)},
	{core.NewPredefined(NameOrthocenter, core.Signature{core.SetOf(3, core.Point)}, core.Point),
		liftPPP(geometry.Orthocenter)},
	{core.NewPredefined(NameIncenter, core.Signature{core.SetOf(3, core.Point)}, core.Point),
		liftPPP(geometry.Incenter)},
	{core.NewPredefined(NameIntersectionOfLines, core.Signature{core.SetOf(2, core.Line)}, core.Point),
		func(in []geometry.Value, _ *rand.Rand) ([]geometry.Value, error) {
			return one(geometry.Intersection(in[0].(geometry.Line), in[1].(geometry.Line)))
		}},
	{core.NewPredefined(NamePerpendicularProjection, core.Signature{pt, ln}, core.Point),
		liftPL(geometry.Projection)},
	{core.NewPredefined(NamePerpendicularLine, core.Signature{pt, ln}, core.Line),
		liftPL(geometry.PerpendicularLine)},
	{core.NewPredefined(NameParallelLine, core.Signature{pt, ln}, core.Line),
		liftPL(geometry.ParallelLine)},
	{core.NewPredefined(NameCenterOfCircle, core.Signature{cr}, core.Point),
		func(in []geometry.Value, _ *rand.Rand) ([]geometry.Value, error) {
			return []geometry.Value{in[0].(geometry.Circle).Center}, nil
		}},
	{core.NewPredefined(NameCircleWithCenterThroughPoint, core.Signature{pt, pt}, core.Circle),
		liftPP(geometry.CircleThrough)},
	{core.NewPredefined(NameInternalAngleBisector, core.Signature{pt, core.SetOf(2, core.Point)}, core.Line),
		liftPPP(geometry.InternalAngleBisector)},
	{core.NewPredefined(NamePointReflection, core.Signature{pt, pt}, core.Point),
		liftPP(geometry.PointReflection)},
	{core.NewPredefined(NameReflectionInLine, core.Signature{pt, ln}, core.Point),
		liftPL(geometry.LineReflection)},
	{core.NewPredefined(NameRandomPointOnLine, core.Signature{ln}, core.Point),
		func(in []geometry.Value, rng *rand.Rand) ([]geometry.Value, error) {
			if rng == nil {
				return nil, ErrNoRand
			}
			return one(geometry.RandomPointOn(in[0].(geometry.Line), randomSpan, rng))
		}},
}

// Catalogue returns every predefined construction, in a stable order.
func Catalogue() []core.Construction {
	out := make([]core.Construction, len(predefined))
	for i, e := range predefined {
		out[i] = e.construction
	}
	return out
}

// ByName returns the predefined constructions with the given names, in the
// order requested.
//
// Errors: ErrUnknownConstruction (wrapped) for a name not in the catalogue.
func ByName(names ...string) ([]core.Construction, error) {
	out := make([]core.Construction, 0, len(names))
	for _, n := range names {
		e, ok := lookup(n)
		if !ok {
			return nil, unknown(n)
		}
		out = append(out, e.construction)
	}
	return out, nil
}

// MustByName is ByName that panics on unknown names; for tests and examples.
func MustByName(names ...string) []core.Construction {
	out, err := ByName(names...)
	if err != nil {
		panic(err)
	}
	return out
}

func lookup(name string) (entry, bool) {
	for _, e := range predefined {
		if e.construction.Name() == name {
			return e, true
		}
	}
	return entry{}, false
}

func one[V geometry.Value](v V, err error) ([]geometry.Value, error) {
	if err != nil {
		return nil, err
	}
	return []geometry.Value{v}, nil
}

func liftPP[V geometry.Value](f func(p, q geometry.Point) (V, error)) Func {
	return func(in []geometry.Value, _ *rand.Rand) ([]geometry.Value, error) {
		return one(f(in[0].(geometry.Point), in[1].(geometry.Point)))
	}
}

func liftPPP[V geometry.Value](f func(a, b, c geometry.Point) (V, error)) Func {
	return func(in []geometry.Value, _ *rand.Rand) ([]geometry.Value, error) {
		return one(f(in[0].(geometry.Point), in[1].(geometry.Point), in[2].(geometry.Point)))
	}
}

func liftPL[V geometry.Value](f func(p geometry.Point, l geometry.Line) (V, error)) Func {
	return func(in []geometry.Value, _ *rand.Rand) ([]geometry.Value, error) {
		return one(f(in[0].(geometry.Point), in[1].(geometry.Line)))
	}
}
