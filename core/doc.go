// SPDX-License-Identifier: MIT

// Package core defines the immutable object model of geogen.
//
// The model is a DAG of objects shared between configurations:
//
//	A   B   C                 loose objects, identities 0,1,2
//	 \ /                      Midpoint({A,B})      → identity 3
//	  M ─── C                 LineFromPoints({M,C}) → identity 4
//
// Types:
//
//	ObjectType    Point | Line | Circle
//	ObjectID      identity; NoID until interned
//	Object        loose (type+ID) or constructed (Construction, Arguments, Output)
//	Argument      ObjectArgument | SetArgument (closed sum type)
//	Parameter     ObjectParameter | SetParameter (closed sum type)
//	Signature     ordered []Parameter
//	Construction  *Predefined | *Composed (closed sum type)
//	Layout        named loose arrangement; fixes types and symmetry blocks
//	Configuration loose objects + ordered constructed objects (copy-on-write)
//
// Invariants:
//
//   - identities grow in construction order; an object only references
//     objects with smaller identities (checked by Configuration.With);
//   - a Set argument is unordered: encodings sort members, so
//     {A,B} and {B,A} are the same argument;
//   - no object appears twice in one argument list (Signature.Matches).
//
// Invariant violations surface as errors wrapping ErrInvariant; callers
// running a search must abort on them rather than skip the candidate.
//
// Concurrency: every type here is immutable after construction and safe to
// share across goroutines.
package core
