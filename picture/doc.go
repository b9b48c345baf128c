// SPDX-License-Identifier: MIT

// Package picture realizes configurations numerically and cross-checks every
// geometric decision across several independent realizations.
//
// A Picture maps object identities to analytic values (geometry.Value) and
// answers "is this value already present" with tolerance-based lookups per
// object type. A Manager owns K pictures of one configuration, each with its
// own seeded random stream, and runs actions against all of them through
// RunConsistently:
//
//	results agree           → the common result is returned
//	results disagree        → the pictures outside the majority (all of
//	                          them on a tie) are reconstructed: fresh loose
//	                          draws, every constructed object replayed
//	still disagreeing after → ErrUnresolvedInconsistency
//	MaxAttemptsAll rounds
//
// A picture that cannot be reconstructed within MaxAttemptsPerPicture draws
// also ends the call with ErrUnresolvedInconsistency. A failed reconstruction
// never replaces the existing picture, so the bound is strict: at most
// MaxAttemptsAll × K × MaxAttemptsPerPicture reconstruction draws per call.
//
// Errors:
//
//	ErrUnresolvedInconsistency - pictures could not be brought to agreement.
//	ErrReconstructionFailed    - a picture could not be (re)built at all.
//	ErrSampleFailed            - the sampler could not place the loose objects.
//	core.ErrInvariant          - (wrapped) missing argument values, type mismatch.
//
// Concurrency: a Manager and its pictures are not safe for concurrent use.
// Clone returns an independent manager with fresh derived streams.
package picture

import "errors"

// Sentinel errors.
var (
	// ErrUnresolvedInconsistency indicates pictures that kept disagreeing
	// within the configured reconstruction bounds.
	ErrUnresolvedInconsistency = errors.New("picture: unresolved inconsistency")

	// ErrReconstructionFailed indicates a picture that could not be realized
	// within its draw budget.
	ErrReconstructionFailed = errors.New("picture: reconstruction failed")

	// ErrSampleFailed indicates a sampler that could not place loose objects.
	ErrSampleFailed = errors.New("picture: loose object sampling failed")
)
