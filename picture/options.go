// SPDX-License-Identifier: MIT

package picture

import (
	"log/slog"
	"math"
	"math/rand"
)

// Defaults for a Manager.
const (
	DefaultPictures              = 5
	DefaultMaxAttemptsPerPicture = 3
	DefaultMaxAttemptsAll        = 3
	DefaultTolerance             = 1e-6
)

// Options configures a Manager. Build it with DefaultOptions and Option
// functions; the zero value is not meaningful.
type Options struct {
	// Pictures is K, the number of independent realizations (≥1).
	Pictures int

	// MaxAttemptsPerPicture bounds the reconstruction attempts of one picture
	// in one inconsistency round (≥0). The initial realization of a picture
	// gets 1+MaxAttemptsPerPicture draws.
	MaxAttemptsPerPicture int

	// MaxAttemptsAll bounds the reconstruction rounds of one RunConsistently
	// call (≥0).
	MaxAttemptsAll int

	// Tolerance is the equality epsilon of picture lookups (>0).
	Tolerance float64

	// Seed seeds the picture streams when Rand is nil; 0 selects the default.
	Seed int64

	// Rand, when set, is the base stream the picture streams derive from.
	Rand *rand.Rand

	// Sampler places loose objects; DefaultSampler when nil.
	Sampler Sampler

	// Logger receives inconsistency and reconstruction events.
	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Pictures:              DefaultPictures,
		MaxAttemptsPerPicture: DefaultMaxAttemptsPerPicture,
		MaxAttemptsAll:        DefaultMaxAttemptsAll,
		Tolerance:             DefaultTolerance,
		Sampler:               DefaultSampler{},
		Logger:                slog.Default(),
	}
}

// WithPictures sets K. Panics if k < 1.
// K = 1 is allowed; a single picture never disagrees with itself.
// Complexity: O(1) time, O(1) space.
func WithPictures(k int) Option {
	if k < 1 {
		// Fail fast: a manager without pictures cannot realize anything.
		panic("picture: WithPictures(k<1)")
	}
	return func(o *Options) {
		// Every Construct evaluates the candidate K times.
		o.Pictures = k
	}
}

// WithMaxAttemptsPerPicture sets the per-picture reconstruction bound.
// Zero is allowed and disables reconstruction. Panics if n < 0.
// Complexity: O(1) time, O(1) space.
func WithMaxAttemptsPerPicture(n int) Option {
	if n < 0 {
		panic("picture: WithMaxAttemptsPerPicture(n<0)")
	}
	return func(o *Options) {
		// Also bounds the initial realization: 1+n draws per picture.
		o.MaxAttemptsPerPicture = n
	}
}

// WithMaxAttemptsAll sets the number of reconstruction rounds. Panics if n < 0.
// Complexity: O(1) time, O(1) space.
func WithMaxAttemptsAll(n int) Option {
	if n < 0 {
		panic("picture: WithMaxAttemptsAll(n<0)")
	}
	return func(o *Options) {
		// RunConsistently gives up after n+1 disagreeing evaluations.
		o.MaxAttemptsAll = n
	}
}

// WithTolerance sets the equality epsilon. Panics unless eps is positive and finite.
// Complexity: O(1) time, O(1) space.
func WithTolerance(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 0) {
		// NaN fails eps > 0 as well.
		panic("picture: WithTolerance(eps<=0)")
	}
	return func(o *Options) {
		// Used by Find and by the Equal outcome of Evaluate.
		o.Tolerance = eps
	}
}

// WithSeed makes the picture streams reproducible.
// Seed 0 selects the package default; ignored when WithRand is also given.
// Complexity: O(1) time, O(1) space.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		// Picture i draws from deriveSeed(seed, i).
		o.Seed = seed
	}
}

// WithRand sets the base stream. Panics on nil; prefer WithSeed for
// reproducible runs.
// Complexity: O(1) time, O(1) space.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("picture: WithRand(nil)")
	}
	return func(o *Options) {
		// Consumed once per picture stream; r is not retained afterwards.
		o.Rand = r
	}
}

// WithSampler replaces the loose-object placement. Panics on nil.
// The sampler is called once per draw, from the goroutine that builds or
// reconstructs the manager.
// Complexity: O(1) time, O(1) space.
func WithSampler(s Sampler) Option {
	if s == nil {
		panic("picture: WithSampler(nil)")
	}
	return func(o *Options) {
		o.Sampler = s
	}
}

// WithLogger sets the logger. Panics on nil.
// Complexity: O(1) time, O(1) space.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to silence.
		panic("picture: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

func resolveOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
