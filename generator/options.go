// SPDX-License-Identifier: MIT

package generator

import (
	"log/slog"

	"github.com/katalvlaran/geogen/construct"
	"github.com/katalvlaran/geogen/picture"
)

// Options configures a Generator.
type Options struct {
	// Workers bounds the configurations of a layer expanded concurrently.
	Workers int

	// PictureOptions configure the picture manager of the initial
	// configuration; every later manager inherits them.
	PictureOptions []picture.Option

	// Resolver resolves constructions; construct.NewResolver() when nil.
	Resolver *construct.Resolver

	// Logger receives run and layer events.
	Logger *slog.Logger

	// SymmetryReduction deduplicates configurations up to the layout's
	// symmetry group and prunes symmetric argument lists. When false, only
	// identical configurations are merged.
	SymmetryReduction bool

	// Tracing emits OpenTelemetry spans through the global tracer provider.
	Tracing bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns one worker, default pictures, symmetry reduction
// on and tracing off.
func DefaultOptions() Options {
	return Options{
		Workers:           1,
		Logger:            slog.Default(),
		SymmetryReduction: true,
	}
}

// WithWorkers sets the worker pool size. Panics if n < 1.
// Counts per layer do not depend on n; identities may.
// Complexity: O(1) time, O(1) space.
func WithWorkers(n int) Option {
	if n < 1 {
		// Fail fast: errgroup.SetLimit(0) would block every layer.
		panic("generator: WithWorkers(n<1)")
	}
	return func(o *Options) {
		o.Workers = n
	}
}

// WithPictureOptions appends picture manager options. Later options win.
// Complexity: O(len(opts)) time and space.
func WithPictureOptions(opts ...picture.Option) Option {
	return func(o *Options) {
		// Applied after the generator's own logger option.
		o.PictureOptions = append(o.PictureOptions, opts...)
	}
}

// WithResolver sets the construction resolver. Panics on nil.
// Sharing one resolver across runs shares its composed-construction cache.
// Complexity: O(1) time, O(1) space.
func WithResolver(r *construct.Resolver) Option {
	if r == nil {
		panic("generator: WithResolver(nil)")
	}
	return func(o *Options) { o.Resolver = r }
}

// WithLogger sets the logger. Panics on nil.
// Every line carries the run ID.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("generator: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

// WithoutSymmetryReduction uses the identity group for canonical forms and
// disables argument pruning.
// Complexity: O(1) time, O(1) space; a run then visits up to |group| times
// more configurations.
func WithoutSymmetryReduction() Option {
	return func(o *Options) {
		// Only identical configurations are merged from here on.
		o.SymmetryReduction = false
	}
}

// WithTracing enables OpenTelemetry spans for the run and each layer.
func WithTracing() Option {
	return func(o *Options) { o.Tracing = true }
}
