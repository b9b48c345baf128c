// SPDX-License-Identifier: MIT

package generator

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/geogen/construct"
	"github.com/katalvlaran/geogen/core"
	"github.com/katalvlaran/geogen/enumerate"
	"github.com/katalvlaran/geogen/intern"
	"github.com/katalvlaran/geogen/picture"
	"github.com/katalvlaran/geogen/symmetry"
)

// Sentinel errors.
var (
	// ErrDone is returned by Next once the run is exhausted.
	ErrDone = errors.New("generator: done")

	// ErrInvalidInput indicates a malformed Input.
	ErrInvalidInput = errors.New("generator: invalid input")

	// ErrInitialUnrealizable indicates an initial configuration that could
	// not be realized in the pictures at all.
	ErrInitialUnrealizable = errors.New("generator: initial configuration cannot be realized")
)

// Input describes one run.
type Input struct {
	// Initial is the fully loose starting configuration.
	Initial *core.Configuration

	// Constructions are applied in order; names must be unique.
	Constructions []core.Construction

	// Iterations is the number of layers to expand (≥0).
	Iterations int
}

// Output is one accepted configuration.
type Output struct {
	// Configuration is the new configuration; its last object is the one
	// added in this step.
	Configuration *core.Configuration

	// Iteration is the 1-based layer the configuration belongs to.
	Iteration int

	// Pictures realizes Configuration. It is owned by the generator and
	// must not be used once Next has been called to expand the next layer.
	Pictures *picture.Manager
}

// Stats counts candidate outcomes over the run so far.
//
// Candidates are interned before the pictures evaluate them, so Failed,
// Equal and Inconsistent candidates keep their identity and their entry in
// the interning container for the rest of the run. A later candidate with
// the same structure reuses that identity instead of growing the container.
type Stats struct {
	Layers          int // expanded layers
	Candidates      int // candidate objects built
	Accepted        int // new configurations emitted
	Failed          int // degenerate candidates
	Equal           int // candidates equal to an existing object
	Duplicates      int // candidates already in the configuration
	Symmetric       int // configurations whose canonical form was seen
	Inconsistent    int // candidates dropped on unresolved inconsistency
	Reconstructions int // pictures rebuilt after disagreement
}

// node is a configuration of the current layer with its pictures.
type node struct {
	cfg      *core.Configuration
	pictures *picture.Manager
}

// Generator drives the layer-by-layer search. Next is not safe for
// concurrent use; the generator parallelizes each layer internally.
type Generator struct {
	in        Input
	opts      Options
	runID     string
	logger    *slog.Logger
	tracer    *tracer
	resolver  *construct.Resolver
	container *intern.Container
	group     symmetry.Group

	seenMu sync.Mutex
	seen   map[string]struct{}

	statsMu sync.Mutex
	stats   Stats

	layer     []node
	pending   []Output
	iteration int
	done      bool
	started   bool
	runSpan   trace.Span
}

// New validates in and realizes the initial configuration.
//
// Errors:
//   - ErrInvalidInput (wrapped) for a nil or non-loose initial configuration,
//     nil or duplicate constructions, constructions the resolver does not
//     know, or negative Iterations.
//   - ErrInitialUnrealizable (wrapped) if the pictures cannot be built.
func New(in Input, opts ...Option) (*Generator, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Resolver == nil {
		o.Resolver = construct.NewResolver()
	}
	if err := validate(in, o.Resolver); err != nil {
		return nil, err
	}
	container, err := intern.New(in.Initial)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", errors.Join(err, ErrInvalidInput))
	}

	group := symmetry.GroupOf(in.Initial.Layout())
	if !o.SymmetryReduction {
		group = symmetry.Trivial(len(in.Initial.LooseObjects()))
	}
	form, err := symmetry.CanonicalForm(in.Initial, group)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", errors.Join(err, ErrInvalidInput))
	}

	runID := uuid.New().String()
	logger := o.Logger.With(slog.String("run_id", runID))
	pictureOpts := append([]picture.Option{picture.WithLogger(logger)}, o.PictureOptions...)
	pictures, err := picture.NewManager(in.Initial, o.Resolver, pictureOpts...)
	if err != nil {
		return nil, fmt.Errorf("generator: %s: %w", in.Initial.Layout(), errors.Join(err, ErrInitialUnrealizable))
	}

	return &Generator{
		in:        in,
		opts:      o,
		runID:     runID,
		logger:    logger,
		tracer:    newTracer(o.Tracing),
		resolver:  o.Resolver,
		container: container,
		group:     group,
		seen:      map[string]struct{}{form: {}},
		layer:     []node{{cfg: in.Initial, pictures: pictures}},
	}, nil
}

func validate(in Input, resolver *construct.Resolver) error {
	if in.Initial == nil {
		return fmt.Errorf("generator: nil initial configuration: %w", ErrInvalidInput)
	}
	if !in.Initial.IsLoose() {
		return fmt.Errorf("generator: %w", errors.Join(intern.ErrNotLoose, ErrInvalidInput))
	}
	if in.Iterations < 0 {
		return fmt.Errorf("generator: iterations %d: %w", in.Iterations, ErrInvalidInput)
	}
	names := make(map[string]bool, len(in.Constructions))
	for i, k := range in.Constructions {
		if k == nil {
			return fmt.Errorf("generator: construction %d is nil: %w", i, ErrInvalidInput)
		}
		if names[k.Name()] {
			return fmt.Errorf("generator: construction %q listed twice: %w", k.Name(), ErrInvalidInput)
		}
		names[k.Name()] = true
		if _, err := resolver.Resolve(k); err != nil {
			return fmt.Errorf("generator: %w", errors.Join(err, ErrInvalidInput))
		}
	}
	return nil
}

// RunID identifies the run in logs and spans.
func (g *Generator) RunID() string { return g.runID }

// Stats returns a snapshot of the counters.
func (g *Generator) Stats() Stats {
	g.statsMu.Lock()
	defer g.statsMu.Unlock()
	return g.stats
}

// Group returns the symmetry group used for canonical forms.
func (g *Generator) Group() symmetry.Group { return g.group }

// Next returns the next accepted configuration. Configurations are produced
// a layer at a time; ctx is checked before each layer and before each
// configuration of a layer.
//
// Errors:
//   - ErrDone once every layer has been emitted or a layer came out empty.
//   - ctx.Err() on cancellation; the run is over afterwards.
//   - core.ErrInvariant (wrapped) on a violated programming invariant; the
//     run is over afterwards.
func (g *Generator) Next(ctx context.Context) (Output, error) {
	if !g.started {
		g.started = true
		_, g.runSpan = g.tracer.startRun(ctx, g.runID, g.in.Initial.Layout().String(), len(g.in.Constructions), g.in.Iterations)
		g.logger.InfoContext(ctx, "generation started",
			slog.String("layout", g.in.Initial.Layout().String()),
			slog.Int("constructions", len(g.in.Constructions)),
			slog.Int("iterations", g.in.Iterations),
			slog.Int("workers", g.opts.Workers),
			slog.Int("group_size", g.group.Len()))
	}
	for len(g.pending) == 0 {
		if g.done {
			return Output{}, ErrDone
		}
		if err := ctx.Err(); err != nil {
			g.finish(ctx, err)
			return Output{}, err
		}
		if g.iteration >= g.in.Iterations || len(g.layer) == 0 {
			g.finish(ctx, nil)
			continue
		}
		if err := g.expand(ctx); err != nil {
			g.finish(ctx, err)
			return Output{}, err
		}
	}
	out := g.pending[0]
	g.pending[0] = Output{}
	g.pending = g.pending[1:]
	return out, nil
}

// All returns the remaining configurations as a single-pass sequence. The
// sequence stops after yielding the first error; ErrDone is not yielded.
func (g *Generator) All(ctx context.Context) iter.Seq2[Output, error] {
	return func(yield func(Output, error) bool) {
		for {
			out, err := g.Next(ctx)
			if errors.Is(err, ErrDone) {
				return
			}
			if !yield(out, err) || err != nil {
				return
			}
		}
	}
}

func (g *Generator) finish(ctx context.Context, err error) {
	if g.done {
		return
	}
	g.done = true
	g.layer = nil
	s := g.Stats()
	status := "done"
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = "canceled"
	case err != nil:
		status = "error"
	}
	recordRun(status)
	end(g.runSpan, err,
		attribute.Int("geogen.result.layers", s.Layers),
		attribute.Int("geogen.result.accepted", s.Accepted))
	attrs := []any{
		slog.String("status", status),
		slog.Int("layers", s.Layers),
		slog.Int("accepted", s.Accepted),
		slog.Int("candidates", s.Candidates),
		slog.Int("objects", g.container.Len()),
	}
	if err != nil {
		g.logger.WarnContext(ctx, "generation stopped", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	g.logger.InfoContext(ctx, "generation finished", attrs...)
}

// expand computes the next layer from the current one and queues it.
func (g *Generator) expand(ctx context.Context) error {
	iteration := g.iteration + 1
	ctx, span := g.tracer.startLayer(g.spanParent(ctx), iteration, len(g.layer))
	start := time.Now()

	children := make([][]node, len(g.layer))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)
	for i, n := range g.layer {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			kids, err := g.expandOne(n)
			children[i] = kids
			return err
		})
	}
	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		end(span, err)
		return err
	}

	var next []node
	for _, kids := range children {
		next = append(next, kids...)
	}
	for _, n := range next {
		g.pending = append(g.pending, Output{Configuration: n.cfg, Iteration: iteration, Pictures: n.pictures})
	}
	g.layer = next
	g.iteration = iteration

	elapsed := time.Since(start)
	g.statsMu.Lock()
	g.stats.Layers++
	g.statsMu.Unlock()
	recordLayer(elapsed)
	end(span, nil, attribute.Int("geogen.layer.accepted", len(next)))
	g.logger.InfoContext(ctx, "layer expanded",
		slog.Int("iteration", iteration),
		slog.Int("configurations", len(next)),
		slog.Int("objects", g.container.Len()),
		slog.Duration("elapsed", elapsed))
	return nil
}

// spanParent returns ctx carrying the run span.
func (g *Generator) spanParent(ctx context.Context) context.Context {
	if g.runSpan == nil {
		return ctx
	}
	return trace.ContextWithSpan(ctx, g.runSpan)
}

// expandOne applies every construction to every admissible argument list of
// n and returns the accepted children. Only invariant violations are
// returned as errors.
func (g *Generator) expandOne(n node) ([]node, error) {
	var opts []enumerate.Option
	if g.opts.SymmetryReduction {
		maps, err := symmetry.Stabilizer(n.cfg, g.group)
		if err != nil {
			return nil, errors.Join(err, core.ErrInvariant)
		}
		opts = append(opts, enumerate.WithMappings(maps))
	}

	before := n.pictures.Stats()
	defer func() {
		after := n.pictures.Stats()
		delta := picture.Stats{
			Inconsistencies: after.Inconsistencies - before.Inconsistencies,
			Reconstructions: after.Reconstructions - before.Reconstructions,
		}
		recordPictures(delta)
		g.count(func(s *Stats) { s.Reconstructions += delta.Reconstructions })
	}()

	var kids []node
	for _, k := range g.in.Constructions {
		for args := range enumerate.Arguments(k.Signature(), n.cfg, opts...) {
			for out := range k.Outputs() {
				kid, err := g.attempt(n, k, args, out)
				if err != nil {
					return kids, err
				}
				if kid != nil {
					kids = append(kids, *kid)
				}
			}
		}
	}
	return kids, nil
}

// attempt runs one candidate through interning, the pictures and the seen
// forms. It returns the accepted child, or nil when the candidate is dropped.
func (g *Generator) attempt(n node, k core.Construction, args core.Arguments, output int) (*node, error) {
	cand, err := core.NewConstructed(k, args, output)
	if err != nil {
		return nil, errors.Join(err, core.ErrInvariant)
	}
	g.count(func(s *Stats) { s.Candidates++ })

	obj, _, err := g.container.Intern(cand)
	if err != nil {
		return nil, err
	}
	if n.cfg.Contains(obj.ID) {
		g.tally(outcomeDuplicate, func(s *Stats) { s.Duplicates++ })
		return nil, nil
	}

	res, child, err := n.pictures.Construct(obj)
	if errors.Is(err, picture.ErrUnresolvedInconsistency) {
		g.tally(outcomeInconsistent, func(s *Stats) { s.Inconsistent++ })
		g.logger.Warn("candidate dropped on unresolved inconsistency",
			slog.String("object", obj.String()),
			slog.Int("objects", n.cfg.Len()))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	switch res.Status {
	case picture.Failed:
		g.tally(outcomeFailed, func(s *Stats) { s.Failed++ })
		return nil, nil
	case picture.Equal:
		g.tally(outcomeEqual, func(s *Stats) { s.Equal++ })
		return nil, nil
	}

	form, err := symmetry.CanonicalForm(child.Configuration(), g.group)
	if err != nil {
		return nil, errors.Join(err, core.ErrInvariant)
	}
	if !g.markSeen(form) {
		g.tally(outcomeSymmetric, func(s *Stats) { s.Symmetric++ })
		return nil, nil
	}
	g.tally(outcomeAccepted, func(s *Stats) { s.Accepted++ })
	return &node{cfg: child.Configuration(), pictures: child}, nil
}

// markSeen records form and reports whether it was new.
func (g *Generator) markSeen(form string) bool {
	g.seenMu.Lock()
	defer g.seenMu.Unlock()
	if _, ok := g.seen[form]; ok {
		return false
	}
	g.seen[form] = struct{}{}
	return true
}

func (g *Generator) count(fn func(*Stats)) {
	g.statsMu.Lock()
	fn(&g.stats)
	g.statsMu.Unlock()
}

// tally records a candidate outcome in the stats and the metrics.
func (g *Generator) tally(outcome string, fn func(*Stats)) {
	g.count(fn)
	recordCandidate(outcome)
}
