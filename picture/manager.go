// SPDX-License-Identifier: MIT

package picture

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/geogen/construct"
	"github.com/katalvlaran/geogen/core"
	"github.com/katalvlaran/geogen/geometry"
)

// Stats counts the recovery work of a manager since it was created or cloned.
type Stats struct {
	// Inconsistencies counts disagreeing RunConsistently rounds.
	Inconsistencies int
	// Reconstructions counts successful picture reconstructions.
	Reconstructions int
	// FailedDraws counts reconstruction draws that did not yield a picture.
	FailedDraws int
}

// Manager holds K pictures of one configuration.
type Manager struct {
	cfg      *core.Configuration
	resolver *construct.Resolver
	pictures []*Picture
	opts     Options
	logger   *slog.Logger
	stats    Stats
}

// NewManager realizes cfg in K pictures. Each picture gets up to
// 1+MaxAttemptsPerPicture draws; a draw succeeds when the sampler places
// the loose objects and every constructed object of cfg replays as a new,
// non-degenerate value. A nil resolver selects construct.NewResolver().
//
// Errors:
//   - ErrReconstructionFailed (wrapped) if some picture exhausts its draws.
//   - core.ErrInvariant (wrapped) on resolver or model defects.
func NewManager(cfg *core.Configuration, resolver *construct.Resolver, opts ...Option) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("picture: NewManager: nil configuration: %w", core.ErrInvariant)
	}
	if resolver == nil {
		resolver = construct.NewResolver()
	}
	o := resolveOptions(opts)
	base := o.Rand
	if base == nil {
		base = rngFromSeed(o.Seed)
	}

	m := &Manager{
		cfg:      cfg,
		resolver: resolver,
		pictures: make([]*Picture, o.Pictures),
		opts:     o,
		logger:   o.Logger,
	}
	for i := range m.pictures {
		rng := deriveRNG(base, uint64(i))
		p, err := m.realize(rng, 1+o.MaxAttemptsPerPicture)
		if err != nil {
			return nil, fmt.Errorf("picture: NewManager(%s) picture %d: %w", cfg.Layout(), i, err)
		}
		m.pictures[i] = p
	}
	return m, nil
}

// Configuration returns the configuration the pictures realize.
func (m *Manager) Configuration() *core.Configuration { return m.cfg }

// Len returns K.
func (m *Manager) Len() int { return len(m.pictures) }

// Picture returns picture i. The picture must not be modified.
func (m *Manager) Picture(i int) *Picture { return m.pictures[i] }

// Stats returns the recovery counters.
func (m *Manager) Stats() Stats { return m.stats }

// Resolver returns the resolver used for replays and constructions.
func (m *Manager) Resolver() *construct.Resolver { return m.resolver }

// RunConsistently runs action once per picture and returns the unanimous
// result. On disagreement the pictures outside the strict majority are
// reconstructed (all of them when no strict majority exists) and action is
// run again, for at most MaxAttemptsAll rounds.
//
// An error returned by action aborts the call and is returned unchanged.
//
// Errors: ErrUnresolvedInconsistency (wrapped) when the bounds are exhausted.
//
// Complexity: O((MaxAttemptsAll+1) · K · cost(action)) plus reconstructions.
func RunConsistently[T comparable](m *Manager, action func(i int, p *Picture) (T, error)) (T, error) {
	var zero T
	results := make([]T, len(m.pictures))
	for round := 0; ; round++ {
		for i, p := range m.pictures {
			r, err := action(i, p)
			if err != nil {
				return zero, err
			}
			results[i] = r
		}
		outliers := disagreeing(results)
		if len(outliers) == 0 {
			return results[0], nil
		}

		m.stats.Inconsistencies++
		m.logger.Debug("pictures disagree",
			slog.Int("round", round),
			slog.Int("outliers", len(outliers)),
			slog.Int("objects", m.cfg.Len()))
		if round >= m.opts.MaxAttemptsAll {
			return zero, fmt.Errorf("picture: still inconsistent after %d rounds: %w", round, ErrUnresolvedInconsistency)
		}
		for _, i := range outliers {
			if err := m.reconstructPicture(i); err != nil {
				return zero, err
			}
		}
	}
}

// disagreeing returns the indexes whose result differs from the strict
// majority; every index when there is no strict majority; nil on unanimity.
func disagreeing[T comparable](results []T) []int {
	counts := make(map[T]int, 2)
	for _, r := range results {
		counts[r]++
	}
	if len(counts) <= 1 {
		return nil
	}
	var (
		best T
		top  int
		ties bool
	)
	for _, r := range results {
		c := counts[r]
		switch {
		case c > top:
			best, top, ties = r, c, false
		case c == top && r != best:
			ties = true
		}
	}
	out := make([]int, 0, len(results))
	for i, r := range results {
		if ties || r != best {
			out = append(out, i)
		}
	}
	return out
}

// Construct evaluates the interned object o consistently in every picture.
//
// Returns:
//   - Outcome{Failed}: o is degenerate; child is nil.
//   - Outcome{Equal, id}: o coincides with object id; child is nil.
//   - Outcome{Constructed}: child realizes cfg extended by o. The receiver
//     is not extended, so it can keep serving other candidates.
//
// Errors: ErrUnresolvedInconsistency, core.ErrInvariant (both wrapped).
func (m *Manager) Construct(o *core.Object) (Outcome, *Manager, error) {
	if o == nil || o.IsLoose() {
		return Outcome{}, nil, fmt.Errorf("picture: Construct: constructed object required: %w", core.ErrInvariant)
	}
	fn, err := m.resolver.Resolve(o.Construction)
	if err != nil {
		return Outcome{}, nil, fmt.Errorf("picture: Construct(%s): %w", o, errors.Join(err, core.ErrInvariant))
	}
	ext, err := m.cfg.With(o)
	if err != nil {
		return Outcome{}, nil, err
	}

	values := make([]geometry.Value, len(m.pictures))
	out, err := RunConsistently(m, func(i int, p *Picture) (Outcome, error) {
		r, v, err := p.Evaluate(o, fn)
		values[i] = v
		return r, err
	})
	if err != nil || out.Status != Constructed {
		return out, nil, err
	}

	child := m.clone(ext)
	for i, p := range child.pictures {
		p.insert(o.ID, values[i])
	}
	return out, child, nil
}

// Reconstruct rebuilds every picture from fresh draws.
//
// Errors: ErrReconstructionFailed (wrapped); pictures rebuilt before the
// failing one keep their new state, the others keep their old one.
func (m *Manager) Reconstruct() error {
	for i := range m.pictures {
		p, err := m.realize(m.pictures[i].rng, 1+m.opts.MaxAttemptsPerPicture)
		if err != nil {
			return fmt.Errorf("picture: Reconstruct picture %d: %w", i, err)
		}
		m.pictures[i] = p
		m.stats.Reconstructions++
	}
	return nil
}

// reconstructPicture replaces picture i by a fresh realization drawn from
// the picture's own stream, within MaxAttemptsPerPicture draws.
func (m *Manager) reconstructPicture(i int) error {
	p, err := m.realize(m.pictures[i].rng, m.opts.MaxAttemptsPerPicture)
	if err != nil {
		m.logger.Debug("picture reconstruction exhausted",
			slog.Int("picture", i),
			slog.Int("attempts", m.opts.MaxAttemptsPerPicture))
		if errors.Is(err, core.ErrInvariant) {
			return err
		}
		return fmt.Errorf("picture: picture %d: %w", i, errors.Join(err, ErrUnresolvedInconsistency))
	}
	m.pictures[i] = p
	m.stats.Reconstructions++
	return nil
}

// realize builds a picture of m.cfg within draws attempts.
func (m *Manager) realize(rng *rand.Rand, draws int) (*Picture, error) {
	var last error
	for d := 0; d < draws; d++ {
		p, err := m.draw(rng)
		if err == nil {
			return p, nil
		}
		if errors.Is(err, core.ErrInvariant) {
			return nil, err
		}
		m.stats.FailedDraws++
		last = err
	}
	if last == nil {
		return nil, fmt.Errorf("picture: no draws allowed: %w", ErrReconstructionFailed)
	}
	return nil, fmt.Errorf("picture: %d draws: %w", draws, errors.Join(last, ErrReconstructionFailed))
}

// errReplay marks a draw whose constructed objects did not replay.
var errReplay = errors.New("picture: replay diverged")

// draw performs one realization attempt: sample, then replay.
func (m *Manager) draw(rng *rand.Rand) (*Picture, error) {
	layout := m.cfg.Layout()
	vals, err := m.opts.Sampler.Sample(layout, rng)
	if err != nil {
		return nil, err
	}
	loose := m.cfg.LooseObjects()
	if len(vals) != len(loose) {
		return nil, fmt.Errorf("picture: sampler returned %d values for %s: %w", len(vals), layout, core.ErrInvariant)
	}
	p := newPicture(rng, m.opts.Tolerance)
	for i, o := range loose {
		if vals[i] == nil || vals[i].Type() != o.Type {
			return nil, fmt.Errorf("picture: sampler value %d is not a %s: %w", i, o.Type, core.ErrInvariant)
		}
		p.insert(o.ID, vals[i])
	}
	for _, o := range m.cfg.ConstructedObjects() {
		fn, err := m.resolver.Resolve(o.Construction)
		if err != nil {
			return nil, fmt.Errorf("picture: replay %s: %w", o, errors.Join(err, core.ErrInvariant))
		}
		out, err := p.Add(o, fn)
		if err != nil {
			return nil, err
		}
		if out.Status != Constructed {
			return nil, fmt.Errorf("picture: replay %s: %s: %w", o, out.Status, errReplay)
		}
	}
	return p, nil
}

// clone returns a manager over cfg holding copies of m's pictures with
// derived streams; stats start at zero.
func (m *Manager) clone(cfg *core.Configuration) *Manager {
	c := &Manager{
		cfg:      cfg,
		resolver: m.resolver,
		pictures: make([]*Picture, len(m.pictures)),
		opts:     m.opts,
		logger:   m.logger,
	}
	for i, p := range m.pictures {
		c.pictures[i] = p.clone(deriveRNG(p.rng, uint64(i)))
	}
	return c
}
