// SPDX-License-Identifier: MIT

// Package generator drives the layer-by-layer search for geometric
// configurations.
//
// A run starts from a fully loose configuration and a list of
// constructions. Each layer applies every construction to every admissible
// argument list of every configuration of the previous layer:
//
//	layer 0:  {A, B, C}
//	layer 1:  {A, B, C, Midpoint({A,B})}
//	layer 2:  {A, B, C, Midpoint({A,B}), Midpoint({A,C})}, ...
//
// A candidate object is dropped when it
//
//   - is already part of the configuration (interned to an existing identity);
//   - is degenerate in the pictures (Failed);
//   - coincides with an existing object in every picture (Equal);
//   - cannot be made consistent across pictures within the attempt bounds;
//   - yields a configuration whose canonical form was seen before.
//
// Everything else is emitted as an Output, in layer order. Within a layer
// the order follows the previous layer's order when Workers is 1; with more
// workers the emitted set is the same up to symmetry but identities and the
// representative of each class may differ between runs.
//
// Ambient stack:
//   - log/slog with a per-run "run_id" attribute;
//   - Prometheus counters and histograms under the "geogen" namespace;
//   - optional OpenTelemetry spans for the run and each layer;
//   - RunConfig loaded from YAML plus GEOGEN_* environment overrides and
//     checked with go-playground/validator.
//
// Errors: invariant violations (core.ErrInvariant) abort the run. Anything
// else that goes wrong with a single candidate only drops that candidate.
package generator
