// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/geogen/construct"
	"github.com/katalvlaran/geogen/core"
	"github.com/katalvlaran/geogen/generator"
)

// generateFlags holds the generate command line. A flag overrides the run
// file only when given explicitly.
type generateFlags struct {
	config        string
	layout        string
	constructions []string
	iterations    int
	pictures      int
	seed          int64
	workers       int
	noSymmetry    bool
	tracing       bool
	verbose       bool
	quiet         bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "geogen",
		Short:        "Generate geometric configurations",
		SilenceUsage: true,
	}
	root.AddCommand(newGenerateCmd(), newCatalogueCmd(), newLayoutsCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the layer-by-layer generator and print every accepted configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runGenerate(ctx, cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "YAML run file")
	fl.StringVarP(&f.layout, "layout", "l", "", "loose-object layout (see 'geogen layouts')")
	fl.StringSliceVarP(&f.constructions, "constructions", "k", nil, "comma-separated construction names (see 'geogen catalogue')")
	fl.IntVarP(&f.iterations, "iterations", "n", 0, "number of layers")
	fl.IntVar(&f.pictures, "pictures", 0, "pictures per configuration")
	fl.Int64Var(&f.seed, "seed", 0, "picture seed (0 selects the default)")
	fl.IntVarP(&f.workers, "workers", "w", 0, "configurations of a layer expanded concurrently")
	fl.BoolVar(&f.noSymmetry, "no-symmetry", false, "merge only identical configurations")
	fl.BoolVar(&f.tracing, "tracing", false, "emit OpenTelemetry spans")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "print only the summary")
	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, f generateFlags) error {
	cfg, err := generator.LoadRunConfig(f.config)
	if err != nil {
		return err
	}
	fl := cmd.Flags()
	if fl.Changed("layout") {
		cfg.Layout = f.layout
	}
	if fl.Changed("constructions") {
		cfg.Constructions = f.constructions
	}
	if fl.Changed("iterations") {
		cfg.Iterations = f.iterations
	}
	if fl.Changed("pictures") {
		cfg.Pictures = f.pictures
	}
	if fl.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fl.Changed("no-symmetry") {
		cfg.SymmetryReduction = !f.noSymmetry
	}
	if fl.Changed("tracing") {
		cfg.Tracing = f.tracing
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	in, err := cfg.Input()
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	g, err := generator.New(in, append(cfg.Options(), generator.WithLogger(logger))...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	n := 0
	for res, err := range g.All(ctx) {
		if err != nil {
			return err
		}
		n++
		if !f.quiet {
			fmt.Fprintf(out, "#%d (iteration %d)\n%s\n\n", n, res.Iteration, res.Configuration)
		}
	}
	printStats(out, g.Stats())
	return nil
}

func printStats(w io.Writer, s generator.Stats) {
	fmt.Fprintf(w, "layers:          %d\n", s.Layers)
	fmt.Fprintf(w, "candidates:      %d\n", s.Candidates)
	fmt.Fprintf(w, "accepted:        %d\n", s.Accepted)
	fmt.Fprintf(w, "failed:          %d\n", s.Failed)
	fmt.Fprintf(w, "equal:           %d\n", s.Equal)
	fmt.Fprintf(w, "duplicates:      %d\n", s.Duplicates)
	fmt.Fprintf(w, "symmetric:       %d\n", s.Symmetric)
	fmt.Fprintf(w, "inconsistent:    %d\n", s.Inconsistent)
	fmt.Fprintf(w, "reconstructions: %d\n", s.Reconstructions)
}

func newCatalogueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogue",
		Short: "List the predefined constructions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, k := range construct.Catalogue() {
				outs := make([]string, len(k.Outputs()))
				for i, t := range k.Outputs() {
					outs[i] = t.String()
				}
				fmt.Fprintf(out, "%-30s %-28s -> %s\n", k.Name(), k.Signature(), strings.Join(outs, ", "))
			}
		},
	}
}

func newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the loose-object layouts",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, l := range core.Layouts() {
				types := make([]string, 0, len(l.ObjectTypes()))
				for _, t := range l.ObjectTypes() {
					types = append(types, t.String())
				}
				fmt.Fprintf(out, "%-20s %s\n", l, strings.Join(types, ", "))
			}
		},
	}
}
