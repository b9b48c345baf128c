// SPDX-License-Identifier: MIT

package generator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/geogen/construct"
	"github.com/katalvlaran/geogen/core"
	"github.com/katalvlaran/geogen/generator"
	"github.com/katalvlaran/geogen/picture"
)

func writeRunFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadRunConfig_Defaults(t *testing.T) {
	cfg, err := generator.LoadRunConfig("")
	require.NoError(t, err)
	assert.Equal(t, generator.DefaultRunConfig(), cfg)
	assert.Equal(t, picture.DefaultPictures, cfg.Pictures)
	assert.True(t, cfg.SymmetryReduction)
}

func TestLoadRunConfig_File(t *testing.T) {
	path := writeRunFile(t, `
layout: quadrilateral
constructions: [Midpoint, IntersectionOfLines, LineFromPoints]
iterations: 2
pictures: 7
seed: 42
workers: 3
symmetry_reduction: false
`)
	cfg, err := generator.LoadRunConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "quadrilateral", cfg.Layout)
	assert.Equal(t, []string{"Midpoint", "IntersectionOfLines", "LineFromPoints"}, cfg.Constructions)
	assert.Equal(t, 2, cfg.Iterations)
	assert.Equal(t, 7, cfg.Pictures)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 3, cfg.Workers)
	assert.False(t, cfg.SymmetryReduction)
	// Unset keys keep their defaults.
	assert.Equal(t, picture.DefaultTolerance, cfg.Tolerance)
	assert.Equal(t, picture.DefaultMaxAttemptsAll, cfg.MaxAttemptsAll)

	in, err := cfg.Input()
	require.NoError(t, err)
	assert.Equal(t, core.Quadrilateral, in.Initial.Layout())
	assert.Len(t, in.Constructions, 3)
}

func TestLoadRunConfig_EnvOverridesFile(t *testing.T) {
	path := writeRunFile(t, "layout: Triangle\niterations: 1\n")
	t.Setenv("GEOGEN_LAYOUT", "TwoPoints")
	t.Setenv("GEOGEN_CONSTRUCTIONS", "Midpoint, PointReflection")
	t.Setenv("GEOGEN_ITERATIONS", "3")
	t.Setenv("GEOGEN_TOLERANCE", "0.001")
	t.Setenv("GEOGEN_SEED", "-5")
	t.Setenv("GEOGEN_SYMMETRY_REDUCTION", "false")
	t.Setenv("GEOGEN_TRACING", "true")

	cfg, err := generator.LoadRunConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "TwoPoints", cfg.Layout)
	assert.Equal(t, []string{construct.NameMidpoint, construct.NamePointReflection}, cfg.Constructions)
	assert.Equal(t, 3, cfg.Iterations)
	assert.Equal(t, 0.001, cfg.Tolerance)
	assert.Equal(t, int64(-5), cfg.Seed)
	assert.False(t, cfg.SymmetryReduction)
	assert.True(t, cfg.Tracing)
}

func TestLoadRunConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := generator.LoadRunConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("malformed yaml", func(t *testing.T) {
		_, err := generator.LoadRunConfig(writeRunFile(t, "layout: [unterminated\n"))
		assert.Error(t, err)
	})

	invalid := map[string]string{
		"no pictures":          "pictures: 0\n",
		"no workers":           "workers: 0\n",
		"zero tolerance":       "tolerance: 0\n",
		"negative iterations":  "iterations: -1\n",
		"unknown layout":       "layout: Hexagon\n",
		"unknown construction": "constructions: [Midpoint, Trisector]\n",
		"empty constructions":  "constructions: []\n",
	}
	for name, body := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := generator.LoadRunConfig(writeRunFile(t, body))
			assert.ErrorIs(t, err, generator.ErrInvalidConfig)
		})
	}

	t.Run("malformed env", func(t *testing.T) {
		t.Setenv("GEOGEN_WORKERS", "many")
		_, err := generator.LoadRunConfig("")
		assert.ErrorIs(t, err, generator.ErrInvalidConfig)
	})
}

func TestRunConfig_DrivesGenerator(t *testing.T) {
	cfg := generator.DefaultRunConfig()
	cfg.Iterations = 2
	require.NoError(t, cfg.Validate())

	in, err := cfg.Input()
	require.NoError(t, err)
	g, err := generator.New(in, append(cfg.Options(), generator.WithLogger(quiet))...)
	require.NoError(t, err)

	n := 0
	for _, err := range g.All(context.Background()) {
		require.NoError(t, err)
		n++
	}
	assert.Equal(t, 4, n)
}
