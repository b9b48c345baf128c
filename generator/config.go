// SPDX-License-Identifier: MIT

package generator

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/geogen/construct"
	"github.com/katalvlaran/geogen/core"
	"github.com/katalvlaran/geogen/picture"
)

// ErrInvalidConfig indicates a run file or environment that fails validation.
var ErrInvalidConfig = errors.New("generator: invalid run config")

// RunConfig is the serializable description of a run: the YAML run file
// of the geogen command, overridable by GEOGEN_* environment variables.
type RunConfig struct {
	// Layout names the loose-object layout, case-insensitive.
	Layout string `yaml:"layout" validate:"required"`

	// Constructions names catalogue constructions.
	Constructions []string `yaml:"constructions" validate:"required,min=1,dive,required"`

	// Iterations is the number of layers.
	Iterations int `yaml:"iterations" validate:"gte=0,lte=16"`

	// Pictures is K.
	Pictures int `yaml:"pictures" validate:"gte=1,lte=64"`

	// MaxAttemptsPerPicture bounds per-picture reconstruction draws.
	MaxAttemptsPerPicture int `yaml:"max_attempts_per_picture" validate:"gte=0,lte=100"`

	// MaxAttemptsAll bounds reconstruction rounds.
	MaxAttemptsAll int `yaml:"max_attempts_all" validate:"gte=0,lte=100"`

	// Tolerance is the picture equality epsilon.
	Tolerance float64 `yaml:"tolerance" validate:"gt=0,lt=1"`

	// Seed seeds the pictures; 0 selects the default seed.
	Seed int64 `yaml:"seed"`

	// Workers is the layer worker pool size.
	Workers int `yaml:"workers" validate:"gte=1,lte=256"`

	// SymmetryReduction deduplicates up to the layout symmetry group.
	SymmetryReduction bool `yaml:"symmetry_reduction"`

	// Tracing enables OpenTelemetry spans.
	Tracing bool `yaml:"tracing"`
}

var configValidate = validator.New()

// DefaultRunConfig returns a triangle with midpoints, one iteration and the
// picture defaults.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Layout:                core.Triangle.String(),
		Constructions:         []string{construct.NameMidpoint},
		Iterations:            1,
		Pictures:              picture.DefaultPictures,
		MaxAttemptsPerPicture: picture.DefaultMaxAttemptsPerPicture,
		MaxAttemptsAll:        picture.DefaultMaxAttemptsAll,
		Tolerance:             picture.DefaultTolerance,
		Workers:               1,
		SymmetryReduction:     true,
	}
}

// LoadRunConfig starts from DefaultRunConfig, applies the YAML file at path
// (skipped when path is empty), then the environment, then validates.
//
// Errors: file read and parse errors; ErrInvalidConfig (wrapped) on
// validation failure.
func LoadRunConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("generator: read run file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("generator: parse run file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides fields from GEOGEN_* variables. Malformed values are
// reported instead of ignored.
func (c *RunConfig) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s=%q: %w", key, v, err))
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s=%q: %w", key, v, err))
				return
			}
			*dst = b
		}
	}

	str("GEOGEN_LAYOUT", &c.Layout)
	if v, ok := lookup("GEOGEN_CONSTRUCTIONS"); ok && v != "" {
		c.Constructions = nil
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				c.Constructions = append(c.Constructions, name)
			}
		}
	}
	num("GEOGEN_ITERATIONS", &c.Iterations)
	num("GEOGEN_PICTURES", &c.Pictures)
	num("GEOGEN_MAX_ATTEMPTS_PER_PICTURE", &c.MaxAttemptsPerPicture)
	num("GEOGEN_MAX_ATTEMPTS_ALL", &c.MaxAttemptsAll)
	num("GEOGEN_WORKERS", &c.Workers)
	if v, ok := lookup("GEOGEN_TOLERANCE"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("GEOGEN_TOLERANCE=%q: %w", v, err))
		} else {
			c.Tolerance = f
		}
	}
	if v, ok := lookup("GEOGEN_SEED"); ok && v != "" {
		s, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("GEOGEN_SEED=%q: %w", v, err))
		} else {
			c.Seed = s
		}
	}
	flag("GEOGEN_SYMMETRY_REDUCTION", &c.SymmetryReduction)
	flag("GEOGEN_TRACING", &c.Tracing)

	if len(errs) > 0 {
		return fmt.Errorf("generator: environment: %w", errors.Join(append(errs, ErrInvalidConfig)...))
	}
	return nil
}

// Validate checks field ranges, the layout name and the construction names.
func (c RunConfig) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("generator: %w", errors.Join(err, ErrInvalidConfig))
	}
	if _, err := core.ParseLayout(c.Layout); err != nil {
		return fmt.Errorf("generator: %w", errors.Join(err, ErrInvalidConfig))
	}
	if _, err := construct.ByName(c.Constructions...); err != nil {
		return fmt.Errorf("generator: %w", errors.Join(err, ErrInvalidConfig))
	}
	return nil
}

// Input builds the run input described by c.
func (c RunConfig) Input() (Input, error) {
	layout, err := core.ParseLayout(c.Layout)
	if err != nil {
		return Input{}, fmt.Errorf("generator: %w", errors.Join(err, ErrInvalidConfig))
	}
	ks, err := construct.ByName(c.Constructions...)
	if err != nil {
		return Input{}, fmt.Errorf("generator: %w", errors.Join(err, ErrInvalidConfig))
	}
	return Input{
		Initial:       core.NewLooseConfiguration(layout),
		Constructions: ks,
		Iterations:    c.Iterations,
	}, nil
}

// Options translates c into generator options. Validate c first: the
// option constructors panic on out-of-range values.
func (c RunConfig) Options() []Option {
	opts := []Option{
		WithWorkers(c.Workers),
		WithPictureOptions(
			picture.WithPictures(c.Pictures),
			picture.WithMaxAttemptsPerPicture(c.MaxAttemptsPerPicture),
			picture.WithMaxAttemptsAll(c.MaxAttemptsAll),
			picture.WithTolerance(c.Tolerance),
			picture.WithSeed(c.Seed),
		),
	}
	if !c.SymmetryReduction {
		opts = append(opts, WithoutSymmetryReduction())
	}
	if c.Tracing {
		opts = append(opts, WithTracing())
	}
	return opts
}
