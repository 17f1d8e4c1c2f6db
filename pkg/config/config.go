// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/feedform/feedform/pkg/animal"
	"github.com/feedform/feedform/pkg/defaults"
	"github.com/feedform/feedform/pkg/engine"
	fferrors "github.com/feedform/feedform/pkg/errors"
	"github.com/feedform/feedform/pkg/formulation"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. FEEDFORM_TOLERANCE.
	EnvPrefix = "FEEDFORM"

	// DefaultFileName is the config file searched for in $HOME and the
	// working directory when no explicit path is given.
	DefaultFileName = ".feedform"
)

// Keys accepted in config files, environment variables, and overrides.
const (
	KeyTolerance            = "tolerance"
	KeyStep                 = "step"
	KeyMaxVariantsPerBucket = "max-variants-per-bucket"
	KeyMaxMixtures          = "max-mixtures"
	KeyMinSelection         = "min-selection"
	KeyDataDir              = "data-dir"
	KeyLogLevel             = "log-level"
)

// Config holds the engine parameters shared by the CLI and the API server.
type Config struct {
	// Tolerance is the default fractional widening of nutrient bounds.
	Tolerance float64 `mapstructure:"tolerance" validate:"gte=0"`

	// Step is the within-bucket grid resolution.
	Step float64 `mapstructure:"step" validate:"gt=0,lte=1"`

	// MaxVariantsPerBucket bounds proportion splits kept per bucket.
	MaxVariantsPerBucket int `mapstructure:"max-variants-per-bucket" validate:"gte=1"`

	// MaxMixtures caps the generated candidate count.
	MaxMixtures int `mapstructure:"max-mixtures" validate:"gte=1"`

	// MinSelection is the minimum distinct names per constrained category.
	MinSelection int `mapstructure:"min-selection" validate:"gte=1"`

	// DataDir optionally holds profile files that replace the embedded ones.
	DataDir string `mapstructure:"data-dir"`

	LogLevel string `mapstructure:"log-level" validate:"oneof=debug info warn error"`
}

type loadOptions struct {
	file      string
	overrides map[string]any
	search    bool
}

// Option configures Load.
type Option func(*loadOptions)

// WithFile reads path, failing when it cannot be read.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.file = path
	}
}

// WithOverride sets key above file and environment values. CLI flags use
// it for values the user set explicitly.
func WithOverride(key string, value any) Option {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]any)
		}
		o.overrides[key] = value
	}
}

// WithoutSearch disables discovery of DefaultFileName.
func WithoutSearch() Option {
	return func(o *loadOptions) {
		o.search = false
	}
}

// Load resolves configuration from, lowest to highest precedence: built-in
// defaults, a YAML file, FEEDFORM_* environment variables, and overrides.
func Load(opts ...Option) (*Config, error) {
	lo := &loadOptions{search: true}
	for _, opt := range opts {
		opt(lo)
	}

	v := viper.New()
	v.SetDefault(KeyTolerance, defaults.Tolerance)
	v.SetDefault(KeyStep, defaults.GridStep)
	v.SetDefault(KeyMaxVariantsPerBucket, defaults.MaxVariantsPerBucket)
	v.SetDefault(KeyMaxMixtures, defaults.MaxMixtures)
	v.SetDefault(KeyMinSelection, defaults.MinConstrainedSelection)
	v.SetDefault(KeyDataDir, "")
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	switch {
	case lo.file != "":
		v.SetConfigFile(lo.file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fferrors.WrapWithContext(fferrors.ErrCodeInvalidRequest,
				"failed to read config file", err, map[string]any{"file": lo.file})
		}
	case lo.search:
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(DefaultFileName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fferrors.Wrap(fferrors.ErrCodeInvalidRequest, "failed to read config file", err)
			}
		}
	}

	for k, val := range lo.overrides {
		v.Set(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fferrors.Wrap(fferrors.ErrCodeInvalidRequest, "failed to decode config", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fferrors.Wrap(fferrors.ErrCodeInternal, "failed to validate config", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (%s)", fe.Field(), fe.Tag(), fe.Param()))
	}
	return fferrors.NewWithContext(fferrors.ErrCodeInvalidRequest,
		"invalid configuration: "+strings.Join(msgs, "; "),
		map[string]any{"fields": len(fieldErrs)})
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})
	return v
}

// GeneratorOptions returns the mixture generator settings.
func (c *Config) GeneratorOptions() []formulation.Option {
	return []formulation.Option{
		formulation.WithStep(c.Step),
		formulation.WithMaxVariantsPerBucket(c.MaxVariantsPerBucket),
		formulation.WithMaxMixtures(c.MaxMixtures),
	}
}

// RegistryOptions returns registry settings, layering DataDir over the
// embedded profiles when set.
func (c *Config) RegistryOptions() ([]animal.RegistryOption, error) {
	opts := []animal.RegistryOption{animal.WithGeneratorOptions(c.GeneratorOptions()...)}
	if c.DataDir == "" {
		return opts, nil
	}
	p, err := animal.NewLayeredDataProvider(animal.NewEmbeddedDataProvider(),
		animal.LayeredProviderConfig{ExternalDir: c.DataDir})
	if err != nil {
		return nil, err
	}
	return append(opts, animal.WithDataProvider(p)), nil
}

// EngineOptions returns engine settings stamped with version.
func (c *Config) EngineOptions(version string) []engine.Option {
	return []engine.Option{
		engine.WithTolerance(c.Tolerance),
		engine.WithMinSelection(c.MinSelection),
		engine.WithVersion(version),
	}
}
