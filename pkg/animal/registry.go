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

package animal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	fferrors "github.com/feedform/feedform/pkg/errors"
	"github.com/feedform/feedform/pkg/formulation"
)

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Registry holds one loaded Profile per animal type. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	order    []AnimalType
	profiles map[AnimalType]Profile
}

// RegistryOption configures registry loading.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	provider DataProvider
	genOpts  []formulation.Option
}

// WithDataProvider sets the source of profile data files.
func WithDataProvider(p DataProvider) RegistryOption {
	return func(c *registryConfig) {
		c.provider = p
	}
}

// WithGeneratorOptions applies opts to every profile's generator.
func WithGeneratorOptions(opts ...formulation.Option) RegistryOption {
	return func(c *registryConfig) {
		c.genOpts = append(c.genOpts, opts...)
	}
}

// NewRegistry loads a profile for every supported animal type. Any missing
// or invalid data file fails the whole load.
func NewRegistry(ctx context.Context, opts ...RegistryOption) (*Registry, error) {
	cfg := &registryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.provider == nil {
		cfg.provider = NewEmbeddedDataProvider()
	}

	start := time.Now()
	defer func() {
		registryLoadDuration.Observe(time.Since(start).Seconds())
	}()

	r := &Registry{profiles: make(map[AnimalType]Profile)}
	for _, t := range Types() {
		if err := ctx.Err(); err != nil {
			return nil, fferrors.Wrap(fferrors.ErrCodeTimeout, "registry load canceled", err)
		}
		p, err := loadProfile(cfg, t)
		if err != nil {
			profileLoadErrors.WithLabelValues(string(t)).Inc()
			return nil, err
		}
		r.profiles[t] = p
		r.order = append(r.order, t)
	}
	return r, nil
}

func loadProfile(cfg *registryConfig, t AnimalType) (Profile, error) {
	name := t.fileName()
	data, err := cfg.provider.ReadFile(name)
	if err != nil {
		return nil, fferrors.Wrap(fferrors.ErrCodeNotFound,
			fmt.Sprintf("failed to read profile data for %s", t), err)
	}
	pd, err := ParseProfileData(data)
	if err != nil {
		return nil, err
	}
	if pd.Animal != t {
		return nil, fferrors.New(fferrors.ErrCodeInvalidRequest,
			fmt.Sprintf("profile file %s declares animal %q", name, pd.Animal))
	}
	p, err := NewProfile(pd, cfg.genOpts...)
	if err != nil {
		return nil, err
	}

	source := cfg.provider.Source(name)
	profileLoads.WithLabelValues(string(t), source).Inc()
	slog.Debug("loaded animal profile",
		"animal_type", t,
		"source", source,
		"classes", len(p.Classes()),
		"ingredients", p.Catalog().Len())
	return p, nil
}

// Default returns the registry built from embedded data with default
// generator settings. It is loaded once per process.
func Default(ctx context.Context) (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = NewRegistry(ctx)
	})
	return defaultRegistry, defaultErr
}

// Profile returns the profile for an animal type given as a string.
func (r *Registry) Profile(animalType string) (Profile, error) {
	t, err := ParseAnimalType(animalType)
	if err != nil {
		return nil, err
	}
	p, ok := r.profiles[t]
	if !ok {
		return nil, fferrors.NewWithContext(fferrors.ErrCodeInvalidAnimalType,
			"Invalid animal type selected.",
			map[string]any{"animal_type": animalType})
	}
	return p, nil
}

// Types returns the registered animal types in display order.
func (r *Registry) Types() []AnimalType {
	out := make([]AnimalType, len(r.order))
	copy(out, r.order)
	return out
}

// Profiles returns the registered profiles in display order.
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.profiles[t])
	}
	return out
}
