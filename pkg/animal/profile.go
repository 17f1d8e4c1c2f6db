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
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/feedform/feedform/pkg/catalog"
	fferrors "github.com/feedform/feedform/pkg/errors"
	"github.com/feedform/feedform/pkg/formulation"
	"github.com/feedform/feedform/pkg/requirement"
)

// ProfileKind is the kind every profile data file must declare.
const ProfileKind = "AnimalProfile"

// Profile is the per-species capability the engine depends on: the
// requirement table, the ingredient catalog, and mixture generation tuned
// for the species.
type Profile interface {
	// Type returns the animal type the profile serves.
	Type() AnimalType

	// DisplayName returns a human readable species name.
	DisplayName() string

	// Classes returns the requirement classes in table order.
	Classes() []string

	// RequirementsFor returns the nutrient bounds for class.
	RequirementsFor(class string) (requirement.Requirement, error)

	// Catalog returns the species ingredient catalog.
	Catalog() *catalog.Catalog

	// Generate enumerates candidate mixtures for sel using the species
	// bucket weights.
	Generate(ctx context.Context, sel formulation.Selection) ([]formulation.Mixture, error)
}

// ProfileData is the on-disk form of a Profile.
type ProfileData struct {
	Kind         string                    `json:"kind" yaml:"kind" validate:"required,eq=AnimalProfile"`
	APIVersion   string                    `json:"apiVersion" yaml:"apiVersion" validate:"required"`
	Animal       AnimalType                `json:"animal" yaml:"animal" validate:"required"`
	DisplayName  string                    `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Weights      formulation.BucketWeights `json:"bucketWeights,omitempty" yaml:"bucketWeights,omitempty"`
	Requirements []requirement.Requirement `json:"requirements" yaml:"requirements" validate:"required,min=1,dive"`
	Ingredients  []catalog.Ingredient      `json:"ingredients" yaml:"ingredients" validate:"required,min=1,dive"`
}

// ParseProfileData decodes and validates a profile data file.
func ParseProfileData(data []byte) (*ProfileData, error) {
	var pd ProfileData
	if err := yaml.Unmarshal(data, &pd); err != nil {
		return nil, fferrors.Wrap(fferrors.ErrCodeInvalidRequest, "failed to parse profile data", err)
	}
	for i := range pd.Ingredients {
		if role, err := catalog.ParseRole(string(pd.Ingredients[i].Role)); err == nil {
			pd.Ingredients[i].Role = role
		}
	}
	if err := validateStruct(&pd); err != nil {
		return nil, fferrors.WrapWithContext(fferrors.ErrCodeInvalidRequest, "invalid profile data", err,
			map[string]any{"animal": string(pd.Animal)})
	}
	return &pd, nil
}

// dataProfile is a Profile backed by a ProfileData file.
type dataProfile struct {
	typ         AnimalType
	displayName string
	table       *requirement.Table
	catalog     *catalog.Catalog
	generator   *formulation.Generator
}

// NewProfile builds a Profile from validated data. genOpts configure the
// profile's generator; the data file's bucket weights are applied last.
func NewProfile(pd *ProfileData, genOpts ...formulation.Option) (Profile, error) {
	if pd == nil {
		return nil, fferrors.New(fferrors.ErrCodeInvalidRequest, "profile data cannot be nil")
	}
	typ, err := ParseAnimalType(string(pd.Animal))
	if err != nil {
		return nil, err
	}

	table, err := requirement.NewTable(pd.Requirements)
	if err != nil {
		return nil, fferrors.Wrap(fferrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid requirements for %s", typ), err)
	}
	cat, err := catalog.New(pd.Ingredients)
	if err != nil {
		return nil, fferrors.Wrap(fferrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid ingredients for %s", typ), err)
	}

	opts := append([]formulation.Option{}, genOpts...)
	if len(pd.Weights) > 0 {
		opts = append(opts, formulation.WithBucketWeights(pd.Weights))
	}
	gen, err := formulation.NewGenerator(opts...)
	if err != nil {
		return nil, fferrors.Wrap(fferrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid generator settings for %s", typ), err)
	}

	name := strings.TrimSpace(pd.DisplayName)
	if name == "" {
		name = string(typ)
	}

	return &dataProfile{
		typ:         typ,
		displayName: name,
		table:       table,
		catalog:     cat,
		generator:   gen,
	}, nil
}

func (p *dataProfile) Type() AnimalType { return p.typ }

func (p *dataProfile) DisplayName() string { return p.displayName }

func (p *dataProfile) Classes() []string { return p.table.Classes() }

func (p *dataProfile) RequirementsFor(class string) (requirement.Requirement, error) {
	return p.table.RequirementsFor(class)
}

func (p *dataProfile) Catalog() *catalog.Catalog { return p.catalog }

func (p *dataProfile) Generate(ctx context.Context, sel formulation.Selection) ([]formulation.Mixture, error) {
	return p.generator.Generate(ctx, sel, p.catalog)
}
