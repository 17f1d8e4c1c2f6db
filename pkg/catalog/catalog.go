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

package catalog

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	fferrors "github.com/feedform/feedform/pkg/errors"
)

// Names reserved for the totals serialized alongside ingredient proportions
// in a mixture. No ingredient may use them, in any letter case.
const (
	ReservedTotalME        = "total_me_content"
	ReservedTotalCP        = "total_cp_content"
	ReservedNutrientTotals = "nutrient_totals"
)

// IsReservedName reports whether name collides with a mixture total key.
func IsReservedName(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ReservedTotalME, ReservedTotalCP, ReservedNutrientTotals:
		return true
	default:
		return false
	}
}

// Ingredient is immutable reference data describing one feedstuff.
type Ingredient struct {
	// Name is the unique key of the ingredient.
	Name string `json:"name" yaml:"name" validate:"required"`

	// Role is the nutritional role (energy, protein, amino_acid_1, amino_acid_2).
	Role Role `json:"role" yaml:"role" validate:"required,oneof=energy protein amino_acid_1 amino_acid_2"`

	// Subtype refines Role; empty for amino acids.
	Subtype Subtype `json:"subtype,omitempty" yaml:"subtype,omitempty" validate:"omitempty,oneof=source replacer high medium"`

	// Energy is metabolizable energy per unit mass (kcal/kg).
	Energy float64 `json:"energy" yaml:"energy" validate:"gte=0"`

	// Protein is crude protein per unit mass (percent).
	Protein float64 `json:"protein" yaml:"protein" validate:"gte=0,lte=100"`

	// Nutrients holds additional per-unit nutrient values keyed by nutrient name.
	Nutrients map[string]float64 `json:"nutrients,omitempty" yaml:"nutrients,omitempty"`
}

// Category returns the selection category the ingredient belongs to.
func (i Ingredient) Category() (Category, bool) {
	return CategoryFor(i.Role, i.Subtype)
}

// Catalog is a read-only lookup of ingredients by name. It is safe for
// concurrent use once constructed.
type Catalog struct {
	byKey      map[string]Ingredient
	byCategory map[Category][]string
	names      []string
}

// New builds a Catalog from ingredient records. Names are matched
// case-insensitively; duplicate names, reserved names, and records with a
// role/subtype that maps to no category are rejected.
func New(ingredients []Ingredient) (*Catalog, error) {
	c := &Catalog{
		byKey:      make(map[string]Ingredient, len(ingredients)),
		byCategory: make(map[Category][]string),
		names:      make([]string, 0, len(ingredients)),
	}

	for _, ing := range ingredients {
		ing.Name = strings.TrimSpace(ing.Name)
		if ing.Name == "" {
			return nil, fferrors.New(fferrors.ErrCodeInvalidRequest, "ingredient name cannot be empty")
		}
		if IsReservedName(ing.Name) {
			return nil, fferrors.NewWithContext(fferrors.ErrCodeInvalidRequest,
				fmt.Sprintf("ingredient name %q is reserved", ing.Name),
				map[string]any{"ingredient": ing.Name})
		}
		cat, ok := ing.Category()
		if !ok {
			return nil, fferrors.NewWithContext(fferrors.ErrCodeInvalidRequest,
				fmt.Sprintf("ingredient %q has no category for its role", ing.Name),
				map[string]any{"role": ing.Role, "subtype": ing.Subtype})
		}
		key := foldName(ing.Name)
		if _, dup := c.byKey[key]; dup {
			return nil, fferrors.New(fferrors.ErrCodeInvalidRequest,
				fmt.Sprintf("duplicate ingredient: %q", ing.Name))
		}
		c.byKey[key] = cloneIngredient(ing)
		c.byCategory[cat] = append(c.byCategory[cat], ing.Name)
		c.names = append(c.names, ing.Name)
	}

	sort.Strings(c.names)
	for cat := range c.byCategory {
		sort.Strings(c.byCategory[cat])
	}
	return c, nil
}

// Lookup returns the ingredient with the given name. Unknown names yield an
// INVALID_INGREDIENT error.
func (c *Catalog) Lookup(name string) (Ingredient, error) {
	ing, ok := c.byKey[foldName(name)]
	if !ok {
		return Ingredient{}, fferrors.NewWithContext(fferrors.ErrCodeInvalidIngredient,
			fmt.Sprintf("unknown ingredient: %q", name),
			map[string]any{"ingredient": name})
	}
	return cloneIngredient(ing), nil
}

// Contains reports whether name is present in the catalog.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.byKey[foldName(name)]
	return ok
}

// IngredientsOf returns the sorted names of ingredients with the given role
// and subtype.
func (c *Catalog) IngredientsOf(role Role, subtype Subtype) []string {
	cat, ok := CategoryFor(role, subtype)
	if !ok {
		return nil
	}
	return c.InCategory(cat)
}

// InCategory returns the sorted names of ingredients in cat.
func (c *Catalog) InCategory(cat Category) []string {
	names := c.byCategory[cat]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Options returns every category mapped to its sorted ingredient names.
// Categories without ingredients map to an empty slice.
func (c *Catalog) Options() map[Category][]string {
	out := make(map[Category][]string, len(categoryTraits))
	for _, cat := range Categories() {
		out[cat] = c.InCategory(cat)
	}
	return out
}

// Names returns all ingredient names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of ingredients.
func (c *Catalog) Len() int {
	return len(c.names)
}

// foldName produces the lookup key for an ingredient name. A new Caser is
// created per call because Casers are not safe for concurrent use.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

func cloneIngredient(ing Ingredient) Ingredient {
	if len(ing.Nutrients) > 0 {
		n := make(map[string]float64, len(ing.Nutrients))
		for k, v := range ing.Nutrients {
			n[k] = v
		}
		ing.Nutrients = n
	}
	return ing
}
