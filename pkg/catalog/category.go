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
	"strings"
)

// Role is the nutritional role of an ingredient.
type Role string

// Role constants.
const (
	RoleEnergy     Role = "energy"
	RoleProtein    Role = "protein"
	RoleAminoAcid1 Role = "amino_acid_1"
	RoleAminoAcid2 Role = "amino_acid_2"
)

// ParseRole parses a role name. The legacy spellings "Amino acid 1" and
// "Amino acid 2" are accepted.
func ParseRole(s string) (Role, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, " ", "_")
	switch Role(norm) {
	case RoleEnergy, RoleProtein, RoleAminoAcid1, RoleAminoAcid2:
		return Role(norm), nil
	default:
		return "", fmt.Errorf("invalid ingredient role: %q", s)
	}
}

// Subtype refines a Role. Amino acid roles have no subtype.
type Subtype string

// Subtype constants.
const (
	SubtypeNone     Subtype = ""
	SubtypeSource   Subtype = "source"
	SubtypeReplacer Subtype = "replacer"
	SubtypeHigh     Subtype = "high"
	SubtypeMedium   Subtype = "medium"
)

// Family groups categories whose mass share is interchangeable when a
// category is absent from a selection.
type Family string

// Family constants.
const (
	FamilyEnergy  Family = "energy"
	FamilyProtein Family = "protein"
)

// Category is one of the seven role/subtype buckets a caller selects
// ingredients into.
type Category string

// Category constants, declared in canonical bucket order.
const (
	EnergySources        Category = "energy_sources"
	EnergyReplacers      Category = "energy_replacers"
	HighProteinSources   Category = "high_protein_sources"
	MediumProteinSources Category = "medium_protein_sources"
	ProteinReplacers     Category = "protein_replacers"
	AminoAcid1           Category = "amino_acid_1"
	AminoAcid2           Category = "amino_acid_2"
)

type categoryTrait struct {
	role        Role
	subtype     Subtype
	family      Family
	constrained bool
}

var categoryTraits = map[Category]categoryTrait{
	EnergySources:        {RoleEnergy, SubtypeSource, FamilyEnergy, true},
	EnergyReplacers:      {RoleEnergy, SubtypeReplacer, FamilyEnergy, true},
	HighProteinSources:   {RoleProtein, SubtypeHigh, FamilyProtein, false},
	MediumProteinSources: {RoleProtein, SubtypeMedium, FamilyProtein, true},
	ProteinReplacers:     {RoleProtein, SubtypeReplacer, FamilyProtein, true},
	AminoAcid1:           {RoleAminoAcid1, SubtypeNone, FamilyProtein, false},
	AminoAcid2:           {RoleAminoAcid2, SubtypeNone, FamilyProtein, false},
}

// Categories returns all categories in canonical bucket order.
func Categories() []Category {
	return []Category{
		EnergySources,
		EnergyReplacers,
		HighProteinSources,
		MediumProteinSources,
		ProteinReplacers,
		AminoAcid1,
		AminoAcid2,
	}
}

// ConstrainedCategories returns the categories subject to the minimum
// selection rule, in canonical order.
func ConstrainedCategories() []Category {
	var out []Category
	for _, c := range Categories() {
		if c.IsConstrained() {
			out = append(out, c)
		}
	}
	return out
}

// ParseCategory parses a category key.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %q", s)
	}
	return c, nil
}

// CategoryFor returns the category holding ingredients of the given role and subtype.
func CategoryFor(role Role, subtype Subtype) (Category, bool) {
	for _, c := range Categories() {
		tr := categoryTraits[c]
		if tr.role == role && tr.subtype == subtype {
			return c, true
		}
	}
	return "", false
}

// IsValid reports whether c is one of the seven known categories.
func (c Category) IsValid() bool {
	_, ok := categoryTraits[c]
	return ok
}

// Role returns the ingredient role stored in this category.
func (c Category) Role() Role { return categoryTraits[c].role }

// Subtype returns the ingredient subtype stored in this category.
func (c Category) Subtype() Subtype { return categoryTraits[c].subtype }

// Family returns the broad family used for share redistribution.
func (c Category) Family() Family { return categoryTraits[c].family }

// IsConstrained reports whether a selection for c must hold at least two
// distinct ingredients.
func (c Category) IsConstrained() bool { return categoryTraits[c].constrained }

// Index returns the canonical position of c, or -1 for unknown categories.
func (c Category) Index() int {
	for i, k := range Categories() {
		if k == c {
			return i
		}
	}
	return -1
}

func (c Category) String() string { return string(c) }
