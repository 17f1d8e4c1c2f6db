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

package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/feedform/feedform/pkg/catalog"
	"github.com/feedform/feedform/pkg/formulation"
	"github.com/feedform/feedform/pkg/header"
	"github.com/feedform/feedform/pkg/requirement"
)

// Result is the outcome of Formulate.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	AnimalType  string                  `json:"animal_type" yaml:"animal_type"`
	Class       string                  `json:"class" yaml:"class"`
	Tolerance   float64                 `json:"tolerance" yaml:"tolerance"`
	Ranked      bool                    `json:"ranked" yaml:"ranked"`
	Requirement requirement.Requirement `json:"requirement" yaml:"requirement"`

	// Selection echoes the requested ingredient names per category.
	Selection map[catalog.Category][]string `json:"selection" yaml:"selection"`

	Summary formulation.Summary `json:"summary" yaml:"summary"`

	// Formulations holds every generated mixture in generation order.
	Formulations []formulation.Mixture `json:"formulations" yaml:"formulations"`

	// Recommended holds the mixtures within the tolerance-widened bounds.
	Recommended []formulation.Mixture `json:"recommended_formulations" yaml:"recommended_formulations"`
}

// TableHeader implements serializer.Tabular.
func (r *Result) TableHeader() []string {
	return []string{"#", "RECOMMENDED", "ME", "CP", "INGREDIENTS"}
}

// TableRows implements serializer.Tabular. Recommended mixtures are listed
// first, then the rest in generation order.
func (r *Result) TableRows() [][]string {
	seen := make(map[string]bool, len(r.Recommended))
	rows := make([][]string, 0, len(r.Formulations))
	for _, m := range r.Recommended {
		seen[m.Key()] = true
		rows = append(rows, mixtureRow(len(rows)+1, "yes", m))
	}
	for _, m := range r.Formulations {
		if seen[m.Key()] {
			continue
		}
		rows = append(rows, mixtureRow(len(rows)+1, "no", m))
	}
	return rows
}

func mixtureRow(n int, recommended string, m formulation.Mixture) []string {
	parts := make([]string, 0, len(m.Proportions))
	for _, name := range m.Names() {
		parts = append(parts, fmt.Sprintf("%s=%.4f", name, m.Proportions[name]))
	}
	return []string{
		strconv.Itoa(n),
		recommended,
		strconv.FormatFloat(m.TotalME, 'f', 1, 64),
		strconv.FormatFloat(m.TotalCP, 'f', 2, 64),
		strings.Join(parts, ", "),
	}
}

// ClassList is the class selector for one animal type.
type ClassList struct {
	header.Header `json:",inline" yaml:",inline"`

	AnimalType string   `json:"animal_type" yaml:"animal_type"`
	Classes    []string `json:"classes" yaml:"classes"`
}

// IngredientOptions is the catalog of one animal type grouped by category.
type IngredientOptions struct {
	header.Header `json:",inline" yaml:",inline"`

	AnimalType string                        `json:"animal_type" yaml:"animal_type"`
	Options    map[catalog.Category][]string `json:"ingredient_options" yaml:"ingredient_options"`
}

// TableHeader implements serializer.Tabular.
func (o *IngredientOptions) TableHeader() []string {
	return []string{"CATEGORY", "INGREDIENTS"}
}

// TableRows implements serializer.Tabular, in canonical category order.
func (o *IngredientOptions) TableRows() [][]string {
	rows := make([][]string, 0, len(o.Options))
	for _, c := range catalog.Categories() {
		rows = append(rows, []string{string(c), strings.Join(o.Options[c], ", ")})
	}
	return rows
}

// AnimalInfo describes one supported animal type.
type AnimalInfo struct {
	Type        string   `json:"animal_type" yaml:"animal_type"`
	DisplayName string   `json:"display_name" yaml:"display_name"`
	Classes     []string `json:"classes" yaml:"classes"`
}

// AnimalList lists the supported animal types.
type AnimalList struct {
	header.Header `json:",inline" yaml:",inline"`

	Animals []AnimalInfo `json:"animals" yaml:"animals"`
}
