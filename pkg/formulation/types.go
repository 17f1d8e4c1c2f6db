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

package formulation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/feedform/feedform/pkg/catalog"
	fferrors "github.com/feedform/feedform/pkg/errors"
)

// Serialized keys that sit next to ingredient proportions in a Mixture.
const (
	KeyTotalME        = catalog.ReservedTotalME
	KeyTotalCP        = catalog.ReservedTotalCP
	KeyNutrientTotals = catalog.ReservedNutrientTotals
)

// Selection maps each category to the ingredient names chosen for it.
type Selection map[catalog.Category][]string

// Categories returns the categories holding at least one name, in canonical order.
func (s Selection) Categories() []catalog.Category {
	var out []catalog.Category
	for _, c := range catalog.Categories() {
		if len(s[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Distinct returns the number of distinct names selected for c. Names are
// compared after trimming and lower-casing.
func (s Selection) Distinct(c catalog.Category) int {
	seen := make(map[string]struct{}, len(s[c]))
	for _, n := range s[c] {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		seen[n] = struct{}{}
	}
	return len(seen)
}

// CheckCardinality verifies every constrained category has at least min
// distinct names. The first failing category in canonical order is reported.
func (s Selection) CheckCardinality(minimum int) error {
	var short []string
	for _, c := range catalog.ConstrainedCategories() {
		if s.Distinct(c) < minimum {
			short = append(short, string(c))
		}
	}
	if len(short) == 0 {
		return nil
	}
	return fferrors.NewWithContext(fferrors.ErrCodeInsufficientSelection,
		fmt.Sprintf("Please select at least %d items for energy sources, medium protein sources, energy replacers, and protein replacers.", minimum),
		map[string]any{"categories": short, "minimum": minimum})
}

// Clone returns a deep copy of s.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for c, names := range s {
		cp := make([]string, len(names))
		copy(cp, names)
		out[c] = cp
	}
	return out
}

// Mixture is a candidate formulation: ingredient name to mass fraction.
// Totals are set by Evaluate and are zero until then.
type Mixture struct {
	Proportions map[string]float64
	TotalME     float64
	TotalCP     float64

	// NutrientTotals holds totals for the optional per-ingredient nutrient
	// fields, keyed by nutrient name.
	NutrientTotals map[string]float64

	evaluated bool
}

// Evaluated reports whether the mixture has been annotated by Evaluate.
func (m Mixture) Evaluated() bool {
	return m.evaluated
}

// Names returns the mixture's ingredient names in sorted order.
func (m Mixture) Names() []string {
	names := make([]string, 0, len(m.Proportions))
	for n := range m.Proportions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Sum returns the sum of all proportions.
func (m Mixture) Sum() float64 {
	var sum float64
	for _, n := range m.Names() {
		sum += m.Proportions[n]
	}
	return sum
}

// Key returns a canonical string identifying the mixture's proportions,
// suitable for set comparisons.
func (m Mixture) Key() string {
	var b strings.Builder
	for i, n := range m.Names() {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%s=%.9f", n, m.Proportions[n])
	}
	return b.String()
}

func (m Mixture) clone() Mixture {
	out := Mixture{
		Proportions: make(map[string]float64, len(m.Proportions)),
		TotalME:     m.TotalME,
		TotalCP:     m.TotalCP,
		evaluated:   m.evaluated,
	}
	for k, v := range m.Proportions {
		out.Proportions[k] = v
	}
	if len(m.NutrientTotals) > 0 {
		out.NutrientTotals = make(map[string]float64, len(m.NutrientTotals))
		for k, v := range m.NutrientTotals {
			out.NutrientTotals[k] = v
		}
	}
	return out
}

// flatten renders the mixture the way clients consume it: ingredient
// proportions and totals side by side in one object.
func (m Mixture) flatten() map[string]any {
	out := make(map[string]any, len(m.Proportions)+3)
	for k, v := range m.Proportions {
		out[k] = v
	}
	out[KeyTotalME] = m.TotalME
	out[KeyTotalCP] = m.TotalCP
	if len(m.NutrientTotals) > 0 {
		out[KeyNutrientTotals] = m.NutrientTotals
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (m Mixture) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.flatten())
}

// MarshalYAML implements yaml.Marshaler.
func (m Mixture) MarshalYAML() (any, error) {
	return m.flatten(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Mixture) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Mixture{Proportions: make(map[string]float64, len(raw))}
	for k, v := range raw {
		switch k {
		case KeyTotalME:
			if err := json.Unmarshal(v, &out.TotalME); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		case KeyTotalCP:
			if err := json.Unmarshal(v, &out.TotalCP); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		case KeyNutrientTotals:
			if err := json.Unmarshal(v, &out.NutrientTotals); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		default:
			var p float64
			if err := json.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("proportion %q: %w", k, err)
			}
			out.Proportions[k] = p
		}
	}
	_, hasME := raw[KeyTotalME]
	_, hasCP := raw[KeyTotalCP]
	out.evaluated = hasME && hasCP
	*m = out
	return nil
}
