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

// Package requirement holds per-class nutrient bounds for an animal type.
package requirement

import (
	"fmt"
	"strings"

	fferrors "github.com/feedform/feedform/pkg/errors"
)

// Requirement is the nutrient target range for one animal class.
type Requirement struct {
	// Class is the animal class name, unique within an animal type.
	Class string `json:"class" yaml:"class" validate:"required"`

	// EnergyMin and EnergyMax bound metabolizable energy (kcal/kg).
	EnergyMin float64 `json:"energy_min" yaml:"energy_min" validate:"gte=0"`
	EnergyMax float64 `json:"energy_max" yaml:"energy_max" validate:"gtefield=EnergyMin"`

	// ProteinMin and ProteinMax bound crude protein (percent).
	ProteinMin float64 `json:"protein_min" yaml:"protein_min" validate:"gte=0"`
	ProteinMax float64 `json:"protein_max" yaml:"protein_max" validate:"gtefield=ProteinMin"`
}

// Validate checks bound ordering and sign.
func (r Requirement) Validate() error {
	if strings.TrimSpace(r.Class) == "" {
		return fmt.Errorf("requirement class cannot be empty")
	}
	if r.EnergyMin < 0 || r.ProteinMin < 0 {
		return fmt.Errorf("requirement %q has negative bounds", r.Class)
	}
	if r.EnergyMin > r.EnergyMax {
		return fmt.Errorf("requirement %q: energy_min %.2f exceeds energy_max %.2f", r.Class, r.EnergyMin, r.EnergyMax)
	}
	if r.ProteinMin > r.ProteinMax {
		return fmt.Errorf("requirement %q: protein_min %.2f exceeds protein_max %.2f", r.Class, r.ProteinMin, r.ProteinMax)
	}
	return nil
}

// EnergyMid returns the midpoint of the energy range.
func (r Requirement) EnergyMid() float64 { return (r.EnergyMin + r.EnergyMax) / 2 }

// ProteinMid returns the midpoint of the protein range.
func (r Requirement) ProteinMid() float64 { return (r.ProteinMin + r.ProteinMax) / 2 }

// Table is an ordered, read-only set of requirements keyed by class.
type Table struct {
	order   []string
	byClass map[string]Requirement
}

// NewTable builds a Table, preserving the order of reqs for Classes.
// Duplicate classes and invalid bounds are rejected.
func NewTable(reqs []Requirement) (*Table, error) {
	t := &Table{
		order:   make([]string, 0, len(reqs)),
		byClass: make(map[string]Requirement, len(reqs)),
	}
	for _, r := range reqs {
		r.Class = strings.TrimSpace(r.Class)
		if err := r.Validate(); err != nil {
			return nil, fferrors.Wrap(fferrors.ErrCodeInvalidRequest, "invalid nutrient requirement", err)
		}
		if _, dup := t.byClass[r.Class]; dup {
			return nil, fferrors.New(fferrors.ErrCodeInvalidRequest,
				fmt.Sprintf("duplicate requirement class: %q", r.Class))
		}
		t.byClass[r.Class] = r
		t.order = append(t.order, r.Class)
	}
	return t, nil
}

// RequirementsFor returns the requirement for class. Unknown classes yield
// an INVALID_CLASS error.
func (t *Table) RequirementsFor(class string) (Requirement, error) {
	r, ok := t.byClass[strings.TrimSpace(class)]
	if !ok {
		return Requirement{}, fferrors.NewWithContext(fferrors.ErrCodeInvalidClass,
			"Invalid or missing class. Please select a valid class.",
			map[string]any{"class": class, "supported": t.Classes()})
	}
	return r, nil
}

// Classes returns class names in table order.
func (t *Table) Classes() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of classes.
func (t *Table) Len() int {
	return len(t.order)
}
