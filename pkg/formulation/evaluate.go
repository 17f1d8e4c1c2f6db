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
	"context"

	"gonum.org/v1/gonum/floats"

	"github.com/feedform/feedform/pkg/catalog"
	fferrors "github.com/feedform/feedform/pkg/errors"
)

// Evaluate returns a copy of m annotated with its energy and protein totals:
// the proportion-weighted sums of each ingredient's nutrient values. Extra
// nutrients found on the ingredients are totalled the same way.
func Evaluate(m Mixture, cat *catalog.Catalog) (Mixture, error) {
	if cat == nil {
		return Mixture{}, fferrors.New(fferrors.ErrCodeInternal, "catalog cannot be nil")
	}

	names := m.Names()
	props := make([]float64, len(names))
	energy := make([]float64, len(names))
	protein := make([]float64, len(names))
	extra := make(map[string][]float64)

	for i, n := range names {
		ing, err := cat.Lookup(n)
		if err != nil {
			return Mixture{}, err
		}
		props[i] = m.Proportions[n]
		energy[i] = ing.Energy
		protein[i] = ing.Protein
		for k, v := range ing.Nutrients {
			if extra[k] == nil {
				extra[k] = make([]float64, len(names))
			}
			extra[k][i] = v
		}
	}

	out := m.clone()
	out.TotalME = floats.Dot(props, energy)
	out.TotalCP = floats.Dot(props, protein)
	out.NutrientTotals = nil
	if len(extra) > 0 {
		out.NutrientTotals = make(map[string]float64, len(extra))
		for k, vec := range extra {
			out.NutrientTotals[k] = floats.Dot(props, vec)
		}
	}
	out.evaluated = true
	return out, nil
}

// EvaluateAll evaluates every mixture, preserving order. It stops at the
// first error or when ctx is done.
func EvaluateAll(ctx context.Context, mixtures []Mixture, cat *catalog.Catalog) ([]Mixture, error) {
	out := make([]Mixture, len(mixtures))
	for i, m := range mixtures {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fferrors.Wrap(fferrors.ErrCodeTimeout, "mixture evaluation canceled", err)
			}
		}
		em, err := Evaluate(m, cat)
		if err != nil {
			return nil, err
		}
		out[i] = em
	}
	return out, nil
}
