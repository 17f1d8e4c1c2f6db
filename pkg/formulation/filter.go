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
	"fmt"
	"math"
	"sort"

	fferrors "github.com/feedform/feedform/pkg/errors"
	"github.com/feedform/feedform/pkg/requirement"
)

// Status classifies an evaluated mixture against a requirement.
type Status string

const (
	// StatusWithinBounds means both totals fall inside the exact range.
	StatusWithinBounds Status = "within_bounds"
	// StatusWithinTolerance means both totals fall inside the widened range
	// but at least one is outside the exact range.
	StatusWithinTolerance Status = "within_tolerance"
	// StatusRejected means at least one total falls outside the widened range.
	StatusRejected Status = "rejected"
)

// Summary counts mixtures per Status.
type Summary struct {
	Total           int `json:"total" yaml:"total"`
	WithinBounds    int `json:"within_bounds" yaml:"within_bounds"`
	WithinTolerance int `json:"within_tolerance" yaml:"within_tolerance"`
	Rejected        int `json:"rejected" yaml:"rejected"`
}

// ValidateTolerance rejects negative and non-finite tolerances.
func ValidateTolerance(tol float64) error {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		return fferrors.NewWithContext(fferrors.ErrCodeInvalidRequest,
			fmt.Sprintf("tolerance must be a non-negative number, got %v", tol),
			map[string]any{"tolerance": tol})
	}
	return nil
}

func inRange(v, lo, hi, tol float64) bool {
	return v >= lo*(1-tol) && v <= hi*(1+tol)
}

// WithinTolerance reports whether both totals of m lie inside the range
// [min*(1-tol), max*(1+tol)] of req. Bounds are inclusive.
func WithinTolerance(m Mixture, req requirement.Requirement, tol float64) bool {
	return inRange(m.TotalME, req.EnergyMin, req.EnergyMax, tol) &&
		inRange(m.TotalCP, req.ProteinMin, req.ProteinMax, tol)
}

// Classify returns the Status of m against req with tolerance tol.
func Classify(m Mixture, req requirement.Requirement, tol float64) Status {
	switch {
	case WithinTolerance(m, req, 0):
		return StatusWithinBounds
	case WithinTolerance(m, req, tol):
		return StatusWithinTolerance
	default:
		return StatusRejected
	}
}

// Filter splits evaluated mixtures into the full list and the recommended
// subset whose totals satisfy req within tol. Both lists keep input order.
func Filter(mixtures []Mixture, req requirement.Requirement, tol float64) (all, recommended []Mixture, err error) {
	if err := ValidateTolerance(tol); err != nil {
		return nil, nil, err
	}
	recommended = make([]Mixture, 0)
	for i, m := range mixtures {
		if !m.evaluated {
			return nil, nil, fferrors.NewWithContext(fferrors.ErrCodeInternal,
				"mixture has not been evaluated", map[string]any{"index": i})
		}
		if WithinTolerance(m, req, tol) {
			recommended = append(recommended, m)
		}
	}
	return mixtures, recommended, nil
}

// Summarize counts mixtures per Status.
func Summarize(mixtures []Mixture, req requirement.Requirement, tol float64) Summary {
	s := Summary{Total: len(mixtures)}
	for _, m := range mixtures {
		switch Classify(m, req, tol) {
		case StatusWithinBounds:
			s.WithinBounds++
		case StatusWithinTolerance:
			s.WithinTolerance++
		default:
			s.Rejected++
		}
	}
	return s
}

// MidpointDistance is the relative Euclidean distance of m's totals from the
// midpoints of req's ranges. A zero midpoint falls back to absolute distance.
func MidpointDistance(m Mixture, req requirement.Requirement) float64 {
	return math.Hypot(relDelta(m.TotalME, req.EnergyMid()), relDelta(m.TotalCP, req.ProteinMid()))
}

func relDelta(v, mid float64) float64 {
	if mid == 0 {
		return v
	}
	return (v - mid) / mid
}

// RankByMidpoint returns a copy of mixtures ordered by ascending
// MidpointDistance. Ties keep their input order.
func RankByMidpoint(mixtures []Mixture, req requirement.Requirement) []Mixture {
	out := make([]Mixture, len(mixtures))
	copy(out, mixtures)
	sort.SliceStable(out, func(i, j int) bool {
		return MidpointDistance(out[i], req) < MidpointDistance(out[j], req)
	})
	return out
}
