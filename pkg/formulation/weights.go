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

	"gonum.org/v1/gonum/floats"

	"github.com/feedform/feedform/pkg/catalog"
)

// BucketWeights assigns each category its nominal share of total mass.
// Weights need not sum to 1; Shares normalises them.
type BucketWeights map[catalog.Category]float64

// DefaultBucketWeights returns the stock weighting: energy sources dominate,
// amino acids get small fixed shares.
func DefaultBucketWeights() BucketWeights {
	return BucketWeights{
		catalog.EnergySources:        0.45,
		catalog.EnergyReplacers:      0.15,
		catalog.HighProteinSources:   0.12,
		catalog.MediumProteinSources: 0.15,
		catalog.ProteinReplacers:     0.10,
		catalog.AminoAcid1:           0.015,
		catalog.AminoAcid2:           0.015,
	}
}

// Validate rejects unknown categories, negative weights, and an all-zero scheme.
func (w BucketWeights) Validate() error {
	var total float64
	for c, v := range w {
		if !c.IsValid() {
			return fmt.Errorf("bucket weight for unknown category %q", c)
		}
		if v < 0 {
			return fmt.Errorf("bucket weight for %s is negative: %v", c, v)
		}
		total += v
	}
	if total <= 0 {
		return fmt.Errorf("bucket weights sum to zero")
	}
	return nil
}

// Merge returns a copy of w with entries from override replacing its own.
func (w BucketWeights) Merge(override BucketWeights) BucketWeights {
	out := make(BucketWeights, len(w)+len(override))
	for c, v := range w {
		out[c] = v
	}
	for c, v := range override {
		out[c] = v
	}
	return out
}

// Shares computes the mass share of each present category. The weight of an
// absent category moves to weighted present categories of the same family in
// proportion to their weights, or to all weighted present categories when its
// family has none. The result sums to 1; a present category may still receive 0.
func (w BucketWeights) Shares(present []catalog.Category) (map[catalog.Category]float64, error) {
	if len(present) == 0 {
		return nil, fmt.Errorf("no categories present")
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	isPresent := make(map[catalog.Category]bool, len(present))
	for _, c := range present {
		isPresent[c] = true
	}

	order := make([]catalog.Category, 0, len(present))
	for _, c := range catalog.Categories() {
		if isPresent[c] {
			order = append(order, c)
		}
	}

	shares := make([]float64, len(order))
	for i, c := range order {
		shares[i] = w[c]
	}

	for _, absent := range catalog.Categories() {
		if isPresent[absent] || w[absent] == 0 {
			continue
		}
		peers := weightedPeers(order, w, func(c catalog.Category) bool { return c.Family() == absent.Family() })
		if len(peers) == 0 {
			peers = weightedPeers(order, w, func(catalog.Category) bool { return true })
		}
		if len(peers) == 0 {
			peers = allIndexes(len(order))
		}
		redistribute(shares, w, order, peers, w[absent])
	}

	total := floats.Sum(shares)
	if total <= 0 {
		return nil, fmt.Errorf("present categories %v carry no weight", order)
	}
	floats.Scale(1/total, shares)

	out := make(map[catalog.Category]float64, len(order))
	for i, c := range order {
		out[c] = shares[i]
	}
	return out, nil
}

// weightedPeers returns indexes into order of categories that match and
// carry a positive nominal weight.
func weightedPeers(order []catalog.Category, w BucketWeights, match func(catalog.Category) bool) []int {
	var idx []int
	for i, c := range order {
		if match(c) && w[c] > 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

func allIndexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// redistribute spreads amount over peers in proportion to their nominal
// weights, evenly when those weights are all zero.
func redistribute(shares []float64, w BucketWeights, order []catalog.Category, peers []int, amount float64) {
	base := make([]float64, len(peers))
	for i, p := range peers {
		base[i] = w[order[p]]
	}
	sum := floats.Sum(base)
	for i, p := range peers {
		if sum > 0 {
			shares[p] += amount * base[i] / sum
		} else {
			shares[p] += amount / float64(len(peers))
		}
	}
}
