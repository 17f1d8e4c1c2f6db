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
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/feedform/feedform/pkg/catalog"
	"github.com/feedform/feedform/pkg/defaults"
	fferrors "github.com/feedform/feedform/pkg/errors"
)

// maxGridUnits bounds the number of grid units a bucket is divided into.
const maxGridUnits = 1_000_000

// Generator enumerates candidate mixtures over a fixed proportion grid.
// A Generator is immutable after construction and safe for concurrent use.
type Generator struct {
	weights     BucketWeights
	step        float64
	units       int
	maxVariants int
	maxMixtures int
}

// Option configures a Generator.
type Option func(*Generator)

// WithStep sets the grid step within a bucket. The step is rounded so that
// an integral number of units fills the bucket.
func WithStep(step float64) Option {
	return func(g *Generator) {
		g.step = step
	}
}

// WithMaxVariantsPerBucket caps how many distinct splits each bucket contributes.
func WithMaxVariantsPerBucket(n int) Option {
	return func(g *Generator) {
		g.maxVariants = n
	}
}

// WithMaxMixtures caps the total number of mixtures a single call may produce.
func WithMaxMixtures(n int) Option {
	return func(g *Generator) {
		g.maxMixtures = n
	}
}

// WithBucketWeights overrides the default bucket weights. Categories missing
// from w keep their default weight.
func WithBucketWeights(w BucketWeights) Option {
	return func(g *Generator) {
		g.weights = g.weights.Merge(w)
	}
}

// NewGenerator returns a Generator configured with opts on top of the
// package defaults.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		weights:     DefaultBucketWeights(),
		step:        defaults.GridStep,
		maxVariants: defaults.MaxVariantsPerBucket,
		maxMixtures: defaults.MaxMixtures,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.step <= 0 || g.step > 1 || math.IsNaN(g.step) {
		return nil, fmt.Errorf("grid step must be in (0, 1], got %v", g.step)
	}
	if 1/g.step > maxGridUnits {
		return nil, fmt.Errorf("grid step %v is finer than 1/%d", g.step, maxGridUnits)
	}
	g.units = max(int(math.Round(1/g.step)), 1)
	if g.maxVariants < 1 {
		return nil, fmt.Errorf("max variants per bucket must be positive, got %d", g.maxVariants)
	}
	if g.maxMixtures < 1 {
		return nil, fmt.Errorf("max mixtures must be positive, got %d", g.maxMixtures)
	}
	if err := g.weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bucket weights: %w", err)
	}
	return g, nil
}

// Units returns the number of grid units per bucket.
func (g *Generator) Units() int { return g.units }

// Weights returns a copy of the generator's bucket weights.
func (g *Generator) Weights() BucketWeights { return g.weights.Merge(nil) }

// bucket is one non-empty category of the selection after resolution.
type bucket struct {
	category catalog.Category
	names    []string
	share    float64
	variants [][]int
}

// Generate enumerates candidate mixtures for sel. Every name is resolved
// against cat and must belong to the category it was selected under.
// Output order is deterministic for identical inputs.
func (g *Generator) Generate(ctx context.Context, sel Selection, cat *catalog.Catalog) ([]Mixture, error) {
	if cat == nil {
		return nil, fferrors.New(fferrors.ErrCodeInternal, "catalog cannot be nil")
	}

	buckets, err := resolveBuckets(sel, cat)
	if err != nil {
		return nil, err
	}
	if len(buckets) == 0 {
		return nil, fferrors.New(fferrors.ErrCodeInvalidRequest, "selection contains no ingredients")
	}

	present := make([]catalog.Category, len(buckets))
	for i, b := range buckets {
		present[i] = b.category
	}
	shares, err := g.weights.Shares(present)
	if err != nil {
		return nil, fferrors.Wrap(fferrors.ErrCodeInternal, "failed to compute bucket shares", err)
	}

	// Each bucket enumerates at most one split past the remaining mixture
	// budget, so an oversized selection fails before the full product exists.
	active := buckets[:0]
	total := 1
	for _, b := range buckets {
		b.share = shares[b.category]
		if b.share <= 0 {
			continue
		}
		budget := g.maxMixtures / total
		limit := g.maxVariants
		if budget < limit {
			limit = budget + 1
		}
		b.variants = splitVariants(len(b.names), g.units, limit)
		if len(b.variants) > budget {
			return nil, fferrors.NewWithContext(fferrors.ErrCodeGenerationTooLarge,
				fmt.Sprintf("selection would produce more than %d mixtures", g.maxMixtures),
				map[string]any{"limit": g.maxMixtures})
		}
		total *= len(b.variants)
		active = append(active, b)
	}
	if len(active) == 0 {
		return nil, fferrors.New(fferrors.ErrCodeInvalidRequest, "no selected category carries any weight")
	}

	out := make([]Mixture, 0, total)
	cursor := make([]int, len(active))
	for {
		if err := ctx.Err(); err != nil {
			return nil, fferrors.Wrap(fferrors.ErrCodeTimeout, "mixture generation canceled", err)
		}
		out = append(out, g.compose(active, cursor))

		// advance odometer, last bucket fastest
		i := len(cursor) - 1
		for ; i >= 0; i-- {
			cursor[i]++
			if cursor[i] < len(active[i].variants) {
				break
			}
			cursor[i] = 0
		}
		if i < 0 {
			break
		}
	}
	return out, nil
}

func (g *Generator) compose(buckets []bucket, cursor []int) Mixture {
	m := Mixture{Proportions: make(map[string]float64)}
	for bi, b := range buckets {
		split := b.variants[cursor[bi]]
		for i, name := range b.names {
			if split[i] == 0 {
				continue
			}
			m.Proportions[name] += b.share * float64(split[i]) / float64(g.units)
		}
	}
	return m
}

// resolveBuckets maps selected names onto canonical catalog names, rejecting
// unknown names and names selected under the wrong category. Names within a
// bucket are deduplicated and sorted.
func resolveBuckets(sel Selection, cat *catalog.Catalog) ([]bucket, error) {
	var buckets []bucket
	for c := range sel {
		if !c.IsValid() {
			return nil, fferrors.NewWithContext(fferrors.ErrCodeInvalidRequest,
				fmt.Sprintf("unknown category %q", c),
				map[string]any{"category": string(c)})
		}
	}

	for _, c := range catalog.Categories() {
		seen := make(map[string]struct{})
		var names []string
		for _, raw := range sel[c] {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			ing, err := cat.Lookup(raw)
			if err != nil {
				return nil, err
			}
			got, ok := ing.Category()
			if !ok || got != c {
				return nil, fferrors.NewWithContext(fferrors.ErrCodeInvalidIngredient,
					fmt.Sprintf("Invalid ingredient: %s", ing.Name),
					map[string]any{"ingredient": ing.Name, "category": string(c), "actual": string(got)})
			}
			if _, dup := seen[ing.Name]; dup {
				continue
			}
			seen[ing.Name] = struct{}{}
			names = append(names, ing.Name)
		}
		if len(names) == 0 {
			continue
		}
		sort.Strings(names)
		buckets = append(buckets, bucket{category: c, names: names})
	}
	return buckets, nil
}

// splitVariants returns up to limit distinct ways to split n units among k
// ingredients. The first is the even split with remainder units given to
// the leading ingredients; the rest come from a breadth-first walk that
// moves one unit between two ingredients at a time.
func splitVariants(k, n, limit int) [][]int {
	seed := evenSplit(k, n)
	out := [][]int{seed}
	if k < 2 || limit < 2 {
		return out
	}

	seen := map[string]struct{}{splitKey(seed): {}}
	queue := [][]int{seed}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for i := 0; i < k; i++ {
			if cur[i] == 0 {
				continue
			}
			for j := 0; j < k; j++ {
				if i == j {
					continue
				}
				next := make([]int, k)
				copy(next, cur)
				next[i]--
				next[j]++
				key := splitKey(next)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, next)
				if len(out) >= limit {
					return out
				}
				queue = append(queue, next)
			}
		}
	}
	return out
}

func evenSplit(k, n int) []int {
	split := make([]int, k)
	base, rem := n/k, n%k
	for i := range split {
		split[i] = base
		if i < rem {
			split[i]++
		}
	}
	return split
}

func splitKey(split []int) string {
	var b strings.Builder
	for i, v := range split {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
