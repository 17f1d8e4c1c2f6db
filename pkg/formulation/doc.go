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

// Package formulation generates, evaluates, and filters candidate feed
// mixtures.
//
// A Selection names ingredients per category. The Generator assigns each
// non-empty category a share of total mass (its bucket), splits each bucket
// among its ingredients on a fixed grid, and emits the Cartesian product of
// the per-bucket splits as Mixtures whose proportions sum to 1.
//
// Evaluate annotates a Mixture with its total metabolizable energy and crude
// protein. Filter keeps the mixtures whose totals fall inside a requirement's
// ranges widened by a relative tolerance:
//
//	gen, err := formulation.NewGenerator(formulation.WithStep(0.05))
//	mixtures, err := gen.Generate(ctx, sel, cat)
//	evaluated, err := formulation.EvaluateAll(ctx, mixtures, cat)
//	all, recommended, err := formulation.Filter(evaluated, req, 0.01)
//
// All functions are pure; a Generator is safe for concurrent use.
package formulation
