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

package defaults

// Formulation engine parameters.
const (
	// Tolerance is the fractional widening applied to nutrient bounds when
	// selecting recommended mixtures (0.01 = 1%).
	Tolerance = 0.01

	// GridStep is the within-bucket resolution as a fraction of the bucket's
	// mass share. 0.05 yields 20 grid units per bucket.
	GridStep = 0.05

	// MaxVariantsPerBucket bounds how many proportion splits are retained for
	// each ingredient bucket.
	MaxVariantsPerBucket = 4

	// MaxMixtures is the hard cap on the number of generated candidate mixtures.
	MaxMixtures = 25000

	// MinConstrainedSelection is the minimum number of distinct ingredients
	// required in each constrained category.
	MinConstrainedSelection = 2

	// ProportionEpsilon is the allowed drift of a mixture's proportion sum from 1.
	ProportionEpsilon = 1e-6
)
