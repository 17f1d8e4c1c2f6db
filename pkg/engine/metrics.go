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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	formulateTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedform_formulations_total",
			Help: "Total number of formulation requests by outcome",
		},
		[]string{"animal_type", "outcome"},
	)

	formulateDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedform_formulation_duration_seconds",
			Help:    "Duration of formulation requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"animal_type"},
	)

	mixturesGenerated = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feedform_mixtures_generated",
			Help:    "Number of mixtures generated per formulation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 9),
		},
		[]string{"animal_type"},
	)
)
