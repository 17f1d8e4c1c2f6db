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

package animal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	profileLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedform_animal_profile_loads_total",
			Help: "Total number of animal profiles loaded by source",
		},
		[]string{"animal_type", "source"},
	)
	profileLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedform_animal_profile_load_errors_total",
			Help: "Total number of animal profile load failures",
		},
		[]string{"animal_type"},
	)
	registryLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feedform_animal_registry_load_duration_seconds",
			Help:    "Duration of animal registry loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
