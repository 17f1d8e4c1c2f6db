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

// Package animal provides the per-species profiles that feed the
// formulation engine.
//
// Each supported AnimalType has a Profile exposing its requirement table,
// ingredient catalog, and a mixture generator configured with the species
// bucket weights. Profiles are loaded from YAML data files, embedded in the
// binary and optionally replaced file-by-file from an external directory:
//
//	provider, err := animal.NewLayeredDataProvider(animal.NewEmbeddedDataProvider(),
//		animal.LayeredProviderConfig{ExternalDir: "/etc/feedform/data"})
//	reg, err := animal.NewRegistry(ctx, animal.WithDataProvider(provider))
//	profile, err := reg.Profile("catfish")
//
// A Registry is immutable once built and is shared across requests.
package animal
