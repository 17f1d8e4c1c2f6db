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

// Package engine is the formulation facade shared by the CLI and the API
// server.
//
// An Engine wraps an animal.Registry and runs a request through validation,
// mixture generation, evaluation, and filtering:
//
//	reg, err := animal.NewRegistry(ctx)
//	eng, err := engine.New(reg, engine.WithTolerance(0.02))
//	res, err := eng.Formulate(ctx, engine.Request{
//		AnimalType: "catfish",
//		Class:      "Grower",
//		Selection:  sel,
//	})
//
// Validation fails fast in a fixed order: animal type, class, tolerance,
// selection size, then ingredient membership. Errors are
// *errors.StructuredError values whose codes map onto HTTP statuses in
// package server.
//
// Routes exposes the HTTP handlers:
//
//	GET  /v1/animals
//	GET  /v1/classes?animal_type=catfish
//	POST /v1/classes
//	GET  /v1/ingredients?animal_type=catfish
//	POST /v1/formulate
//
// /v1/formulate accepts a flat JSON object, the same document as YAML, or a
// form post with repeated category keys.
package engine
