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

// Package defaults provides centralized configuration constants for feedform.
//
// This package defines timeout values, formulation engine tuning parameters,
// and other configuration defaults used across the codebase. Centralizing
// these values ensures consistency and makes tuning easier.
//
// # Categories
//
//   - API handling: formulation timeout, catalog cache lifetime, body cap
//   - HTTP listener timeouts
//   - HTTP client timeouts for request documents fetched by URL
//   - Engine parameters: tolerance, grid step, generation caps
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/feedform/feedform/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.FormulateHandlerTimeout)
//	defer cancel()
package defaults
