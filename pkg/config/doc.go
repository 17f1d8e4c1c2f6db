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

// Package config resolves engine parameters for the feedform binaries.
//
// Values come from built-in defaults, an optional YAML file, FEEDFORM_*
// environment variables, and explicit overrides, in increasing precedence:
//
//	# ~/.feedform.yaml
//	tolerance: 0.02
//	max-mixtures: 5000
//	data-dir: /etc/feedform/profiles
//
//	FEEDFORM_MAX_MIXTURES=10000 feedform formulate ...
package config
