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
	"fmt"
	"strings"

	fferrors "github.com/feedform/feedform/pkg/errors"
)

// AnimalType identifies a supported species. Each type has exactly one
// Profile in a Registry.
type AnimalType string

// Supported animal types.
const (
	Catfish AnimalType = "catfish"
	Pig     AnimalType = "pig"
	Poultry AnimalType = "poultry"
)

// Types returns all supported animal types in display order.
func Types() []AnimalType {
	return []AnimalType{Catfish, Pig, Poultry}
}

// IsValid reports whether t is a supported animal type.
func (t AnimalType) IsValid() bool {
	for _, v := range Types() {
		if t == v {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (t AnimalType) String() string { return string(t) }

// ParseAnimalType parses s case-insensitively. Unknown values yield an
// INVALID_ANIMAL_TYPE error.
func ParseAnimalType(s string) (AnimalType, error) {
	t := AnimalType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fferrors.NewWithContext(fferrors.ErrCodeInvalidAnimalType,
			"Invalid animal type selected.",
			map[string]any{"animal_type": s, "supported": typeNames()})
	}
	return t, nil
}

func typeNames() []string {
	types := Types()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// fileName returns the data file name holding t's profile.
func (t AnimalType) fileName() string {
	return fmt.Sprintf("%s.yaml", t)
}
