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

package header

import (
	"fmt"
	"time"
)

// APIVersion is the schema version stamped on every feedform document.
const APIVersion = "feedform.io/v1"

// Kind represents the type of feedform document.
type Kind string

// Valid Kind constants for all feedform document types.
const (
	KindFormulationResult  Kind = "FormulationResult"
	KindFormulationRequest Kind = "FormulationRequest"
	KindClassList          Kind = "ClassList"
	KindIngredientOptions  Kind = "IngredientOptions"
	KindAnimalList         Kind = "AnimalList"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindFormulationResult, KindFormulationRequest, KindClassList, KindIngredientOptions, KindAnimalList:
		return true
	default:
		return false
	}
}

// Header carries kind, schema version, and metadata for feedform documents.
type Header struct {
	// Kind is the type of the document.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the schema version of the document.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs about how the document was produced.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets kind and the current APIVersion, and records a UTC timestamp and
// the producing tool version in Metadata.
func (h *Header) Init(kind Kind, version string) {
	h.Kind = kind
	h.APIVersion = APIVersion
	h.Metadata = make(map[string]string)
	h.Metadata["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	if version != "" {
		h.Metadata["version"] = version
	}
}

// Check verifies a document's kind and apiVersion against want. Either field
// may be empty; documents written by hand often omit them.
func Check(kind, apiVersion string, want Kind) error {
	if kind != "" && Kind(kind) != want {
		return fmt.Errorf("document kind %q, expected %s", kind, want)
	}
	if apiVersion != "" && apiVersion != APIVersion {
		return fmt.Errorf("unsupported apiVersion %q, expected %s", apiVersion, APIVersion)
	}
	return nil
}
