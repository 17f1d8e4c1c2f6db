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
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/feedform/feedform/pkg/catalog"
	fferrors "github.com/feedform/feedform/pkg/errors"
	"github.com/feedform/feedform/pkg/formulation"
	"github.com/feedform/feedform/pkg/header"
)

// Request field names accepted in JSON bodies and form posts.
const (
	FieldAnimalType  = "animal_type"
	FieldClass       = "class"
	FieldLegacyClass = "catfish_class"
	FieldTolerance   = "tolerance"
	FieldRank        = "rank"

	fieldKind       = "kind"
	fieldAPIVersion = "apiVersion"
)

// Request is one formulation request.
type Request struct {
	// AnimalType selects the species profile.
	AnimalType string `json:"animal_type" yaml:"animal_type"`

	// Class selects the requirement row within the profile.
	Class string `json:"class" yaml:"class"`

	// Selection lists ingredient names per category.
	Selection formulation.Selection `json:"selection" yaml:"selection"`

	// Tolerance overrides the engine default when set.
	Tolerance *float64 `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`

	// Rank orders recommended mixtures by distance to the requirement midpoint.
	Rank bool `json:"rank,omitempty" yaml:"rank,omitempty"`
}

// ParseRequestJSON reads a flat request object:
//
//	{"animal_type": "catfish", "class": "Fry",
//	 "energy_sources": ["Maize", "Sorghum"], ..., "tolerance": 0.02}
//
// "catfish_class" is accepted in place of "class". A category may be given
// as a single string. Optional "kind" and "apiVersion" must name a
// FormulationRequest. Other unknown keys are ignored.
func ParseRequestJSON(data []byte) (Request, error) {
	if !gjson.ValidBytes(data) {
		return Request{}, fferrors.New(fferrors.ErrCodeInvalidRequest, "request body is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Request{}, fferrors.New(fferrors.ErrCodeInvalidRequest, "request body must be a JSON object")
	}
	if err := header.Check(root.Get(fieldKind).String(), root.Get(fieldAPIVersion).String(),
		header.KindFormulationRequest); err != nil {
		return Request{}, fferrors.Wrap(fferrors.ErrCodeInvalidRequest, "unsupported request document", err)
	}

	req := Request{
		AnimalType: strings.TrimSpace(root.Get(FieldAnimalType).String()),
		Class:      strings.TrimSpace(root.Get(FieldClass).String()),
		Selection:  make(formulation.Selection),
		Rank:       root.Get(FieldRank).Bool(),
	}
	if req.Class == "" {
		req.Class = strings.TrimSpace(root.Get(FieldLegacyClass).String())
	}

	for _, c := range catalog.Categories() {
		v := root.Get(string(c))
		names, err := jsonNames(c, v)
		if err != nil {
			return Request{}, err
		}
		if len(names) > 0 {
			req.Selection[c] = names
		}
	}

	if t := root.Get(FieldTolerance); t.Exists() && t.Type != gjson.Null {
		if t.Type != gjson.Number {
			return Request{}, fferrors.NewWithContext(fferrors.ErrCodeInvalidRequest,
				"tolerance must be a number", map[string]any{"tolerance": t.Raw})
		}
		tol := t.Float()
		req.Tolerance = &tol
	}

	return req, nil
}

func jsonNames(c catalog.Category, v gjson.Result) ([]string, error) {
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return nil, nil
	case v.Type == gjson.String:
		return appendName(nil, v.String()), nil
	case v.IsArray():
		var names []string
		for _, item := range v.Array() {
			if item.Type != gjson.String {
				return nil, fferrors.NewWithContext(fferrors.ErrCodeInvalidRequest,
					fmt.Sprintf("%s must be a list of ingredient names", c),
					map[string]any{"category": string(c), "value": item.Raw})
			}
			names = appendName(names, item.String())
		}
		return names, nil
	default:
		return nil, fferrors.NewWithContext(fferrors.ErrCodeInvalidRequest,
			fmt.Sprintf("%s must be a list of ingredient names", c),
			map[string]any{"category": string(c), "value": v.Raw})
	}
}

// ParseRequestValues reads a form post or query string. Repeated keys carry
// multiple names for a category.
func ParseRequestValues(values url.Values) (Request, error) {
	req := Request{
		AnimalType: strings.TrimSpace(values.Get(FieldAnimalType)),
		Class:      strings.TrimSpace(values.Get(FieldClass)),
		Selection:  make(formulation.Selection),
	}
	if req.Class == "" {
		req.Class = strings.TrimSpace(values.Get(FieldLegacyClass))
	}

	for _, c := range catalog.Categories() {
		var names []string
		for _, n := range values[string(c)] {
			names = appendName(names, n)
		}
		if len(names) > 0 {
			req.Selection[c] = names
		}
	}

	if s := strings.TrimSpace(values.Get(FieldTolerance)); s != "" {
		tol, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Request{}, fferrors.WrapWithContext(fferrors.ErrCodeInvalidRequest,
				"tolerance must be a number", err, map[string]any{"tolerance": s})
		}
		req.Tolerance = &tol
	}

	if s := strings.TrimSpace(values.Get(FieldRank)); s != "" {
		rank, err := strconv.ParseBool(s)
		if err != nil {
			return Request{}, fferrors.WrapWithContext(fferrors.ErrCodeInvalidRequest,
				"rank must be a boolean", err, map[string]any{"rank": s})
		}
		req.Rank = rank
	}

	return req, nil
}

func appendName(names []string, n string) []string {
	if n = strings.TrimSpace(n); n != "" {
		names = append(names, n)
	}
	return names
}
