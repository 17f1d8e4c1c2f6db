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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/feedform/feedform/pkg/defaults"
	fferrors "github.com/feedform/feedform/pkg/errors"
	"github.com/feedform/feedform/pkg/serializer"
	"github.com/feedform/feedform/pkg/server"
)

// catalogCacheTTL is the max-age advertised for class and ingredient lists.
var catalogCacheTTL = defaults.CatalogCacheTTL

// Routes returns the API handlers keyed by path.
func (e *Engine) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/animals":     e.HandleAnimals,
		"/v1/classes":     e.HandleClasses,
		"/v1/ingredients": e.HandleIngredients,
		"/v1/formulate":   e.HandleFormulate,
	}
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	server.WriteError(w, r, http.StatusMethodNotAllowed, fferrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": allowed,
		})
}

func setCacheHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(catalogCacheTTL.Seconds())))
}

// HandleAnimals serves GET /v1/animals.
func (e *Engine) HandleAnimals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	setCacheHeaders(w)
	serializer.RespondJSON(w, http.StatusOK, e.Animals())
}

// HandleClasses serves the class list for an animal type. GET reads
// ?animal_type=; POST reads animal_type from a form or JSON body.
func (e *Engine) HandleClasses(w http.ResponseWriter, r *http.Request) {
	var animalType string

	switch r.Method {
	case http.MethodGet:
		animalType = r.URL.Query().Get("animal_type")
	case http.MethodPost:
		if isForm(r) {
			if err := parseForm(r); err != nil {
				writeBodyError(w, r, err)
				return
			}
			animalType = r.PostForm.Get("animal_type")
			break
		}
		body, err := readBody(r)
		if err != nil {
			writeBodyError(w, r, err)
			return
		}
		if len(body) > 0 && !gjson.ValidBytes(body) {
			server.WriteError(w, r, http.StatusBadRequest, fferrors.ErrCodeInvalidRequest,
				"request body is not valid JSON", false, nil)
			return
		}
		animalType = gjson.GetBytes(body, FieldAnimalType).String()
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		return
	}

	classes, err := e.RequirementClasses(animalType)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to list classes", nil)
		return
	}

	setCacheHeaders(w)
	serializer.RespondJSON(w, http.StatusOK, classes)
}

// HandleIngredients serves GET /v1/ingredients?animal_type=.
func (e *Engine) HandleIngredients(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	opts, err := e.IngredientOptions(r.URL.Query().Get("animal_type"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to list ingredients", nil)
		return
	}

	setCacheHeaders(w)
	serializer.RespondJSON(w, http.StatusOK, opts)
}

// HandleFormulate serves POST /v1/formulate. The body may be JSON, YAML, or
// a form post.
func (e *Engine) HandleFormulate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.FormulateHandlerTimeout)
	defer cancel()

	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	req, err := parseFormulateRequest(r)
	if err != nil {
		var se *fferrors.StructuredError
		if !errors.As(err, &se) {
			writeBodyError(w, r, err)
			return
		}
		server.WriteErrorFromErr(w, r, err, "Invalid formulation request", nil)
		return
	}

	slog.Debug("formulate request",
		"requestID", server.RequestIDFromContext(ctx),
		"animal_type", req.AnimalType,
		"class", req.Class,
		"categories", len(req.Selection.Categories()))

	res, err := e.Formulate(ctx, req)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to formulate", nil)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, res)
}

func parseFormulateRequest(r *http.Request) (Request, error) {
	if isForm(r) {
		if err := parseForm(r); err != nil {
			return Request{}, err
		}
		return ParseRequestValues(r.PostForm)
	}

	body, err := readBody(r)
	if err != nil {
		return Request{}, err
	}

	if mediaType(r) == "application/yaml" || mediaType(r) == "application/x-yaml" {
		body, err = serializer.ToJSON(serializer.FormatYAML, body)
		if err != nil {
			return Request{}, fferrors.Wrap(fferrors.ErrCodeInvalidRequest, "request body is not valid YAML", err)
		}
	}
	return ParseRequestJSON(body)
}

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

func isForm(r *http.Request) bool {
	switch mediaType(r) {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return true
	default:
		return false
	}
}

// parseForm fills r.PostForm for urlencoded and multipart bodies.
func parseForm(r *http.Request) error {
	if mediaType(r) == "multipart/form-data" {
		return r.ParseMultipartForm(defaults.ServerMaxBodyBytes)
	}
	return r.ParseForm()
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

func writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		server.WriteError(w, r, http.StatusRequestEntityTooLarge, fferrors.ErrCodeInvalidRequest,
			"Request body too large", false, map[string]any{"limit": mbe.Limit})
		return
	}
	server.WriteError(w, r, http.StatusBadRequest, fferrors.ErrCodeInvalidRequest,
		"Failed to read request body", false, map[string]any{"error": err.Error()})
}
