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
	"log/slog"
	"time"

	"github.com/feedform/feedform/pkg/animal"
	"github.com/feedform/feedform/pkg/catalog"
	"github.com/feedform/feedform/pkg/defaults"
	fferrors "github.com/feedform/feedform/pkg/errors"
	"github.com/feedform/feedform/pkg/formulation"
	"github.com/feedform/feedform/pkg/header"
)

// Engine answers class, ingredient, and formulation queries against a
// registry of animal profiles. It is safe for concurrent use.
type Engine struct {
	registry     *animal.Registry
	tolerance    float64
	minSelection int
	version      string
}

// Option configures an Engine.
type Option func(*Engine)

// WithTolerance sets the tolerance used when a request does not carry one.
func WithTolerance(tol float64) Option {
	return func(e *Engine) {
		e.tolerance = tol
	}
}

// WithMinSelection sets the minimum number of distinct names required in
// each constrained category.
func WithMinSelection(n int) Option {
	return func(e *Engine) {
		e.minSelection = n
	}
}

// WithVersion sets the version stamped on result headers.
func WithVersion(version string) Option {
	return func(e *Engine) {
		e.version = version
	}
}

// New creates an Engine over reg.
func New(reg *animal.Registry, opts ...Option) (*Engine, error) {
	if reg == nil {
		return nil, fferrors.New(fferrors.ErrCodeInternal, "animal registry is required")
	}

	e := &Engine{
		registry:     reg,
		tolerance:    defaults.Tolerance,
		minSelection: defaults.MinConstrainedSelection,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := formulation.ValidateTolerance(e.tolerance); err != nil {
		return nil, err
	}
	if e.minSelection < 1 {
		return nil, fferrors.NewWithContext(fferrors.ErrCodeInvalidRequest,
			"minimum selection must be at least 1", map[string]any{"minimum": e.minSelection})
	}
	return e, nil
}

// Tolerance returns the default tolerance.
func (e *Engine) Tolerance() float64 { return e.tolerance }

// Animals lists the supported animal types with their classes.
func (e *Engine) Animals() *AnimalList {
	out := &AnimalList{}
	out.Init(header.KindAnimalList, e.version)
	for _, p := range e.registry.Profiles() {
		out.Animals = append(out.Animals, AnimalInfo{
			Type:        p.Type().String(),
			DisplayName: p.DisplayName(),
			Classes:     p.Classes(),
		})
	}
	return out
}

// RequirementClasses returns the class names for animalType in table order.
func (e *Engine) RequirementClasses(animalType string) (*ClassList, error) {
	p, err := e.registry.Profile(animalType)
	if err != nil {
		return nil, err
	}

	out := &ClassList{
		AnimalType: p.Type().String(),
		Classes:    p.Classes(),
	}
	out.Init(header.KindClassList, e.version)
	return out, nil
}

// IngredientOptions returns the catalog of animalType grouped by category.
func (e *Engine) IngredientOptions(animalType string) (*IngredientOptions, error) {
	p, err := e.registry.Profile(animalType)
	if err != nil {
		return nil, err
	}

	out := &IngredientOptions{
		AnimalType: p.Type().String(),
		Options:    p.Catalog().Options(),
	}
	out.Init(header.KindIngredientOptions, e.version)
	return out, nil
}

// Formulate validates req, then generates, evaluates, and filters mixtures.
// Validation runs in order: animal type, class, tolerance, selection size,
// ingredient membership. The context is checked between stages.
func (e *Engine) Formulate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	res, err := e.formulate(ctx, req)

	animalType := req.AnimalType
	if res != nil {
		animalType = res.AnimalType
	}
	outcome := "ok"
	if err != nil {
		outcome = string(fferrors.CodeOf(err))
		animalType = "unknown"
		if t, perr := animal.ParseAnimalType(req.AnimalType); perr == nil {
			animalType = t.String()
		}
	}
	formulateTotal.WithLabelValues(animalType, outcome).Inc()
	formulateDuration.WithLabelValues(animalType).Observe(time.Since(start).Seconds())

	return res, err
}

func (e *Engine) formulate(ctx context.Context, req Request) (*Result, error) {
	p, err := e.registry.Profile(req.AnimalType)
	if err != nil {
		return nil, err
	}

	rq, err := p.RequirementsFor(req.Class)
	if err != nil {
		return nil, err
	}

	tol := e.tolerance
	if req.Tolerance != nil {
		tol = *req.Tolerance
	}
	if err := formulation.ValidateTolerance(tol); err != nil {
		return nil, err
	}

	if err := req.Selection.CheckCardinality(e.minSelection); err != nil {
		return nil, err
	}

	if err := checkContext(ctx, "generate"); err != nil {
		return nil, err
	}
	mixtures, err := p.Generate(ctx, req.Selection)
	if err != nil {
		return nil, err
	}
	mixturesGenerated.WithLabelValues(p.Type().String()).Observe(float64(len(mixtures)))

	if err := checkContext(ctx, "evaluate"); err != nil {
		return nil, err
	}
	evaluated, err := formulation.EvaluateAll(ctx, mixtures, p.Catalog())
	if err != nil {
		return nil, err
	}

	if err := checkContext(ctx, "filter"); err != nil {
		return nil, err
	}
	all, recommended, err := formulation.Filter(evaluated, rq, tol)
	if err != nil {
		return nil, err
	}
	if req.Rank {
		recommended = formulation.RankByMidpoint(recommended, rq)
	}

	slog.Debug("formulated",
		"animal_type", p.Type(),
		"class", rq.Class,
		"tolerance", tol,
		"mixtures", len(all),
		"recommended", len(recommended))

	res := &Result{
		AnimalType:   p.Type().String(),
		Class:        rq.Class,
		Tolerance:    tol,
		Ranked:       req.Rank,
		Requirement:  rq,
		Selection:    selectionOptions(req.Selection),
		Summary:      formulation.Summarize(all, rq, tol),
		Formulations: all,
		Recommended:  recommended,
	}
	res.Init(header.KindFormulationResult, e.version)
	return res, nil
}

// selectionOptions echoes the request selection keyed by category in the
// same shape as IngredientOptions.
func selectionOptions(sel formulation.Selection) map[catalog.Category][]string {
	out := make(map[catalog.Category][]string, len(sel))
	for _, c := range sel.Categories() {
		out[c] = append([]string(nil), sel[c]...)
	}
	return out
}

func checkContext(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		return fferrors.WrapWithContext(fferrors.ErrCodeTimeout,
			"formulation canceled", err, map[string]any{"stage": stage})
	}
	return nil
}
