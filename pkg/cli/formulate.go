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

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/feedform/feedform/pkg/catalog"
	"github.com/feedform/feedform/pkg/engine"
	"github.com/feedform/feedform/pkg/formulation"
	"github.com/feedform/feedform/pkg/serializer"
)

// categoryFlagName maps a category to its flag, e.g. --energy-sources.
func categoryFlagName(c catalog.Category) string {
	return strings.ReplaceAll(string(c), "_", "-")
}

func formulateCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "animal",
			Aliases: []string{"a"},
			Usage:   "animal type (catfish, pig, poultry)",
		},
		&cli.StringFlag{
			Name:  "class",
			Usage: "animal class (see: feedform classes)",
		},
		&cli.StringFlag{
			Name:    "request",
			Aliases: []string{"f"},
			Usage: `Path/URI of a JSON or YAML formulation request.
	Supports: file paths, HTTP/HTTPS URLs, or - for stdin.
	Flags given on the command line override values in the request.`,
		},
		&cli.Float64Flag{
			Name:  "tolerance",
			Usage: "fractional widening of nutrient bounds (default from config, 0.01)",
		},
		&cli.BoolFlag{
			Name:  "rank",
			Usage: "order recommended mixtures by distance to the requirement midpoint",
		},
		&cli.IntFlag{
			Name:  "max-mixtures",
			Usage: "cap on generated candidate mixtures (default from config)",
		},
		&cli.BoolFlag{
			Name:  "recommended-only",
			Usage: "omit mixtures outside the tolerance from the output",
		},
		dataDirFlag(),
		outputFlag(),
		formatFlag(),
	}
	for _, c := range catalog.Categories() {
		flags = append(flags, &cli.StringSliceFlag{
			Name:  categoryFlagName(c),
			Usage: fmt.Sprintf("ingredients for %s (repeat or comma-separate)", c),
		})
	}

	return &cli.Command{
		Name:                  "formulate",
		EnableShellCompletion: true,
		Usage:                 "Generate feed mixtures and filter them against a class requirement",
		Description: `Generates candidate mixtures from the selected ingredients, computes their
energy and protein totals, and marks those within the class requirement
widened by the tolerance as recommended.

Energy sources, energy replacers, medium protein sources, and protein
replacers each need at least two distinct ingredients.

  feedform formulate --animal catfish --class Grower \
    --energy-sources Maize,"Cassava flour" \
    --energy-replacers "Wheat bran","Maize bran" \
    --medium-protein-sources "Soybean meal","Groundnut cake" \
    --protein-replacers "Sunflower cake","Sesame cake"

  feedform formulate -f request.yaml --tolerance 0.02 --format table`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			req, err := buildRequestFromCmd(ctx, cmd)
			if err != nil {
				return fmt.Errorf("error parsing formulation request: %w", err)
			}

			eng, err := newEngine(ctx, cmd)
			if err != nil {
				return fmt.Errorf("error initializing engine: %w", err)
			}

			res, err := eng.Formulate(ctx, req)
			if err != nil {
				return err
			}
			if cmd.Bool("recommended-only") {
				res.Formulations = res.Recommended
			}

			return writeOutput(ctx, cmd, res)
		},
	}
}

// buildRequestFromCmd reads --request when given, then applies flags.
func buildRequestFromCmd(ctx context.Context, cmd *cli.Command) (engine.Request, error) {
	req := engine.Request{Selection: make(formulation.Selection)}

	if src := cmd.String("request"); src != "" {
		data, err := serializer.ReadSource(ctx, src)
		if err != nil {
			return engine.Request{}, fmt.Errorf("failed to load request from %q: %w", src, err)
		}
		// YAML is a superset of JSON, so either form converts.
		body, err := serializer.ToJSON(serializer.FormatYAML, data)
		if err != nil {
			return engine.Request{}, fmt.Errorf("invalid request in %q: %w", src, err)
		}
		if req, err = engine.ParseRequestJSON(body); err != nil {
			return engine.Request{}, err
		}
	}

	if v := cmd.String("animal"); v != "" {
		req.AnimalType = v
	}
	if v := cmd.String("class"); v != "" {
		req.Class = v
	}
	if cmd.IsSet("tolerance") {
		tol := cmd.Float64("tolerance")
		req.Tolerance = &tol
	}
	if cmd.IsSet("rank") {
		req.Rank = cmd.Bool("rank")
	}

	for _, c := range catalog.Categories() {
		var names []string
		for _, n := range cmd.StringSlice(categoryFlagName(c)) {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		if len(names) > 0 {
			req.Selection[c] = names
		}
	}

	return req, nil
}
