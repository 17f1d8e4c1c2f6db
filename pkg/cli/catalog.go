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

	"github.com/urfave/cli/v3"

	"github.com/feedform/feedform/pkg/api"
	"github.com/feedform/feedform/pkg/config"
)

func classesCmd() *cli.Command {
	return &cli.Command{
		Name:  "classes",
		Usage: "List the requirement classes of an animal type",
		Flags: []cli.Flag{animalFlag(), dataDirFlag(), outputFlag(), formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			eng, err := newEngine(ctx, cmd)
			if err != nil {
				return err
			}
			classes, err := eng.RequirementClasses(cmd.String("animal"))
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, classes)
		},
	}
}

func ingredientsCmd() *cli.Command {
	return &cli.Command{
		Name:  "ingredients",
		Usage: "List the ingredient options of an animal type by category",
		Flags: []cli.Flag{animalFlag(), dataDirFlag(), outputFlag(), formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			eng, err := newEngine(ctx, cmd)
			if err != nil {
				return err
			}
			opts, err := eng.IngredientOptions(cmd.String("animal"))
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, opts)
		},
	}
}

func animalsCmd() *cli.Command {
	return &cli.Command{
		Name:  "animals",
		Usage: "List supported animal types and their classes",
		Flags: []cli.Flag{dataDirFlag(), outputFlag(), formatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			eng, err := newEngine(ctx, cmd)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, eng.Animals())
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the formulation API server",
		Description: `Serves the formulation API until interrupted. The listen port comes from
PORT (default 8080).`,
		Flags: []cli.Flag{dataDirFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var opts []config.Option
			if path := cmd.String("config"); path != "" {
				opts = append(opts, config.WithFile(path))
			}
			if cmd.IsSet("data-dir") {
				opts = append(opts, config.WithOverride(config.KeyDataDir, cmd.String("data-dir")))
			}
			return api.Serve(ctx, opts...)
		},
	}
}
