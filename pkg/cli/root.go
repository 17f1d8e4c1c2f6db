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
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/feedform/feedform/pkg/logging"
)

const (
	name           = "feedform"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the CLI with os.Args and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(exitCode(ctx))
	}
}

// exitCode is 2 when the run was interrupted, 1 otherwise.
func exitCode(ctx context.Context) int {
	if ctx.Err() != nil {
		return 2
	}
	return 1
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Usage:                 "Animal feed formulation",
		EnableShellCompletion: true,
		Description: `Generates candidate feed mixtures from selected ingredients and filters
them against the nutrient requirements of an animal class.

  feedform animals
  feedform classes --animal catfish
  feedform ingredients --animal catfish
  feedform formulate --animal catfish --class Grower --energy-sources Maize,Sorghum ...
  feedform serve`,
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "shorthand for --log-level=debug",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := cmd.String("log-level")
			if cmd.Bool("debug") {
				level = "debug"
			}
			logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			formulateCmd(),
			classesCmd(),
			ingredientsCmd(),
			animalsCmd(),
			serveCmd(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			commandLister(ctx, cmd)
			return nil
		},
	}
}

// commandLister prints the visible subcommands of cmd.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "Usage: %s <command> [flags]\n\nCommands:\n", cmd.Name)
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintf(w, "  %-12s %s\n", c.Name, c.Usage)
	}
}
