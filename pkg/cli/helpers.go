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
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/feedform/feedform/pkg/animal"
	"github.com/feedform/feedform/pkg/config"
	"github.com/feedform/feedform/pkg/engine"
	"github.com/feedform/feedform/pkg/serializer"
)

// urfave/cli flags hold parsed state, so each command gets its own instances.

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "config file (default is $HOME/.feedform.yaml or ./.feedform.yaml)",
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func animalFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "animal",
		Aliases:  []string{"a"},
		Usage:    fmt.Sprintf("animal type (supported values: %s)", animal.Types()),
		Required: true,
	}
}

func dataDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "data-dir",
		Usage: "directory of profile files overriding the built-in ones",
	}
}

// parseOutputFormat reads and validates --format.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

// loadConfig resolves configuration, letting explicitly set flags win over
// file and environment values.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	var opts []config.Option
	if path := cmd.String("config"); path != "" {
		opts = append(opts, config.WithFile(path))
	}
	if cmd.IsSet("tolerance") {
		opts = append(opts, config.WithOverride(config.KeyTolerance, cmd.Float64("tolerance")))
	}
	if cmd.IsSet("max-mixtures") {
		opts = append(opts, config.WithOverride(config.KeyMaxMixtures, cmd.Int("max-mixtures")))
	}
	if cmd.IsSet("data-dir") {
		opts = append(opts, config.WithOverride(config.KeyDataDir, cmd.String("data-dir")))
	}
	return config.Load(opts...)
}

// newEngine builds an engine from the resolved configuration.
func newEngine(ctx context.Context, cmd *cli.Command) (*engine.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	regOpts, err := cfg.RegistryOptions()
	if err != nil {
		return nil, err
	}
	reg, err := animal.NewRegistry(ctx, regOpts...)
	if err != nil {
		return nil, err
	}
	return engine.New(reg, cfg.EngineOptions(version)...)
}

// writeOutput serializes v per --format and --output.
func writeOutput(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	var w *serializer.Writer
	if path := cmd.String("output"); path != "" {
		if w, err = serializer.NewFileWriter(format, path); err != nil {
			return err
		}
	} else {
		w = serializer.NewWriter(format, cmd.Root().Writer)
	}
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return w.Serialize(ctx, v)
}
