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

package api

import (
	"context"
	"log/slog"

	"github.com/feedform/feedform/pkg/animal"
	"github.com/feedform/feedform/pkg/config"
	"github.com/feedform/feedform/pkg/engine"
	"github.com/feedform/feedform/pkg/logging"
	"github.com/feedform/feedform/pkg/server"
)

const (
	name           = "feedformd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/feedform/feedform/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve loads configuration, builds the formulation engine, and runs the
// API server until ctx is canceled or the process is signaled.
func Serve(ctx context.Context, opts ...config.Option) error {
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"tolerance", cfg.Tolerance,
		"maxMixtures", cfg.MaxMixtures,
		"dataDir", cfg.DataDir,
	)

	s, err := NewServer(ctx, cfg)
	if err != nil {
		return err
	}

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// NewServer returns a server exposing the engine routes built from cfg.
func NewServer(ctx context.Context, cfg *config.Config) (*server.Server, error) {
	eng, err := NewEngine(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(eng.Routes()),
	), nil
}

// NewEngine loads the animal profiles and builds an engine from cfg.
func NewEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, error) {
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

// Version returns the build version, commit, and date.
func Version() (string, string, string) {
	return version, commit, date
}
