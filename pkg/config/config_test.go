package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedform/feedform/pkg/animal"
	"github.com/feedform/feedform/pkg/defaults"
	fferrors "github.com/feedform/feedform/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithoutSearch())
	require.NoError(t, err)

	assert.InDelta(t, defaults.Tolerance, cfg.Tolerance, 1e-12)
	assert.InDelta(t, defaults.GridStep, cfg.Step, 1e-12)
	assert.Equal(t, defaults.MaxVariantsPerBucket, cfg.MaxVariantsPerBucket)
	assert.Equal(t, defaults.MaxMixtures, cfg.MaxMixtures)
	assert.Equal(t, defaults.MinConstrainedSelection, cfg.MinSelection)
	assert.Empty(t, cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeFile(t, t.TempDir(), "feedform.yaml", `tolerance: 0.05
max-mixtures: 500
log-level: DEBUG
`)

	t.Setenv("FEEDFORM_MAX_MIXTURES", "800")
	t.Setenv("FEEDFORM_MIN_SELECTION", "3")

	cfg, err := Load(WithFile(path), WithOverride(KeyMinSelection, 1))
	require.NoError(t, err)

	assert.InDelta(t, 0.05, cfg.Tolerance, 1e-12, "file beats default")
	assert.Equal(t, 800, cfg.MaxMixtures, "env beats file")
	assert.Equal(t, 1, cfg.MinSelection, "override beats env")
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		opts []Option
	}{
		{"missing file", []Option{WithFile(filepath.Join(dir, "nope.yaml"))}},
		{"malformed file", []Option{WithFile(writeFile(t, dir, "bad.yaml", "tolerance: [1\n"))}},
		{"negative tolerance", []Option{WithoutSearch(), WithOverride(KeyTolerance, -0.5)}},
		{"zero step", []Option{WithoutSearch(), WithOverride(KeyStep, 0)}},
		{"step above one", []Option{WithoutSearch(), WithOverride(KeyStep, 1.5)}},
		{"zero variants", []Option{WithoutSearch(), WithOverride(KeyMaxVariantsPerBucket, 0)}},
		{"zero mixtures", []Option{WithoutSearch(), WithOverride(KeyMaxMixtures, 0)}},
		{"zero selection", []Option{WithoutSearch(), WithOverride(KeyMinSelection, 0)}},
		{"bad log level", []Option{WithoutSearch(), WithOverride(KeyLogLevel, "loud")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.opts...)
			require.Error(t, err)
			assert.Equal(t, fferrors.ErrCodeInvalidRequest, fferrors.CodeOf(err))
		})
	}
}

func TestRegistryOptions(t *testing.T) {
	cfg, err := Load(WithoutSearch(), WithOverride(KeyMaxMixtures, 10))
	require.NoError(t, err)

	opts, err := cfg.RegistryOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	reg, err := animal.NewRegistry(context.Background(), opts...)
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Types())

	cfg.DataDir = filepath.Join(t.TempDir(), "missing")
	_, err = cfg.RegistryOptions()
	require.Error(t, err)
	assert.Equal(t, fferrors.ErrCodeNotFound, fferrors.CodeOf(err))

	cfg.DataDir = t.TempDir()
	opts, err = cfg.RegistryOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}

func TestEngineOptions(t *testing.T) {
	cfg, err := Load(WithoutSearch())
	require.NoError(t, err)
	assert.Len(t, cfg.EngineOptions("v1.2.3"), 3)
	assert.Len(t, cfg.GeneratorOptions(), 3)
}
