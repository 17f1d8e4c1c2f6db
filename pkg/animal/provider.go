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

package animal

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	fferrors "github.com/feedform/feedform/pkg/errors"
)

//go:embed data/*.yaml
var dataFS embed.FS

const (
	// DefaultMaxFileSize is the largest external data file accepted (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024

	sourceEmbedded = "embedded"
	sourceExternal = "external"
)

// DataProvider abstracts access to profile data files.
type DataProvider interface {
	// ReadFile reads a file by name relative to the data directory.
	ReadFile(name string) ([]byte, error)

	// Source describes where name is read from.
	Source(name string) string
}

// EmbeddedDataProvider serves the profile files compiled into the binary.
type EmbeddedDataProvider struct {
	fs     fs.FS
	prefix string
}

// NewEmbeddedDataProvider returns a provider over the built-in data files.
func NewEmbeddedDataProvider() *EmbeddedDataProvider {
	return &EmbeddedDataProvider{fs: dataFS, prefix: "data"}
}

// ReadFile reads name from the embedded filesystem.
func (p *EmbeddedDataProvider) ReadFile(name string) ([]byte, error) {
	full := p.prefix + "/" + name
	slog.Debug("reading embedded profile data", "file", name)
	return fs.ReadFile(p.fs, full)
}

// Source returns "embedded".
func (p *EmbeddedDataProvider) Source(string) string { return sourceEmbedded }

// LayeredProviderConfig configures a LayeredDataProvider.
type LayeredProviderConfig struct {
	// ExternalDir holds profile files that replace embedded ones by name.
	ExternalDir string

	// MaxFileSize caps external file size in bytes. Zero means DefaultMaxFileSize.
	MaxFileSize int64

	// AllowSymlinks permits symlinked files in ExternalDir.
	AllowSymlinks bool
}

// LayeredDataProvider reads profile files from an external directory,
// falling back to embedded data for files the directory does not contain.
type LayeredDataProvider struct {
	embedded      DataProvider
	externalDir   string
	externalFiles map[string]bool
}

// NewLayeredDataProvider scans cfg.ExternalDir and returns a provider that
// prefers its files. The directory must exist and contain no nested paths,
// oversized files, or (unless allowed) symlinks.
func NewLayeredDataProvider(embedded DataProvider, cfg LayeredProviderConfig) (*LayeredDataProvider, error) {
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}

	info, err := os.Stat(cfg.ExternalDir)
	if err != nil {
		return nil, fferrors.Wrap(fferrors.ErrCodeNotFound,
			fmt.Sprintf("external data directory not found: %s", cfg.ExternalDir), err)
	}
	if !info.IsDir() {
		return nil, fferrors.New(fferrors.ErrCodeInvalidRequest,
			fmt.Sprintf("external data path is not a directory: %s", cfg.ExternalDir))
	}

	entries, err := os.ReadDir(cfg.ExternalDir)
	if err != nil {
		return nil, fferrors.Wrap(fferrors.ErrCodeInternal, "failed to read external data directory", err)
	}

	files := make(map[string]bool)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		if e.Type()&os.ModeSymlink != 0 && !cfg.AllowSymlinks {
			return nil, fferrors.New(fferrors.ErrCodeInvalidRequest,
				fmt.Sprintf("symlinks not allowed: %s", name))
		}
		fi, statErr := os.Stat(filepath.Join(cfg.ExternalDir, name))
		if statErr != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", name, statErr)
		}
		if fi.Size() > cfg.MaxFileSize {
			return nil, fferrors.New(fferrors.ErrCodeInvalidRequest,
				fmt.Sprintf("file too large (%d bytes, max %d): %s", fi.Size(), cfg.MaxFileSize, name))
		}
		files[name] = true
		slog.Debug("discovered external profile file", "file", name, "size", fi.Size())
	}

	slog.Info("layered data provider initialized",
		"external_dir", cfg.ExternalDir,
		"external_files", len(files))

	return &LayeredDataProvider{
		embedded:      embedded,
		externalDir:   cfg.ExternalDir,
		externalFiles: files,
	}, nil
}

// ReadFile reads name from the external directory when present, otherwise
// from the embedded provider.
func (p *LayeredDataProvider) ReadFile(name string) ([]byte, error) {
	if strings.Contains(name, "..") || strings.ContainsRune(name, filepath.Separator) {
		return nil, fferrors.New(fferrors.ErrCodeInvalidRequest,
			fmt.Sprintf("path traversal detected: %s", name))
	}
	if p.externalFiles[name] {
		data, err := os.ReadFile(filepath.Join(p.externalDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read external file %s: %w", name, err)
		}
		return data, nil
	}
	return p.embedded.ReadFile(name)
}

// Source returns "external" or "embedded" for name.
func (p *LayeredDataProvider) Source(name string) string {
	if p.externalFiles[name] {
		return sourceExternal
	}
	return sourceEmbedded
}
