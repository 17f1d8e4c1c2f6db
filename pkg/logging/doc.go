// Package logging provides structured logging utilities for feedform components.
//
// # Overview
//
// This package wraps the standard library slog package with feedform-specific defaults
// and conventions for consistent logging across all components. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
// Package logging configures the process-wide slog logger used by feedform
// and feedformd.
//
// Every record is JSON on stderr and carries the module and version of the
// binary that wrote it. Debug records also carry their source location.
//
// The level comes from an explicit flag or config value when one is given,
// and from LOG_LEVEL otherwise. Names are case-insensitive; unknown names
// resolve to info:
//
//	debug, info, warn (or warning), error
//
// Binaries install the logger once at startup:
//
//	logging.SetDefaultStructuredLoggerWithLevel("feedformd", version, cfg.LogLevel)
//
// and then log through slog directly:
//
//	slog.Debug("mixtures generated", "animal", "catfish", "count", 256)
//
// NewLogLogger adapts the default handler for APIs that still take a
// *log.Logger, such as http.Server.ErrorLog.
package logging
