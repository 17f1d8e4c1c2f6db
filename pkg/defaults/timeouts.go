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
package defaults

import "time"

// API handling.
const (
	// FormulateHandlerTimeout bounds one formulation request, generation
	// through serialization. Catalog listings are in-memory and unbounded.
	FormulateHandlerTimeout = 30 * time.Second

	// CatalogCacheTTL is the Cache-Control max-age sent with animal, class,
	// and ingredient listings. Reference data only changes on restart.
	CatalogCacheTTL = 10 * time.Minute

	// ServerMaxBodyBytes caps request bodies on API routes. A full selection
	// document is a few kilobytes.
	ServerMaxBodyBytes = 1 << 20
)

// HTTP listener.
const (
	ServerReadTimeout       = 10 * time.Second
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout must cover FormulateHandlerTimeout.
	ServerWriteTimeout = 45 * time.Second

	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is how long in-flight formulations may drain.
	ServerShutdownTimeout = 30 * time.Second
)

// Outbound fetches of request documents given by URL.
const (
	HTTPClientTimeout         = 30 * time.Second
	HTTPConnectTimeout        = 5 * time.Second
	HTTPTLSHandshakeTimeout   = 5 * time.Second
	HTTPResponseHeaderTimeout = 10 * time.Second
	HTTPIdleConnTimeout       = 90 * time.Second
	HTTPKeepAlive             = 30 * time.Second
)
