// Package logging provides structured logging utilities for statctl components.
//
// # Overview
//
// This package wraps the standard library slog package with statctl-specific
// defaults and conventions for consistent logging across the CLI and the node
// daemon. It supports environment-based log level configuration, module and
// version context injection, and automatic source location tracking for debug
// logs.
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("statctl", version)
//
//	    slog.Info("dispatching query", "nodes", len(nodes))
//	    slog.Debug("detailed state", "spec", spec)
//	    slog.Error("dispatch failed", "error", err)
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("statd", version, "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug statctl stat system-cpu-usage
//	LOG_LEVEL=error statd
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "query complete",
//	    "module": "statctl",
//	    "version": "v1.0.0",
//	    "nodes": 4
//	}
//
// Debug logs additionally include source location.
package logging
