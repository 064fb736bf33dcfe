// Package logging provides structured logging utilities shared by all
// skillsight components.
//
// # Overview
//
// This package wraps the standard library slog package with project
// defaults: JSON output to stderr, module and version context on every
// record, environment-based level configuration, and source location
// tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("skillsightd", version)
//
//	    slog.Info("serving", "port", 8080)
//	    slog.Debug("cache state", "entries", n)
//	    slog.Error("resolve failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("check", "v1.0.0", "debug")
//	logger.Info("manifest resolved", "snapshot_date", date)
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug skillsightd serve
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-11-02T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "server started",
//	    "module": "skillsightd",
//	    "version": "v1.0.0",
//	    "port": 8080
//	}
package logging
