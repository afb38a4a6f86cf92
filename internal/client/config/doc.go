// Package config loads runtime configuration for the prepa CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL (default http://127.0.0.1:8000/)
//	-t int      request timeout in seconds (default 30)
//	-d string   session database file (default session.db)
//	-r float    outbound requests per second, 0 = unlimited
//	-l string   log level (default info)
//	-b string   log backend, slog or zap (default slog)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "30s" or integer nanoseconds. Missing keys keep their defaults:
//
//	{
//	  "api_base_url": "https://prepa.example.com/api/",
//	  "request_timeout": "30s",
//	  "database_path": "/var/lib/prepa/session.db",
//	  "requests_per_second": 5,
//	  "log_level": "debug",
//	  "log_backend": "zap"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
