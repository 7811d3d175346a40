// Package config loads runtime configuration for the DineBridge client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-w string   ws:// endpoint of the live order channel
//	-f string   path of the local SQLite database file
//	-t int      per-request timeout (seconds)
//	-r int      retry attempts for server errors
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://pos.example.com/api",
//	  "live_endpoint": "wss://pos.example.com/ws/orders",
//	  "database_file": "dinebridge.db",
//	  "request_timeout": "30s",
//	  "max_retries": 3,
//	  "retry_delay": "1s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
