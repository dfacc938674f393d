// Package config loads runtime configuration for the portal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the portal backend
//	-d string   path of the local session database
//	-n int      posts page size
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Keys that are absent or empty leave the current value untouched:
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "session_db": "portal.db",
//	  "posts_page_size": 50,
//	  "log_level": "info"
//	}
package config
