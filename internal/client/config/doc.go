// Package config loads runtime configuration for the taskkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-s string   path of the local session database
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-e string   directory for downloaded exports
//
// # File schema
//
// Durations accept strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "session_db_path": "taskkeeper.db",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "export_dir": "exports"
//	}
package config
