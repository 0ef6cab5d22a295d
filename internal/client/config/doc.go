// Package config loads runtime configuration for the employeeboard CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   URL of the GraphQL endpoint
//	-i int      online status check interval (seconds)
//	-t int      cache TTL (seconds)
//	-w int      request timeout (seconds)
//	-r          revalidate cached reads in the background
//	-l string   diagnostics log file
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds. Missing keys keep their defaults:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8080/graphql",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "cache_ttl": "30s",
//	  "revalidate": true,
//	  "log_file": "employeeboard.log",
//	  "log_debug": false
//	}
package config
