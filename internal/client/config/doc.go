// Package config loads runtime configuration for the gophmedia CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   media API base URL
//	-b string   backend: rest or s3
//	-s int      site ID
//	-d string   local media cache path
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-l string   log level
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds. Keys left out keep their default:
//
//	{
//	  "backend": "s3",
//	  "site_id": 42,
//	  "request_timeout": "30s",
//	  "online_check_interval": "10s",
//	  "allowed_extensions": ["jpg", "png"],
//	  "max_upload_size": 10485760,
//	  "s3_bucket": "media",
//	  "s3_base_endpoint": "http://localhost:9000",
//	  "s3_presign_expiry": "15m"
//	}
//
// S3 credentials fall back to the default AWS chain when s3_access_key is
// empty.
package config
