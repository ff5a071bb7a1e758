// Package config loads runtime configuration for the FollowUpDesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or --config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags the user set explicitly (see RegisterFlags), which
//     override earlier values.
//
// # File schema
//
// The file loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	server_url: https://followup.example.org
//	database_path: ~/.followupdesk/session.db
//	request_timeout: 30s
//	log_level: info
//	download_dir: ./exports
//	s3:
//	  endpoint: http://127.0.0.1:9000
//	  region: us-east-1
//	  bucket: exports
//	  prefix: followupdesk
//	  access_key: minio
//	  secret_key: minio123
//
// Primary API
//
//   - type Config: runtime settings
//   - func RegisterFlags(*pflag.FlagSet): declares the flags
//   - func LoadConfig(*pflag.FlagSet) (*Config, error)
//   - func (*Config) LoadDefaults(): sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// config file or flags to configure values.
package config
