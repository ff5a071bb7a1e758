package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared with the command tree.
const (
	FlagConfig      = "config"
	FlagServer      = "server"
	FlagDatabase    = "db"
	FlagEphemeral   = "ephemeral"
	FlagTimeout     = "timeout"
	FlagLogLevel    = "log-level"
	FlagMetricsFile = "metrics-file"
)

// RegisterFlags declares the configuration flags on fs, with defaults taken
// from (*Config).LoadDefaults.
//
// Supported flags:
//
//	-c, --config string        JSON or YAML config file
//	-a, --server string        server base URL
//	    --db string            SQLite file holding the session
//	    --ephemeral            keep the session in memory only
//	    --timeout duration     HTTP request timeout
//	    --log-level string     debug, info, warn or error
//	    --metrics-file string  write client metrics here after each command
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON or YAML config file")
	fs.StringP(FlagServer, "a", d.ServerURL, "FollowUpDesk server URL")
	fs.String(FlagDatabase, d.DatabasePath, "SQLite file holding the session")
	fs.Bool(FlagEphemeral, false, "keep the session in memory only")
	fs.Duration(FlagTimeout, d.RequestTimeout, "HTTP request timeout")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn or error")
	fs.String(FlagMetricsFile, "", "write client metrics in text format to this file")
}

// applyFlags overlays only the flags the user actually set, so flag defaults
// never override values from the config file.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err != nil || !fs.Changed(name) {
			return
		}
		err = apply()
	}

	set(FlagServer, func() (e error) { cfg.ServerURL, e = fs.GetString(FlagServer); return })
	set(FlagDatabase, func() (e error) { cfg.DatabasePath, e = fs.GetString(FlagDatabase); return })
	set(FlagEphemeral, func() (e error) { cfg.Ephemeral, e = fs.GetBool(FlagEphemeral); return })
	set(FlagTimeout, func() (e error) { cfg.RequestTimeout, e = fs.GetDuration(FlagTimeout); return })
	set(FlagLogLevel, func() (e error) { cfg.LogLevel, e = fs.GetString(FlagLogLevel); return })
	set(FlagMetricsFile, func() (e error) { cfg.MetricsFile, e = fs.GetString(FlagMetricsFile); return })

	return err
}
