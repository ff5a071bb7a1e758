package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/followupdesk/internal/logging"
	"github.com/spf13/pflag"
)

// Config holds runtime settings for the FollowUpDesk CLI.
//
// Fields:
//   - ServerURL: base URL of the FollowUpDesk server; routes live under /api.
//   - DatabasePath: SQLite file holding the persisted session.
//   - Ephemeral: keep the session in memory only.
//   - RequestTimeout: per-request HTTP timeout.
//   - LogLevel: debug, info, warn or error.
//   - MetricsFile: when set, client metrics are written there after each command.
//   - DownloadDir: default directory for record exports.
//   - S3: optional object storage target for exports.
type Config struct {
	ServerURL      string
	DatabasePath   string
	Ephemeral      bool
	RequestTimeout time.Duration
	LogLevel       string
	MetricsFile    string
	DownloadDir    string
	S3             S3Config
}

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
}

// Enabled reports whether exports can be sent to S3.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3001"
	c.DatabasePath = "followupdesk.db"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.DownloadDir = "."
	c.S3.Region = "us-east-1"
}

// Validate reports settings the client cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.ServerURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if !c.Ephemeral && c.DatabasePath == "" {
		return errors.New("database path is empty")
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file named by --config (if any) and the flags set explicitly on
// fs. Later sources take precedence over earlier ones.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, err := fs.GetString(FlagConfig)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
