package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/followupdesk/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for config file unmarshalling.
// It relies on timex.Duration so files can specify the timeout either as a
// string like "30s" or as integer nanoseconds. Absent keys keep the values
// already in Config.
type FileConfig struct {
	ServerURL      *string         `json:"server_url" yaml:"server_url"`
	DatabasePath   *string         `json:"database_path" yaml:"database_path"`
	Ephemeral      *bool           `json:"ephemeral" yaml:"ephemeral"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       *string         `json:"log_level" yaml:"log_level"`
	MetricsFile    *string         `json:"metrics_file" yaml:"metrics_file"`
	DownloadDir    *string         `json:"download_dir" yaml:"download_dir"`
	S3             *FileS3Config   `json:"s3" yaml:"s3"`
}

type FileS3Config struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	Region    string `json:"region" yaml:"region"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	Prefix    string `json:"prefix" yaml:"prefix"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
}

// parseFile overlays cfg with the file at path. The format follows the
// extension: .yaml and .yml are YAML, anything else is JSON.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.ServerURL != nil {
		cfg.ServerURL = *fc.ServerURL
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.Ephemeral != nil {
		cfg.Ephemeral = *fc.Ephemeral
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.MetricsFile != nil {
		cfg.MetricsFile = *fc.MetricsFile
	}
	if fc.DownloadDir != nil {
		cfg.DownloadDir = *fc.DownloadDir
	}
	if s := fc.S3; s != nil {
		cfg.S3.Endpoint = s.Endpoint
		if s.Region != "" {
			cfg.S3.Region = s.Region
		}
		cfg.S3.Bucket = s.Bucket
		cfg.S3.Prefix = s.Prefix
		cfg.S3.AccessKey = s.AccessKey
		cfg.S3.SecretKey = s.SecretKey
	}
}
